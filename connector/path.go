package connector

import (
	"fmt"
	"math"
	"strings"
)

const (
	cornerRadius = 12.0
	// Padding below the source message's text block.
	textClearancePadding = 20.0
	// Drop used when the source text rect is unknown.
	defaultClearance = 60.0
)

// Clearance returns the vertical drop from the source anchor's attachment
// point that clears the full rendered height of the source message's text.
func Clearance(source Anchor) float64 {
	startY := source.Icon.CenterY()
	if source.Text.IsZero() {
		return defaultClearance
	}
	return (source.Text.Bottom() - startY) + textClearancePadding
}

// BuildPath routes a connector from the source anchor to the target anchor:
// straight down past the source message's text, a rounded turn, a horizontal
// run to the target column, then up (or down) into the target's attachment
// point. The result is an SVG path description.
func BuildPath(source, target Anchor) string {
	startX := source.Icon.CenterX()
	startY := source.Icon.CenterY()
	endX := target.Icon.CenterX()
	endY := target.Icon.CenterY()

	clearance := Clearance(source)
	turnY := startY + clearance

	radius := cornerRadius
	if math.Abs(endX-startX) < 2*radius {
		radius = math.Abs(endX-startX) / 2
	}
	// Corners bend toward the target column.
	direction := 1.0
	if endX < startX {
		direction = -1.0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", formatCoord(startX), formatCoord(startY))
	fmt.Fprintf(&b, " L %s %s", formatCoord(startX), formatCoord(turnY-radius))
	fmt.Fprintf(&b, " Q %s %s %s %s",
		formatCoord(startX), formatCoord(turnY),
		formatCoord(startX+direction*radius), formatCoord(turnY))
	fmt.Fprintf(&b, " L %s %s", formatCoord(endX-direction*radius), formatCoord(turnY))
	fmt.Fprintf(&b, " Q %s %s %s %s",
		formatCoord(endX), formatCoord(turnY),
		formatCoord(endX), formatCoord(turnY-radius))
	fmt.Fprintf(&b, " L %s %s", formatCoord(endX), formatCoord(endY))
	return b.String()
}

func formatCoord(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
