package panel

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/arbor-ai/arbor/events"
)

// MinPanelWidthPercent is the floor enforced during interactive resize.
const MinPanelWidthPercent = 15.0

// Layout maintains one percentage width per visible panel (index 0 is the
// main chat) and keeps their sum at 100. Every committed change is announced
// on the layout topic so connector renderers can recompute without polling.
type Layout struct {
	mu            sync.Mutex
	widths        []float64
	viewportWidth float64
	bus           *events.Bus
}

// NewLayout instantiates a layout with a single full-width panel.
func NewLayout(bus *events.Bus) *Layout {
	return &Layout{
		widths:        []float64{100},
		viewportWidth: 1280,
		bus:           bus,
	}
}

// SetViewportWidth records the viewport width in pixels, used to convert drag
// deltas into percentages.
func (l *Layout) SetViewportWidth(pixels float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if pixels > 0 {
		l.viewportWidth = pixels
	}
}

// SetPanelCount resets all widths to equal shares. Called whenever the number
// of visible panels changes; any custom widths from previous resizes are
// deliberately discarded.
func (l *Layout) SetPanelCount(count int) {
	if count < 1 {
		count = 1
	}
	l.mu.Lock()
	if count == len(l.widths) {
		l.mu.Unlock()
		return
	}
	l.widths = make([]float64, count)
	share := 100.0 / float64(count)
	for i := range l.widths {
		l.widths[i] = share
	}
	widths := l.snapshot()
	l.mu.Unlock()

	l.publish(widths)
}

// Widths returns the current panel widths in percent.
func (l *Layout) Widths() []float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// Resize transfers width between panel i and panel i+1 given a pixel delta.
// The transfer is rejected wholesale if either resulting width would fall
// below the minimum; the sum of widths is preserved exactly. Reports whether
// the resize was committed.
func (l *Layout) Resize(i int, deltaPixels float64) bool {
	l.mu.Lock()
	if i < 0 || i+1 >= len(l.widths) {
		l.mu.Unlock()
		return false
	}
	deltaPercent := deltaPixels / l.viewportWidth * 100
	newLeft := l.widths[i] + deltaPercent
	newRight := l.widths[i+1] - deltaPercent
	if newLeft < MinPanelWidthPercent || newRight < MinPanelWidthPercent {
		l.mu.Unlock()
		return false
	}
	l.widths[i] = newLeft
	l.widths[i+1] = newRight
	widths := l.snapshot()
	l.mu.Unlock()

	l.publish(widths)
	return true
}

func (l *Layout) snapshot() []float64 {
	widths := make([]float64, len(l.widths))
	copy(widths, l.widths)
	return widths
}

func (l *Layout) publish(widths []float64) {
	if l.bus == nil {
		return
	}
	event := &events.LayoutChanged{
		PanelCount: len(widths),
		Widths:     widths,
	}
	if err := l.bus.Publish(events.TopicLayoutChanged, event); err != nil {
		log.Error().Err(err).Msg("publishing layout change")
	}
}
