// Package connector draws the visual link between a fork-point message and
// the first assistant message of the branch panel it spawned. Geometry flows
// in through a typed registry fed by the layout engine and the message views;
// the renderer never inspects rendered output directly.
package connector

import (
	"sync"
)

// Rect is an on-screen rectangle in viewport coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// CenterX returns the horizontal center of the rect.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rect.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Bottom returns the bottom edge of the rect.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// IsZero reports whether the rect carries no geometry.
func (r Rect) IsZero() bool { return r == Rect{} }

// Anchor is the published geometry of one rendered message: the icon the
// connector attaches to and the text block it must clear.
type Anchor struct {
	PanelID   string
	MessageID string
	Role      string
	// Position of the message within its panel's list.
	Index int
	Icon  Rect
	Text  Rect
}

// Registry is the layout-state API panels and message views publish their
// rectangles through. All methods are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	panels  map[string]Rect
	anchors map[string]Anchor // keyed by message id
}

// NewRegistry instantiates and returns a new registry.
func NewRegistry() *Registry {
	return &Registry{
		panels:  map[string]Rect{},
		anchors: map[string]Anchor{},
	}
}

// SetPanel publishes a panel's current on-screen rectangle.
func (r *Registry) SetPanel(panelID string, rect Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panels[panelID] = rect
}

// RemovePanel drops a panel's rectangle and all anchors hosted in it.
func (r *Registry) RemovePanel(panelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.panels, panelID)
	for messageID, anchor := range r.anchors {
		if anchor.PanelID == panelID {
			delete(r.anchors, messageID)
		}
	}
}

// Panel returns a panel's rectangle.
func (r *Registry) Panel(panelID string) (Rect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rect, ok := r.panels[panelID]
	return rect, ok
}

// SetAnchor publishes a rendered message's anchor geometry.
func (r *Registry) SetAnchor(anchor Anchor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.anchors[anchor.MessageID] = anchor
}

// RemoveAnchor drops a message's anchor.
func (r *Registry) RemoveAnchor(messageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.anchors, messageID)
}

// Anchor returns the anchor published for a message.
func (r *Registry) Anchor(messageID string) (Anchor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	anchor, ok := r.anchors[messageID]
	return anchor, ok
}

// FirstAssistantAnchor returns the anchor of the earliest assistant message
// rendered in the given panel.
func (r *Registry) FirstAssistantAnchor(panelID string) (Anchor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var first Anchor
	found := false
	for _, anchor := range r.anchors {
		if anchor.PanelID != panelID || anchor.Role != "assistant" {
			continue
		}
		if !found || anchor.Index < first.Index {
			first = anchor
			found = true
		}
	}
	return first, found
}
