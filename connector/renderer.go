package connector

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arbor-ai/arbor/events"
)

// Fallback recompute interval, a safety net for layout changes that reach the
// registry without an accompanying event.
const defaultFallbackInterval = 250 * time.Millisecond

// Renderer keeps the connector path between one fork-point message and its
// branch panel up to date. It recomputes on every layout change, on every
// message appended to the target panel, and on a low-frequency fallback tick.
// When either anchor is absent from the registry no path is produced.
type Renderer struct {
	registry *Registry
	bus      *events.Bus

	sourceMessageID string
	targetPanelID   string
	interval        time.Duration
	onPath          func(path string)

	mu     sync.Mutex
	path   string
	cancel context.CancelFunc
	done   chan struct{}
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithFallbackInterval overrides the fallback recompute interval.
func WithFallbackInterval(interval time.Duration) RendererOption {
	return func(r *Renderer) {
		r.interval = interval
	}
}

// WithPathCallback registers a callback invoked with the new path whenever it
// changes. An empty path means nothing should be drawn.
func WithPathCallback(fn func(path string)) RendererOption {
	return func(r *Renderer) {
		r.onPath = fn
	}
}

// NewRenderer instantiates a renderer linking sourceMessageID to the first
// assistant message of targetPanelID.
func NewRenderer(registry *Registry, bus *events.Bus, sourceMessageID, targetPanelID string, options ...RendererOption) *Renderer {
	renderer := &Renderer{
		registry:        registry,
		bus:             bus,
		sourceMessageID: sourceMessageID,
		targetPanelID:   targetPanelID,
		interval:        defaultFallbackInterval,
	}
	for _, option := range options {
		option(renderer)
	}
	return renderer
}

// Start computes the initial path and begins listening for layout and
// message-append events. It must be matched by a Close.
func (r *Renderer) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	layoutMessages, err := r.bus.Subscribe(ctx, events.TopicLayoutChanged)
	if err != nil {
		cancel()
		return err
	}
	appendMessages, err := r.bus.Subscribe(ctx, events.TopicMessageAppended)
	if err != nil {
		cancel()
		return err
	}

	r.mu.Lock()
	r.cancel = cancel
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	r.recompute()

	go func() {
		defer close(done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-layoutMessages:
				if !ok {
					return
				}
				msg.Ack()
				r.recompute()
			case msg, ok := <-appendMessages:
				if !ok {
					return
				}
				msg.Ack()
				r.recompute()
			case <-ticker.C:
				r.recompute()
			}
		}
	}()

	log.Debug().
		Str("source_message_id", r.sourceMessageID).
		Str("target_panel_id", r.targetPanelID).
		Msg("connector renderer started")
	return nil
}

// Path returns the current connector path, empty when nothing should be drawn.
func (r *Renderer) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Close releases the subscriptions and the fallback timer. Panels are opened
// and closed repeatedly within one page lifetime, so Close must leave nothing
// behind; it blocks until the event loop has exited and is safe to call more
// than once.
func (r *Renderer) Close() {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.cancel = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Debug().
		Str("source_message_id", r.sourceMessageID).
		Str("target_panel_id", r.targetPanelID).
		Msg("connector renderer closed")
}

func (r *Renderer) recompute() {
	source, sourceOK := r.registry.Anchor(r.sourceMessageID)
	target, targetOK := r.registry.FirstAssistantAnchor(r.targetPanelID)

	path := ""
	if sourceOK && targetOK {
		path = BuildPath(source, target)
	}

	r.mu.Lock()
	changed := path != r.path
	r.path = path
	onPath := r.onPath
	r.mu.Unlock()

	if changed && onPath != nil {
		onPath(path)
	}
}
