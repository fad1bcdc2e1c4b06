package panel

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog/log"

	"github.com/arbor-ai/arbor/connector"
	"github.com/arbor-ai/arbor/events"
)

// Session wires one chat view together: the panel store drives the layout's
// panel count, committed widths are projected into the connector registry as
// panel rectangles, and each branched panel gets a connector renderer for the
// lifetime of the panel. Closing the session tears all of it down.
type Session struct {
	mainChatID string
	store      *Store
	layout     *Layout
	registry   *connector.Registry
	bus        *events.Bus

	cancel context.CancelFunc
	done   chan struct{}

	mu             sync.Mutex
	viewportWidth  float64
	viewportHeight float64
	renderers      map[string]*connector.Renderer
	closed         bool
}

// NewSession instantiates a session for the chat view showing mainChatID.
func NewSession(mainChatID string, store *Store, layout *Layout, registry *connector.Registry, bus *events.Bus) *Session {
	session := &Session{
		mainChatID:     mainChatID,
		store:          store,
		layout:         layout,
		registry:       registry,
		bus:            bus,
		viewportWidth:  1280,
		viewportHeight: 800,
		renderers:      map[string]*connector.Renderer{},
		done:           make(chan struct{}),
	}
	store.Subscribe(session.onPanelsChanged)
	session.onPanelsChanged(store.Panels())

	ctx, cancel := context.WithCancel(context.Background())
	session.cancel = cancel
	if messages, err := bus.Subscribe(ctx, events.TopicLayoutChanged); err != nil {
		log.Error().Err(err).Msg("subscribing to layout changes")
		close(session.done)
	} else {
		go session.trackLayout(messages)
	}
	return session
}

// trackLayout reprojects panel rectangles whenever the layout commits new
// widths, keeping the registry's geometry in step with divider drags.
func (s *Session) trackLayout(messages <-chan *message.Message) {
	defer close(s.done)
	for msg := range messages {
		msg.Ack()
		s.publishRects(s.store.Panels())
	}
}

// SetViewportSize records the viewport dimensions used to project widths into
// panel rectangles.
func (s *Session) SetViewportSize(width, height float64) {
	s.mu.Lock()
	s.viewportWidth = width
	s.viewportHeight = height
	s.mu.Unlock()
	s.layout.SetViewportWidth(width)
	s.publishRects(s.store.Panels())
}

// AppendMessage publishes a rendered message's anchor and announces the
// append so connectors targeting the panel recompute. Appends for a chat
// whose panel has been closed in the meantime are dropped; a stale fetch
// resolving after close must not resurrect state.
func (s *Session) AppendMessage(chatID string, anchor connector.Anchor) {
	if chatID != s.mainChatID && !s.hasPanel(chatID) {
		log.Debug().Str("chat_id", chatID).Msg("dropping message for closed panel")
		return
	}
	anchor.PanelID = chatID
	s.registry.SetAnchor(anchor)
	event := &events.MessageAppended{
		PanelID:   chatID,
		MessageID: anchor.MessageID,
		Role:      anchor.Role,
	}
	if err := s.bus.Publish(events.TopicMessageAppended, event); err != nil {
		log.Error().Err(err).Msg("publishing message append")
	}
}

// Renderer returns the connector renderer for a branched panel, if any.
func (s *Session) Renderer(chatID string) (*connector.Renderer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	renderer, ok := s.renderers[chatID]
	return renderer, ok
}

// Close clears the panel store and releases every renderer.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	<-s.done

	s.store.Clear()

	s.mu.Lock()
	renderers := s.renderers
	s.renderers = map[string]*connector.Renderer{}
	s.mu.Unlock()
	for _, renderer := range renderers {
		renderer.Close()
	}
}

func (s *Session) hasPanel(chatID string) bool {
	for _, panel := range s.store.Panels() {
		if panel.ChatID == chatID {
			return true
		}
	}
	return false
}

func (s *Session) onPanelsChanged(panels []Panel) {
	s.layout.SetPanelCount(len(panels) + 1)
	s.publishRects(panels)
	s.syncRenderers(panels)
}

// publishRects projects the current widths onto the viewport and publishes
// one rectangle per visible panel, main chat first.
func (s *Session) publishRects(panels []Panel) {
	s.mu.Lock()
	viewportWidth := s.viewportWidth
	viewportHeight := s.viewportHeight
	s.mu.Unlock()

	ids := make([]string, 0, len(panels)+1)
	ids = append(ids, s.mainChatID)
	for _, panel := range panels {
		ids = append(ids, panel.ChatID)
	}

	widths := s.layout.Widths()
	x := 0.0
	for i, id := range ids {
		if i >= len(widths) {
			break
		}
		width := widths[i] / 100 * viewportWidth
		s.registry.SetPanel(id, connector.Rect{
			X:      x,
			Y:      0,
			Width:  width,
			Height: viewportHeight,
		})
		x += width
	}
}

func (s *Session) syncRenderers(panels []Panel) {
	open := map[string]Panel{}
	for _, panel := range panels {
		open[panel.ChatID] = panel
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	var toClose []*connector.Renderer
	var toClosePanels []string
	for chatID, renderer := range s.renderers {
		if _, ok := open[chatID]; !ok {
			toClose = append(toClose, renderer)
			toClosePanels = append(toClosePanels, chatID)
			delete(s.renderers, chatID)
		}
	}
	var toStart []*connector.Renderer
	for chatID, panel := range open {
		if _, ok := s.renderers[chatID]; ok {
			continue
		}
		if panel.SourceMessageID == "" {
			continue
		}
		renderer := connector.NewRenderer(s.registry, s.bus, panel.SourceMessageID, chatID)
		s.renderers[chatID] = renderer
		toStart = append(toStart, renderer)
	}
	s.mu.Unlock()

	for i, renderer := range toClose {
		renderer.Close()
		s.registry.RemovePanel(toClosePanels[i])
	}
	for _, renderer := range toStart {
		if err := renderer.Start(context.Background()); err != nil {
			log.Error().Err(err).Msg("starting connector renderer")
		}
	}
}
