// Package panel holds the transient, per-view state of the side-by-side chat
// panels: which branch panels are open, how wide each panel is, and the drag
// sessions that resize them. Nothing in here is persisted; navigating away
// from the chat view drops the whole state while the chats themselves remain
// durable.
package panel

import (
	"sync"
)

// Panel represents one open branch panel. SourceMessageID is the message the
// panel was branched from, used to draw the connector; it is empty when the
// panel was opened by navigation rather than by branching.
type Panel struct {
	ChatID          string
	IsNewBranch     bool
	SourceMessageID string
}

// Store is the ordered registry of open branch panels. It is injected into
// the chat view rather than living as package state, and its lifecycle is
// tied to the view's mount/unmount.
type Store struct {
	mu          sync.Mutex
	panels      []Panel
	subscribers []func(panels []Panel)
}

// NewStore instantiates and returns a new panel store.
func NewStore() *Store {
	return &Store{}
}

// AddBranch appends a panel for a freshly created or navigated-to chat.
// A chat already open in a panel is not added again; the call reports whether
// the panel was added.
func (s *Store) AddBranch(chatID string, isNewBranch bool, sourceMessageID string) bool {
	s.mu.Lock()
	for _, panel := range s.panels {
		if panel.ChatID == chatID {
			s.mu.Unlock()
			return false
		}
	}
	s.panels = append(s.panels, Panel{
		ChatID:          chatID,
		IsNewBranch:     isNewBranch,
		SourceMessageID: sourceMessageID,
	})
	panels := s.snapshot()
	s.mu.Unlock()

	s.notify(panels)
	return true
}

// Show opens an existing chat in a panel without branch provenance.
func (s *Store) Show(chatID string) bool {
	return s.AddBranch(chatID, false, "")
}

// RemoveBranch removes any panel showing the given chat. Removing a chat that
// is not open is a no-op.
func (s *Store) RemoveBranch(chatID string) {
	s.mu.Lock()
	kept := s.panels[:0]
	removed := false
	for _, panel := range s.panels {
		if panel.ChatID == chatID {
			removed = true
			continue
		}
		kept = append(kept, panel)
	}
	s.panels = kept
	panels := s.snapshot()
	s.mu.Unlock()

	if removed {
		s.notify(panels)
	}
}

// Clear drops all open panels, e.g. on navigation away from the chat view.
func (s *Store) Clear() {
	s.mu.Lock()
	cleared := len(s.panels) > 0
	s.panels = nil
	panels := s.snapshot()
	s.mu.Unlock()

	if cleared {
		s.notify(panels)
	}
}

// Panels returns the open panels in display order, left to right.
func (s *Store) Panels() []Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers a callback invoked synchronously after every mutation.
func (s *Store) Subscribe(fn func(panels []Panel)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) snapshot() []Panel {
	panels := make([]Panel, len(s.panels))
	copy(panels, s.panels)
	return panels
}

func (s *Store) notify(panels []Panel) {
	s.mu.Lock()
	subscribers := make([]func([]Panel), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(panels)
	}
}
