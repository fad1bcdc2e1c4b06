package panel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbor-ai/arbor/connector"
	"github.com/arbor-ai/arbor/events"
)

func newTestSession(t *testing.T) (*Session, *Store, *Layout, *connector.Registry) {
	t.Helper()
	bus := events.NewBus()
	t.Cleanup(func() { bus.Close() })

	store := NewStore()
	layout := NewLayout(bus)
	registry := connector.NewRegistry()
	session := NewSession("main-chat", store, layout, registry, bus)
	t.Cleanup(session.Close)
	session.SetViewportSize(1000, 800)
	return session, store, layout, registry
}

func TestSessionSyncsPanelCount(t *testing.T) {
	_, store, layout, _ := newTestSession(t)

	store.AddBranch("branch-1", true, "msg-1")
	assert.Len(t, layout.Widths(), 2)

	store.AddBranch("branch-2", false, "")
	assert.Len(t, layout.Widths(), 3)

	store.RemoveBranch("branch-1")
	assert.Len(t, layout.Widths(), 2)
}

func TestSessionPublishesPanelRects(t *testing.T) {
	_, store, _, registry := newTestSession(t)

	store.AddBranch("branch-1", true, "msg-1")

	main, ok := registry.Panel("main-chat")
	require.True(t, ok)
	assert.InDelta(t, 0, main.X, 1e-9)
	assert.InDelta(t, 500, main.Width, 1e-9)
	assert.InDelta(t, 800, main.Height, 1e-9)

	branchRect, ok := registry.Panel("branch-1")
	require.True(t, ok)
	assert.InDelta(t, 500, branchRect.X, 1e-9)
	assert.InDelta(t, 500, branchRect.Width, 1e-9)
}

func TestSessionStartsRendererForBranchedPanels(t *testing.T) {
	session, store, _, _ := newTestSession(t)

	store.AddBranch("branch-1", true, "msg-1")
	_, ok := session.Renderer("branch-1")
	assert.True(t, ok)

	// A panel opened by navigation has no fork point and gets no connector.
	store.Show("nav-chat")
	_, ok = session.Renderer("nav-chat")
	assert.False(t, ok)
}

func TestSessionClosesRendererOnPanelClose(t *testing.T) {
	session, store, _, registry := newTestSession(t)

	store.AddBranch("branch-1", true, "msg-1")
	renderer, ok := session.Renderer("branch-1")
	require.True(t, ok)

	store.RemoveBranch("branch-1")
	_, ok = session.Renderer("branch-1")
	assert.False(t, ok)
	_, ok = registry.Panel("branch-1")
	assert.False(t, ok, "closing a panel retires its rect")

	// The old renderer no longer updates.
	assert.Empty(t, renderer.Path())
}

func TestSessionConnectorEndToEnd(t *testing.T) {
	session, store, layout, registry := newTestSession(t)

	store.AddBranch("branch-1", true, "msg-1")

	session.AppendMessage("main-chat", connector.Anchor{
		MessageID: "msg-1",
		Role:      "assistant",
		Index:     1,
		Icon:      connector.Rect{X: 100, Y: 100, Width: 32, Height: 32},
		Text:      connector.Rect{X: 140, Y: 100, Width: 300, Height: 84},
	})
	session.AppendMessage("branch-1", connector.Anchor{
		MessageID: "msg-1-copy",
		Role:      "assistant",
		Index:     1,
		Icon:      connector.Rect{X: 700, Y: 60, Width: 32, Height: 32},
	})

	renderer, ok := session.Renderer("branch-1")
	require.True(t, ok)
	require.Eventually(t, func() bool {
		return renderer.Path() != ""
	}, time.Second, 5*time.Millisecond)

	// A resize shifts geometry; the renderer keeps tracking through layout
	// events without any polling dependency.
	require.True(t, layout.Resize(0, 100))
	_, ok = registry.Panel("main-chat")
	require.True(t, ok)
}

func TestSessionDropsStaleAppends(t *testing.T) {
	session, store, _, registry := newTestSession(t)

	store.AddBranch("branch-1", true, "msg-1")
	store.RemoveBranch("branch-1")

	// The panel's initial fetch resolves after the panel was closed.
	session.AppendMessage("branch-1", connector.Anchor{
		MessageID: "late-msg",
		Role:      "assistant",
	})
	_, ok := registry.Anchor("late-msg")
	assert.False(t, ok)
}

func TestSessionCloseClearsEverything(t *testing.T) {
	session, store, layout, _ := newTestSession(t)

	store.AddBranch("branch-1", true, "msg-1")
	store.AddBranch("branch-2", true, "msg-2")
	require.Len(t, layout.Widths(), 3)

	session.Close()
	assert.Empty(t, store.Panels())
	_, ok := session.Renderer("branch-1")
	assert.False(t, ok)
}
