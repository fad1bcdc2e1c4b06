package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddBranch(t *testing.T) {
	s := NewStore()

	require.True(t, s.AddBranch("chat-1", true, "msg-1"))
	require.True(t, s.AddBranch("chat-2", false, ""))

	panels := s.Panels()
	require.Len(t, panels, 2)
	assert.Equal(t, Panel{ChatID: "chat-1", IsNewBranch: true, SourceMessageID: "msg-1"}, panels[0])
	assert.Equal(t, Panel{ChatID: "chat-2"}, panels[1])
}

func TestStoreAddBranchRejectsDuplicates(t *testing.T) {
	s := NewStore()

	require.True(t, s.AddBranch("chat-1", true, "msg-1"))
	assert.False(t, s.AddBranch("chat-1", false, ""))
	assert.False(t, s.Show("chat-1"))
	assert.Len(t, s.Panels(), 1)
}

func TestStoreRemoveBranch(t *testing.T) {
	s := NewStore()
	s.AddBranch("chat-1", true, "msg-1")
	s.AddBranch("chat-2", false, "")

	s.RemoveBranch("chat-1")
	panels := s.Panels()
	require.Len(t, panels, 1)
	assert.Equal(t, "chat-2", panels[0].ChatID)
}

func TestStoreRemoveBranchAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.AddBranch("chat-1", true, "msg-1")

	notified := 0
	s.Subscribe(func([]Panel) { notified++ })

	s.RemoveBranch("does-not-exist")
	assert.Len(t, s.Panels(), 1)
	assert.Equal(t, 0, notified, "no-op removal must not notify")
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.AddBranch("chat-1", true, "msg-1")
	s.AddBranch("chat-2", false, "")

	s.Clear()
	assert.Empty(t, s.Panels())

	// Clearing an empty store is silent.
	notified := 0
	s.Subscribe(func([]Panel) { notified++ })
	s.Clear()
	assert.Equal(t, 0, notified)
}

func TestStoreNotifiesSubscribersSynchronously(t *testing.T) {
	s := NewStore()

	var observed [][]Panel
	s.Subscribe(func(panels []Panel) {
		observed = append(observed, panels)
	})

	s.AddBranch("chat-1", true, "msg-1")
	s.RemoveBranch("chat-1")

	require.Len(t, observed, 2)
	assert.Len(t, observed[0], 1)
	assert.Empty(t, observed[1])
}
