package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbor-ai/arbor/store"
)

func newChat(id string, parentID string, createdAt int64) *store.Chat {
	chat := &store.Chat{
		ID:                id,
		UserID:            "user-1",
		Visibility:        store.VisibilityPrivate,
		CreationTimestamp: createdAt,
	}
	if parentID != "" {
		chat.ParentID = &parentID
	}
	return chat
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry.Chat.ID
	}
	return out
}

func TestBuildForest(t *testing.T) {
	tests := []struct {
		name       string
		chats      []*store.Chat
		wantIDs    []string
		wantDepths []int
	}{
		{
			name:       "empty input",
			chats:      nil,
			wantIDs:    []string{},
			wantDepths: []int{},
		},
		{
			name: "single root",
			chats: []*store.Chat{
				newChat("a", "", 1),
			},
			wantIDs:    []string{"a"},
			wantDepths: []int{0},
		},
		{
			name: "chain of three",
			chats: []*store.Chat{
				newChat("a", "", 1),
				newChat("b", "a", 2),
				newChat("c", "b", 3),
			},
			wantIDs:    []string{"a", "b", "c"},
			wantDepths: []int{0, 1, 2},
		},
		{
			name: "siblings ordered newest first",
			chats: []*store.Chat{
				newChat("old", "", 1),
				newChat("new", "", 3),
				newChat("mid", "", 2),
			},
			wantIDs:    []string{"new", "mid", "old"},
			wantDepths: []int{0, 0, 0},
		},
		{
			name: "branch emitted before next root sibling",
			chats: []*store.Chat{
				newChat("root-old", "", 1),
				newChat("root-new", "", 2),
				newChat("branch", "root-new", 3),
			},
			wantIDs:    []string{"root-new", "branch", "root-old"},
			wantDepths: []int{0, 1, 0},
		},
		{
			name: "orphan is invisible",
			chats: []*store.Chat{
				newChat("a", "", 1),
				newChat("orphan", "deleted-parent", 2),
			},
			wantIDs:    []string{"a"},
			wantDepths: []int{0},
		},
		{
			name: "branch of orphan is invisible too",
			chats: []*store.Chat{
				newChat("a", "", 1),
				newChat("orphan", "deleted-parent", 2),
				newChat("orphan-child", "orphan", 3),
			},
			wantIDs:    []string{"a"},
			wantDepths: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := BuildForest(tt.chats)
			require.Len(t, entries, len(tt.wantIDs))
			assert.Equal(t, tt.wantIDs, append([]string{}, ids(entries)...))
			for i, entry := range entries {
				assert.Equal(t, tt.wantDepths[i], entry.Depth, "depth of %s", entry.Chat.ID)
			}
		})
	}
}

func TestBuildForestEveryNonOrphanAppearsOnce(t *testing.T) {
	chats := []*store.Chat{
		newChat("a", "", 10),
		newChat("b", "a", 20),
		newChat("c", "a", 30),
		newChat("d", "c", 40),
		newChat("e", "", 50),
	}
	entries := BuildForest(chats)
	require.Len(t, entries, len(chats))

	seen := map[string]int{}
	for _, entry := range entries {
		seen[entry.Chat.ID]++
	}
	for _, chat := range chats {
		assert.Equal(t, 1, seen[chat.ID], "chat %s", chat.ID)
	}
}

func TestBuildForestDeterministic(t *testing.T) {
	chats := []*store.Chat{
		newChat("a", "", 5),
		newChat("b", "", 5), // same timestamp, tie broken by id
		newChat("c", "a", 7),
		newChat("d", "a", 6),
	}
	first := BuildForest(chats)
	for i := 0; i < 10; i++ {
		assert.Equal(t, ids(first), ids(BuildForest(chats)))
	}
	assert.Equal(t, []string{"a", "c", "d", "b"}, ids(first))
}

func TestBuildForestSurvivesCycle(t *testing.T) {
	// Corrupted data: a and b reference each other. The builder must not
	// loop; both are unreachable from any root so neither is emitted.
	chats := []*store.Chat{
		newChat("root", "", 1),
		newChat("a", "b", 2),
		newChat("b", "a", 3),
	}
	entries := BuildForest(chats)
	assert.Equal(t, []string{"root"}, ids(entries))
}

func TestBuildForestSelfReference(t *testing.T) {
	chats := []*store.Chat{
		newChat("self", "self", 1),
	}
	entries := BuildForest(chats)
	assert.Empty(t, entries)
}
