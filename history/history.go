// Package history reconstructs the ancestry forest of a user's chats from
// their parent references and flattens it into the depth-ordered sequence the
// sidebar renders.
package history

import (
	"sort"

	"github.com/arbor-ai/arbor/store"
)

// Entry is one chat in render order, annotated with its depth in the forest.
// Depth is the number of ancestor hops to the nearest root.
type Entry struct {
	Chat  *store.Chat
	Depth int
}

// BuildForest groups chats into buckets keyed by parent id (roots under the
// empty key), sorts each bucket newest-first, and emits the forest depth-first:
// each root, then its descendants, before the next sibling. Chats whose parent
// no longer exists are unreachable from any root and do not appear. Identical
// input always yields identical output order.
func BuildForest(chats []*store.Chat) []Entry {
	buckets := make(map[string][]*store.Chat)
	for _, chat := range chats {
		parentID := ""
		if chat.ParentID != nil {
			parentID = *chat.ParentID
		}
		buckets[parentID] = append(buckets[parentID], chat)
	}

	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].CreationTimestamp != bucket[j].CreationTimestamp {
				return bucket[i].CreationTimestamp > bucket[j].CreationTimestamp
			}
			return bucket[i].ID < bucket[j].ID
		})
	}

	var entries []Entry
	// The parent-reference graph is a forest by construction; the visited set
	// guards against corrupted data introducing a cycle.
	visited := make(map[string]bool)
	var emit func(parentID string, depth int)
	emit = func(parentID string, depth int) {
		for _, chat := range buckets[parentID] {
			if visited[chat.ID] {
				continue
			}
			visited[chat.ID] = true
			entries = append(entries, Entry{Chat: chat, Depth: depth})
			emit(chat.ID, depth+1)
		}
	}
	emit("", 0)
	return entries
}
