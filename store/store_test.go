package store

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "arbor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func TestCreateAndGetChat(t *testing.T) {
	s := newTestStore(t)

	chat := &Chat{
		ID:                "chat-1",
		UserID:            "user-1",
		Title:             strPtr("First chat"),
		Visibility:        VisibilityPrivate,
		CreationTimestamp: 1000,
	}
	_, err := s.CreateChat(&CreateChatRequest{Chat: chat})
	require.NoError(t, err)

	got, err := s.GetChat("chat-1")
	require.NoError(t, err)
	assert.Equal(t, chat, got)
	assert.Nil(t, got.ParentID)
}

func TestGetChatNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetChat("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateChatWithMessages(t *testing.T) {
	s := newTestStore(t)

	chat := &Chat{
		ID:                "chat-1",
		UserID:            "user-1",
		Visibility:        VisibilityPrivate,
		ParentID:          strPtr("parent-1"),
		CreationTimestamp: 1000,
	}
	messages := []*Message{
		{ID: "m1", ChatID: "chat-1", Role: RoleUser, Content: "hello", CreationTimestamp: 1000},
		{ID: "m2", ChatID: "chat-1", Role: RoleAssistant, Content: "hi there", CreationTimestamp: 1001},
	}
	_, err := s.CreateChat(&CreateChatRequest{Chat: chat, Messages: messages})
	require.NoError(t, err)

	got, err := s.ListMessages("chat-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)

	stored, err := s.GetChat("chat-1")
	require.NoError(t, err)
	require.NotNil(t, stored.ParentID)
	assert.Equal(t, "parent-1", *stored.ParentID)
}

func TestCreateChatDuplicateIDRollsBack(t *testing.T) {
	s := newTestStore(t)

	chat := &Chat{ID: "chat-1", UserID: "user-1", Visibility: VisibilityPrivate, CreationTimestamp: 1000}
	_, err := s.CreateChat(&CreateChatRequest{Chat: chat})
	require.NoError(t, err)

	_, err = s.CreateChat(&CreateChatRequest{
		Chat: &Chat{ID: "chat-1", UserID: "user-1", Visibility: VisibilityPrivate, CreationTimestamp: 2000},
		Messages: []*Message{
			{ID: "m1", ChatID: "chat-1", Role: RoleUser, Content: "hello", CreationTimestamp: 2000},
		},
	})
	require.Error(t, err)

	// The failed insert must not leave messages behind.
	messages, err := s.ListMessages("chat-1")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestListChatsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	for i, id := range []string{"a", "b", "c"} {
		_, err := s.CreateChat(&CreateChatRequest{Chat: &Chat{
			ID:                id,
			UserID:            "user-1",
			Visibility:        VisibilityPrivate,
			CreationTimestamp: int64(1000 + i),
		}})
		require.NoError(t, err)
	}
	_, err := s.CreateChat(&CreateChatRequest{Chat: &Chat{
		ID:                "other",
		UserID:            "user-2",
		Visibility:        VisibilityPrivate,
		CreationTimestamp: 5000,
	}})
	require.NoError(t, err)

	response, err := s.ListChats(&ListChatsRequest{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, response.Chats, 3)
	assert.Equal(t, "c", response.Chats[0].ID)
	assert.Equal(t, "b", response.Chats[1].ID)
	assert.Equal(t, "a", response.Chats[2].ID)
}

func TestListChatsFilterAndPageSize(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateChat(&CreateChatRequest{Chat: &Chat{
		ID: "untitled", UserID: "user-1", Visibility: VisibilityPrivate, CreationTimestamp: 1000,
	}})
	require.NoError(t, err)
	_, err = s.CreateChat(&CreateChatRequest{Chat: &Chat{
		ID: "titled", UserID: "user-1", Title: strPtr("Named"), Visibility: VisibilityPrivate, CreationTimestamp: 2000,
	}})
	require.NoError(t, err)

	response, err := s.ListChats(&ListChatsRequest{UserID: "user-1", Filter: "title IS NULL"})
	require.NoError(t, err)
	require.Len(t, response.Chats, 1)
	assert.Equal(t, "untitled", response.Chats[0].ID)

	response, err = s.ListChats(&ListChatsRequest{UserID: "user-1", PageSize: 1})
	require.NoError(t, err)
	require.Len(t, response.Chats, 1)
	assert.Equal(t, "titled", response.Chats[0].ID)
}

func TestUpdateChatMask(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateChat(&CreateChatRequest{Chat: &Chat{
		ID:                "chat-1",
		UserID:            "user-1",
		Title:             strPtr("Old title"),
		Visibility:        VisibilityPrivate,
		CreationTimestamp: 1000,
	}})
	require.NoError(t, err)

	err = s.UpdateChat(&UpdateChatRequest{
		Chat: &Chat{
			ID:         "chat-1",
			UserID:     "someone-else",
			Title:      strPtr("New title"),
			Visibility: VisibilityPublic,
		},
		UpdateMask: []string{"title"},
	})
	require.NoError(t, err)

	got, err := s.GetChat("chat-1")
	require.NoError(t, err)
	require.NotNil(t, got.Title)
	assert.Equal(t, "New title", *got.Title)
	// Fields outside the mask are untouched.
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, VisibilityPrivate, got.Visibility)
}

func TestUpdateChatNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateChat(&UpdateChatRequest{
		Chat:       &Chat{ID: "missing", Title: strPtr("x")},
		UpdateMask: []string{"title"},
	})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteChatLeavesChildren(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateChat(&CreateChatRequest{
		Chat: &Chat{ID: "parent", UserID: "user-1", Visibility: VisibilityPrivate, CreationTimestamp: 1000},
		Messages: []*Message{
			{ID: "m1", ChatID: "parent", Role: RoleUser, Content: "hello", CreationTimestamp: 1000},
		},
	})
	require.NoError(t, err)
	require.NoError(t, s.SetVote(&SetVoteRequest{ChatID: "parent", MessageID: "m1", IsUpvoted: true}))

	_, err = s.CreateChat(&CreateChatRequest{Chat: &Chat{
		ID: "child", UserID: "user-1", Visibility: VisibilityPrivate, ParentID: strPtr("parent"), CreationTimestamp: 2000,
	}})
	require.NoError(t, err)

	require.NoError(t, s.DeleteChat("parent"))

	_, err = s.GetChat("parent")
	assert.True(t, errors.Is(err, ErrNotFound))
	messages, err := s.ListMessages("parent")
	require.NoError(t, err)
	assert.Empty(t, messages)
	votes, err := s.ListVotes("parent")
	require.NoError(t, err)
	assert.Empty(t, votes)

	// The child survives and keeps its now-dangling parent reference.
	child, err := s.GetChat("child")
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, "parent", *child.ParentID)
}

func TestDeleteChatNotFound(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, errors.Is(s.DeleteChat("missing"), ErrNotFound))
}

func TestSetVoteReplacesPriorVote(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateChat(&CreateChatRequest{
		Chat: &Chat{ID: "chat-1", UserID: "user-1", Visibility: VisibilityPrivate, CreationTimestamp: 1000},
		Messages: []*Message{
			{ID: "m1", ChatID: "chat-1", Role: RoleAssistant, Content: "answer", CreationTimestamp: 1000},
		},
	})
	require.NoError(t, err)

	require.NoError(t, s.SetVote(&SetVoteRequest{ChatID: "chat-1", MessageID: "m1", IsUpvoted: true}))
	require.NoError(t, s.SetVote(&SetVoteRequest{ChatID: "chat-1", MessageID: "m1", IsUpvoted: false}))

	votes, err := s.ListVotes("chat-1")
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, "m1", votes[0].MessageID)
	assert.False(t, votes[0].IsUpvoted)
}

func TestSetVoteRejectsForeignMessage(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateChat(&CreateChatRequest{
		Chat: &Chat{ID: "chat-1", UserID: "user-1", Visibility: VisibilityPrivate, CreationTimestamp: 1000},
		Messages: []*Message{
			{ID: "m1", ChatID: "chat-1", Role: RoleAssistant, Content: "answer", CreationTimestamp: 1000},
		},
	})
	require.NoError(t, err)
	_, err = s.CreateChat(&CreateChatRequest{Chat: &Chat{
		ID: "chat-2", UserID: "user-1", Visibility: VisibilityPrivate, CreationTimestamp: 2000,
	}})
	require.NoError(t, err)

	// m1 belongs to chat-1, not chat-2.
	err = s.SetVote(&SetVoteRequest{ChatID: "chat-2", MessageID: "m1", IsUpvoted: true})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateMessagesAppends(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateChat(&CreateChatRequest{Chat: &Chat{
		ID: "chat-1", UserID: "user-1", Visibility: VisibilityPrivate, CreationTimestamp: 1000,
	}})
	require.NoError(t, err)

	err = s.CreateMessages(&CreateMessagesRequest{Messages: []*Message{
		{ID: "m1", ChatID: "chat-1", Role: RoleUser, Content: "first", CreationTimestamp: 1000},
		{ID: "m2", ChatID: "chat-1", Role: RoleAssistant, Content: "second", CreationTimestamp: 1001},
	}})
	require.NoError(t, err)

	messages, err := s.ListMessages("chat-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, RoleAssistant, messages[1].Role)
}
