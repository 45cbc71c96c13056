package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcouncil/core"
)

// Interface compliance (compile-time assertion)
var _ core.Store = (*InMemoryStore)(nil)

func TestInMemoryStore_ConversationLifecycle(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, "greetings", core.ModeSolo, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, "greetings", conv.Title)
	assert.Equal(t, core.ModeSolo, conv.Mode)

	msg, err := s.SaveMessage(ctx, conv.ID, core.SenderUser, "hello")
	require.NoError(t, err)
	assert.Equal(t, conv.ID, msg.ConversationID)

	history, err := s.GetHistory(ctx, conv.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hello", history[0].Content)
}

func TestInMemoryStore_SaveMessageUnknownConversation(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.SaveMessage(context.Background(), "missing", core.SenderUser, "hello")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestInMemoryStore_HistoryLimitKeepsNewest(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, "long", core.ModeSolo, nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := s.SaveMessage(ctx, conv.ID, core.SenderUser, fmt.Sprintf("msg-%d", i))
		require.NoError(t, err)
	}

	history, err := s.GetHistory(ctx, conv.ID, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "msg-3", history[0].Content)
	assert.Equal(t, "msg-4", history[1].Content)
}

func TestInMemoryStore_UpsertPreferenceIdempotent(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.UpsertPreference(ctx, "personal", "name", "Anna"))
	require.NoError(t, s.UpsertPreference(ctx, "personal", "name", "Basia"))

	prefs, err := s.GetPreferences(ctx)
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.Equal(t, "Basia", prefs[0].Value)
}

func TestInMemoryStore_DeletePreference(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.UpsertPreference(ctx, "general", "likes", "tabs"))
	require.NoError(t, s.DeletePreference(ctx, "likes"))
	assert.ErrorIs(t, s.DeletePreference(ctx, "likes"), core.ErrNotFound)
}

func TestInMemoryStore_SaveRecords(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	dec, err := s.SaveDecision(ctx, core.DecisionInput{Title: "use pgx"})
	require.NoError(t, err)
	assert.Equal(t, core.RecordDecision, dec.Kind)
	assert.Equal(t, "use pgx", dec.Title)

	bug, err := s.SaveBug(ctx, core.BugInput{Description: "panic on empty body"})
	require.NoError(t, err)
	assert.Equal(t, core.RecordBug, bug.Kind)

	assert.Len(t, s.Records(), 2)
}
