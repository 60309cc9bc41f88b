package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convoapp/convo/config"
	"github.com/convoapp/convo/internal/domain"
	store "github.com/convoapp/convo/internal/repository"
	"github.com/convoapp/convo/tests/helpers"
)

func newTestService(t *testing.T) (*Service, *store.SQLiteStore) {
	t.Helper()
	db := helpers.NewTestSQLiteStore(t)
	return New(db, &config.Config{}, nil), db
}

func TestCreateConversation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	conversation, err := svc.CreateConversation(ctx, domain.ConversationCreateRequest{
		Title:       "My First Conversation",
		Description: "A conversation about assistants",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, conversation.ConversationID)
	assert.Equal(t, "My First Conversation", conversation.Title)
	assert.False(t, conversation.CreatedAt.IsZero())
	assert.Equal(t, conversation.CreatedAt, conversation.UpdatedAt)

	got, err := svc.GetConversation(ctx, conversation.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, conversation.ConversationID, got.ConversationID)
}

func TestCreateConversationWithoutTitle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	conversation, err := svc.CreateConversation(ctx, domain.ConversationCreateRequest{
		Description: "No title here",
	})
	require.NoError(t, err)
	assert.Empty(t, conversation.Title)
}

func TestCreateConversationGeneratesUniqueIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		conversation, err := svc.CreateConversation(ctx, domain.ConversationCreateRequest{Description: "dup check"})
		require.NoError(t, err)
		assert.False(t, seen[conversation.ConversationID], "duplicate id %s", conversation.ConversationID)
		seen[conversation.ConversationID] = true
	}
}

func TestCreateConversationValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	tests := []struct {
		name  string
		req   domain.ConversationCreateRequest
		field string
	}{
		{"missing description", domain.ConversationCreateRequest{Title: "t"}, "description"},
		{"description too long", domain.ConversationCreateRequest{Description: strings.Repeat("x", 501)}, "description"},
		{"title too long", domain.ConversationCreateRequest{Title: strings.Repeat("x", 201), Description: "ok"}, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateConversation(ctx, tt.req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestCreateConversationBoundaryLengths(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CreateConversation(ctx, domain.ConversationCreateRequest{
		Title:       strings.Repeat("t", 200),
		Description: strings.Repeat("d", 500),
	})
	assert.NoError(t, err)
}

func TestGetConversationNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.GetConversation(ctx, "ffffffff-ffff-ffff-ffff-ffffffffffff")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteConversationCascades(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)

	conversation, err := svc.CreateConversation(ctx, domain.ConversationCreateRequest{Description: "to delete"})
	require.NoError(t, err)

	// One user message plus its auto-reply.
	_, err = svc.CreateMessage(ctx, conversation.ConversationID, domain.MessageCreateRequest{Text: "hello"})
	require.NoError(t, err)

	count, err := db.CountMessages(ctx, conversation.ConversationID, store.MessageFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.NoError(t, svc.DeleteConversation(ctx, conversation.ConversationID))

	_, err = svc.GetConversation(ctx, conversation.ConversationID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	count, err = db.CountMessages(ctx, conversation.ConversationID, store.MessageFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDeleteConversationNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	err := svc.DeleteConversation(ctx, "ffffffff-ffff-ffff-ffff-ffffffffffff")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
