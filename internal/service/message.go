package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/convoapp/convo/internal/domain"
	store "github.com/convoapp/convo/internal/repository"
)

// MessageListOptions narrows and pages a message listing.
type MessageListOptions struct {
	Query string
	Role  string
	Page  PageParams
}

// CreateMessage validates and persists a new message in a conversation.
// User messages trigger a synchronous assistant auto-reply.
func (s *Service) CreateMessage(ctx context.Context, conversationID string, req domain.MessageCreateRequest) (*domain.Message, error) {
	if _, err := s.store.GetConversation(ctx, conversationID); err != nil {
		return nil, err
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleUser
	}

	verr := &domain.ValidationError{}
	if req.Text == "" {
		verr.Add("text", "This field is required.")
	}
	if !role.Valid() {
		verr.Add("role", fmt.Sprintf("\"%s\" is not a valid choice.", req.Role))
	}
	if !verr.Empty() {
		return nil, verr
	}

	now := time.Now().UTC()
	message := &domain.Message{
		MessageID:      uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Text:           req.Text,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if message.Role == domain.RoleUser {
		s.autoReply(ctx, message)
	}

	return message, nil
}

// autoReply persists an assistant reply to a user message. Best effort: the
// user message is already durable, so a failure here is recorded and
// swallowed rather than surfaced to the caller. No retry.
func (s *Service) autoReply(ctx context.Context, userMessage *domain.Message) {
	now := time.Now().UTC()
	reply := &domain.Message{
		MessageID:      uuid.NewString(),
		ConversationID: userMessage.ConversationID,
		Role:           domain.RoleAssistant,
		Text:           AssistantReply(userMessage.Text),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateMessage(ctx, reply); err != nil {
		s.logs.Error("failed to generate assistant response",
			zap.String("conversation_id", userMessage.ConversationID),
			zap.String("message_id", userMessage.MessageID),
			zap.Error(err))
	}
}

// ListMessages returns a filtered, paginated page of a conversation's
// messages. An empty conversation and a nonexistent conversation id both
// yield an empty page with count 0, never an error.
func (s *Service) ListMessages(ctx context.Context, conversationID string, opts MessageListOptions) (*domain.MessagePage, error) {
	filter := store.MessageFilter{Query: opts.Query, Role: opts.Role}

	count, err := s.store.CountMessages(ctx, conversationID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	results, err := s.store.ListMessages(ctx, conversationID, filter, opts.Page.Size, opts.Page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return &domain.MessagePage{
		Count:   count,
		Results: results,
	}, nil
}

// GetMessage fetches a message scoped to both the conversation and message id.
func (s *Service) GetMessage(ctx context.Context, conversationID, messageID string) (*domain.Message, error) {
	return s.store.GetMessage(ctx, conversationID, messageID)
}

// DeleteMessage removes a message scoped to both ids.
func (s *Service) DeleteMessage(ctx context.Context, conversationID, messageID string) error {
	return s.store.DeleteMessage(ctx, conversationID, messageID)
}
