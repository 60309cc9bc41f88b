package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/convoapp/convo/internal/domain"
	store "github.com/convoapp/convo/internal/repository"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 500
)

// cascadeWarnThreshold is the message count above which a conversation
// delete is logged as unusually large.
const cascadeWarnThreshold = 100

// CreateConversation validates and persists a new conversation.
func (s *Service) CreateConversation(ctx context.Context, req domain.ConversationCreateRequest) (*domain.Conversation, error) {
	verr := &domain.ValidationError{}
	if req.Description == "" {
		verr.Add("description", "This field is required.")
	} else if utf8.RuneCountInString(req.Description) > maxDescriptionLength {
		verr.Add("description", fmt.Sprintf("Ensure this field has no more than %d characters.", maxDescriptionLength))
	}
	if utf8.RuneCountInString(req.Title) > maxTitleLength {
		verr.Add("title", fmt.Sprintf("Ensure this field has no more than %d characters.", maxTitleLength))
	}
	if !verr.Empty() {
		return nil, verr
	}

	now := time.Now().UTC()
	conversation := &domain.Conversation{
		ConversationID: uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conversation, nil
}

// GetConversation fetches a conversation by id.
func (s *Service) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	return s.store.GetConversation(ctx, conversationID)
}

// DeleteConversation removes a conversation and cascades to its messages.
func (s *Service) DeleteConversation(ctx context.Context, conversationID string) error {
	if _, err := s.store.GetConversation(ctx, conversationID); err != nil {
		return err
	}

	if count, err := s.store.CountMessages(ctx, conversationID, store.MessageFilter{}); err == nil {
		if count > cascadeWarnThreshold {
			s.logs.Warn("deleting conversation with a large message backlog",
				zap.String("conversation_id", conversationID),
				zap.Int("messages", count))
		}
	}

	if err := s.store.DeleteConversation(ctx, conversationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}
