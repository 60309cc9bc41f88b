// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/convoapp/convo/internal/domain"
)

// MessageFilter narrows a message listing. Query is a case-insensitive
// substring match on text, Role an exact match. Both combine with AND.
type MessageFilter struct {
	Query string
	Role  string
}

// Store defines the interface for data persistence. Lookups that resolve to
// nothing return an error wrapping domain.ErrNotFound.
type Store interface {
	// Conversation operations
	CreateConversation(ctx context.Context, conversation *domain.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID string) error

	// Message operations
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessage(ctx context.Context, conversationID, messageID string) (*domain.Message, error)
	DeleteMessage(ctx context.Context, conversationID, messageID string) error
	ListMessages(ctx context.Context, conversationID string, filter MessageFilter, limit, offset int) ([]domain.Message, error)
	CountMessages(ctx context.Context, conversationID string, filter MessageFilter) (int, error)

	// Lifecycle
	Close() error
}
