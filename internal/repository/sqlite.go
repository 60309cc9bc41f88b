package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/convoapp/convo/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys so conversation deletes cascade to messages.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			conversation_id TEXT PRIMARY KEY,
			title TEXT,
			description TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			text TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (conversation_id) REFERENCES conversations(conversation_id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// CreateConversation persists a new conversation.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conversation *domain.Conversation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (conversation_id, title, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		conversation.ConversationID, conversation.Title, conversation.Description,
		conversation.CreatedAt, conversation.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// GetConversation fetches a conversation by id.
func (s *SQLiteStore) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	var c domain.Conversation
	err := s.db.QueryRowContext(ctx,
		`SELECT conversation_id, title, description, created_at, updated_at
		 FROM conversations WHERE conversation_id = ?`,
		conversationID).Scan(&c.ConversationID, &c.Title, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &c, nil
}

// DeleteConversation removes a conversation. The ON DELETE CASCADE foreign
// key removes its messages within the same statement, so no observer sees a
// conversation gone while its messages remain.
func (s *SQLiteStore) DeleteConversation(ctx context.Context, conversationID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM conversations WHERE conversation_id = ?`, conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("conversation %s: %w", conversationID, domain.ErrNotFound)
	}
	return nil
}

// CreateMessage persists a new message. The foreign key rejects messages
// referencing a conversation that no longer exists.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (message_id, conversation_id, role, text, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		message.MessageID, message.ConversationID, string(message.Role), message.Text,
		message.CreatedAt, message.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetMessage fetches a message scoped to both the conversation and message id.
func (s *SQLiteStore) GetMessage(ctx context.Context, conversationID, messageID string) (*domain.Message, error) {
	var m domain.Message
	err := s.db.QueryRowContext(ctx,
		`SELECT message_id, conversation_id, role, text, created_at, updated_at
		 FROM messages WHERE conversation_id = ? AND message_id = ?`,
		conversationID, messageID).Scan(&m.MessageID, &m.ConversationID, &m.Role, &m.Text, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("message %s in conversation %s: %w", messageID, conversationID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &m, nil
}

// DeleteMessage removes a message scoped to both ids.
func (s *SQLiteStore) DeleteMessage(ctx context.Context, conversationID, messageID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM messages WHERE conversation_id = ? AND message_id = ?`,
		conversationID, messageID)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("message %s in conversation %s: %w", messageID, conversationID, domain.ErrNotFound)
	}
	return nil
}

// ListMessages returns one page of a conversation's messages, oldest first,
// ties broken by insertion order. Filters are applied before pagination.
func (s *SQLiteStore) ListMessages(ctx context.Context, conversationID string, filter MessageFilter, limit, offset int) ([]domain.Message, error) {
	query, args := messageQuery(
		`SELECT message_id, conversation_id, role, text, created_at, updated_at FROM messages`,
		conversationID, filter)
	query += ` ORDER BY created_at ASC, rowid ASC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.MessageID, &m.ConversationID, &m.Role, &m.Text, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// CountMessages returns the total post-filter size of a conversation's messages.
func (s *SQLiteStore) CountMessages(ctx context.Context, conversationID string, filter MessageFilter) (int, error) {
	query, args := messageQuery(`SELECT COUNT(*) FROM messages`, conversationID, filter)
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// messageQuery builds the shared WHERE clause for message listing and counting.
func messageQuery(base, conversationID string, filter MessageFilter) (string, []interface{}) {
	query := base + ` WHERE conversation_id = ?`
	args := []interface{}{conversationID}
	if filter.Query != "" {
		query += ` AND instr(lower(text), lower(?)) > 0`
		args = append(args, filter.Query)
	}
	if filter.Role != "" {
		query += ` AND role = ?`
		args = append(args, filter.Role)
	}
	return query, args
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
