package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jradek/secondbrain"
)

// Compile-time interface verification.
var _ secondbrain.ConversationService = (*ConversationService)(nil)

// ConversationService implements secondbrain.ConversationService using
// SQLite.
type ConversationService struct {
	db *DB
}

// NewConversationService creates a new ConversationService.
func NewConversationService(db *DB) *ConversationService {
	return &ConversationService{db: db}
}

// CreateConversation creates a new conversation.
func (s *ConversationService) CreateConversation(ctx context.Context, title string) (*secondbrain.Conversation, error) {
	conversation := &secondbrain.Conversation{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, title, created_at)
		VALUES (?, ?, ?)
	`, conversation.ID, conversation.Title, conversation.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	return conversation, nil
}

// maxConversations caps how many conversations a listing returns.
const maxConversations = 50

// FindConversations retrieves the most recent conversations, newest first,
// capped at maxConversations.
func (s *ConversationService) FindConversations(ctx context.Context) ([]*secondbrain.Conversation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.title, c.created_at, COUNT(m.id)
		FROM conversations c
		LEFT JOIN messages m ON m.conversation_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC
		LIMIT ?
	`, maxConversations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []*secondbrain.Conversation
	for rows.Next() {
		var conversation secondbrain.Conversation
		var createdAt string
		if err := rows.Scan(&conversation.ID, &conversation.Title, &createdAt, &conversation.MessageCount); err != nil {
			return nil, err
		}
		conversation.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, &conversation)
	}
	return conversations, rows.Err()
}

// DeleteConversation removes a conversation and its messages.
func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return secondbrain.Errorf(secondbrain.ENOTFOUND, "conversation not found")
	}
	return nil
}

// AddMessage appends a message to a conversation.
func (s *ConversationService) AddMessage(ctx context.Context, conversationID string, role secondbrain.ChatRole, content string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM conversations WHERE id = ?`, conversationID).Scan(&exists)
	if err == sql.ErrNoRows {
		return secondbrain.Errorf(secondbrain.ENOTFOUND, "conversation not found")
	}
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), conversationID, string(role), content,
		time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// FindMessages retrieves a conversation's messages, oldest first.
func (s *ConversationService) FindMessages(ctx context.Context, conversationID string) ([]*secondbrain.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, id ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*secondbrain.Message
	for rows.Next() {
		var message secondbrain.Message
		var role, createdAt string
		if err := rows.Scan(&message.ID, &message.ConversationID, &role, &message.Content, &createdAt); err != nil {
			return nil, err
		}
		message.Role = secondbrain.ChatRole(role)
		message.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		messages = append(messages, &message)
	}
	return messages, rows.Err()
}
