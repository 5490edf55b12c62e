package secondbrain

import (
	"context"
	"time"
)

// Conversation is a persisted chat transcript.
type Conversation struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdAt"`
	MessageCount int       `json:"messageCount"`
}

// Message is one persisted turn of a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Role           ChatRole  `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ConversationService persists chat transcripts. The core keeps only an
// in-memory rolling window; durable history is the front end's concern.
type ConversationService interface {
	// CreateConversation creates a new conversation with the given title.
	CreateConversation(ctx context.Context, title string) (*Conversation, error)

	// FindConversations lists conversations, newest first.
	FindConversations(ctx context.Context) ([]*Conversation, error)

	// DeleteConversation removes a conversation and its messages.
	// Returns ENOTFOUND if the conversation does not exist.
	DeleteConversation(ctx context.Context, id string) error

	// AddMessage appends a message to a conversation.
	AddMessage(ctx context.Context, conversationID string, role ChatRole, content string) error

	// FindMessages lists a conversation's messages, oldest first.
	FindMessages(ctx context.Context, conversationID string) ([]*Message, error)
}
