package mock

import (
	"context"

	"github.com/jradek/secondbrain"
)

var _ secondbrain.ConversationService = (*ConversationService)(nil)

// ConversationService is a mock implementation of
// secondbrain.ConversationService.
type ConversationService struct {
	CreateConversationFn func(ctx context.Context, title string) (*secondbrain.Conversation, error)
	FindConversationsFn  func(ctx context.Context) ([]*secondbrain.Conversation, error)
	DeleteConversationFn func(ctx context.Context, id string) error
	AddMessageFn         func(ctx context.Context, conversationID string, role secondbrain.ChatRole, content string) error
	FindMessagesFn       func(ctx context.Context, conversationID string) ([]*secondbrain.Message, error)
}

func (s *ConversationService) CreateConversation(ctx context.Context, title string) (*secondbrain.Conversation, error) {
	return s.CreateConversationFn(ctx, title)
}

func (s *ConversationService) FindConversations(ctx context.Context) ([]*secondbrain.Conversation, error) {
	return s.FindConversationsFn(ctx)
}

func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	return s.DeleteConversationFn(ctx, id)
}

func (s *ConversationService) AddMessage(ctx context.Context, conversationID string, role secondbrain.ChatRole, content string) error {
	return s.AddMessageFn(ctx, conversationID, role, content)
}

func (s *ConversationService) FindMessages(ctx context.Context, conversationID string) ([]*secondbrain.Message, error) {
	return s.FindMessagesFn(ctx, conversationID)
}
