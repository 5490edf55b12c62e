package mock

import (
	"context"

	"github.com/jradek/secondbrain"
)

var _ secondbrain.ChatService = (*ChatService)(nil)

// ChatService is a mock implementation of secondbrain.ChatService.
type ChatService struct {
	ConverseFn func(ctx context.Context, systemPrompt string, history []secondbrain.ChatMessage, userTurn string) (string, error)
}

func (s *ChatService) Converse(ctx context.Context, systemPrompt string, history []secondbrain.ChatMessage, userTurn string) (string, error) {
	return s.ConverseFn(ctx, systemPrompt, history, userTurn)
}
