// Package gemini implements chat, classification and embedding services
// using Google Gemini.
package gemini

import (
	"context"

	"github.com/jradek/secondbrain"
	"google.golang.org/genai"
)

// DefaultChatModel is used when ChatService.Model is empty.
const DefaultChatModel = "gemini-2.5-flash"

// Ensure ChatService implements secondbrain.ChatService at compile time.
var _ secondbrain.ChatService = (*ChatService)(nil)

// ChatService implements secondbrain.ChatService using Google Gemini.
type ChatService struct {
	client *genai.Client

	// Model overrides DefaultChatModel when set.
	Model string
}

// NewChatService creates a new ChatService.
func NewChatService(client *genai.Client) *ChatService {
	return &ChatService{client: client}
}

// Converse sends the history plus the new user turn to Gemini and returns
// the assistant's reply.
func (s *ChatService) Converse(ctx context.Context, systemPrompt string, history []secondbrain.ChatMessage, userTurn string) (string, error) {
	if userTurn == "" {
		return "", secondbrain.Errorf(secondbrain.EINVALID, "user turn required")
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, &genai.Content{
			Role:  geminiRole(m.Role),
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: userTurn}},
	})

	temp := float32(0.4)
	config := &genai.GenerateContentConfig{Temperature: &temp}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model(), contents, config)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", secondbrain.Errorf(secondbrain.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

func (s *ChatService) model() string {
	if s.Model != "" {
		return s.Model
	}
	return DefaultChatModel
}

func geminiRole(r secondbrain.ChatRole) string {
	if r == secondbrain.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}
