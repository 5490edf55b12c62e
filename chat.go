package secondbrain

import "context"

// ChatRole identifies the author of a chat message.
type ChatRole string

// Chat roles.
const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatService generates a conversational reply to a user turn.
type ChatService interface {
	Converse(ctx context.Context, systemPrompt string, history []ChatMessage, userTurn string) (string, error)
}

// MaxHistoryMessages bounds the rolling conversation window forwarded to the
// chat backend.
const MaxHistoryMessages = 20

// History is a bounded rolling window of chat messages. Truncation is a
// simple FIFO applied once per turn, after both the user and assistant
// entries have been appended.
type History struct {
	messages []ChatMessage
}

// Append records one question/answer exchange and evicts the oldest entries
// beyond the window.
func (h *History) Append(question, answer string) {
	h.messages = append(h.messages,
		ChatMessage{Role: RoleUser, Content: question},
		ChatMessage{Role: RoleAssistant, Content: answer},
	)
	if n := len(h.messages); n > MaxHistoryMessages {
		h.messages = h.messages[n-MaxHistoryMessages:]
	}
}

// Messages returns the current window, oldest first. Callers must not
// modify the returned slice.
func (h *History) Messages() []ChatMessage { return h.messages }
