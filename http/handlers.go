package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jradek/secondbrain"
)

const titleLimit = 60

type chatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

type chatResponse struct {
	ConversationID      string `json:"conversationId"`
	Reply               string `json:"reply"`
	PendingConfirmation bool   `json:"pendingConfirmation"`
}

// handleChat runs one turn of a conversation. A missing conversation ID
// starts a new conversation titled after the first message; both sides of
// the exchange are persisted.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, secondbrain.Errorf(secondbrain.EINVALID, "invalid JSON body"))
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		jsonError(w, secondbrain.Errorf(secondbrain.EINVALID, "message required"))
		return
	}

	ctx := r.Context()
	if req.ConversationID == "" {
		conversation, err := s.conversations.CreateConversation(ctx, conversationTitle(req.Message))
		if err != nil {
			jsonError(w, err)
			return
		}
		req.ConversationID = conversation.ID
	}

	turn, err := s.brain.Respond(ctx, req.ConversationID, req.Message)
	if err != nil {
		jsonError(w, err)
		return
	}

	if err := s.conversations.AddMessage(ctx, req.ConversationID, secondbrain.RoleUser, req.Message); err != nil {
		jsonError(w, err)
		return
	}
	if err := s.conversations.AddMessage(ctx, req.ConversationID, secondbrain.RoleAssistant, turn.Text); err != nil {
		jsonError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		ConversationID:      req.ConversationID,
		Reply:               turn.Text,
		PendingConfirmation: turn.PendingConfirmation,
	})
}

func conversationTitle(message string) string {
	if len(message) <= titleLimit {
		return message
	}
	return message[:titleLimit] + "..."
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	stats, err := s.brain.Reindex(r.Context())
	if err != nil {
		jsonError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.brain.Stats())
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := s.conversations.FindConversations(r.Context())
	if err != nil {
		jsonError(w, err)
		return
	}
	if conversations == nil {
		conversations = []*secondbrain.Conversation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversations": conversations})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	messages, err := s.conversations.FindMessages(r.Context(), conversationID)
	if err != nil {
		jsonError(w, err)
		return
	}
	if messages == nil {
		messages = []*secondbrain.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if err := s.conversations.DeleteConversation(r.Context(), conversationID); err != nil {
		jsonError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
