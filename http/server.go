// Package http exposes the knowledge base over a JSON API.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jradek/secondbrain"
	"github.com/jradek/secondbrain/brain"
)

// Server is the HTTP API server.
type Server struct {
	router        chi.Router
	brain         *brain.Brain
	conversations secondbrain.ConversationService
	log           *slog.Logger

	server *http.Server
}

// NewServer creates and configures the HTTP server.
func NewServer(b *brain.Brain, conversations secondbrain.ConversationService, log *slog.Logger) *Server {
	s := &Server{
		brain:         b,
		conversations: conversations,
		log:           log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves the API on addr until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Post("/api/chat", s.handleChat)
	r.Post("/api/reindex", s.handleReindex)
	r.Get("/api/stats", s.handleStats)

	r.Get("/api/conversations", s.handleListConversations)
	r.Get("/api/conversations/{conversationID}/messages", s.handleListMessages)
	r.Delete("/api/conversations/{conversationID}", s.handleDeleteConversation)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// RequestLogger logs incoming requests.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: 200}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch secondbrain.ErrorCode(err) {
	case secondbrain.EINVALID:
		status = http.StatusBadRequest
	case secondbrain.ENOTFOUND:
		status = http.StatusNotFound
	case secondbrain.ECONFLICT:
		status = http.StatusConflict
	case secondbrain.EUNAVAILABLE:
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": secondbrain.ErrorMessage(err)})
}
