// Package slog provides logging decorators for secondbrain services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jradek/secondbrain"
)

// Ensure LoggingDocumentService implements secondbrain.DocumentService.
var _ secondbrain.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with logging for reads and
// edits.
type LoggingDocumentService struct {
	next   secondbrain.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next secondbrain.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// ReadFullText delegates to the wrapped service and logs the result.
func (s *LoggingDocumentService) ReadFullText(ctx context.Context) (string, error) {
	begin := time.Now()
	text, err := s.next.ReadFullText(ctx)
	if err != nil {
		s.logger.Error("document read", "err", err, "duration", time.Since(begin))
		return "", err
	}
	s.logger.Debug("document read", "bytes", len(text), "duration", time.Since(begin))
	return text, nil
}

// InsertText delegates to the wrapped service and logs the edit.
func (s *LoggingDocumentService) InsertText(ctx context.Context, offset int, text string) error {
	begin := time.Now()
	err := s.next.InsertText(ctx, offset, text)
	if err != nil {
		s.logger.Error("document insert", "offset", offset, "err", err, "duration", time.Since(begin))
		return err
	}
	s.logger.Info("document insert", "offset", offset, "bytes", len(text), "duration", time.Since(begin))
	return nil
}
