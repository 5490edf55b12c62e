package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jradek/secondbrain"
)

// Ensure LoggingSearchIndex implements secondbrain.SearchIndex.
var _ secondbrain.SearchIndex = (*LoggingSearchIndex)(nil)

// LoggingSearchIndex wraps a SearchIndex with logging for indexing and
// search operations.
type LoggingSearchIndex struct {
	next   secondbrain.SearchIndex
	logger *slog.Logger
}

// NewLoggingSearchIndex creates a new LoggingSearchIndex.
func NewLoggingSearchIndex(next secondbrain.SearchIndex, logger *slog.Logger) *LoggingSearchIndex {
	return &LoggingSearchIndex{next: next, logger: logger}
}

// Index delegates to the wrapped index and logs the batch size.
func (s *LoggingSearchIndex) Index(ctx context.Context, entries []secondbrain.IndexEntry) error {
	begin := time.Now()
	err := s.next.Index(ctx, entries)
	if err != nil {
		s.logger.Error("index entries", "count", len(entries), "err", err, "duration", time.Since(begin))
		return err
	}
	s.logger.Info("index entries", "count", len(entries), "duration", time.Since(begin))
	return nil
}

// Search delegates to the wrapped index and logs the hit count.
func (s *LoggingSearchIndex) Search(ctx context.Context, vector []float32, k int, filter map[string]string) ([]secondbrain.SearchResult, error) {
	begin := time.Now()
	results, err := s.next.Search(ctx, vector, k, filter)
	if err != nil {
		s.logger.Error("search", "k", k, "err", err, "duration", time.Since(begin))
		return nil, err
	}
	s.logger.Debug("search", "k", k, "hits", len(results), "duration", time.Since(begin))
	return results, nil
}

// Clear delegates to the wrapped index.
func (s *LoggingSearchIndex) Clear(ctx context.Context) error {
	err := s.next.Clear(ctx)
	if err != nil {
		s.logger.Error("clear index", "err", err)
		return err
	}
	s.logger.Info("clear index")
	return nil
}

// Count delegates to the wrapped index.
func (s *LoggingSearchIndex) Count(ctx context.Context) (int, error) {
	return s.next.Count(ctx)
}
