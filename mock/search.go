package mock

import (
	"context"

	"github.com/jradek/secondbrain"
)

var _ secondbrain.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of secondbrain.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

var _ secondbrain.SearchIndex = (*SearchIndex)(nil)

// SearchIndex is a mock implementation of secondbrain.SearchIndex.
type SearchIndex struct {
	IndexFn  func(ctx context.Context, entries []secondbrain.IndexEntry) error
	SearchFn func(ctx context.Context, vector []float32, k int, filter map[string]string) ([]secondbrain.SearchResult, error)
	ClearFn  func(ctx context.Context) error
	CountFn  func(ctx context.Context) (int, error)
}

func (s *SearchIndex) Index(ctx context.Context, entries []secondbrain.IndexEntry) error {
	return s.IndexFn(ctx, entries)
}

func (s *SearchIndex) Search(ctx context.Context, vector []float32, k int, filter map[string]string) ([]secondbrain.SearchResult, error) {
	return s.SearchFn(ctx, vector, k, filter)
}

func (s *SearchIndex) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}

func (s *SearchIndex) Count(ctx context.Context) (int, error) {
	return s.CountFn(ctx)
}
