// Package chromem implements the search index using the chromem-go embedded
// vector database.
package chromem

import (
	"context"
	"sync"

	"github.com/jradek/secondbrain"
	chromemgo "github.com/philippgille/chromem-go"
)

const collectionName = "sections"

// Ensure SearchIndex implements secondbrain.SearchIndex at compile time.
var _ secondbrain.SearchIndex = (*SearchIndex)(nil)

// SearchIndex implements secondbrain.SearchIndex over an in-memory
// chromem-go collection. Vectors are always supplied by the caller, so the
// collection never computes embeddings itself.
type SearchIndex struct {
	db *chromemgo.DB

	mu   sync.Mutex
	coll *chromemgo.Collection
}

// NewSearchIndex creates a new, empty SearchIndex.
func NewSearchIndex() (*SearchIndex, error) {
	s := &SearchIndex{db: chromemgo.NewDB()}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// noEmbedding rejects any attempt to embed inside the collection. Every
// document and query arrives with a precomputed vector.
func noEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, secondbrain.Errorf(secondbrain.EINTERNAL, "search index received text without a vector")
}

func (s *SearchIndex) reset() error {
	if err := s.db.DeleteCollection(collectionName); err != nil {
		return secondbrain.Errorf(secondbrain.EINTERNAL, "delete collection: %v", err)
	}
	coll, err := s.db.GetOrCreateCollection(collectionName, nil, noEmbedding)
	if err != nil {
		return secondbrain.Errorf(secondbrain.EINTERNAL, "create collection: %v", err)
	}
	s.coll = coll
	return nil
}

// Index adds entries to the index.
func (s *SearchIndex) Index(ctx context.Context, entries []secondbrain.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]chromemgo.Document, len(entries))
	for i, e := range entries {
		if len(e.Vector) == 0 {
			return secondbrain.Errorf(secondbrain.EINVALID, "entry %q has no vector", e.ID)
		}
		docs[i] = chromemgo.Document{
			ID:        e.ID,
			Metadata:  e.Metadata,
			Embedding: e.Vector,
			Content:   e.Text,
		}
	}

	s.mu.Lock()
	coll := s.coll
	s.mu.Unlock()

	if err := coll.AddDocuments(ctx, docs, 1); err != nil {
		return secondbrain.Errorf(secondbrain.EINTERNAL, "add documents: %v", err)
	}
	return nil
}

// Search returns the k nearest entries to the query vector, optionally
// restricted by exact metadata matches. k is clamped to the collection size;
// an empty index returns no results.
func (s *SearchIndex) Search(ctx context.Context, vector []float32, k int, filter map[string]string) ([]secondbrain.SearchResult, error) {
	if len(vector) == 0 {
		return nil, secondbrain.Errorf(secondbrain.EINVALID, "query vector required")
	}
	if k <= 0 {
		return nil, secondbrain.Errorf(secondbrain.EINVALID, "k must be positive")
	}

	s.mu.Lock()
	coll := s.coll
	s.mu.Unlock()

	if n := coll.Count(); n < k {
		if n == 0 {
			return nil, nil
		}
		k = n
	}

	results, err := coll.QueryEmbedding(ctx, vector, k, filter, nil)
	if err != nil {
		return nil, secondbrain.Errorf(secondbrain.EINTERNAL, "query: %v", err)
	}

	out := make([]secondbrain.SearchResult, len(results))
	for i, r := range results {
		out[i] = secondbrain.SearchResult{
			ID:       r.ID,
			Text:     r.Content,
			Metadata: r.Metadata,
			Distance: 1 - r.Similarity,
		}
	}
	return out, nil
}

// Clear drops every entry from the index.
func (s *SearchIndex) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset()
}

// Count returns the number of indexed entries.
func (s *SearchIndex) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	coll := s.coll
	s.mu.Unlock()
	return coll.Count(), nil
}
