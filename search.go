package secondbrain

import "context"

// Embedder generates an embedding vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// IndexEntry is one section prepared for indexing.
type IndexEntry struct {
	ID       string            `json:"id"`
	Vector   []float32         `json:"vector"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

// SearchResult is one similarity-search match. Lower distance means more
// relevant.
type SearchResult struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
	Distance float32           `json:"distance"`
}

// SearchIndex maintains the vector index over document sections.
type SearchIndex interface {
	// Index adds entries to the index.
	Index(ctx context.Context, entries []IndexEntry) error

	// Search returns up to k entries ordered by ascending distance from the
	// query vector. A non-nil filter restricts matches to entries whose
	// metadata contains every key/value pair.
	Search(ctx context.Context, vector []float32, k int, filter map[string]string) ([]SearchResult, error)

	// Clear removes all entries from the index.
	Clear(ctx context.Context) error

	// Count returns the number of indexed entries.
	Count(ctx context.Context) (int, error)
}
