package chromem_test

import (
	"context"
	"testing"

	"github.com/jradek/secondbrain"
	"github.com/jradek/secondbrain/chromem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEntries() []secondbrain.IndexEntry {
	return []secondbrain.IndexEntry{
		{
			ID:       "intro",
			Vector:   []float32{1, 0, 0},
			Text:     "[INTRODUCTION]\nEmotion regulation overview.",
			Metadata: map[string]string{"marker": "[INTRODUCTION]", "category": ""},
		},
		{
			ID:       "d1-def",
			Vector:   []float32{0, 1, 0},
			Text:     "[D1:DEFINITION]\nInteroception senses the body.",
			Metadata: map[string]string{"marker": "[D1:DEFINITION]", "category": "D1"},
		},
		{
			ID:       "d2-def",
			Vector:   []float32{0, 0.9, 0.1},
			Text:     "[D2:DEFINITION]\nAffect labeling.",
			Metadata: map[string]string{"marker": "[D2:DEFINITION]", "category": "D2"},
		},
	}
}

func TestSearchIndex(t *testing.T) {
	t.Parallel()

	t.Run("nearest neighbor ordering", func(t *testing.T) {
		t.Parallel()

		s, err := chromem.NewSearchIndex()
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, s.Index(ctx, seedEntries()))

		results, err := s.Search(ctx, []float32{0, 1, 0}, 2, nil)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "d1-def", results[0].ID)
		assert.Equal(t, "d2-def", results[1].ID)
		assert.InDelta(t, 0, results[0].Distance, 1e-6)
		assert.Less(t, results[0].Distance, results[1].Distance)
		assert.Equal(t, "[D1:DEFINITION]", results[0].Metadata["marker"])
	})

	t.Run("metadata filter", func(t *testing.T) {
		t.Parallel()

		s, err := chromem.NewSearchIndex()
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, s.Index(ctx, seedEntries()))

		results, err := s.Search(ctx, []float32{0, 1, 0}, 3, map[string]string{"category": "D2"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "d2-def", results[0].ID)
	})

	t.Run("k clamped to collection size", func(t *testing.T) {
		t.Parallel()

		s, err := chromem.NewSearchIndex()
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, s.Index(ctx, seedEntries()))

		results, err := s.Search(ctx, []float32{1, 0, 0}, 10, nil)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("empty index returns nothing", func(t *testing.T) {
		t.Parallel()

		s, err := chromem.NewSearchIndex()
		require.NoError(t, err)

		results, err := s.Search(context.Background(), []float32{1, 0, 0}, 5, nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("clear empties the index", func(t *testing.T) {
		t.Parallel()

		s, err := chromem.NewSearchIndex()
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, s.Index(ctx, seedEntries()))

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		require.NoError(t, s.Clear(ctx))
		n, err = s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		// Indexing after a clear works against the fresh collection.
		require.NoError(t, s.Index(ctx, seedEntries()[:1]))
		n, err = s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("entry without vector is rejected", func(t *testing.T) {
		t.Parallel()

		s, err := chromem.NewSearchIndex()
		require.NoError(t, err)

		err = s.Index(context.Background(), []secondbrain.IndexEntry{{ID: "x", Text: "no vector"}})
		require.Error(t, err)
		assert.Equal(t, secondbrain.EINVALID, secondbrain.ErrorCode(err))
	})
}
