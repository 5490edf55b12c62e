package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/jradek/secondbrain"
	"github.com/jradek/secondbrain/mock"
	sbslog "github.com/jradek/secondbrain/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDocumentService(t *testing.T) {
	t.Parallel()

	t.Run("logs inserts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentService{
			InsertTextFn: func(ctx context.Context, offset int, text string) error {
				return nil
			},
		}

		s := sbslog.NewLoggingDocumentService(inner, logger)
		require.NoError(t, s.InsertText(context.Background(), 42, "a note"))

		output := buf.String()
		assert.Contains(t, output, "document insert")
		assert.Contains(t, output, "offset=42")
		assert.Contains(t, output, "bytes=6")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs read errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentService{
			ReadFullTextFn: func(ctx context.Context) (string, error) {
				return "", secondbrain.Errorf(secondbrain.ENOTFOUND, "Document not found at /tmp/doc.md.")
			},
		}

		s := sbslog.NewLoggingDocumentService(inner, logger)
		_, err := s.ReadFullText(context.Background())

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "document read")
		assert.Contains(t, output, "not_found")
	})
}

func TestLoggingSearchIndex(t *testing.T) {
	t.Parallel()

	t.Run("logs index batches", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SearchIndex{
			IndexFn: func(ctx context.Context, entries []secondbrain.IndexEntry) error {
				return nil
			},
		}

		s := sbslog.NewLoggingSearchIndex(inner, logger)
		err := s.Index(context.Background(), []secondbrain.IndexEntry{{ID: "a"}, {ID: "b"}})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "index entries")
		assert.Contains(t, output, "count=2")
	})

	t.Run("delegates search results", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		inner := &mock.SearchIndex{
			SearchFn: func(ctx context.Context, vector []float32, k int, filter map[string]string) ([]secondbrain.SearchResult, error) {
				return []secondbrain.SearchResult{{ID: "hit"}}, nil
			},
		}

		s := sbslog.NewLoggingSearchIndex(inner, logger)
		results, err := s.Search(context.Background(), []float32{1}, 5, nil)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "hit", results[0].ID)
	})
}
