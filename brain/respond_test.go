package brain_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jradek/secondbrain"
	"github.com/jradek/secondbrain/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writableDocument records every InsertText call against a fixed text.
type writableDocument struct {
	*mock.DocumentService
	inserts []insert
}

type insert struct {
	offset int
	text   string
}

func newWritableDocument(text string) *writableDocument {
	d := &writableDocument{}
	d.DocumentService = &mock.DocumentService{
		ReadFullTextFn: func(ctx context.Context) (string, error) {
			return text, nil
		},
		InsertTextFn: func(ctx context.Context, offset int, t string) error {
			d.inserts = append(d.inserts, insert{offset, t})
			return nil
		},
	}
	return d
}

func classifierReturning(c secondbrain.Classification) *mock.Classifier {
	return &mock.Classifier{
		ClassifyFn: func(ctx context.Context, content string) (secondbrain.Classification, error) {
			return c, nil
		},
	}
}

func TestBrain_Respond_RememberFlow(t *testing.T) {
	t.Parallel()

	t.Run("classify then confirm commits the note", func(t *testing.T) {
		t.Parallel()

		doc := newWritableDocument(testDocument)
		b := testBrain(doc.DocumentService)
		b.Classifier = classifierReturning(secondbrain.Classification{
			Marker:     "[D1:DEFINITION]",
			Category:   "D1",
			Kind:       "DEFINITION",
			Confidence: secondbrain.ConfidenceHigh,
			Reasoning:  "defines a somatic construct",
		})

		ctx := context.Background()
		turn, err := b.Respond(ctx, "conv-1", "remember that heart rate variability indexes vagal tone")
		require.NoError(t, err)
		assert.True(t, turn.PendingConfirmation)
		require.NotNil(t, turn.Classification)
		assert.Equal(t, secondbrain.Marker("[D1:DEFINITION]"), turn.Classification.Marker)
		assert.Contains(t, turn.Text, "[D1:DEFINITION]")
		assert.Contains(t, turn.Text, "defines a somatic construct")
		assert.Empty(t, doc.inserts, "nothing written before confirmation")

		turn, err = b.Respond(ctx, "conv-1", "yes")
		require.NoError(t, err)
		assert.False(t, turn.PendingConfirmation)
		assert.Contains(t, turn.Text, "Added the note to [D1:DEFINITION]")

		require.Len(t, doc.inserts, 1)
		assert.Equal(t, "\n\nheart rate variability indexes vagal tone", doc.inserts[0].text)

		// The note lands inside the [D1:DEFINITION] section, before the
		// blank line that separates it from the next marker.
		end := strings.Index(testDocument, "[D1:REFERENCES]")
		start := strings.Index(testDocument, "[D1:DEFINITION]")
		assert.Greater(t, doc.inserts[0].offset, start)
		assert.Less(t, doc.inserts[0].offset, end)
	})

	t.Run("no cancels without writing", func(t *testing.T) {
		t.Parallel()

		doc := newWritableDocument(testDocument)
		b := testBrain(doc.DocumentService)
		b.Classifier = classifierReturning(secondbrain.Classification{Marker: "[D2:DEFINITION]"})

		ctx := context.Background()
		_, err := b.Respond(ctx, "conv-1", "note that affect labeling reduces amygdala response")
		require.NoError(t, err)

		turn, err := b.Respond(ctx, "conv-1", "no")
		require.NoError(t, err)
		assert.False(t, turn.PendingConfirmation)
		assert.Contains(t, turn.Text, "Cancelled")
		assert.Empty(t, doc.inserts)
	})

	t.Run("marker literal overrides the classification", func(t *testing.T) {
		t.Parallel()

		doc := newWritableDocument(testDocument)
		b := testBrain(doc.DocumentService)
		b.Classifier = classifierReturning(secondbrain.Classification{Marker: "[D1:DEFINITION]"})

		ctx := context.Background()
		_, err := b.Respond(ctx, "conv-1", "remember that labeling feelings is a regulation strategy")
		require.NoError(t, err)

		turn, err := b.Respond(ctx, "conv-1", "[D2:DEFINITION]")
		require.NoError(t, err)
		assert.False(t, turn.PendingConfirmation)
		assert.Contains(t, turn.Text, "[D2:DEFINITION]")
		require.Len(t, doc.inserts, 1)
		assert.Equal(t, "\n\nlabeling feelings is a regulation strategy", doc.inserts[0].text)
	})

	t.Run("invalid override keeps the note pending", func(t *testing.T) {
		t.Parallel()

		doc := newWritableDocument(testDocument)
		b := testBrain(doc.DocumentService)
		b.Classifier = classifierReturning(secondbrain.Classification{Marker: "[D1:DEFINITION]"})

		ctx := context.Background()
		_, err := b.Respond(ctx, "conv-1", "remember that breath pacing shifts autonomic balance")
		require.NoError(t, err)

		turn, err := b.Respond(ctx, "conv-1", "[D9:NONSENSE]")
		require.NoError(t, err)
		assert.True(t, turn.PendingConfirmation)
		assert.Contains(t, turn.Text, "Invalid marker")
		assert.Empty(t, doc.inserts)

		// Still pending: a later yes commits.
		turn, err = b.Respond(ctx, "conv-1", "yes")
		require.NoError(t, err)
		assert.False(t, turn.PendingConfirmation)
		assert.Len(t, doc.inserts, 1)
	})

	t.Run("unrelated reply re-prompts", func(t *testing.T) {
		t.Parallel()

		doc := newWritableDocument(testDocument)
		b := testBrain(doc.DocumentService)
		b.Classifier = classifierReturning(secondbrain.Classification{Marker: "[D1:DEFINITION]"})

		ctx := context.Background()
		_, err := b.Respond(ctx, "conv-1", "remember that interoceptive accuracy varies between people")
		require.NoError(t, err)

		turn, err := b.Respond(ctx, "conv-1", "what do you mean?")
		require.NoError(t, err)
		assert.True(t, turn.PendingConfirmation)
		assert.Contains(t, turn.Text, "'yes', 'no'")
		assert.Empty(t, doc.inserts)
	})

	t.Run("empty reply re-prompts instead of showing help", func(t *testing.T) {
		t.Parallel()

		doc := newWritableDocument(testDocument)
		b := testBrain(doc.DocumentService)
		b.Classifier = classifierReturning(secondbrain.Classification{Marker: "[D1:DEFINITION]"})

		ctx := context.Background()
		_, err := b.Respond(ctx, "conv-1", "remember that interoceptive accuracy varies between people")
		require.NoError(t, err)

		turn, err := b.Respond(ctx, "conv-1", "   ")
		require.NoError(t, err)
		assert.True(t, turn.PendingConfirmation)
		assert.Contains(t, turn.Text, "'yes', 'no'")
		assert.NotContains(t, turn.Text, "/help")

		turn, err = b.Respond(ctx, "conv-1", "yes")
		require.NoError(t, err)
		assert.False(t, turn.PendingConfirmation)
		require.Len(t, doc.inserts, 1)
	})

	t.Run("failed commit keeps the note pending for retry", func(t *testing.T) {
		t.Parallel()

		var fail bool
		var inserts int
		doc := &mock.DocumentService{
			ReadFullTextFn: func(ctx context.Context) (string, error) {
				return testDocument, nil
			},
			InsertTextFn: func(ctx context.Context, offset int, text string) error {
				if fail {
					return secondbrain.Errorf(secondbrain.EUNAVAILABLE, "Document is locked by another process.")
				}
				inserts++
				return nil
			},
		}
		b := testBrain(doc)
		b.Classifier = classifierReturning(secondbrain.Classification{Marker: "[D1:DEFINITION]"})

		ctx := context.Background()
		_, err := b.Respond(ctx, "conv-1", "remember that vagal tone supports flexible responding")
		require.NoError(t, err)

		fail = true
		turn, err := b.Respond(ctx, "conv-1", "yes")
		require.NoError(t, err)
		assert.True(t, turn.PendingConfirmation)
		assert.Contains(t, turn.Text, "Document is locked by another process.")
		assert.Contains(t, turn.Text, "still pending")

		fail = false
		turn, err = b.Respond(ctx, "conv-1", "yes")
		require.NoError(t, err)
		assert.False(t, turn.PendingConfirmation)
		assert.Equal(t, 1, inserts)
	})

	t.Run("explicit marker bypasses the classifier", func(t *testing.T) {
		t.Parallel()

		doc := newWritableDocument(testDocument)
		b := testBrain(doc.DocumentService)
		b.Classifier = &mock.Classifier{
			ClassifyFn: func(ctx context.Context, content string) (secondbrain.Classification, error) {
				t.Fatal("classifier must not run for explicit markers")
				return secondbrain.Classification{}, nil
			},
		}

		turn, err := b.Respond(context.Background(), "conv-1", "remember that worry is verbal-linguistic in [D2:DEFINITION]")
		require.NoError(t, err)
		assert.False(t, turn.PendingConfirmation)
		assert.Contains(t, turn.Text, "Added the note to [D2:DEFINITION]")
		require.Len(t, doc.inserts, 1)
		assert.Equal(t, "\n\nworry is verbal-linguistic", doc.inserts[0].text)
	})

	t.Run("explicit marker outside the taxonomy is rejected", func(t *testing.T) {
		t.Parallel()

		doc := newWritableDocument(testDocument)
		b := testBrain(doc.DocumentService)

		turn, err := b.Respond(context.Background(), "conv-1", "remember that something in [D7:DEFINITION]")
		require.NoError(t, err)
		assert.False(t, turn.PendingConfirmation)
		assert.Contains(t, turn.Text, "Invalid marker: [D7:DEFINITION]")
		assert.Empty(t, doc.inserts)
	})

	t.Run("classification failure reports without pending", func(t *testing.T) {
		t.Parallel()

		doc := newWritableDocument(testDocument)
		b := testBrain(doc.DocumentService)
		b.Classifier = classifierReturning(secondbrain.Classification{})

		ctx := context.Background()
		turn, err := b.Respond(ctx, "conv-1", "remember that this defies categorization")
		require.NoError(t, err)
		assert.False(t, turn.PendingConfirmation)
		assert.Contains(t, turn.Text, "Could not determine an appropriate section")
	})

	t.Run("pending confirmations are per conversation", func(t *testing.T) {
		t.Parallel()

		doc := newWritableDocument(testDocument)
		b := testBrain(doc.DocumentService)
		b.Classifier = classifierReturning(secondbrain.Classification{Marker: "[D1:DEFINITION]"})
		b.Embedder = &mock.Embedder{
			EmbedFn: func(ctx context.Context, text string) ([]float32, error) {
				return []float32{1}, nil
			},
		}
		b.Index = &mock.SearchIndex{
			SearchFn: func(ctx context.Context, vector []float32, k int, filter map[string]string) ([]secondbrain.SearchResult, error) {
				return nil, nil
			},
		}

		ctx := context.Background()
		_, err := b.Respond(ctx, "conv-1", "remember that slow breathing raises HRV")
		require.NoError(t, err)

		// A different conversation saying "yes" is a plain query, not a
		// confirmation of conv-1's note.
		turn, err := b.Respond(ctx, "conv-2", "yes")
		require.NoError(t, err)
		assert.False(t, turn.PendingConfirmation)
		assert.Empty(t, doc.inserts)

		turn, err = b.Respond(ctx, "conv-1", "yes")
		require.NoError(t, err)
		assert.False(t, turn.PendingConfirmation)
		assert.Len(t, doc.inserts, 1)
	})
}

func TestBrain_Respond_Commands(t *testing.T) {
	t.Parallel()

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		b := testBrain(staticDocument(testDocument))
		turn, err := b.Respond(context.Background(), "conv-1", "/help")
		require.NoError(t, err)
		assert.Contains(t, turn.Text, "/index")
		assert.Contains(t, turn.Text, "/gaps")
	})

	t.Run("stats", func(t *testing.T) {
		t.Parallel()

		b := testBrain(staticDocument(testDocument))
		require.NoError(t, b.Load(context.Background()))

		turn, err := b.Respond(context.Background(), "conv-1", "/stats")
		require.NoError(t, err)
		assert.Contains(t, turn.Text, "Total sections: 66")
		assert.Contains(t, turn.Text, "Complete: 3")
		assert.Contains(t, turn.Text, "D1 (Somatic/Interoceptive Regulation): 1/10 complete")
	})

	t.Run("index", func(t *testing.T) {
		t.Parallel()

		b := testBrain(staticDocument(testDocument))
		b.Embedder = &mock.Embedder{
			EmbedFn: func(ctx context.Context, text string) ([]float32, error) {
				return []float32{1}, nil
			},
		}
		b.Index = &mock.SearchIndex{
			ClearFn: func(ctx context.Context) error { return nil },
			IndexFn: func(ctx context.Context, entries []secondbrain.IndexEntry) error { return nil },
		}

		turn, err := b.Respond(context.Background(), "conv-1", "/index")
		require.NoError(t, err)
		assert.Contains(t, turn.Text, "3/66 sections have content")
	})

	t.Run("gaps with lowercase category argument", func(t *testing.T) {
		t.Parallel()

		b := testBrain(staticDocument(testDocument))
		require.NoError(t, b.Load(context.Background()))
		b.Chat = &mock.ChatService{
			ConverseFn: func(ctx context.Context, systemPrompt string, history []secondbrain.ChatMessage, userTurn string) (string, error) {
				assert.Contains(t, userTurn, "[D1:REFERENCES]")
				return "fill in the references", nil
			},
		}

		turn, err := b.Respond(context.Background(), "conv-1", "/gaps d1")
		require.NoError(t, err)
		assert.Equal(t, "fill in the references", turn.Text)
	})

	t.Run("gaps with invalid category", func(t *testing.T) {
		t.Parallel()

		b := testBrain(staticDocument(testDocument))
		turn, err := b.Respond(context.Background(), "conv-1", "/gaps d99")
		require.NoError(t, err)
		assert.Contains(t, turn.Text, "Invalid category: D99")
	})

	t.Run("markers", func(t *testing.T) {
		t.Parallel()

		b := testBrain(staticDocument(testDocument))
		turn, err := b.Respond(context.Background(), "conv-1", "/markers")
		require.NoError(t, err)
		assert.Contains(t, turn.Text, "[TABLE 7]")
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()

		b := testBrain(staticDocument(testDocument))
		turn, err := b.Respond(context.Background(), "conv-1", "/frobnicate now")
		require.NoError(t, err)
		assert.Contains(t, turn.Text, "Unknown command: /frobnicate")
	})
}
