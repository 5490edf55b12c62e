package gemini

import (
	"context"

	"github.com/jradek/secondbrain"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultEmbedModel is used when Embedder.Model is empty.
const DefaultEmbedModel = "gemini-embedding-001"

// Ensure Embedder implements secondbrain.Embedder at compile time.
var _ secondbrain.Embedder = (*Embedder)(nil)

// Embedder implements secondbrain.Embedder using Google Gemini. Calls are
// rate limited because reindexing embeds many sections back to back.
type Embedder struct {
	client  *genai.Client
	limiter *rate.Limiter

	// Model overrides DefaultEmbedModel when set.
	Model string
}

// NewEmbedder creates a new Embedder allowing rps embedding requests per
// second. A non-positive rps disables limiting.
func NewEmbedder(client *genai.Client, rps float64) *Embedder {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Embedder{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Embed converts text into an embedding vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, secondbrain.Errorf(secondbrain.EINVALID, "text required")
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := e.client.Models.EmbedContent(ctx, e.model(),
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		nil,
	)
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Embeddings) == 0 || len(res.Embeddings[0].Values) == 0 {
		return nil, secondbrain.Errorf(secondbrain.EINTERNAL, "gemini returned no embedding")
	}
	return res.Embeddings[0].Values, nil
}

func (e *Embedder) model() string {
	if e.Model != "" {
		return e.Model
	}
	return DefaultEmbedModel
}
