package mock

import (
	"context"

	"github.com/jradek/secondbrain"
)

var _ secondbrain.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of secondbrain.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, content string) (secondbrain.Classification, error)
}

func (c *Classifier) Classify(ctx context.Context, content string) (secondbrain.Classification, error) {
	return c.ClassifyFn(ctx, content)
}
