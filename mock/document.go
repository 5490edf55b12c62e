package mock

import (
	"context"

	"github.com/jradek/secondbrain"
)

var _ secondbrain.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of secondbrain.DocumentService.
type DocumentService struct {
	ReadFullTextFn func(ctx context.Context) (string, error)
	InsertTextFn   func(ctx context.Context, offset int, text string) error
}

func (s *DocumentService) ReadFullText(ctx context.Context) (string, error) {
	return s.ReadFullTextFn(ctx)
}

func (s *DocumentService) InsertText(ctx context.Context, offset int, text string) error {
	return s.InsertTextFn(ctx, offset, text)
}
