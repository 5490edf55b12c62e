package secondbrain

import "context"

// DocumentService provides access to the knowledge base document. The
// service is bound to one document; reads return the full text and writes
// insert at an exact character offset, preserving all other content.
type DocumentService interface {
	// ReadFullText returns the document's entire text.
	ReadFullText(ctx context.Context) (string, error)

	// InsertText inserts text at the given character offset. All existing
	// content outside the insertion point must be preserved exactly.
	InsertText(ctx context.Context, offset int, text string) error
}
