// Package fs implements document access over a single markdown file on the
// local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jradek/secondbrain"
)

// Ensure DocumentService implements secondbrain.DocumentService at compile
// time.
var _ secondbrain.DocumentService = (*DocumentService)(nil)

// DocumentService reads and edits the knowledge base document. Writes go
// through a temp file in the same directory followed by a rename, so a
// crash mid-write never leaves a truncated document behind.
type DocumentService struct {
	path string
}

// NewDocumentService creates a DocumentService for the document at path.
func NewDocumentService(path string) *DocumentService {
	return &DocumentService{path: path}
}

// Path returns the document's location on disk.
func (s *DocumentService) Path() string { return s.path }

// ReadFullText returns the entire document.
func (s *DocumentService) ReadFullText(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", secondbrain.Errorf(secondbrain.ENOTFOUND, "Document not found at %s.", s.path)
		}
		return "", secondbrain.Errorf(secondbrain.EINTERNAL, "read document: %v", err)
	}
	return string(data), nil
}

// InsertText splices text into the document at the given byte offset. The
// offset must fall within the current document.
func (s *DocumentService) InsertText(ctx context.Context, offset int, text string) error {
	current, err := s.ReadFullText(ctx)
	if err != nil {
		return err
	}
	if offset < 0 || offset > len(current) {
		return secondbrain.Errorf(secondbrain.EINVALID, "offset %d outside document of %d bytes", offset, len(current))
	}

	updated := current[:offset] + text + current[offset:]
	return s.writeAtomic(updated)
}

func (s *DocumentService) writeAtomic(content string) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".secondbrain-*")
	if err != nil {
		return secondbrain.Errorf(secondbrain.EINTERNAL, "create temp file: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return secondbrain.Errorf(secondbrain.EINTERNAL, "write temp file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return secondbrain.Errorf(secondbrain.EINTERNAL, "close temp file: %v", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return secondbrain.Errorf(secondbrain.EINTERNAL, "replace document: %v", err)
	}
	return nil
}
