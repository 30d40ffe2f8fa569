package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deusflow/noticias/internal/news"
)

// ErrDocumentExists means a file for the slug is already on disk.
var ErrDocumentExists = errors.New("document already exists")

// DocumentWriter writes each document to <dir>/<slug>.<ext>, never
// overwriting an existing file.
type DocumentWriter struct {
	dir string
	ext string
}

// NewDocumentWriter creates a writer for dir. A leading dot on ext is ignored.
func NewDocumentWriter(dir, ext string) *DocumentWriter {
	return &DocumentWriter{dir: dir, ext: strings.TrimPrefix(ext, ".")}
}

// Path returns the file a document with slug would be written to.
func (w *DocumentWriter) Path(slug string) string {
	return filepath.Join(w.dir, slug+"."+w.ext)
}

// Write creates the file for doc and returns its path. It returns
// ErrDocumentExists when the file is already present.
func (w *DocumentWriter) Write(doc news.Document) (string, error) {
	if doc.Slug == "" || strings.ContainsAny(doc.Slug, `/\`) {
		return "", fmt.Errorf("invalid slug %q", doc.Slug)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := w.Path(doc.Slug)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return path, ErrDocumentExists
	}
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.WriteString(doc.Content); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}
