package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/noticias/internal/news"
)

func TestDocumentWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "src", "app", "noticias", "posts")
	w := NewDocumentWriter(dir, ".mdx")

	path, err := w.Write(news.Document{Slug: "hola-mundo-20240601", Content: "---\ntitle: hola\n---\n"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hola-mundo-20240601.mdx"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: hola\n---\n", string(data))
}

func TestDocumentWriter_Collision(t *testing.T) {
	dir := t.TempDir()
	w := NewDocumentWriter(dir, "mdx")

	_, err := w.Write(news.Document{Slug: "dup-20240601", Content: "first"})
	require.NoError(t, err)

	path, err := w.Write(news.Document{Slug: "dup-20240601", Content: "second"})
	assert.ErrorIs(t, err, ErrDocumentExists)
	assert.Equal(t, w.Path("dup-20240601"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data), "existing file must not be overwritten")
}

func TestDocumentWriter_InvalidSlug(t *testing.T) {
	w := NewDocumentWriter(t.TempDir(), "mdx")

	for _, slug := range []string{"", "../escape", `a\b`} {
		_, err := w.Write(news.Document{Slug: slug, Content: "x"})
		assert.Error(t, err, "slug %q", slug)
		assert.NotErrorIs(t, err, ErrDocumentExists)
	}
}
