package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxPostsPerRun)
	assert.Equal(t, 5, cfg.MaxEntriesPerFeed)
	assert.Equal(t, 3, cfg.MinMarkerWords)
	assert.Equal(t, 200, cfg.SummaryMaxRunes)
	assert.Equal(t, 500, cfg.ContentMaxRunes)
	assert.Equal(t, "mdx", cfg.FileExt)
	assert.Equal(t, "scripts/processed_news.json", cfg.SeenFilePath)
	assert.Equal(t, "scripts/processed_news.json.lock", cfg.LockPath())
	assert.Equal(t, 500*time.Millisecond, cfg.FeedDelay)
	assert.False(t, cfg.Debug)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("MAX_POSTS_PER_RUN", "1")
	t.Setenv("NEWS_POSTS_DIR", "out/posts")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("FEED_DELAY", "0s")
	t.Setenv("NEWS_LOCK_FILE", "/tmp/noticias.lock")
	t.Setenv("DEBUG", "true")
	t.Setenv("MAX_ENTRIES_PER_FEED", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.MaxPostsPerRun)
	assert.Equal(t, "out/posts", cfg.PostsDir)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Duration(0), cfg.FeedDelay)
	assert.Equal(t, "/tmp/noticias.lock", cfg.LockPath())
	assert.True(t, cfg.Debug)
	assert.Equal(t, 5, cfg.MaxEntriesPerFeed, "invalid numbers keep the default")
}

func TestLoad_InvalidCap(t *testing.T) {
	t.Setenv("MAX_POSTS_PER_RUN", "0")

	_, err := Load()
	assert.EqualError(t, err, "MAX_POSTS_PER_RUN must be positive")
}

func TestConfig_LockPathWithDatabase(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://localhost/noticias"}
	assert.Equal(t, "noticias.lock", cfg.LockPath())
}

func TestDefaultCatalog(t *testing.T) {
	cat, err := DefaultCatalog()
	require.NoError(t, err)
	require.NoError(t, cat.Validate())

	assert.Len(t, cat.Feeds, 7)
	assert.Equal(t, "Dev.to Español", cat.Feeds[0].Name)
	assert.Equal(t, "Desarrollo Web", cat.Feeds[0].Category)
	assert.Contains(t, cat.Keywords, "node.js")
	assert.Contains(t, cat.Keywords, "machine learning")
	assert.Contains(t, cat.Markers, "y")
	assert.Contains(t, cat.Markers, "no")
	assert.Contains(t, cat.Markers, "también")
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file uses embedded catalog", func(t *testing.T) {
		cat, err := LoadCatalog(filepath.Join(dir, "feeds.yaml"))
		require.NoError(t, err)
		assert.Len(t, cat.Feeds, 7)
	})

	t.Run("file overrides feeds and keeps default vocabulary", func(t *testing.T) {
		path := filepath.Join(dir, "custom.yaml")
		data := "feeds:\n  - name: Local\n    url: http://localhost/rss\n    category: Pruebas\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cat, err := LoadCatalog(path)
		require.NoError(t, err)
		require.Len(t, cat.Feeds, 1)
		assert.Equal(t, "Local", cat.Feeds[0].Name)
		assert.NotEmpty(t, cat.Keywords)
		assert.NotEmpty(t, cat.Markers)
	})

	t.Run("feed without url is rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("feeds:\n  - name: Sin URL\n"), 0o644))

		_, err := LoadCatalog(path)
		assert.EqualError(t, err, "feed #1 needs both name and url")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("feeds: [unclosed"), 0o644))

		_, err := LoadCatalog(path)
		assert.Error(t, err)
	})
}
