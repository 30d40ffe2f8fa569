// Package config loads the run settings from the environment and the feed
// catalog from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Catalog settings
	FeedsConfigPath string

	// Output settings
	PostsDir     string
	FileExt      string
	TemplatePath string

	// Seen set settings
	SeenFilePath string
	DatabaseURL  string // when set, the seen set lives in PostgreSQL
	LockFilePath string

	// Pipeline policy
	MaxPostsPerRun    int // documents written per run at most
	MaxEntriesPerFeed int // most recent entries taken from each feed
	MinMarkerWords    int // distinct marker words needed for the language check
	SummaryMaxRunes   int
	ContentMaxRunes   int

	// Fetch settings
	RequestTimeout time.Duration
	FeedDelay      time.Duration
	UserAgent      string

	// Gemini settings (optional summary rewrite)
	GeminiAPIKey string
	GeminiModel  string

	// App settings
	Debug bool
}

// Load reads a .env file if one is present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		// Default values
		FeedsConfigPath:   "configs/feeds.yaml",
		PostsDir:          "src/app/noticias/posts",
		FileExt:           "mdx",
		TemplatePath:      "scripts/news-template.mdx",
		SeenFilePath:      "scripts/processed_news.json",
		MaxPostsPerRun:    3,
		MaxEntriesPerFeed: 5,
		MinMarkerWords:    3,
		SummaryMaxRunes:   200,
		ContentMaxRunes:   500,
		RequestTimeout:    30 * time.Second,
		FeedDelay:         500 * time.Millisecond,
		UserAgent:         "noticias-bot/1.0",
		GeminiModel:       "gemini-1.5-flash",
	}

	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.PostsDir = getEnvOrDefault("NEWS_POSTS_DIR", cfg.PostsDir)
	cfg.FileExt = getEnvOrDefault("NEWS_FILE_EXT", cfg.FileExt)
	cfg.TemplatePath = getEnvOrDefault("NEWS_TEMPLATE_PATH", cfg.TemplatePath)
	cfg.SeenFilePath = getEnvOrDefault("NEWS_SEEN_FILE", cfg.SeenFilePath)
	cfg.LockFilePath = getEnvOrDefault("NEWS_LOCK_FILE", "")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.UserAgent = getEnvOrDefault("USER_AGENT", cfg.UserAgent)

	cfg.MaxPostsPerRun = getEnvIntOrDefault("MAX_POSTS_PER_RUN", cfg.MaxPostsPerRun)
	cfg.MaxEntriesPerFeed = getEnvIntOrDefault("MAX_ENTRIES_PER_FEED", cfg.MaxEntriesPerFeed)
	cfg.MinMarkerWords = getEnvIntOrDefault("LANGUAGE_MIN_MARKERS", cfg.MinMarkerWords)
	cfg.SummaryMaxRunes = getEnvIntOrDefault("SUMMARY_MAX_RUNES", cfg.SummaryMaxRunes)
	cfg.ContentMaxRunes = getEnvIntOrDefault("CONTENT_MAX_RUNES", cfg.ContentMaxRunes)

	cfg.RequestTimeout = getEnvDurationOrDefault("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.FeedDelay = getEnvDurationOrDefault("FEED_DELAY", cfg.FeedDelay)

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// LockPath returns the run lock location, next to the seen file by default.
func (c *Config) LockPath() string {
	if c.LockFilePath != "" {
		return c.LockFilePath
	}
	if c.SeenFilePath == "" {
		return "noticias.lock"
	}
	return c.SeenFilePath + ".lock"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.PostsDir == "" {
		return fmt.Errorf("NEWS_POSTS_DIR must not be empty")
	}
	if c.FileExt == "" {
		return fmt.Errorf("NEWS_FILE_EXT must not be empty")
	}
	if c.SeenFilePath == "" && c.DatabaseURL == "" {
		return fmt.Errorf("NEWS_SEEN_FILE or DATABASE_URL is required")
	}
	if c.MaxPostsPerRun <= 0 {
		return fmt.Errorf("MAX_POSTS_PER_RUN must be positive")
	}
	if c.MaxEntriesPerFeed <= 0 {
		return fmt.Errorf("MAX_ENTRIES_PER_FEED must be positive")
	}
	if c.MinMarkerWords <= 0 {
		return fmt.Errorf("LANGUAGE_MIN_MARKERS must be positive")
	}
	if c.SummaryMaxRunes <= 0 || c.ContentMaxRunes <= 0 {
		return fmt.Errorf("SUMMARY_MAX_RUNES and CONTENT_MAX_RUNES must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.FeedDelay < 0 {
		return fmt.Errorf("FEED_DELAY must not be negative")
	}
	return nil
}
