package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/deusflow/noticias/internal/config"
	"github.com/deusflow/noticias/internal/gemini"
	"github.com/deusflow/noticias/internal/news"
	"github.com/deusflow/noticias/internal/render"
	"github.com/deusflow/noticias/internal/rss"
	"github.com/deusflow/noticias/internal/storage"
)

// OpenSeenStore picks the seen set backend: PostgreSQL when a database URL
// is configured, the JSON file otherwise. The returned func releases it.
func OpenSeenStore(ctx context.Context, cfg *config.Config) (SeenStore, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres seen store: %w", err)
		}
		slog.Info("using postgres seen store")
		return pg, func() { pg.Close() }, nil
	}

	fs := storage.NewFileStore(cfg.SeenFilePath)
	slog.Info("using file seen store", "path", fs.Path())
	return fs, func() {}, nil
}

// Build wires a production pipeline from cfg and catalog. The returned func
// releases the seen store and the optional Gemini client.
func Build(ctx context.Context, cfg *config.Config, catalog *config.Catalog, logger *slog.Logger) (*Pipeline, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, closeStore, err := OpenSeenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := []func(){closeStore}
	release := func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}

	deps := Deps{
		Source: rss.NewSource(rss.Options{
			Timeout:   cfg.RequestTimeout,
			Delay:     cfg.FeedDelay,
			UserAgent: cfg.UserAgent,
			Logger:    logger,
		}),
		Store:     store,
		Sink:      storage.NewDocumentWriter(cfg.PostsDir, cfg.FileExt),
		Renderer:  render.LoadTemplate(cfg.TemplatePath, logger),
		Relevance: news.NewRelevanceClassifier(catalog.Keywords),
		Language:  news.NewLanguageClassifier(catalog.Markers, cfg.MinMarkerWords),
		Logger:    logger,
		Now:       time.Now,
	}

	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("gemini unavailable, keeping feed summaries", "error", err)
		} else {
			deps.Summarizer = client
			cleanup = append(cleanup, client.Close)
		}
	}

	p, err := New(Options{
		Feeds:             catalog.Feeds,
		MaxPostsPerRun:    cfg.MaxPostsPerRun,
		MaxEntriesPerFeed: cfg.MaxEntriesPerFeed,
		SummaryMaxRunes:   cfg.SummaryMaxRunes,
		ContentMaxRunes:   cfg.ContentMaxRunes,
	}, deps)
	if err != nil {
		release()
		return nil, nil, err
	}
	return p, release, nil
}
