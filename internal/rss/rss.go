package rss

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/deusflow/noticias/internal/news"
	"github.com/deusflow/noticias/internal/ratelimit"
	"github.com/deusflow/noticias/internal/scraper"
)

// Source downloads and parses RSS/Atom feeds.
type Source struct {
	parser *gofeed.Parser
	pacer  *ratelimit.Pacer
	logger *slog.Logger
}

// Options configures a Source.
type Options struct {
	Timeout   time.Duration
	Delay     time.Duration // pause between consecutive fetches
	UserAgent string
	Client    *http.Client // optional, overrides Timeout
	Logger    *slog.Logger
}

// NewSource builds a feed source.
func NewSource(opts Options) *Source {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	parser := gofeed.NewParser()
	parser.Client = client
	if opts.UserAgent != "" {
		parser.UserAgent = opts.UserAgent
	}

	return &Source{
		parser: parser,
		pacer:  ratelimit.NewPacer(opts.Delay),
		logger: logger,
	}
}

// Fetch downloads feed and converts its items to entries, in feed order.
func (s *Source) Fetch(ctx context.Context, feed news.Feed) ([]news.FeedEntry, error) {
	if err := s.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	parsed, err := s.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("error parsing RSS %s: %w", feed.URL, err)
	}

	entries := make([]news.FeedEntry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, toEntry(item, feed))
	}

	s.logger.Debug("feed loaded", "feed", feed.Name, "items", len(entries))
	return entries, nil
}

func toEntry(item *gofeed.Item, feed news.Feed) news.FeedEntry {
	link := strings.TrimSpace(item.Link)
	if link == "" && strings.HasPrefix(item.GUID, "http") {
		link = item.GUID
	}

	published := item.PublishedParsed
	if published == nil {
		published = item.UpdatedParsed
	}

	return news.FeedEntry{
		Title:       scraper.Text(item.Title),
		Summary:     scraper.Text(item.Description),
		Body:        scraper.Text(item.Content),
		Link:        link,
		PublishedAt: published,
		SourceName:  feed.Name,
		Category:    feed.Category,
	}
}
