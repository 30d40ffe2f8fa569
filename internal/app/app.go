package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/deusflow/noticias/internal/metrics"
	"github.com/deusflow/noticias/internal/news"
	"github.com/deusflow/noticias/internal/storage"
)

// FeedSource supplies the raw entries of one feed.
type FeedSource interface {
	Fetch(ctx context.Context, feed news.Feed) ([]news.FeedEntry, error)
}

// SeenStore loads and persists the seen set as a whole.
type SeenStore interface {
	Load(ctx context.Context) (storage.SeenSet, error)
	Save(ctx context.Context, set storage.SeenSet) error
}

// DocumentSink stores a rendered document. It returns
// storage.ErrDocumentExists when the slug is taken.
type DocumentSink interface {
	Write(doc news.Document) (string, error)
}

// Renderer turns a candidate into document text.
type Renderer interface {
	Render(c news.Candidate, now time.Time) (string, error)
}

// Summarizer rewrites the summary of an accepted item. Optional.
type Summarizer interface {
	Summarize(ctx context.Context, title, content string) (string, error)
}

// Options is the run policy.
type Options struct {
	Feeds             []news.Feed
	MaxPostsPerRun    int
	MaxEntriesPerFeed int
	SummaryMaxRunes   int
	ContentMaxRunes   int
}

// Deps are the collaborators of a pipeline. Summarizer, Logger and Now may
// be left nil.
type Deps struct {
	Source     FeedSource
	Store      SeenStore
	Sink       DocumentSink
	Renderer   Renderer
	Relevance  *news.RelevanceClassifier
	Language   *news.LanguageClassifier
	Summarizer Summarizer
	Logger     *slog.Logger
	Now        func() time.Time
}

// Result is the outcome of one run.
type Result struct {
	Written int
	Stats   metrics.Run
}

// Success reports whether the run published anything.
func (r Result) Success() bool {
	return r.Written > 0
}

// Pipeline fetches, filters, deduplicates and renders feed entries.
type Pipeline struct {
	opts       Options
	source     FeedSource
	store      SeenStore
	sink       DocumentSink
	renderer   Renderer
	relevance  *news.RelevanceClassifier
	language   *news.LanguageClassifier
	summarizer Summarizer
	logger     *slog.Logger
	now        func() time.Time

	stats metrics.Run
}

// New validates opts and deps and builds a pipeline.
func New(opts Options, deps Deps) (*Pipeline, error) {
	if deps.Source == nil || deps.Store == nil || deps.Sink == nil || deps.Renderer == nil {
		return nil, errors.New("pipeline requires source, store, sink and renderer")
	}
	if deps.Relevance == nil || deps.Language == nil {
		return nil, errors.New("pipeline requires relevance and language classifiers")
	}
	if opts.MaxPostsPerRun <= 0 || opts.MaxEntriesPerFeed <= 0 {
		return nil, errors.New("post cap and entries per feed must be positive")
	}

	p := &Pipeline{
		opts:       opts,
		source:     deps.Source,
		store:      deps.Store,
		sink:       deps.Sink,
		renderer:   deps.Renderer,
		relevance:  deps.Relevance,
		language:   deps.Language,
		summarizer: deps.Summarizer,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p, nil
}

// Run performs one pass: load the seen set, collect candidates from every
// feed, drop known ones, publish up to the cap and persist the seen set.
// Only seen set failures are returned; everything else is logged and skipped.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	now := p.now()
	p.stats.Start(now)
	p.logger.Info("starting news run", "feeds", len(p.opts.Feeds), "max_posts", p.opts.MaxPostsPerRun)

	seen, err := p.store.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load seen set: %w", err)
	}
	before := seen.Len()

	candidates := p.fetchCandidates(ctx)
	fresh := p.dropSeen(candidates, seen)
	p.logger.Info("new items found", "count", len(fresh))

	for _, c := range p.limit(fresh) {
		if p.publish(ctx, c, now) {
			seen.MarkSeen(c.Hash)
		}
	}

	if err := p.store.Save(ctx, seen); err != nil {
		return Result{Written: p.stats.Written, Stats: p.stats.Snapshot()}, fmt.Errorf("failed to save seen set: %w", err)
	}

	p.stats.Finish(p.now())
	p.logger.Info("news run finished", append(p.stats.LogAttrs(), "seen_added", seen.Len()-before)...)

	return Result{Written: p.stats.Written, Stats: p.stats.Snapshot()}, nil
}

// Preview runs the selection and rendering of a run without writing
// documents or touching the seen set. At most n documents are returned; a
// non-positive n means the run cap.
func (p *Pipeline) Preview(ctx context.Context, n int) ([]news.Document, error) {
	now := p.now()
	p.stats.Start(now)

	seen, err := p.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load seen set: %w", err)
	}

	fresh := p.dropSeen(p.fetchCandidates(ctx), seen)
	if n <= 0 {
		n = p.opts.MaxPostsPerRun
	}
	if len(fresh) > n {
		fresh = fresh[:n]
	}

	docs := make([]news.Document, 0, len(fresh))
	for _, c := range fresh {
		content, err := p.renderer.Render(c, now)
		if err != nil {
			p.logger.Error("render failed", "title", c.Title, "error", err)
			continue
		}
		docs = append(docs, news.Document{Slug: news.Slug(c.Title, now), Content: content})
	}
	return docs, nil
}

// fetchCandidates normalizes and classifies the newest entries of every
// feed, in feed order. A failing feed contributes nothing.
func (p *Pipeline) fetchCandidates(ctx context.Context) []news.Candidate {
	var out []news.Candidate

	for _, feed := range p.opts.Feeds {
		p.logger.Info("fetching feed", "feed", feed.Name)

		entries, err := p.source.Fetch(ctx, feed)
		if err != nil {
			p.stats.IncrementFeedsFailed()
			p.logger.Warn("feed fetch failed", "feed", feed.Name, "error", err)
			continue
		}
		p.stats.IncrementFeedsOK()

		if len(entries) > p.opts.MaxEntriesPerFeed {
			entries = entries[:p.opts.MaxEntriesPerFeed]
		}
		p.stats.AddEntriesFetched(len(entries))

		for _, e := range entries {
			if e.SourceName == "" {
				e.SourceName = feed.Name
			}
			if e.Category == "" {
				e.Category = feed.Category
			}
			if c, ok := p.accept(e); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// accept normalizes e and applies the relevance and language filters.
func (p *Pipeline) accept(e news.FeedEntry) (news.Candidate, bool) {
	c := news.NewCandidate(e, p.opts.SummaryMaxRunes, p.opts.ContentMaxRunes)

	if c.Link == "" {
		p.stats.IncrementMalformed()
		p.logger.Warn("skipping entry without link", "feed", c.Source, "title", c.Title)
		return c, false
	}

	if !p.relevance.IsRelevant(c.Title, c.Summary, c.Content) {
		p.stats.IncrementIrrelevant()
		p.logger.Debug("skipping off-topic entry", "title", c.Title)
		return c, false
	}

	if !p.language.IsTargetLanguage(c.Text()) {
		p.stats.IncrementNotTargetLang()
		p.logger.Info("skipping entry not in target language", "title", truncateForLog(c.Title), "markers", p.language.MarkerCount(c.Text()))
		return c, false
	}

	return c, true
}

// dropSeen hashes every candidate and keeps those not in seen and not
// repeated earlier in the same run.
func (p *Pipeline) dropSeen(candidates []news.Candidate, seen storage.SeenSet) []news.Candidate {
	inRun := make(map[string]struct{}, len(candidates))
	fresh := make([]news.Candidate, 0, len(candidates))

	for _, c := range candidates {
		c.Hash = storage.Hash(c.Title, c.Link)

		if !seen.IsNew(c.Hash) {
			p.stats.IncrementDuplicates()
			p.logger.Debug("already published", "title", c.Title)
			continue
		}
		if _, dup := inRun[c.Hash]; dup {
			p.stats.IncrementDuplicates()
			p.logger.Debug("duplicate within run", "title", c.Title)
			continue
		}
		inRun[c.Hash] = struct{}{}
		fresh = append(fresh, c)
	}
	return fresh
}

// limit keeps the first MaxPostsPerRun candidates. The rest stay unmarked
// and are picked up by a later run.
func (p *Pipeline) limit(fresh []news.Candidate) []news.Candidate {
	if len(fresh) <= p.opts.MaxPostsPerRun {
		return fresh
	}
	p.stats.AddDeferred(len(fresh) - p.opts.MaxPostsPerRun)
	return fresh[:p.opts.MaxPostsPerRun]
}

// publish renders and writes one candidate. It reports whether a document
// was created.
func (p *Pipeline) publish(ctx context.Context, c news.Candidate, now time.Time) bool {
	if p.summarizer != nil {
		summary, err := p.summarizer.Summarize(ctx, c.Title, c.Content)
		if err != nil {
			p.logger.Warn("summary rewrite failed, keeping feed summary", "title", c.Title, "error", err)
		} else {
			c.Summary = news.Truncate(news.Clean(summary), p.opts.SummaryMaxRunes)
		}
	}

	slug := news.Slug(c.Title, now)

	content, err := p.renderer.Render(c, now)
	if err != nil {
		p.stats.IncrementRenderErrors()
		p.logger.Error("render failed", "slug", slug, "error", err)
		return false
	}

	path, err := p.sink.Write(news.Document{Slug: slug, Content: content})
	switch {
	case errors.Is(err, storage.ErrDocumentExists):
		p.stats.IncrementCollisions()
		p.logger.Info("document already exists, skipping", "path", path)
		return false
	case err != nil:
		p.stats.IncrementWriteErrors()
		p.logger.Error("write failed", "slug", slug, "error", err)
		return false
	}

	p.stats.IncrementWritten()
	p.logger.Info("document created", "path", path)
	return true
}

func truncateForLog(s string) string {
	if r := []rune(s); len(r) > 50 {
		return string(r[:50]) + "..."
	}
	return s
}
