package news

import (
	"strings"
	"time"
)

// Feed is a named, categorized RSS source.
type Feed struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// FeedEntry is a raw item as returned by a feed source.
type FeedEntry struct {
	Title       string
	Summary     string
	Body        string // optional, may already be truncated by the source
	Link        string
	PublishedAt *time.Time
	SourceName  string
	Category    string
}

// Candidate is a FeedEntry after normalization, pending acceptance.
type Candidate struct {
	Title       string
	Summary     string
	Content     string
	Link        string
	PublishedAt *time.Time
	Source      string
	Category    string

	// Hash is the identity used for deduplication. Set by the pipeline.
	Hash string
}

// Document is a rendered output unit.
type Document struct {
	Slug    string
	Content string
}

// NewCandidate cleans the text fields of e. Summary and content are cut to
// summaryMax and contentMax runes and always carry a trailing ellipsis.
func NewCandidate(e FeedEntry, summaryMax, contentMax int) Candidate {
	return Candidate{
		Title:       Clean(e.Title),
		Summary:     Truncate(Clean(e.Summary), summaryMax),
		Content:     Truncate(Clean(e.Body), contentMax),
		Link:        strings.TrimSpace(e.Link),
		PublishedAt: e.PublishedAt,
		Source:      e.SourceName,
		Category:    e.Category,
	}
}

// Text joins title, summary and content the way the classifiers see them.
func (c Candidate) Text() string {
	return c.Title + " " + c.Summary + " " + c.Content
}

// PublishedDate returns the publication time, or now when the feed gave none.
func (c Candidate) PublishedDate(now time.Time) time.Time {
	if c.PublishedAt != nil && !c.PublishedAt.IsZero() {
		return *c.PublishedAt
	}
	return now
}
