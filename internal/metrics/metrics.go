package metrics

import (
	"log/slog"
	"time"
)

// Run counts what happened to the entries of a single pipeline run.
// A run is single threaded, so no locking is done.
type Run struct {
	// Counters
	FeedsOK        int
	FeedsFailed    int
	EntriesFetched int
	Malformed      int
	Irrelevant     int
	NotTargetLang  int
	Duplicates     int
	Deferred       int // accepted but beyond the per-run cap
	Collisions     int
	RenderErrors   int
	WriteErrors    int
	Written        int

	// Timings
	StartedAt      time.Time
	ProcessingTime time.Duration
}

// Start resets the counters and records the start time.
func (m *Run) Start(now time.Time) {
	*m = Run{StartedAt: now}
}

// Finish records the run duration.
func (m *Run) Finish(now time.Time) {
	m.ProcessingTime = now.Sub(m.StartedAt)
}

func (m *Run) IncrementFeedsOK()       { m.FeedsOK++ }
func (m *Run) IncrementFeedsFailed()   { m.FeedsFailed++ }
func (m *Run) AddEntriesFetched(n int) { m.EntriesFetched += n }
func (m *Run) IncrementMalformed()     { m.Malformed++ }
func (m *Run) IncrementIrrelevant()    { m.Irrelevant++ }
func (m *Run) IncrementNotTargetLang() { m.NotTargetLang++ }
func (m *Run) IncrementDuplicates()    { m.Duplicates++ }
func (m *Run) AddDeferred(n int)       { m.Deferred += n }
func (m *Run) IncrementCollisions()    { m.Collisions++ }
func (m *Run) IncrementRenderErrors()  { m.RenderErrors++ }
func (m *Run) IncrementWriteErrors()   { m.WriteErrors++ }
func (m *Run) IncrementWritten()       { m.Written++ }

// Snapshot returns a copy of the current counters.
func (m *Run) Snapshot() Run {
	return *m
}

// GetStats returns the counters keyed by name.
func (m *Run) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"feeds_ok":           m.FeedsOK,
		"feeds_failed":       m.FeedsFailed,
		"entries_fetched":    m.EntriesFetched,
		"malformed":          m.Malformed,
		"irrelevant":         m.Irrelevant,
		"not_target_lang":    m.NotTargetLang,
		"duplicates":         m.Duplicates,
		"deferred":           m.Deferred,
		"collisions":         m.Collisions,
		"render_errors":      m.RenderErrors,
		"write_errors":       m.WriteErrors,
		"written":            m.Written,
		"processing_time_ms": m.ProcessingTime.Milliseconds(),
	}
}

// LogAttrs returns the counters as slog attributes in a stable order.
func (m *Run) LogAttrs() []any {
	return []any{
		slog.Int("feeds_ok", m.FeedsOK),
		slog.Int("feeds_failed", m.FeedsFailed),
		slog.Int("entries_fetched", m.EntriesFetched),
		slog.Int("malformed", m.Malformed),
		slog.Int("irrelevant", m.Irrelevant),
		slog.Int("not_target_lang", m.NotTargetLang),
		slog.Int("duplicates", m.Duplicates),
		slog.Int("deferred", m.Deferred),
		slog.Int("collisions", m.Collisions),
		slog.Int("render_errors", m.RenderErrors),
		slog.Int("write_errors", m.WriteErrors),
		slog.Int("written", m.Written),
		slog.Duration("took", m.ProcessingTime),
	}
}
