// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tracker coordinates the fetch, normalize, annotate, and merge
// cycle over the paper collection.
package tracker

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/arxiv-tracker/internal/analyze"
	"github.com/pdiddy/arxiv-tracker/internal/feed"
	"github.com/pdiddy/arxiv-tracker/internal/store"
)

// SyncFailedError reports a sync call that failed before any record could
// be processed, carrying the underlying fetch failure.
type SyncFailedError struct {
	Category string
	Err      error
}

func (e *SyncFailedError) Error() string {
	return fmt.Sprintf("sync failed for category %s: %v", e.Category, e.Err)
}

func (e *SyncFailedError) Unwrap() error { return e.Err }

// SkippedRecord names a raw record dropped during normalization.
type SkippedRecord struct {
	// IDURL is the raw entry identifier, possibly empty when that is what
	// made the record malformed.
	IDURL  string `json:"id_url" yaml:"id_url"`
	Reason string `json:"reason" yaml:"reason"`
}

// Summary reports the outcome of one sync call.
type Summary struct {
	// Synced is the number of records merged by this call.
	Synced int `json:"synced" yaml:"synced"`

	// Total is the collection size after the merge.
	Total int `json:"total" yaml:"total"`

	// Skipped lists records dropped during normalization.
	Skipped []SkippedRecord `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Tracker wires the fetch collaborator, the analyzer, and the collection.
type Tracker struct {
	fetcher feed.Fetcher
	papers  *store.Collection
	lexicon feed.Lexicon
	topK    int
}

// New builds a Tracker. topK bounds the keywords kept per paper.
func New(fetcher feed.Fetcher, papers *store.Collection, lexicon feed.Lexicon, topK int) *Tracker {
	return &Tracker{
		fetcher: fetcher,
		papers:  papers,
		lexicon: lexicon,
		topK:    topK,
	}
}

// Sync fetches up to maxResults raw records for category, normalizes and
// annotates them, and merges them into the collection. Records failing
// normalization are skipped and counted, never aborting the batch. A fetch
// failure aborts the whole call with *SyncFailedError before anything is
// written. Re-running Sync with an unchanged feed never grows the
// collection or touches user-owned fields: the upsert path is the only
// insertion path.
func (t *Tracker) Sync(ctx context.Context, category string, maxResults int, w io.Writer) (Summary, error) {
	raws, err := t.fetcher.Fetch(ctx, category, maxResults)
	if err != nil {
		return Summary{}, &SyncFailedError{Category: category, Err: err}
	}

	var summary Summary
	for _, raw := range raws {
		p, err := feed.Normalize(raw, t.lexicon)
		if err != nil {
			fmt.Fprintf(w, "skipped: %s (%v)\n", raw.IDURL, err)
			summary.Skipped = append(summary.Skipped, SkippedRecord{
				IDURL:  raw.IDURL,
				Reason: err.Error(),
			})
			continue
		}

		p.Annotation = analyze.Annotate(p.Title, p.Summary, t.topK)
		merged := t.papers.Upsert(p)
		summary.Synced++
		fmt.Fprintf(w, "merged:  %s (%s)\n", merged.ArxivID, merged.Title)
	}

	summary.Total = t.papers.Size()
	fmt.Fprintf(w, "\nSync summary: %d merged, %d skipped (collection: %d)\n",
		summary.Synced, len(summary.Skipped), summary.Total)
	return summary, nil
}
