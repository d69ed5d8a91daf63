// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the record and configuration types shared across
// the tracker's packages.
package types

import "time"

// Category pairs an arXiv category code with its human-readable name.
// Unknown codes carry their own code as the name.
type Category struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// Keyword is a token and its frequency within a paper's title and abstract.
type Keyword struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Annotation is the bundle of derived text-analysis signals attached to a
// paper. It is recomputed from Title and Summary on every sync and is never
// user-editable.
type Annotation struct {
	// Keywords lists the most frequent non-stop-word tokens, descending
	// by count, ties in first-encountered order.
	Keywords []Keyword `json:"keywords" yaml:"keywords"`

	// OneLiner is a single-sentence summary extracted from the abstract.
	OneLiner string `json:"one_liner" yaml:"one_liner"`

	// PopularityScore is a heuristic in [0,100] reflecting the density of
	// trending-topic phrases in the title and abstract.
	PopularityScore int `json:"popularity_score" yaml:"popularity_score"`

	// ReadMinutes estimates abstract reading time at 200 words/minute,
	// never below 1.
	ReadMinutes int `json:"read_minutes" yaml:"read_minutes"`

	// ResearchTypes holds the matched research-type labels. Always
	// non-empty; falls back to a single default label.
	ResearchTypes []string `json:"research_types" yaml:"research_types"`

	// AnalyzedAt records when this annotation was computed.
	AnalyzedAt time.Time `json:"analyzed_at" yaml:"analyzed_at"`
}

// Paper is the canonical record stored and served by the tracker.
//
// Identity: ArxivID is the stable external identifier (version suffix
// stripped); LocalID is a process-local surrogate key assigned once at
// first insertion and never reused. Re-syncing a known ArxivID overwrites
// all feed-sourced fields and the Annotation but preserves LocalID and the
// user-owned fields IsRead, IsBookmarked, and Notes.
type Paper struct {
	// LocalID is the surrogate key for point operations. Monotonically
	// increasing, assigned by the collection.
	LocalID int64 `json:"id" yaml:"id"`

	// ArxivID is the feed identifier without version suffix
	// (e.g. "2301.07041").
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the whitespace-normalized paper title.
	Title string `json:"title" yaml:"title"`

	// Summary is the whitespace-normalized abstract.
	Summary string `json:"summary" yaml:"summary"`

	// Authors lists author names in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Categories lists all categories with resolved display names.
	Categories []Category `json:"categories" yaml:"categories"`

	// PrimaryCategory is the most specific category code.
	PrimaryCategory string `json:"primary_category" yaml:"primary_category"`

	// Published and Updated come from the feed entry.
	Published time.Time `json:"published" yaml:"published"`
	Updated   time.Time `json:"updated" yaml:"updated"`

	// AbsURL and PDFURL are derived deterministically from ArxivID.
	AbsURL string `json:"abs_url" yaml:"abs_url"`
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Annotation holds the derived text-analysis signals.
	Annotation Annotation `json:"annotation" yaml:"annotation"`

	// SyncedAt is set on every successful merge.
	SyncedAt time.Time `json:"synced_at" yaml:"synced_at"`

	// User-owned fields, preserved across re-sync.
	IsRead       bool   `json:"is_read" yaml:"is_read"`
	IsBookmarked bool   `json:"is_bookmarked" yaml:"is_bookmarked"`
	Notes        string `json:"notes" yaml:"notes"`
}
