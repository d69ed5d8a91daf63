// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store holds the in-memory paper collection keyed by arXiv ID,
// with a secondary index by local surrogate key, plus its SQLite snapshot
// and export adapters.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/arxiv-tracker/pkg/types"
)

// DefaultLimit is the page size when a query does not set one.
const DefaultLimit = 50

// SortOrder selects the query sort key.
type SortOrder string

const (
	// SortPublished orders by publication date, newest first (default).
	SortPublished SortOrder = "published"
	// SortPopularity orders by popularity score, highest first.
	SortPopularity SortOrder = "popularity"
	// SortReadTime orders by estimated read minutes, shortest first.
	SortReadTime SortOrder = "readtime"
)

// Collection is the keyed paper collection. One mutex serializes all
// mutations; queries take a read lock and copy records out, so callers
// never observe a partially applied upsert.
type Collection struct {
	mu      sync.RWMutex
	byID    map[string]*types.Paper // arXiv ID → record
	byLocal map[int64]string        // LocalID → arXiv ID
	nextID  int64                   // monotonic, never reused
}

// New returns an empty collection.
func New() *Collection {
	return &Collection{
		byID:    make(map[string]*types.Paper),
		byLocal: make(map[int64]string),
		nextID:  1,
	}
}

// Upsert merges a paper into the collection keyed by ArxivID. A new
// ArxivID gets a freshly allocated LocalID; a known one keeps its LocalID
// and the user-owned fields IsRead, IsBookmarked, and Notes, while every
// feed-sourced field and the annotation are overwritten. SyncedAt is set
// on each call. The resulting record is returned by value.
func (c *Collection) Upsert(p *types.Paper) types.Paper {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := *p
	merged.SyncedAt = time.Now().UTC()

	if existing, ok := c.byID[p.ArxivID]; ok {
		merged.LocalID = existing.LocalID
		merged.IsRead = existing.IsRead
		merged.IsBookmarked = existing.IsBookmarked
		merged.Notes = existing.Notes
	} else {
		merged.LocalID = c.nextID
		c.nextID++
		merged.IsRead = false
		merged.IsBookmarked = false
		merged.Notes = ""
		c.byLocal[merged.LocalID] = merged.ArxivID
	}

	c.byID[merged.ArxivID] = &merged
	return merged
}

// QueryOptions filters and pages a collection query.
type QueryOptions struct {
	// Category matches when it equals a category code case-insensitively
	// or is a case-insensitive substring of a resolved display name.
	Category string

	// IsRead and IsBookmarked filter on the user flags when non-nil.
	IsRead       *bool
	IsBookmarked *bool

	// Search is a case-insensitive substring matched against title,
	// summary, author names, and keyword words (OR across the four).
	Search string

	// SortBy defaults to SortPublished.
	SortBy SortOrder

	// Limit and Offset page the result. Limit <= 0 uses DefaultLimit.
	Limit  int
	Offset int
}

// Query applies filters, sorts, and pages the collection. It returns the
// page and the total number of matches before pagination.
func (c *Collection) Query(opts QueryOptions) ([]types.Paper, int) {
	c.mu.RLock()
	matched := make([]types.Paper, 0, len(c.byID))
	for _, p := range c.byID {
		if matches(p, opts) {
			matched = append(matched, *p)
		}
	}
	c.mu.RUnlock()

	sortPapers(matched, opts.SortBy)

	total := len(matched)

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []types.Paper{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total
}

func matches(p *types.Paper, opts QueryOptions) bool {
	if opts.Category != "" && !matchesCategory(p, opts.Category) {
		return false
	}
	if opts.IsRead != nil && p.IsRead != *opts.IsRead {
		return false
	}
	if opts.IsBookmarked != nil && p.IsBookmarked != *opts.IsBookmarked {
		return false
	}
	if opts.Search != "" && !matchesSearch(p, opts.Search) {
		return false
	}
	return true
}

func matchesCategory(p *types.Paper, filter string) bool {
	lower := strings.ToLower(filter)
	for _, cat := range p.Categories {
		if strings.EqualFold(cat.Code, filter) {
			return true
		}
		if strings.Contains(strings.ToLower(cat.Name), lower) {
			return true
		}
	}
	return false
}

func matchesSearch(p *types.Paper, search string) bool {
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Summary), q) {
		return true
	}
	for _, a := range p.Authors {
		if strings.Contains(strings.ToLower(a), q) {
			return true
		}
	}
	for _, k := range p.Annotation.Keywords {
		if strings.Contains(k.Word, q) {
			return true
		}
	}
	return false
}

// sortPapers orders deterministically: the requested key first, then
// publication date descending, then LocalID ascending.
func sortPapers(papers []types.Paper, by SortOrder) {
	less := func(a, b types.Paper) bool {
		if !a.Published.Equal(b.Published) {
			return a.Published.After(b.Published)
		}
		return a.LocalID < b.LocalID
	}

	switch by {
	case SortPopularity:
		sort.SliceStable(papers, func(i, j int) bool {
			if papers[i].Annotation.PopularityScore != papers[j].Annotation.PopularityScore {
				return papers[i].Annotation.PopularityScore > papers[j].Annotation.PopularityScore
			}
			return less(papers[i], papers[j])
		})
	case SortReadTime:
		sort.SliceStable(papers, func(i, j int) bool {
			if papers[i].Annotation.ReadMinutes != papers[j].Annotation.ReadMinutes {
				return papers[i].Annotation.ReadMinutes < papers[j].Annotation.ReadMinutes
			}
			return less(papers[i], papers[j])
		})
	default:
		sort.SliceStable(papers, func(i, j int) bool {
			return less(papers[i], papers[j])
		})
	}
}

// Get returns the paper with the given LocalID, or *NotFoundError.
func (c *Collection) Get(localID int64) (types.Paper, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.byLocal[localID]
	if !ok {
		return types.Paper{}, &NotFoundError{LocalID: localID}
	}
	return *c.byID[id], nil
}

// Updatable fields: user-owned flags and notes, plus title/summary
// corrections. Annotation and identity fields are rejected.
var updatableFields = map[string]string{
	"is_read":       "bool",
	"is_bookmarked": "bool",
	"notes":         "string",
	"title":         "string",
	"summary":       "string",
}

// Update applies a partial update to a paper. Only fields in
// updatableFields may appear; a derived, identity, or unknown field name
// yields *ValidationError and nothing is applied. Unknown LocalIDs yield
// *NotFoundError.
func (c *Collection) Update(localID int64, fields map[string]any) (types.Paper, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.byLocal[localID]
	if !ok {
		return types.Paper{}, &NotFoundError{LocalID: localID}
	}
	p := c.byID[id]

	// Validate the whole payload before touching the record so a rejected
	// update leaves no partial write.
	for name, value := range fields {
		kind, allowed := updatableFields[name]
		if !allowed {
			return types.Paper{}, &ValidationError{Field: name, Reason: "field is derived or unknown"}
		}
		switch kind {
		case "bool":
			if _, ok := value.(bool); !ok {
				return types.Paper{}, &ValidationError{Field: name, Reason: "expected a boolean"}
			}
		case "string":
			if _, ok := value.(string); !ok {
				return types.Paper{}, &ValidationError{Field: name, Reason: "expected a string"}
			}
		}
	}

	for name, value := range fields {
		switch name {
		case "is_read":
			p.IsRead = value.(bool)
		case "is_bookmarked":
			p.IsBookmarked = value.(bool)
		case "notes":
			p.Notes = value.(string)
		case "title":
			p.Title = value.(string)
		case "summary":
			p.Summary = value.(string)
		}
	}

	return *p, nil
}

// Delete removes a paper by LocalID. Unknown IDs yield *NotFoundError.
// The LocalID is never reallocated.
func (c *Collection) Delete(localID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.byLocal[localID]
	if !ok {
		return &NotFoundError{LocalID: localID}
	}
	delete(c.byLocal, localID)
	delete(c.byID, id)
	return nil
}

// Size returns the number of papers in the collection.
func (c *Collection) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// All returns every paper in the externally-visible default order:
// publication date descending.
func (c *Collection) All() []types.Paper {
	c.mu.RLock()
	papers := make([]types.Paper, 0, len(c.byID))
	for _, p := range c.byID {
		papers = append(papers, *p)
	}
	c.mu.RUnlock()

	sortPapers(papers, SortPublished)
	return papers
}

// Stats aggregates collection-wide counts.
type Stats struct {
	// Total is the collection size.
	Total int `json:"total" yaml:"total"`

	// Today counts papers published since local midnight.
	Today int `json:"today" yaml:"today"`

	// Read and Bookmarked count the user flags.
	Read       int `json:"read" yaml:"read"`
	Bookmarked int `json:"bookmarked" yaml:"bookmarked"`

	// Categories counts papers per primary category code.
	Categories map[string]int `json:"categories" yaml:"categories"`

	// TopKeywords aggregates keyword counts across all papers, descending,
	// truncated to the top 20.
	TopKeywords []types.Keyword `json:"top_keywords" yaml:"top_keywords"`

	// LastSync is the most recent SyncedAt, zero when the collection is
	// empty.
	LastSync time.Time `json:"last_sync" yaml:"last_sync"`
}

const topKeywordLimit = 20

// Stats computes aggregate counts over the whole collection.
func (c *Collection) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	midnight := localMidnight(time.Now())

	s := Stats{
		Total:      len(c.byID),
		Categories: make(map[string]int),
	}

	counts := make(map[string]int)
	for _, p := range c.byID {
		if !p.Published.Before(midnight) {
			s.Today++
		}
		if p.IsRead {
			s.Read++
		}
		if p.IsBookmarked {
			s.Bookmarked++
		}
		if p.PrimaryCategory != "" {
			s.Categories[p.PrimaryCategory]++
		}
		for _, k := range p.Annotation.Keywords {
			counts[k.Word] += k.Count
		}
		if p.SyncedAt.After(s.LastSync) {
			s.LastSync = p.SyncedAt
		}
	}

	s.TopKeywords = topKeywords(counts, topKeywordLimit)
	return s
}

func localMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// topKeywords sorts aggregated counts descending, breaking ties
// alphabetically for determinism, and truncates to limit.
func topKeywords(counts map[string]int, limit int) []types.Keyword {
	ks := make([]types.Keyword, 0, len(counts))
	for w, n := range counts {
		ks = append(ks, types.Keyword{Word: w, Count: n})
	}
	sort.Slice(ks, func(i, j int) bool {
		if ks[i].Count != ks[j].Count {
			return ks[i].Count > ks[j].Count
		}
		return ks[i].Word < ks[j].Word
	})
	if len(ks) > limit {
		ks = ks[:limit]
	}
	return ks
}
