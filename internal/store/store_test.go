package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-tracker/pkg/types"
)

func paperFixture(arxivID string, published time.Time) *types.Paper {
	return &types.Paper{
		ArxivID:         arxivID,
		Title:           "Paper " + arxivID,
		Summary:         "An abstract for " + arxivID + ".",
		Authors:         []string{"Jane Doe"},
		Categories:      []types.Category{{Code: "cs.AI", Name: "Artificial Intelligence"}},
		PrimaryCategory: "cs.AI",
		Published:       published,
		Updated:         published,
		AbsURL:          "https://arxiv.org/abs/" + arxivID,
		PDFURL:          "https://arxiv.org/pdf/" + arxivID + ".pdf",
		Annotation: types.Annotation{
			Keywords:        []types.Keyword{{Word: "testing", Count: 2}},
			OneLiner:        "An abstract",
			PopularityScore: 10,
			ReadMinutes:     1,
			ResearchTypes:   []string{"method"},
			AnalyzedAt:      published,
		},
	}
}

func boolPtr(b bool) *bool { return &b }

func TestUpsertInsert(t *testing.T) {
	c := New()
	got := c.Upsert(paperFixture("2301.00001", time.Now()))

	assert.Equal(t, int64(1), got.LocalID)
	assert.False(t, got.IsRead)
	assert.False(t, got.IsBookmarked)
	assert.Empty(t, got.Notes)
	assert.False(t, got.SyncedAt.IsZero())

	second := c.Upsert(paperFixture("2301.00002", time.Now()))
	assert.Equal(t, int64(2), second.LocalID, "LocalIDs are monotonic")
	assert.Equal(t, 2, c.Size())
}

func TestUpsertMergePreservesUserFields(t *testing.T) {
	c := New()
	first := c.Upsert(paperFixture("2301.00001", time.Now()))

	_, err := c.Update(first.LocalID, map[string]any{
		"is_read":       true,
		"is_bookmarked": true,
		"notes":         "keep me",
	})
	require.NoError(t, err)

	// Re-sync the same arXiv ID with a changed title.
	updated := paperFixture("2301.00001", time.Now())
	updated.Title = "Revised Title"
	merged := c.Upsert(updated)

	assert.Equal(t, first.LocalID, merged.LocalID, "LocalID stable across merges")
	assert.Equal(t, "Revised Title", merged.Title, "feed fields overwritten")
	assert.True(t, merged.IsRead, "user fields preserved")
	assert.True(t, merged.IsBookmarked)
	assert.Equal(t, "keep me", merged.Notes)
	assert.Equal(t, 1, c.Size(), "no duplicate for a known arXiv ID")
}

func TestUpsertIdempotent(t *testing.T) {
	c := New()
	for i := 0; i < 3; i++ {
		c.Upsert(paperFixture("2301.00001", time.Now()))
		c.Upsert(paperFixture("2301.00002", time.Now()))
	}
	assert.Equal(t, 2, c.Size())

	p, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "2301.00001", p.ArxivID)
}

func TestQueryPaginationTotal(t *testing.T) {
	c := New()
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		c.Upsert(paperFixture(fmt.Sprintf("2306.%05d", i), base.Add(time.Duration(i)*time.Hour)))
	}

	page, total := c.Query(QueryOptions{Limit: 5, Offset: 0})
	assert.Len(t, page, 5)
	assert.Equal(t, 12, total, "total reflects matches before pagination")

	page, total = c.Query(QueryOptions{Limit: 5, Offset: 10})
	assert.Len(t, page, 2)
	assert.Equal(t, 12, total)

	page, total = c.Query(QueryOptions{Limit: 5, Offset: 50})
	assert.Empty(t, page)
	assert.Equal(t, 12, total)
}

func TestQueryDefaultOrderPublishedDescending(t *testing.T) {
	c := New()
	base := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	c.Upsert(paperFixture("2306.00001", base))
	c.Upsert(paperFixture("2306.00002", base.Add(48*time.Hour)))
	c.Upsert(paperFixture("2306.00003", base.Add(24*time.Hour)))

	page, _ := c.Query(QueryOptions{})
	require.Len(t, page, 3)
	assert.Equal(t, "2306.00002", page[0].ArxivID)
	assert.Equal(t, "2306.00003", page[1].ArxivID)
	assert.Equal(t, "2306.00001", page[2].ArxivID)
}

func TestQuerySortOrders(t *testing.T) {
	c := New()
	now := time.Now()

	hot := paperFixture("2306.00001", now)
	hot.Annotation.PopularityScore = 90
	hot.Annotation.ReadMinutes = 5
	cold := paperFixture("2306.00002", now.Add(time.Hour))
	cold.Annotation.PopularityScore = 5
	cold.Annotation.ReadMinutes = 1
	c.Upsert(hot)
	c.Upsert(cold)

	page, _ := c.Query(QueryOptions{SortBy: SortPopularity})
	require.Len(t, page, 2)
	assert.Equal(t, "2306.00001", page[0].ArxivID, "popularity sorts descending")

	page, _ = c.Query(QueryOptions{SortBy: SortReadTime})
	require.Len(t, page, 2)
	assert.Equal(t, "2306.00002", page[0].ArxivID, "read time sorts ascending")
}

func TestQueryCategoryFilter(t *testing.T) {
	c := New()
	now := time.Now()

	ai := paperFixture("2306.00001", now)
	vision := paperFixture("2306.00002", now)
	vision.Categories = []types.Category{{Code: "cs.CV", Name: "Computer Vision"}}
	vision.PrimaryCategory = "cs.CV"
	c.Upsert(ai)
	c.Upsert(vision)

	tests := []struct {
		name   string
		filter string
		want   int
	}{
		{"exact code", "cs.CV", 1},
		{"code case-insensitive", "CS.cv", 1},
		{"display name substring", "vision", 1},
		{"display name substring case-insensitive", "VISION", 1},
		{"no match", "q-bio", 0},
		{"empty matches all", "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total := c.Query(QueryOptions{Category: tt.filter})
			assert.Equal(t, tt.want, total)
		})
	}
}

func TestQueryFlagFilters(t *testing.T) {
	c := New()
	now := time.Now()
	a := c.Upsert(paperFixture("2306.00001", now))
	c.Upsert(paperFixture("2306.00002", now))

	_, err := c.Update(a.LocalID, map[string]any{"is_read": true, "is_bookmarked": true})
	require.NoError(t, err)

	_, total := c.Query(QueryOptions{IsRead: boolPtr(true)})
	assert.Equal(t, 1, total)
	_, total = c.Query(QueryOptions{IsRead: boolPtr(false)})
	assert.Equal(t, 1, total)
	_, total = c.Query(QueryOptions{IsBookmarked: boolPtr(true)})
	assert.Equal(t, 1, total)
	_, total = c.Query(QueryOptions{IsBookmarked: boolPtr(false)})
	assert.Equal(t, 1, total)
}

func TestQuerySearch(t *testing.T) {
	c := New()
	now := time.Now()

	p := paperFixture("2306.00001", now)
	p.Title = "Scaling Transformers"
	p.Summary = "A treatise on very large models."
	p.Authors = []string{"Grace Hopper"}
	p.Annotation.Keywords = []types.Keyword{{Word: "distillation", Count: 3}}
	c.Upsert(p)

	other := paperFixture("2306.00002", now)
	other.Title = "Unrelated"
	other.Summary = "Nothing shared."
	other.Authors = []string{"Alan Turing"}
	other.Annotation.Keywords = nil
	c.Upsert(other)

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"title match", "transformers", 1},
		{"summary match", "treatise", 1},
		{"author match", "hopper", 1},
		{"keyword match", "distill", 1},
		{"case-insensitive", "SCALING", 1},
		{"no match", "quantum", 0},
		{"matches either paper", "a", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total := c.Query(QueryOptions{Search: tt.search})
			assert.Equal(t, tt.want, total)
		})
	}
}

func TestGetNotFound(t *testing.T) {
	c := New()
	_, err := c.Get(42)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(42), nf.LocalID)
}

func TestUpdateRejectsDerivedFields(t *testing.T) {
	c := New()
	p := c.Upsert(paperFixture("2306.00001", time.Now()))

	tests := []struct {
		name   string
		fields map[string]any
	}{
		{"annotation field", map[string]any{"popularity_score": 99}},
		{"identity field", map[string]any{"arxiv_id": "0000.00000"}},
		{"surrogate key", map[string]any{"id": int64(7)}},
		{"unknown field", map[string]any{"favourite": true}},
		{"wrong type", map[string]any{"is_read": "yes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Update(p.LocalID, tt.fields)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestUpdateRejectedPayloadAppliesNothing(t *testing.T) {
	c := New()
	p := c.Upsert(paperFixture("2306.00001", time.Now()))

	_, err := c.Update(p.LocalID, map[string]any{
		"notes":            "should not stick",
		"popularity_score": 99,
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	got, err := c.Get(p.LocalID)
	require.NoError(t, err)
	assert.Empty(t, got.Notes, "a rejected payload must not partially apply")
}

func TestUpdateAppliesAllowedFields(t *testing.T) {
	c := New()
	p := c.Upsert(paperFixture("2306.00001", time.Now()))

	got, err := c.Update(p.LocalID, map[string]any{
		"is_read": true,
		"notes":   "worth rereading",
		"title":   "Corrected Title",
	})
	require.NoError(t, err)
	assert.True(t, got.IsRead)
	assert.Equal(t, "worth rereading", got.Notes)
	assert.Equal(t, "Corrected Title", got.Title)
}

func TestUpdateNotFound(t *testing.T) {
	c := New()
	_, err := c.Update(9, map[string]any{"is_read": true})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(9), nf.LocalID)
}

func TestDelete(t *testing.T) {
	c := New()
	p := c.Upsert(paperFixture("2306.00001", time.Now()))

	require.NoError(t, c.Delete(p.LocalID))

	_, err := c.Get(p.LocalID)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, 0, c.Size())

	// Deleting again fails and changes nothing.
	err = c.Delete(p.LocalID)
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, 0, c.Size())
}

func TestDeleteDoesNotRecycleLocalIDs(t *testing.T) {
	c := New()
	first := c.Upsert(paperFixture("2306.00001", time.Now()))
	require.NoError(t, c.Delete(first.LocalID))

	second := c.Upsert(paperFixture("2306.00002", time.Now()))
	assert.Greater(t, second.LocalID, first.LocalID)
}

func TestStats(t *testing.T) {
	c := New()
	now := time.Now()

	today := paperFixture("2306.00001", now)
	today.Annotation.Keywords = []types.Keyword{{Word: "alignment", Count: 3}}
	old := paperFixture("2306.00002", now.AddDate(0, -1, 0))
	old.Annotation.Keywords = []types.Keyword{{Word: "alignment", Count: 2}, {Word: "scaling", Count: 4}}
	old.Categories = []types.Category{{Code: "cs.LG", Name: "Machine Learning"}}
	old.PrimaryCategory = "cs.LG"

	a := c.Upsert(today)
	c.Upsert(old)
	_, err := c.Update(a.LocalID, map[string]any{"is_read": true, "is_bookmarked": true})
	require.NoError(t, err)

	s := c.Stats()
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Today)
	assert.Equal(t, 1, s.Read)
	assert.Equal(t, 1, s.Bookmarked)
	assert.Equal(t, map[string]int{"cs.AI": 1, "cs.LG": 1}, s.Categories)
	assert.False(t, s.LastSync.IsZero())

	// Keyword counts aggregate across papers and sort descending.
	require.NotEmpty(t, s.TopKeywords)
	assert.Equal(t, types.Keyword{Word: "alignment", Count: 5}, s.TopKeywords[0])
	assert.Equal(t, types.Keyword{Word: "scaling", Count: 4}, s.TopKeywords[1])
}

func TestStatsEmptyCollection(t *testing.T) {
	c := New()
	s := c.Stats()
	assert.Equal(t, 0, s.Total)
	assert.True(t, s.LastSync.IsZero())
	assert.Empty(t, s.TopKeywords)
}

func TestErrorsAsSupport(t *testing.T) {
	err := error(&NotFoundError{LocalID: 3})
	wrapped := fmt.Errorf("outer: %w", err)

	var nf *NotFoundError
	assert.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, int64(3), nf.LocalID)
}
