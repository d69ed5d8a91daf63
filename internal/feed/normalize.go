// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-tracker/pkg/types"
)

// URL templates derived from the arXiv ID.
const (
	absURLFormat = "https://arxiv.org/abs/%s"
	pdfURLFormat = "https://arxiv.org/pdf/%s.pdf"
)

// MalformedRecordError reports a raw record that cannot be normalized.
// Such records are skipped; they never abort a batch.
type MalformedRecordError struct {
	// Field names the missing or unusable raw field.
	Field string
}

func (e *MalformedRecordError) Error() string {
	return "malformed record: missing or invalid " + e.Field
}

// ExtractID pulls the arXiv ID from an entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
// The version suffix is stripped so the ID stays stable across revisions.
func ExtractID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// cleanText collapses runs of whitespace to single spaces and trims. Feed
// titles and abstracts arrive with hard-wrapped newlines and indentation.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize converts a raw feed record into a canonical Paper. Identity,
// URLs, authors, and categories are derived here; annotations, LocalID,
// SyncedAt, and user-owned fields are owned by later stages. Returns
// *MalformedRecordError when the record lacks a usable identifier.
func Normalize(raw RawRecord, lex Lexicon) (*types.Paper, error) {
	id := ExtractID(raw.IDURL)
	if id == "" {
		return nil, &MalformedRecordError{Field: "id"}
	}

	p := &types.Paper{
		ArxivID: id,
		Title:   cleanText(raw.Title),
		Summary: cleanText(raw.Summary),
		AbsURL:  fmt.Sprintf(absURLFormat, id),
		PDFURL:  fmt.Sprintf(pdfURLFormat, id),
	}

	for _, a := range raw.Authors {
		name := strings.TrimSpace(a.Name)
		if name != "" {
			p.Authors = append(p.Authors, name)
		}
	}

	for _, c := range raw.Categories {
		if c.Term == "" {
			continue
		}
		p.Categories = append(p.Categories, types.Category{
			Code: c.Term,
			Name: lex.Resolve(c.Term),
		})
	}

	// Prefer the explicit primary-category element; fall back to the
	// first parsed category.
	if raw.PrimaryCategory != nil && raw.PrimaryCategory.Term != "" {
		p.PrimaryCategory = raw.PrimaryCategory.Term
	} else if len(p.Categories) > 0 {
		p.PrimaryCategory = p.Categories[0].Code
	}

	if t, err := time.Parse(time.RFC3339, raw.Published); err == nil {
		p.Published = t
	}
	if t, err := time.Parse(time.RFC3339, raw.Updated); err == nil {
		p.Updated = t
	}

	return p, nil
}
