// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed fetches raw records from the arXiv Atom API and normalizes
// them into canonical papers.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/arxiv-tracker/internal/httputil"
	"github.com/pdiddy/arxiv-tracker/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// RawRecord is a decoded Atom entry as returned by the feed. Fields are
// unvalidated; Normalize turns a RawRecord into a types.Paper.
type RawRecord struct {
	// IDURL is the entry identifier URL, carrying the arXiv ID and
	// version suffix (e.g. "http://arxiv.org/abs/2301.07041v2").
	IDURL           string        `xml:"id"`
	Title           string        `xml:"title"`
	Summary         string        `xml:"summary"`
	Published       string        `xml:"published"`
	Updated         string        `xml:"updated"`
	Authors         []RawAuthor   `xml:"author"`
	Categories      []RawCategory `xml:"category"`
	PrimaryCategory *RawCategory  `xml:"primary_category"`
}

// RawAuthor is an Atom author element.
type RawAuthor struct {
	Name string `xml:"name"`
}

// RawCategory is an Atom category element.
type RawCategory struct {
	Term string `xml:"term,attr"`
}

type rawFeed struct {
	Entries []RawRecord `xml:"entry"`
}

// FetchError reports a failed feed fetch: network error, timeout,
// unexpected status, or an unparsable response. Any FetchError is fatal to
// the sync call that triggered it.
type FetchError struct {
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching feed: %s: %v", e.Reason, e.Err)
	}
	return "fetching feed: " + e.Reason
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher returns up to maxResults raw records for a category, newest
// submissions first. The sync orchestrator depends on this interface so
// tests can substitute a stub.
type Fetcher interface {
	Fetch(ctx context.Context, category string, maxResults int) ([]RawRecord, error)
}

// Client fetches from the arXiv Atom API.
type Client struct {
	http *http.Client
	cfg  types.FetchConfig
}

// NewClient builds a Client with the configured timeout and User-Agent.
func NewClient(cfg types.FetchConfig) *Client {
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// Fetch queries the arXiv API for the latest submissions in a category,
// sorted by submission date descending. All failures surface as *FetchError.
func (c *Client) Fetch(ctx context.Context, category string, maxResults int) ([]RawRecord, error) {
	if maxResults <= 0 {
		maxResults = c.cfg.MaxResults
	}

	query := url.QueryEscape("cat:" + category)
	apiURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, query, maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, &FetchError{Reason: "creating request", Err: err}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, &FetchError{Reason: "arXiv API request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Reason: fmt.Sprintf("arXiv API returned HTTP %d", resp.StatusCode)}
	}

	var feed rawFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, &FetchError{Reason: "parsing arXiv response", Err: err}
	}

	return feed.Entries, nil
}
