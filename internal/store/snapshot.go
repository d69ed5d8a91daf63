// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-tracker/pkg/types"
)

// DBFile is the snapshot database file name inside the data directory.
const DBFile = "tracker.db"

// Save writes the collection to a SQLite snapshot at path, replacing any
// previous snapshot contents. Every Paper field round-trips, as does the
// LocalID counter, so restored collections never reuse surrogate keys.
func Save(c *Collection, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("opening snapshot database: %w", err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM papers`); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO papers (local_id, arxiv_id, title, summary, authors,
			categories, primary_category, published, updated, abs_url,
			pdf_url, annotation, synced_at, is_read, is_bookmarked, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	// Copy records out under the read lock so a concurrent Update cannot
	// mutate a paper while it is being written.
	c.mu.RLock()
	papers := make([]types.Paper, 0, len(c.byID))
	for _, p := range c.byID {
		papers = append(papers, *p)
	}
	nextID := c.nextID
	c.mu.RUnlock()

	for _, p := range papers {
		authorsJSON, err := json.Marshal(p.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors for %s: %w", p.ArxivID, err)
		}
		categoriesJSON, err := json.Marshal(p.Categories)
		if err != nil {
			return fmt.Errorf("encoding categories for %s: %w", p.ArxivID, err)
		}
		annotationJSON, err := json.Marshal(p.Annotation)
		if err != nil {
			return fmt.Errorf("encoding annotation for %s: %w", p.ArxivID, err)
		}

		_, err = stmt.Exec(
			p.LocalID, p.ArxivID, p.Title, p.Summary, string(authorsJSON),
			string(categoriesJSON), p.PrimaryCategory,
			timeString(p.Published), timeString(p.Updated),
			p.AbsURL, p.PDFURL, string(annotationJSON),
			timeString(p.SyncedAt), p.IsRead, p.IsBookmarked, p.Notes,
		)
		if err != nil {
			return fmt.Errorf("inserting paper %s: %w", p.ArxivID, err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO tracker_meta (key, value) VALUES ('next_local_id', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		fmt.Sprintf("%d", nextID),
	)
	if err != nil {
		return fmt.Errorf("saving ID counter: %w", err)
	}

	return tx.Commit()
}

// Load restores a collection from the SQLite snapshot at path. A missing
// snapshot yields a fresh empty collection.
func Load(path string) (*Collection, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		return nil, err
	}

	c := New()

	rows, err := db.Query(
		`SELECT local_id, arxiv_id, title, summary, authors, categories,
			primary_category, published, updated, abs_url, pdf_url,
			annotation, synced_at, is_read, is_bookmarked, notes
		 FROM papers`)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p types.Paper
		var authorsJSON, categoriesJSON, annotationJSON string
		var published, updated, syncedAt string
		if err := rows.Scan(
			&p.LocalID, &p.ArxivID, &p.Title, &p.Summary, &authorsJSON,
			&categoriesJSON, &p.PrimaryCategory, &published, &updated,
			&p.AbsURL, &p.PDFURL, &annotationJSON, &syncedAt,
			&p.IsRead, &p.IsBookmarked, &p.Notes,
		); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}

		if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors for %s: %w", p.ArxivID, err)
		}
		if err := json.Unmarshal([]byte(categoriesJSON), &p.Categories); err != nil {
			return nil, fmt.Errorf("decoding categories for %s: %w", p.ArxivID, err)
		}
		if err := json.Unmarshal([]byte(annotationJSON), &p.Annotation); err != nil {
			return nil, fmt.Errorf("decoding annotation for %s: %w", p.ArxivID, err)
		}
		p.Published = parseTime(published)
		p.Updated = parseTime(updated)
		p.SyncedAt = parseTime(syncedAt)

		paper := p
		c.byID[paper.ArxivID] = &paper
		c.byLocal[paper.LocalID] = paper.ArxivID
		if paper.LocalID >= c.nextID {
			c.nextID = paper.LocalID + 1
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var stored string
	err = db.QueryRow(`SELECT value FROM tracker_meta WHERE key = 'next_local_id'`).Scan(&stored)
	if err == nil {
		var n int64
		if _, scanErr := fmt.Sscanf(stored, "%d", &n); scanErr == nil && n > c.nextID {
			c.nextID = n
		}
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("reading ID counter: %w", err)
	}

	return c, nil
}

func createSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			local_id INTEGER PRIMARY KEY,
			arxiv_id TEXT NOT NULL UNIQUE,
			title TEXT,
			summary TEXT,
			authors TEXT,
			categories TEXT,
			primary_category TEXT,
			published TEXT,
			updated TEXT,
			abs_url TEXT,
			pdf_url TEXT,
			annotation TEXT,
			synced_at TEXT,
			is_read INTEGER NOT NULL DEFAULT 0,
			is_bookmarked INTEGER NOT NULL DEFAULT 0,
			notes TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_published ON papers(published)`,
		`CREATE TABLE IF NOT EXISTS tracker_meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func timeString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
