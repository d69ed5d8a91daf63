package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-tracker/pkg/types"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFile)

	c := New()
	p := paperFixture("2301.00001", time.Date(2023, 1, 17, 12, 0, 0, 0, time.UTC))
	p.Notes = ""
	inserted := c.Upsert(p)
	_, err := c.Update(inserted.LocalID, map[string]any{
		"is_read":       true,
		"is_bookmarked": true,
		"notes":         "survives the round trip",
	})
	require.NoError(t, err)
	c.Upsert(paperFixture("2301.00002", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, Save(c, path))

	restored, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, restored.Size())

	want, err := c.Get(inserted.LocalID)
	require.NoError(t, err)
	got, err := restored.Get(inserted.LocalID)
	require.NoError(t, err)

	// Every field round-trips.
	assert.Equal(t, want.ArxivID, got.ArxivID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Summary, got.Summary)
	assert.Equal(t, want.Authors, got.Authors)
	assert.Equal(t, want.Categories, got.Categories)
	assert.Equal(t, want.PrimaryCategory, got.PrimaryCategory)
	assert.True(t, want.Published.Equal(got.Published))
	assert.True(t, want.Updated.Equal(got.Updated))
	assert.Equal(t, want.AbsURL, got.AbsURL)
	assert.Equal(t, want.PDFURL, got.PDFURL)
	assert.Equal(t, want.Annotation.Keywords, got.Annotation.Keywords)
	assert.Equal(t, want.Annotation.OneLiner, got.Annotation.OneLiner)
	assert.Equal(t, want.Annotation.PopularityScore, got.Annotation.PopularityScore)
	assert.Equal(t, want.Annotation.ReadMinutes, got.Annotation.ReadMinutes)
	assert.Equal(t, want.Annotation.ResearchTypes, got.Annotation.ResearchTypes)
	assert.True(t, want.SyncedAt.Equal(got.SyncedAt))
	assert.True(t, got.IsRead)
	assert.True(t, got.IsBookmarked)
	assert.Equal(t, "survives the round trip", got.Notes)
}

func TestSnapshotPreservesIDCounter(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFile)

	c := New()
	first := c.Upsert(paperFixture("2301.00001", time.Now()))
	second := c.Upsert(paperFixture("2301.00002", time.Now()))
	require.NoError(t, c.Delete(second.LocalID))
	require.NoError(t, Save(c, path))

	restored, err := Load(path)
	require.NoError(t, err)

	// A fresh insert after restore must not reuse the deleted LocalID.
	third := restored.Upsert(paperFixture("2301.00003", time.Now()))
	assert.Greater(t, third.LocalID, second.LocalID)
	assert.NotEqual(t, first.LocalID, third.LocalID)
}

func TestSaveConcurrentWithUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFile)

	c := New()
	p := c.Upsert(paperFixture("2301.00001", time.Now()))

	// Saving must copy records out under the read lock, so in-place field
	// mutations by Update never race with the snapshot writer.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			if _, err := c.Update(p.LocalID, map[string]any{"notes": fmt.Sprintf("note %d", i)}); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	for i := 0; i < 20; i++ {
		require.NoError(t, Save(c, path))
	}
	<-done

	restored, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.Size())
}

func TestLoadRejectsCorruptedSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFile)

	c := New()
	c.Upsert(paperFixture("2301.00001", time.Now()))
	require.NoError(t, Save(c, path))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE papers SET authors = 'not json'`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Load(path)
	require.Error(t, err, "corrupted rows must fail the load, not restore partial papers")
	assert.Contains(t, err.Error(), "2301.00001")
}

func TestLoadMissingSnapshotIsEmpty(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope", DBFile))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Size())

	p := c.Upsert(paperFixture("2301.00001", time.Now()))
	assert.Equal(t, int64(1), p.LocalID)
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFile)

	c := New()
	p := c.Upsert(paperFixture("2301.00001", time.Now()))
	require.NoError(t, Save(c, path))

	require.NoError(t, c.Delete(p.LocalID))
	require.NoError(t, Save(c, path))

	restored, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, restored.Size(), "deleted papers must not resurrect")
}

func TestExportYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.yaml")

	c := New()
	c.Upsert(paperFixture("2301.00001", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
	c.Upsert(paperFixture("2301.00002", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, ExportYAML(c, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var papers []types.Paper
	require.NoError(t, yaml.Unmarshal(data, &papers))
	require.Len(t, papers, 2)
	assert.Equal(t, "2301.00002", papers[0].ArxivID, "export follows published-descending order")
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")

	c := New()
	c.Upsert(paperFixture("2301.00001", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, ExportJSON(c, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var papers []types.Paper
	require.NoError(t, json.Unmarshal(data, &papers))
	require.Len(t, papers, 1)
	assert.Equal(t, "2301.00001", papers[0].ArxivID)
}
