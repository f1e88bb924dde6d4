package exchange

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return New(store)
}

func seedDataset(t *testing.T, s *Service) {
	t.Helper()
	duration := 30
	require.NoError(t, s.Store.BulkPutEntries([]models.ActivityEntry{
		{ID: "g1", OccurredAt: "2025-03-10T09:00:00Z", Type: models.EntryGreen,
			Title: "Morning run", Energy: 2, DurationMin: &duration,
			Tags: []string{"health"}, WeekKey: "2025-11"},
		{ID: "r1", OccurredAt: "2025-03-11T16:00:00Z", Type: models.EntryRed,
			Title: "Late meeting", Energy: -1, WeekKey: "2025-11"},
	}))
	require.NoError(t, s.Store.BulkPutSelections([]models.WeeklySelection{
		{WeekKey: "2025-11", Type: models.SelectionGreenBest, EntryIDs: []string{"g1"},
			Notes: map[string]models.SelectionNote{"g1": {Hypothesis: "movement helps"}}},
	}))
	require.NoError(t, s.Store.BulkPutReflections([]models.WeeklyReflection{
		{WeekKey: "2025-11", Q1: "run more"},
	}))
}

func TestExportAll(t *testing.T) {
	t.Run("empty store exports empty slices, not null", func(t *testing.T) {
		s := newTestService(t)
		payload, err := s.ExportAll()
		require.NoError(t, err)

		assert.Equal(t, models.ExportVersion, payload.Version)
		assert.NotNil(t, payload.Entries)
		assert.NotNil(t, payload.WeeklySelections)
		assert.NotNil(t, payload.WeeklyReflections)
		assert.Empty(t, payload.Entries)

		var buf bytes.Buffer
		require.NoError(t, s.WriteJSON(&buf))
		assert.Contains(t, buf.String(), `"entries": []`)
		assert.NotContains(t, buf.String(), "null")
	})

	t.Run("stamps exportedAt from the clock", func(t *testing.T) {
		s := newTestService(t)
		s.Now = func() time.Time {
			return time.Date(2025, time.March, 20, 8, 0, 0, 0, time.UTC)
		}
		payload, err := s.ExportAll()
		require.NoError(t, err)
		assert.Equal(t, "2025-03-20T08:00:00Z", payload.ExportedAt)
	})
}

func TestJSONRoundTrip(t *testing.T) {
	src := newTestService(t)
	seedDataset(t, src)

	var buf bytes.Buffer
	require.NoError(t, src.WriteJSON(&buf))

	dst := newTestService(t)
	stats, err := dst.ImportJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Entries: 2, Selections: 1, Reflections: 1}, stats)

	entry, err := dst.Store.GetEntry("g1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Morning run", entry.Title)
	assert.Equal(t, []string{"health"}, entry.Tags)
	require.NotNil(t, entry.DurationMin)
	assert.Equal(t, 30, *entry.DurationMin)

	sel, err := dst.Store.GetSelection("2025-11", models.SelectionGreenBest)
	require.NoError(t, err)
	require.NotNil(t, sel)
	assert.Equal(t, "movement helps", sel.Notes["g1"].Hypothesis)

	ref, err := dst.Store.GetReflection("2025-11")
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "run more", ref.Q1)
}

func TestImportMergesWithoutClearing(t *testing.T) {
	s := newTestService(t)
	seedDataset(t, s)

	payload := models.ExportPayload{
		Version: models.ExportVersion,
		Entries: []models.ActivityEntry{
			{ID: "g1", OccurredAt: "2025-03-10T09:00:00Z", Type: models.EntryGreen,
				Title: "Morning run (edited)", Energy: 1, WeekKey: "2025-11"},
			{ID: "new", OccurredAt: "2025-03-12T09:00:00Z", Type: models.EntryGreen,
				Title: "Brand new", Energy: 0, WeekKey: "2025-11"},
		},
	}
	stats, err := s.ImportAll(payload)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)

	all, err := s.Store.GetAllEntries()
	require.NoError(t, err)
	assert.Len(t, all, 3) // r1 untouched, g1 overwritten, new added

	g1, err := s.Store.GetEntry("g1")
	require.NoError(t, err)
	assert.Equal(t, "Morning run (edited)", g1.Title)
}

func TestImportRejectsBadPayloads(t *testing.T) {
	s := newTestService(t)

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := s.ImportJSON(strings.NewReader("{not json"))
		assert.Error(t, err)
	})

	t.Run("wrong version", func(t *testing.T) {
		_, err := s.ImportAll(models.ExportPayload{Version: "2.0"})
		assert.ErrorContains(t, err, "unsupported export version")
	})

	t.Run("invalid record rejects the whole import", func(t *testing.T) {
		_, err := s.ImportAll(models.ExportPayload{
			Version: models.ExportVersion,
			Entries: []models.ActivityEntry{
				{ID: "ok", OccurredAt: "2025-03-10", Type: models.EntryGreen, Title: "fine", WeekKey: "2025-11"},
				{ID: "bad", OccurredAt: "2025-03-10", Type: "PURPLE", Title: "nope"},
			},
		})
		require.Error(t, err)

		all, err := s.Store.GetAllEntries()
		require.NoError(t, err)
		assert.Empty(t, all, "a rejected import must write nothing")
	})
}

func TestImportFillsMissingWeekKey(t *testing.T) {
	s := newTestService(t)

	// 2025-03-12 is a Wednesday; its Monday-based week key is 2025-11.
	_, err := s.ImportAll(models.ExportPayload{
		Version: models.ExportVersion,
		Entries: []models.ActivityEntry{
			{ID: "nokey", OccurredAt: "2025-03-12T10:00:00", Type: models.EntryGreen, Title: "x", Energy: 1},
		},
	})
	require.NoError(t, err)

	entry, err := s.Store.GetEntry("nokey")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "2025-11", entry.WeekKey)
}
