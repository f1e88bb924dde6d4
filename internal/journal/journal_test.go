package journal

import (
	"path/filepath"
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

func TestCreateEntry(t *testing.T) {
	settings := models.DefaultSettings()

	t.Run("assigns id, week key, and timestamps", func(t *testing.T) {
		s := newTestService(t)
		entry, err := s.CreateEntry(EntryInput{
			OccurredAt: "2025-03-12T10:00",
			Type:       models.EntryGreen,
			Title:      "Morning walk",
			Energy:     1,
			Tags:       []string{"health", "", "outdoors"},
		}, settings)
		require.NoError(t, err)

		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "2025-11", entry.WeekKey)
		assert.NotEmpty(t, entry.CreatedAt)
		assert.NotEmpty(t, entry.UpdatedAt)
		// Empty tags are dropped, order kept.
		assert.Equal(t, []string{"health", "outdoors"}, entry.Tags)

		stored, err := s.GetEntry(entry.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Morning walk", stored.Title)
	})

	t.Run("defaults occurredAt to the clock", func(t *testing.T) {
		s := newTestService(t)
		s.Now = func() time.Time {
			return time.Date(2025, time.March, 12, 10, 0, 0, 0, time.Local)
		}
		entry, err := s.CreateEntry(EntryInput{
			Type: models.EntryRed, Title: "Long meeting", Energy: -1,
		}, settings)
		require.NoError(t, err)
		assert.Equal(t, "2025-11", entry.WeekKey)
	})

	t.Run("rejects invalid input before writing", func(t *testing.T) {
		s := newTestService(t)
		cases := map[string]EntryInput{
			"no title":            {Type: models.EntryGreen, Energy: 0},
			"bad type":            {Type: "PURPLE", Title: "x", Energy: 0},
			"energy out of range": {Type: models.EntryGreen, Title: "x", Energy: 3},
			"bad timestamp":       {Type: models.EntryGreen, Title: "x", OccurredAt: "not-a-date"},
		}
		for name, input := range cases {
			_, err := s.CreateEntry(input, settings)
			assert.Error(t, err, name)
		}

		all, err := s.Store.GetAllEntries()
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestUpdateEntry(t *testing.T) {
	settings := models.DefaultSettings()
	s := newTestService(t)

	created, err := s.CreateEntry(EntryInput{
		OccurredAt: "2025-03-12T10:00", Type: models.EntryGreen, Title: "Walk", Energy: 1,
	}, settings)
	require.NoError(t, err)

	t.Run("requires an id", func(t *testing.T) {
		bad := created
		bad.ID = ""
		_, err := s.UpdateEntry(bad, settings)
		assert.Error(t, err)
	})

	t.Run("re-derives the week key from an edited timestamp", func(t *testing.T) {
		edited := created
		edited.OccurredAt = "2025-03-19T10:00"
		edited.Title = "Walk (moved)"

		updated, err := s.UpdateEntry(edited, settings)
		require.NoError(t, err)
		assert.Equal(t, "2025-12", updated.WeekKey)

		stored, err := s.GetEntry(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Walk (moved)", stored.Title)
		assert.Equal(t, "2025-12", stored.WeekKey)
	})
}

func TestDeleteEntry(t *testing.T) {
	settings := models.DefaultSettings()
	s := newTestService(t)

	created, err := s.CreateEntry(EntryInput{
		OccurredAt: "2025-03-12T10:00", Type: models.EntryGreen, Title: "Walk", Energy: 1,
	}, settings)
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(created.ID))
	gone, err := s.GetEntry(created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Idempotent.
	assert.NoError(t, s.DeleteEntry(created.ID))
}

func TestRekeyAll(t *testing.T) {
	s := newTestService(t)
	monday := models.Settings{WeekStartsOn: 1}
	sunday := models.Settings{WeekStartsOn: 0}

	// 2025-03-16 is a Sunday: Monday-based it closes week 11, Sunday-based it
	// opens week 12. The midweek entry keys identically either way.
	_, err := s.CreateEntry(EntryInput{
		OccurredAt: "2025-03-16T10:00", Type: models.EntryGreen, Title: "Sunday walk", Energy: 1,
	}, monday)
	require.NoError(t, err)
	midweek, err := s.CreateEntry(EntryInput{
		OccurredAt: "2025-03-12T10:00", Type: models.EntryGreen, Title: "Midweek", Energy: 1,
	}, monday)
	require.NoError(t, err)

	changed, err := s.RekeyAll(sunday)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	stored, err := s.GetEntry(midweek.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-11", stored.WeekKey)

	// Re-running under the same setting is a no-op.
	changed, err = s.RekeyAll(sunday)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}
