package review

import (
	"fmt"
	"path/filepath"
	"testing"

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

func TestDraftAdd(t *testing.T) {
	t.Run("dedupes silently", func(t *testing.T) {
		d := NewDraft("2025-11", models.SelectionGreenBest)
		require.NoError(t, d.Add("a"))
		require.NoError(t, d.Add("a"))
		assert.Equal(t, []string{"a"}, d.EntryIDs())
	})

	t.Run("rejects a sixth entry without evicting", func(t *testing.T) {
		d := NewDraft("2025-11", models.SelectionGreenBest)
		for i := 0; i < models.SelectionCap; i++ {
			require.NoError(t, d.Add(fmt.Sprintf("e%d", i)))
		}
		err := d.Add("overflow")
		assert.ErrorIs(t, err, ErrSelectionFull)
		assert.Len(t, d.EntryIDs(), models.SelectionCap)
		assert.NotContains(t, d.EntryIDs(), "overflow")
	})

	t.Run("rejects edits while locked", func(t *testing.T) {
		d := NewDraft("2025-11", models.SelectionGreenBest)
		d.Locked = true
		assert.ErrorIs(t, d.Add("a"), ErrSelectionLocked)
		assert.ErrorIs(t, d.Remove("a"), ErrSelectionLocked)
		assert.ErrorIs(t, d.SetNote("a", "x"), ErrSelectionLocked)
	})
}

func TestDraftRemoveDiscardsNote(t *testing.T) {
	d := NewDraft("2025-11", models.SelectionGreenBest)
	require.NoError(t, d.Add("a"))
	require.NoError(t, d.SetNote("a", "energized all day"))

	require.NoError(t, d.Remove("a"))
	assert.Empty(t, d.EntryIDs())

	// Re-adding starts with a clean note.
	require.NoError(t, d.Add("a"))
	assert.Equal(t, "", d.Note("a"))
}

func TestDraftRemoveUnselectedIsNoop(t *testing.T) {
	d := NewDraft("2025-11", models.SelectionGreenBest)
	require.NoError(t, d.Add("a"))
	require.NoError(t, d.Remove("missing"))
	assert.Equal(t, []string{"a"}, d.EntryIDs())
}

func TestDraftSetNoteRequiresSelection(t *testing.T) {
	d := NewDraft("2025-11", models.SelectionGreenBest)
	assert.Error(t, d.SetNote("missing", "hypothesis"))
}

func TestSaveSelection(t *testing.T) {
	t.Run("rejects empty shortlist", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.SaveSelection(models.WeeklySelection{
			WeekKey: "2025-11", Type: models.SelectionGreenBest,
		})
		assert.ErrorIs(t, err, ErrEmptySelection)
	})

	t.Run("rejects oversized shortlist", func(t *testing.T) {
		s := newTestService(t)
		ids := make([]string, models.SelectionCap+1)
		for i := range ids {
			ids[i] = fmt.Sprintf("e%d", i)
		}
		_, err := s.SaveSelection(models.WeeklySelection{
			WeekKey: "2025-11", Type: models.SelectionGreenBest, EntryIDs: ids,
		})
		assert.ErrorIs(t, err, ErrSelectionFull)
	})

	t.Run("assigns the deterministic id and prunes orphan notes", func(t *testing.T) {
		s := newTestService(t)
		saved, err := s.SaveSelection(models.WeeklySelection{
			WeekKey:  "2025-11",
			Type:     models.SelectionGreenBest,
			EntryIDs: []string{"a", "b"},
			Notes: map[string]models.SelectionNote{
				"a":    {Hypothesis: "kept"},
				"gone": {Hypothesis: "orphan"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, models.SelectionID("2025-11", models.SelectionGreenBest), saved.ID)
		assert.Contains(t, saved.Notes, "a")
		assert.NotContains(t, saved.Notes, "gone")
	})

	t.Run("rejects overwriting a locked selection", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.SaveSelection(models.WeeklySelection{
			WeekKey: "2025-11", Type: models.SelectionGreenBest, EntryIDs: []string{"a"},
		})
		require.NoError(t, err)
		_, err = s.ToggleLock(2025, 11, models.SelectionGreenBest)
		require.NoError(t, err)

		_, err = s.SaveSelection(models.WeeklySelection{
			WeekKey: "2025-11", Type: models.SelectionGreenBest, EntryIDs: []string{"b"},
		})
		assert.ErrorIs(t, err, ErrSelectionLocked)
	})

	t.Run("green and red shortlists are independent", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.SaveSelection(models.WeeklySelection{
			WeekKey: "2025-11", Type: models.SelectionGreenBest, EntryIDs: []string{"g"},
		})
		require.NoError(t, err)
		_, err = s.SaveSelection(models.WeeklySelection{
			WeekKey: "2025-11", Type: models.SelectionRedWorst, EntryIDs: []string{"r"},
		})
		require.NoError(t, err)

		green, err := s.LoadSelection(2025, 11, models.SelectionGreenBest)
		require.NoError(t, err)
		red, err := s.LoadSelection(2025, 11, models.SelectionRedWorst)
		require.NoError(t, err)
		assert.Equal(t, []string{"g"}, green.EntryIDs)
		assert.Equal(t, []string{"r"}, red.EntryIDs)
	})
}

func TestToggleLock(t *testing.T) {
	t.Run("locking an absent week creates an empty locked record", func(t *testing.T) {
		s := newTestService(t)
		sel, err := s.ToggleLock(2025, 11, models.SelectionRedWorst)
		require.NoError(t, err)
		assert.True(t, sel.Locked)
		assert.Empty(t, sel.EntryIDs)
	})

	t.Run("unlock preserves the shortlist and re-enables saves", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.SaveSelection(models.WeeklySelection{
			WeekKey: "2025-11", Type: models.SelectionGreenBest, EntryIDs: []string{"a", "b"},
		})
		require.NoError(t, err)

		locked, err := s.ToggleLock(2025, 11, models.SelectionGreenBest)
		require.NoError(t, err)
		assert.True(t, locked.Locked)
		assert.Equal(t, []string{"a", "b"}, locked.EntryIDs)

		unlocked, err := s.ToggleLock(2025, 11, models.SelectionGreenBest)
		require.NoError(t, err)
		assert.False(t, unlocked.Locked)

		_, err = s.SaveSelection(models.WeeklySelection{
			WeekKey: "2025-11", Type: models.SelectionGreenBest, EntryIDs: []string{"c"},
		})
		assert.NoError(t, err)
	})
}

func TestReflectionRoundTrip(t *testing.T) {
	s := newTestService(t)

	missing, err := s.LoadReflection(2025, 11)
	require.NoError(t, err)
	assert.Nil(t, missing)

	saved, err := s.SaveReflection(2025, 11, "use strengths daily", "more deep work", "delegate meetings", "good week")
	require.NoError(t, err)
	assert.Equal(t, models.ReflectionID("2025-11"), saved.ID)

	loaded, err := s.LoadReflection(2025, 11)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "use strengths daily", loaded.Q1)
	assert.Equal(t, "good week", loaded.Summary)

	// Saves are wholesale; an empty answer overwrites the stored one.
	_, err = s.SaveReflection(2025, 11, "", "more deep work", "", "")
	require.NoError(t, err)
	loaded, err = s.LoadReflection(2025, 11)
	require.NoError(t, err)
	assert.Equal(t, "", loaded.Q1)
	assert.Equal(t, "more deep work", loaded.Q2)
}
