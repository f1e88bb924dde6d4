package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
)

func validEntry() models.ActivityEntry {
	return models.ActivityEntry{
		ID:         "e1",
		OccurredAt: "2025-03-10T09:00:00Z",
		Type:       models.EntryGreen,
		Title:      "Morning run",
		Energy:     2,
		Tags:       []string{"health"},
	}
}

func TestValidateEntry(t *testing.T) {
	t.Run("accepts a well-formed entry", func(t *testing.T) {
		assert.NoError(t, ValidateEntry(validEntry()))
	})

	t.Run("accepts boundary energies", func(t *testing.T) {
		for _, energy := range models.EnergyLevels {
			entry := validEntry()
			entry.Energy = energy
			assert.NoError(t, ValidateEntry(entry), "energy %d", energy)
		}
	})

	mutations := map[string]func(*models.ActivityEntry){
		"missing title":      func(e *models.ActivityEntry) { e.Title = "" },
		"missing occurredAt": func(e *models.ActivityEntry) { e.OccurredAt = "" },
		"bad occurredAt":     func(e *models.ActivityEntry) { e.OccurredAt = "not a date" },
		"unknown type":       func(e *models.ActivityEntry) { e.Type = "PURPLE" },
		"energy too high":    func(e *models.ActivityEntry) { e.Energy = 3 },
		"energy too low":     func(e *models.ActivityEntry) { e.Energy = -3 },
		"negative duration":  func(e *models.ActivityEntry) { d := -10; e.DurationMin = &d },
		"empty tag":          func(e *models.ActivityEntry) { e.Tags = []string{"ok", ""} },
	}
	for name, mutate := range mutations {
		t.Run("rejects "+name, func(t *testing.T) {
			entry := validEntry()
			mutate(&entry)
			assert.Error(t, ValidateEntry(entry))
		})
	}
}

func TestValidateImportPayload(t *testing.T) {
	base := func() models.ExportPayload {
		return models.ExportPayload{
			Version: models.ExportVersion,
			Entries: []models.ActivityEntry{validEntry()},
			WeeklySelections: []models.WeeklySelection{{
				ID: "2025-11-GREEN_BEST", WeekKey: "2025-11",
				Type: models.SelectionGreenBest, EntryIDs: []string{"e1"},
			}},
			WeeklyReflections: []models.WeeklyReflection{{
				ID: "2025-11-reflection", WeekKey: "2025-11",
			}},
		}
	}

	t.Run("accepts a well-formed payload", func(t *testing.T) {
		assert.NoError(t, ValidateImportPayload(base()))
	})

	t.Run("rejects version mismatch", func(t *testing.T) {
		p := base()
		p.Version = "0.9"
		assert.ErrorContains(t, ValidateImportPayload(p), "unsupported export version")
	})

	t.Run("rejects entry without id", func(t *testing.T) {
		p := base()
		p.Entries[0].ID = ""
		assert.ErrorContains(t, ValidateImportPayload(p), "missing id")
	})

	t.Run("rejects selection with bad week key", func(t *testing.T) {
		p := base()
		p.WeeklySelections[0].WeekKey = "not-a-week"
		assert.Error(t, ValidateImportPayload(p))
	})

	t.Run("rejects selection with unknown kind", func(t *testing.T) {
		p := base()
		p.WeeklySelections[0].Type = "PINK_MEH"
		assert.ErrorContains(t, ValidateImportPayload(p), "unknown type")
	})

	t.Run("rejects oversized selection", func(t *testing.T) {
		p := base()
		p.WeeklySelections[0].EntryIDs = []string{"a", "b", "c", "d", "e", "f"}
		assert.ErrorContains(t, ValidateImportPayload(p), "max 5")
	})

	t.Run("rejects reflection without week key", func(t *testing.T) {
		p := base()
		p.WeeklyReflections[0].WeekKey = ""
		assert.ErrorContains(t, ValidateImportPayload(p), "missing weekKey")
	})
}
