package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/storage"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
	"github.com/Tsukasa80/rg-app-v2/internal/validation"
)

// ImportWeekStartsOn is the week-start used to re-derive a missing weekKey on
// imported entries. Fixed to Monday, the interchange default; this can differ
// from the setting active at import time (use a rekey afterwards to re-file).
const ImportWeekStartsOn = 1

// Service moves the full dataset in and out of the store.
type Service struct {
	Store storage.Provider
	// Now stamps exportedAt; replaceable in tests.
	Now func() time.Time
}

func New(store storage.Provider) *Service {
	return &Service{
		Store: store,
		Now:   time.Now,
	}
}

// ExportAll snapshots all three collections. Each collection is read
// independently; there is no cross-collection atomicity.
func (s *Service) ExportAll() (models.ExportPayload, error) {
	entries, err := s.Store.GetAllEntries()
	if err != nil {
		return models.ExportPayload{}, fmt.Errorf("failed to read entries: %w", err)
	}
	selections, err := s.Store.GetAllSelections()
	if err != nil {
		return models.ExportPayload{}, fmt.Errorf("failed to read selections: %w", err)
	}
	reflections, err := s.Store.GetAllReflections()
	if err != nil {
		return models.ExportPayload{}, fmt.Errorf("failed to read reflections: %w", err)
	}

	if entries == nil {
		entries = []models.ActivityEntry{}
	}
	if selections == nil {
		selections = []models.WeeklySelection{}
	}
	if reflections == nil {
		reflections = []models.WeeklyReflection{}
	}

	return models.ExportPayload{
		Version:           models.ExportVersion,
		ExportedAt:        s.Now().Format(time.RFC3339),
		Entries:           entries,
		WeeklySelections:  selections,
		WeeklyReflections: reflections,
	}, nil
}

// WriteJSON streams the full-dataset export to w.
func (s *Service) WriteJSON(w io.Writer) error {
	payload, err := s.ExportAll()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// ImportStats reports how many records an import upserted per collection.
type ImportStats struct {
	Entries     int
	Selections  int
	Reflections int
}

// ImportJSON merges an interchange payload into the store: every record is
// upserted, existing data is never cleared first. Parse or validation
// failures reject the import before any write.
func (s *Service) ImportJSON(r io.Reader) (ImportStats, error) {
	var payload models.ExportPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ImportStats{}, fmt.Errorf("malformed import payload: %w", err)
	}
	return s.ImportAll(payload)
}

// ImportAll validates and merges an already-parsed payload.
func (s *Service) ImportAll(payload models.ExportPayload) (ImportStats, error) {
	if err := validation.ValidateImportPayload(payload); err != nil {
		return ImportStats{}, fmt.Errorf("import rejected: %w", err)
	}

	entries := make([]models.ActivityEntry, 0, len(payload.Entries))
	for _, entry := range payload.Entries {
		if entry.WeekKey == "" {
			ts, err := utils.ParseTimestamp(entry.OccurredAt)
			if err != nil {
				return ImportStats{}, fmt.Errorf("entry %s: %w", entry.ID, err)
			}
			entry.WeekKey = utils.WeekKey(ts, ImportWeekStartsOn)
		}
		entries = append(entries, entry)
	}

	if err := s.Store.BulkPutEntries(entries); err != nil {
		return ImportStats{}, fmt.Errorf("failed to import entries: %w", err)
	}
	if err := s.Store.BulkPutSelections(payload.WeeklySelections); err != nil {
		return ImportStats{}, fmt.Errorf("failed to import selections: %w", err)
	}
	if err := s.Store.BulkPutReflections(payload.WeeklyReflections); err != nil {
		return ImportStats{}, fmt.Errorf("failed to import reflections: %w", err)
	}

	return ImportStats{
		Entries:     len(entries),
		Selections:  len(payload.WeeklySelections),
		Reflections: len(payload.WeeklyReflections),
	}, nil
}
