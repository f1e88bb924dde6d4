package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/storage"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
	"github.com/Tsukasa80/rg-app-v2/internal/validation"
)

// Service owns the activity-entry lifecycle: validate, assign the
// store-managed fields (id, weekKey), and persist.
type Service struct {
	Store storage.Provider
	// Now is the clock for defaulted occurredAt values; replaceable in tests.
	Now func() time.Time
}

func New(store storage.Provider) *Service {
	return &Service{
		Store: store,
		Now:   time.Now,
	}
}

// EntryInput is what a caller supplies to log an activity. Everything the
// store assigns (id, weekKey, timestamps) is absent here.
type EntryInput struct {
	OccurredAt  string
	Type        models.EntryType
	Title       string
	Note        string
	Energy      int
	DurationMin *int
	Tags        []string
}

// CreateEntry validates the input and files a new entry under the week
// derived from occurredAt and the active week-start setting.
func (s *Service) CreateEntry(input EntryInput, settings models.Settings) (models.ActivityEntry, error) {
	entry := models.ActivityEntry{
		ID:          uuid.NewString(),
		OccurredAt:  input.OccurredAt,
		Type:        input.Type,
		Title:       input.Title,
		Note:        input.Note,
		Energy:      input.Energy,
		DurationMin: input.DurationMin,
		Tags:        cleanTags(input.Tags),
	}
	if entry.OccurredAt == "" {
		entry.OccurredAt = utils.FormatTimestamp(s.Now())
	}

	if err := validation.ValidateEntry(entry); err != nil {
		return models.ActivityEntry{}, err
	}

	ts, err := utils.ParseTimestamp(entry.OccurredAt)
	if err != nil {
		return models.ActivityEntry{}, err
	}
	entry.WeekKey = utils.WeekKey(ts, settings.WeekStartsOn)

	return s.Store.PutEntry(entry)
}

// UpdateEntry fully replaces an existing entry (same id, not a patch),
// re-deriving its weekKey from the possibly-edited occurredAt.
func (s *Service) UpdateEntry(entry models.ActivityEntry, settings models.Settings) (models.ActivityEntry, error) {
	if entry.ID == "" {
		return models.ActivityEntry{}, fmt.Errorf("invalid entry: missing id")
	}
	entry.Tags = cleanTags(entry.Tags)

	if err := validation.ValidateEntry(entry); err != nil {
		return models.ActivityEntry{}, err
	}

	ts, err := utils.ParseTimestamp(entry.OccurredAt)
	if err != nil {
		return models.ActivityEntry{}, err
	}
	entry.WeekKey = utils.WeekKey(ts, settings.WeekStartsOn)

	return s.Store.PutEntry(entry)
}

// GetEntry returns an entry by id, or nil when absent.
func (s *Service) GetEntry(id string) (*models.ActivityEntry, error) {
	return s.Store.GetEntry(id)
}

// DeleteEntry removes an entry. Idempotent; the week's selections keep any
// dangling id until their next save.
func (s *Service) DeleteEntry(id string) error {
	return s.Store.DeleteEntry(id)
}

// RekeyAll re-derives every entry's weekKey under the given week-start
// setting, for when the setting changes after entries were filed.
func (s *Service) RekeyAll(settings models.Settings) (int, error) {
	entries, err := s.Store.GetAllEntries()
	if err != nil {
		return 0, err
	}

	changed := entries[:0:0]
	for _, entry := range entries {
		ts, err := utils.ParseTimestamp(entry.OccurredAt)
		if err != nil {
			return 0, fmt.Errorf("entry %s: %w", entry.ID, err)
		}
		key := utils.WeekKey(ts, settings.WeekStartsOn)
		if key != entry.WeekKey {
			entry.WeekKey = key
			changed = append(changed, entry)
		}
	}

	if len(changed) == 0 {
		return 0, nil
	}
	if err := s.Store.BulkPutEntries(changed); err != nil {
		return 0, err
	}
	return len(changed), nil
}

// cleanTags drops empty tags, preserving order. Duplicates are permitted.
func cleanTags(tags []string) []string {
	cleaned := tags[:0:0]
	for _, tag := range tags {
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}
