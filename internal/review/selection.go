package review

import (
	"errors"
	"fmt"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/storage"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

var (
	// ErrSelectionFull rejects adding a sixth entry; nothing is evicted.
	ErrSelectionFull = fmt.Errorf("selection full: at most %d entries per selection", models.SelectionCap)
	// ErrEmptySelection rejects saving a selection with no entries.
	ErrEmptySelection = errors.New("select at least one entry")
	// ErrSelectionLocked rejects edits to a locked selection. Unlock first.
	ErrSelectionLocked = errors.New("selection is locked")
)

// Service drives the weekly best-5/worst-5 review. Loads and saves are
// separate store calls; two concurrent editors saving the same week clobber
// each other (last write wins — documented single-caller limitation).
type Service struct {
	Store storage.Provider
}

func New(store storage.Provider) *Service {
	return &Service{Store: store}
}

// LoadSelection returns the stored selection for a week and kind, or nil.
func (s *Service) LoadSelection(year, week int, selType models.SelectionType) (*models.WeeklySelection, error) {
	return s.Store.GetSelection(utils.FormatWeekKey(year, week), selType)
}

// SaveSelection validates and stores a full overwrite of the week's shortlist.
// Notes for ids no longer selected are dropped, never persisted as orphans.
func (s *Service) SaveSelection(sel models.WeeklySelection) (models.WeeklySelection, error) {
	if len(sel.EntryIDs) == 0 {
		return models.WeeklySelection{}, ErrEmptySelection
	}
	if len(sel.EntryIDs) > models.SelectionCap {
		return models.WeeklySelection{}, ErrSelectionFull
	}

	existing, err := s.Store.GetSelection(sel.WeekKey, sel.Type)
	if err != nil {
		return models.WeeklySelection{}, err
	}
	if existing != nil && existing.Locked {
		return models.WeeklySelection{}, ErrSelectionLocked
	}

	sel.Notes = pruneNotes(sel.EntryIDs, sel.Notes)
	sel.ID = models.SelectionID(sel.WeekKey, sel.Type)

	return s.Store.PutSelection(sel)
}

// ToggleLock flips the lock flag, preserving the stored shortlist. Locking a
// week with no stored selection creates an empty locked record.
func (s *Service) ToggleLock(year, week int, selType models.SelectionType) (models.WeeklySelection, error) {
	weekKey := utils.FormatWeekKey(year, week)
	existing, err := s.Store.GetSelection(weekKey, selType)
	if err != nil {
		return models.WeeklySelection{}, err
	}

	sel := models.WeeklySelection{
		WeekKey: weekKey,
		Type:    selType,
	}
	if existing != nil {
		sel = *existing
	}
	sel.Locked = !sel.Locked
	sel.ID = models.SelectionID(weekKey, selType)

	return s.Store.PutSelection(sel)
}

// pruneNotes keeps only notes whose entry is still selected.
func pruneNotes(entryIDs []string, notes map[string]models.SelectionNote) map[string]models.SelectionNote {
	pruned := map[string]models.SelectionNote{}
	for _, id := range entryIDs {
		if note, ok := notes[id]; ok {
			pruned[id] = note
		}
	}
	return pruned
}

// Draft is the in-memory editing state for one (week, kind) shortlist before
// it is saved.
type Draft struct {
	WeekKey string
	Type    models.SelectionType
	Locked  bool

	entryIDs []string
	notes    map[string]models.SelectionNote
}

// NewDraft starts an empty draft for a week and kind.
func NewDraft(weekKey string, selType models.SelectionType) *Draft {
	return &Draft{
		WeekKey: weekKey,
		Type:    selType,
		notes:   map[string]models.SelectionNote{},
	}
}

// DraftOf seeds a draft from a stored selection; nil starts empty.
func DraftOf(weekKey string, selType models.SelectionType, sel *models.WeeklySelection) *Draft {
	d := NewDraft(weekKey, selType)
	if sel == nil {
		return d
	}
	d.Locked = sel.Locked
	d.entryIDs = append(d.entryIDs, sel.EntryIDs...)
	for id, note := range sel.Notes {
		d.notes[id] = note
	}
	return d
}

// Add selects an entry. Rejects when locked, already full, or a duplicate.
func (d *Draft) Add(entryID string) error {
	if d.Locked {
		return ErrSelectionLocked
	}
	for _, id := range d.entryIDs {
		if id == entryID {
			return nil
		}
	}
	if len(d.entryIDs) >= models.SelectionCap {
		return ErrSelectionFull
	}
	d.entryIDs = append(d.entryIDs, entryID)
	return nil
}

// Remove deselects an entry and discards its note. Removing an id that is not
// selected is a no-op.
func (d *Draft) Remove(entryID string) error {
	if d.Locked {
		return ErrSelectionLocked
	}
	for i, id := range d.entryIDs {
		if id == entryID {
			d.entryIDs = append(d.entryIDs[:i], d.entryIDs[i+1:]...)
			break
		}
	}
	delete(d.notes, entryID)
	return nil
}

// SetNote attaches a hypothesis to a selected entry.
func (d *Draft) SetNote(entryID, hypothesis string) error {
	if d.Locked {
		return ErrSelectionLocked
	}
	selected := false
	for _, id := range d.entryIDs {
		if id == entryID {
			selected = true
			break
		}
	}
	if !selected {
		return fmt.Errorf("entry %s is not selected", entryID)
	}
	d.notes[entryID] = models.SelectionNote{Hypothesis: hypothesis}
	return nil
}

// EntryIDs returns the selected ids in pick order.
func (d *Draft) EntryIDs() []string {
	return append([]string(nil), d.entryIDs...)
}

// Note returns the hypothesis for an entry, empty when unset.
func (d *Draft) Note(entryID string) string {
	return d.notes[entryID].Hypothesis
}

// Selection materializes the draft for saving.
func (d *Draft) Selection() models.WeeklySelection {
	notes := map[string]models.SelectionNote{}
	for id, note := range d.notes {
		notes[id] = note
	}
	return models.WeeklySelection{
		ID:       models.SelectionID(d.WeekKey, d.Type),
		WeekKey:  d.WeekKey,
		Type:     d.Type,
		EntryIDs: d.EntryIDs(),
		Notes:    notes,
		Locked:   d.Locked,
	}
}
