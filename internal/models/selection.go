package models

import "fmt"

type SelectionType string

const (
	SelectionGreenBest SelectionType = "GREEN_BEST"
	SelectionRedWorst  SelectionType = "RED_WORST"
)

// EntryType returns the activity type a selection of this kind draws its
// candidates from.
func (t SelectionType) EntryType() EntryType {
	if t == SelectionRedWorst {
		return EntryRed
	}
	return EntryGreen
}

// SelectionCap is the maximum number of entries in a weekly selection.
const SelectionCap = 5

// SelectionNote is the per-entry hypothesis attached to a selected activity.
type SelectionNote struct {
	Hypothesis string `json:"hypothesis"`
}

// WeeklySelection is the best-5/worst-5 shortlist for one (weekKey, type)
// pair. Saves replace EntryIDs and Notes wholesale.
type WeeklySelection struct {
	ID       string                   `json:"id"`
	WeekKey  string                   `json:"weekKey"`
	Type     SelectionType            `json:"type"`
	EntryIDs []string                 `json:"entryIds"`
	Notes    map[string]SelectionNote `json:"notes,omitempty"`
	// Locked marks the selection read-only by convention. The store does not
	// enforce it; callers must refuse edits while it is set.
	Locked    bool   `json:"locked"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// SelectionID derives the deterministic record id for a (weekKey, type) pair,
// making upserts idempotent per week and kind.
func SelectionID(weekKey string, t SelectionType) string {
	return fmt.Sprintf("%s-%s", weekKey, t)
}

// Contains reports whether the selection already holds the entry id.
func (s WeeklySelection) Contains(entryID string) bool {
	for _, id := range s.EntryIDs {
		if id == entryID {
			return true
		}
	}
	return false
}
