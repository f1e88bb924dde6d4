package models

type EntryType string

const (
	EntryGreen EntryType = "GREEN"
	EntryRed   EntryType = "RED"
)

// EnergyLevels lists every valid energy score, ascending. The histogram in the
// aggregation engine carries one bucket per level even when the count is zero.
var EnergyLevels = []int{-2, -1, 0, 1, 2}

// ActivityEntry is a single logged activity. Timestamps are RFC3339 strings so
// that records round-trip byte-for-byte through the v1.0 interchange payload.
// JSON tags are camelCase for the same reason.
type ActivityEntry struct {
	ID          string    `json:"id"`
	OccurredAt  string    `json:"occurredAt" validate:"required"`
	Type        EntryType `json:"type" validate:"required|in:GREEN,RED"`
	Title       string    `json:"title" validate:"required"`
	Note        string    `json:"note,omitempty"`
	Energy      int       `json:"energy" validate:"min:-2|max:2"`
	DurationMin *int      `json:"durationMin,omitempty"`
	Tags        []string  `json:"tags"`
	// WeekKey is derived from OccurredAt and the active week-start setting at
	// write time. It exists only for indexed lookup and must be re-derived when
	// OccurredAt or the setting changes.
	WeekKey   string `json:"weekKey,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Duration returns the entry duration in minutes, treating an absent value as 0.
func (e ActivityEntry) Duration() int {
	if e.DurationMin == nil {
		return 0
	}
	return *e.DurationMin
}

// HasTag reports whether the entry carries the given tag.
func (e ActivityEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
