package query

import (
	"sort"
	"strings"
	"time"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/storage"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

// Filters narrow an entry fetch. All populated filters apply conjunctively.
type Filters struct {
	Type      models.EntryType // exact type; empty matches all
	Energy    *int             // exact energy score; nil matches all
	Tags      []string         // entry must carry every listed tag
	Search    string           // case-insensitive substring over title OR note
	RangeDays int              // entries within the last N days of now; 0 = all
	StartDate string           // inclusive window start; applied with EndDate
	EndDate   string           // inclusive window end
}

// Engine answers filtered and aggregated questions about the journal.
// Reads are not serialized against concurrent store writes; a racing read sees
// the pre- or post-write state, never a torn record.
type Engine struct {
	Store storage.Provider
	// Now is the clock for rolling-range filters; replaceable in tests.
	Now func() time.Time
}

func New(store storage.Provider) *Engine {
	return &Engine{
		Store: store,
		Now:   time.Now,
	}
}

// FetchEntries returns all entries matching the filters, most recent first.
// Order among entries with the same timestamp is unspecified.
func (e *Engine) FetchEntries(f Filters) ([]models.ActivityEntry, error) {
	entries, err := e.Store.GetAllEntries()
	if err != nil {
		return nil, err
	}

	results := entries[:0:0]
	for _, entry := range entries {
		if e.matches(entry, f) {
			results = append(results, entry)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return occurredTime(results[i]).After(occurredTime(results[j]))
	})

	return results, nil
}

func (e *Engine) matches(entry models.ActivityEntry, f Filters) bool {
	if f.Type != "" && entry.Type != f.Type {
		return false
	}
	if f.Energy != nil && entry.Energy != *f.Energy {
		return false
	}
	for _, tag := range f.Tags {
		if !entry.HasTag(tag) {
			return false
		}
	}
	if f.Search != "" {
		keyword := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(entry.Title), keyword) &&
			!strings.Contains(strings.ToLower(entry.Note), keyword) {
			return false
		}
	}
	if f.RangeDays > 0 {
		threshold := e.Now().AddDate(0, 0, -f.RangeDays)
		if occurredTime(entry).Before(threshold) {
			return false
		}
	}
	if f.StartDate != "" && f.EndDate != "" {
		start, err1 := utils.ParseTimestamp(f.StartDate)
		end, err2 := utils.ParseTimestamp(f.EndDate)
		if err1 == nil && err2 == nil {
			ts := occurredTime(entry)
			if ts.Before(start) || ts.After(end) {
				return false
			}
		}
	}
	return true
}

// CollectWeekCandidates returns the entries eligible for a weekly selection:
// entries of the selection kind's activity type whose occurredAt falls inside
// the canonical boundary of week (year, week).
func (e *Engine) CollectWeekCandidates(year, week int, selType models.SelectionType, weekStartsOn int) ([]models.ActivityEntry, error) {
	entries, err := e.FetchEntries(Filters{Type: selType.EntryType()})
	if err != nil {
		return nil, err
	}

	start, end := utils.WeekRange(year, week, weekStartsOn)
	candidates := entries[:0:0]
	for _, entry := range entries {
		ts := occurredTime(entry)
		if !ts.Before(start) && !ts.After(end) {
			candidates = append(candidates, entry)
		}
	}

	return candidates, nil
}

// occurredTime parses an entry timestamp for comparisons. Unparseable values
// sort to the far past rather than failing a whole fetch.
func occurredTime(entry models.ActivityEntry) time.Time {
	ts, err := utils.ParseTimestamp(entry.OccurredAt)
	if err != nil {
		return time.Time{}
	}
	return ts
}
