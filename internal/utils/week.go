package utils

import (
	"fmt"
	"time"
)

// Week math for filing and reviewing entries. A single numbering scheme drives
// both "file this entry under week X" and "show me the boundary of week X":
// weeks are aligned to the configured week-start day, numbered from the first
// aligned week start on or before January 1 of the week-start's own year.
// WeekRange is the exact inverse of WeekKey, so a filed weekKey and a derived
// boundary can never disagree.

// StartOfWeek returns local midnight of the first day of the week containing t,
// where the week begins on weekStartsOn (0=Sunday..6=Saturday).
func StartOfWeek(t time.Time, weekStartsOn int) time.Time {
	diff := (int(t.Weekday()) - weekStartsOn + 7) % 7
	y, m, d := t.AddDate(0, 0, -diff).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfWeek returns the last instant of the week containing t
// (start + 6 days, 23:59:59.999).
func EndOfWeek(t time.Time, weekStartsOn int) time.Time {
	start := StartOfWeek(t, weekStartsOn)
	y, m, d := start.AddDate(0, 0, 6).Date()
	return time.Date(y, m, d, 23, 59, 59, 999000000, t.Location())
}

// WeekYear returns the year a date files under: the year of its week start.
func WeekYear(t time.Time, weekStartsOn int) int {
	return StartOfWeek(t, weekStartsOn).Year()
}

// WeekNumber returns the 1-based count of week-start-aligned weeks from the
// first aligned week start on/before January 1 of the week year to t's own
// week start.
func WeekNumber(t time.Time, weekStartsOn int) int {
	ws := StartOfWeek(t, weekStartsOn)
	jan1 := time.Date(ws.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	first := StartOfWeek(jan1, weekStartsOn)
	return daysBetween(first, ws)/7 + 1
}

// WeekKey returns the canonical "YYYY-WW" key a date files under.
func WeekKey(t time.Time, weekStartsOn int) string {
	return FormatWeekKey(WeekYear(t, weekStartsOn), WeekNumber(t, weekStartsOn))
}

// FormatWeekKey renders a (year, week) pair as a zero-padded week key.
func FormatWeekKey(year, week int) string {
	return fmt.Sprintf("%d-%02d", year, week)
}

// ParseWeekKey splits a "YYYY-WW" key into its year and week.
func ParseWeekKey(key string) (year, week int, err error) {
	if _, err = fmt.Sscanf(key, "%4d-%2d", &year, &week); err != nil {
		return 0, 0, fmt.Errorf("invalid week key %q: %w", key, err)
	}
	if week < 1 || week > 54 {
		return 0, 0, fmt.Errorf("invalid week key %q: week out of range", key)
	}
	return year, week, nil
}

// WeekRange reconstructs the [start, end] boundary of week N of a year.
// Inverse of WeekKey: WeekKey(start) == FormatWeekKey(year, week).
func WeekRange(year, week, weekStartsOn int) (start, end time.Time) {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	first := StartOfWeek(jan1, weekStartsOn)
	start = first.AddDate(0, 0, (week-1)*7)
	return start, EndOfWeek(start, weekStartsOn)
}

// DeriveWeek returns the (year, week) pair a date files under.
func DeriveWeek(t time.Time, weekStartsOn int) (year, week int) {
	return WeekYear(t, weekStartsOn), WeekNumber(t, weekStartsOn)
}

// ISOWeekInfo returns the true ISO-8601 week of a date (week 1 holds the
// year's first Thursday). Display-only: filing and boundary math use the
// week-start-relative scheme above, which is NOT guaranteed to agree with ISO
// numbering.
func ISOWeekInfo(t time.Time) (year, week int) {
	return t.ISOWeek()
}

// daysBetween counts calendar days from a to b, ignoring time of day and DST
// shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}
