package utils

import (
	"fmt"
	"time"

	"github.com/Tsukasa80/rg-app-v2/internal/constants"
)

// ParseTimestamp parses an entry timestamp. RFC3339 is canonical, but values
// typed by hand (datetime-local style, or a bare date) are accepted too.
func ParseTimestamp(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		constants.DateFormat,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC3339 or YYYY-MM-DD[THH:MM])", value)
}

// FormatTimestamp renders a time in the canonical stored form.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatEnergy renders an energy score as its display glyph.
func FormatEnergy(energy int) string {
	switch energy {
	case -2:
		return "--"
	case -1:
		return "-"
	case 1:
		return "+"
	case 2:
		return "++"
	default:
		return "0"
	}
}

// FormatDuration renders minutes as "NNm" / "NhMMm" for list output.
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
