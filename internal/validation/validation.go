package validation

import (
	"fmt"

	"github.com/gookit/validate"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

// ValidateEntry checks an activity entry before it touches storage. Validation
// failures must stop the operation; the message is user-facing.
func ValidateEntry(entry models.ActivityEntry) error {
	v := validate.Struct(entry)
	if !v.Validate() {
		return fmt.Errorf("invalid entry: %s", v.Errors.One())
	}

	// Rules the struct tags cannot express.
	if _, err := utils.ParseTimestamp(entry.OccurredAt); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	if entry.DurationMin != nil && *entry.DurationMin < 0 {
		return fmt.Errorf("invalid entry: duration must be non-negative")
	}
	for _, tag := range entry.Tags {
		if tag == "" {
			return fmt.Errorf("invalid entry: tags must be non-empty strings")
		}
	}

	return nil
}

// ValidateImportPayload checks an interchange payload before any record is
// written. A failure anywhere rejects the whole import.
func ValidateImportPayload(payload models.ExportPayload) error {
	if payload.Version != models.ExportVersion {
		return fmt.Errorf("unsupported export version %q (want %q)", payload.Version, models.ExportVersion)
	}

	for i, entry := range payload.Entries {
		if entry.ID == "" {
			return fmt.Errorf("entry %d: missing id", i)
		}
		if err := ValidateEntry(entry); err != nil {
			return fmt.Errorf("entry %s: %w", entry.ID, err)
		}
	}

	for i, sel := range payload.WeeklySelections {
		if sel.WeekKey == "" {
			return fmt.Errorf("selection %d: missing weekKey", i)
		}
		if _, _, err := utils.ParseWeekKey(sel.WeekKey); err != nil {
			return fmt.Errorf("selection %s: %w", sel.ID, err)
		}
		if sel.Type != models.SelectionGreenBest && sel.Type != models.SelectionRedWorst {
			return fmt.Errorf("selection %s: unknown type %q", sel.ID, sel.Type)
		}
		if len(sel.EntryIDs) > models.SelectionCap {
			return fmt.Errorf("selection %s: holds %d entries (max %d)", sel.ID, len(sel.EntryIDs), models.SelectionCap)
		}
	}

	for i, ref := range payload.WeeklyReflections {
		if ref.WeekKey == "" {
			return fmt.Errorf("reflection %d: missing weekKey", i)
		}
		if _, _, err := utils.ParseWeekKey(ref.WeekKey); err != nil {
			return fmt.Errorf("reflection %s: %w", ref.ID, err)
		}
	}

	return nil
}
