package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tsukasa80/rg-app-v2/internal/constants"
	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

var (
	greenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	redStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)
)

// Header renders a section heading.
func Header(s string) string {
	return headerStyle.Render(s)
}

// Dim renders secondary detail text.
func Dim(s string) string {
	return dimStyle.Render(s)
}

// LockedBadge renders the read-only marker for locked selections.
func LockedBadge() string {
	return lockedStyle.Render("[locked]")
}

// TypeBadge renders the colored activity-type tag.
func TypeBadge(t models.EntryType) string {
	if t == models.EntryRed {
		return redStyle.Render("RED  ")
	}
	return greenStyle.Render("GREEN")
}

// EntryLine renders one entry for list output.
func EntryLine(entry models.ActivityEntry, showID bool) string {
	var b strings.Builder

	date := entry.OccurredAt
	if ts, err := utils.ParseTimestamp(entry.OccurredAt); err == nil {
		date = ts.Format(constants.DisplayDateTimeFormat)
	}

	fmt.Fprintf(&b, "  %s  %s  %-2s  %s", date, TypeBadge(entry.Type), utils.FormatEnergy(entry.Energy), entry.Title)
	if entry.DurationMin != nil {
		fmt.Fprintf(&b, "  %s", Dim(utils.FormatDuration(*entry.DurationMin)))
	}
	if len(entry.Tags) > 0 {
		fmt.Fprintf(&b, "  %s", Dim("#"+strings.Join(entry.Tags, " #")))
	}
	if showID {
		fmt.Fprintf(&b, "  %s", Dim("(ID: "+entry.ID+")"))
	}
	return b.String()
}
