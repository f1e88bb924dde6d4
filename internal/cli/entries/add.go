package entries

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
	"github.com/Tsukasa80/rg-app-v2/internal/journal"
	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

type AddCmd struct {
	Title       string `arg:"" optional:"" help:"Activity title. Omit to fill the form interactively."`
	Type        string `short:"t" help:"Activity type (green|red)." default:"green"`
	Energy      int    `short:"e" help:"Energy score (-2..2)." default:"0"`
	Note        string `short:"n" help:"Optional free-form note."`
	Duration    int    `short:"d" help:"Duration in minutes."`
	Tags        string `help:"Comma-separated tags."`
	At          string `help:"When the activity happened (RFC3339 or YYYY-MM-DD[THH:MM]). Defaults to now."`
	Interactive bool   `short:"i" help:"Fill the entry in an interactive form."`
}

func (c *AddCmd) Validate() error {
	if c.Energy < -2 || c.Energy > 2 {
		return fmt.Errorf("energy must be between -2 and 2")
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if c.At != "" {
		if _, err := utils.ParseTimestamp(c.At); err != nil {
			return err
		}
	}
	return nil
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	input := journal.EntryInput{
		OccurredAt: c.At,
		Title:      c.Title,
		Note:       c.Note,
		Energy:     c.Energy,
		Tags:       cli.ParseTags(c.Tags),
	}
	input.Type, err = cli.ParseEntryType(c.Type)
	if err != nil {
		return err
	}
	if c.Duration > 0 {
		d := c.Duration
		input.DurationMin = &d
	}

	if c.Interactive || c.Title == "" {
		if err := runEntryForm(&input); err != nil {
			return err
		}
	}

	entry, err := ctx.Journal.CreateEntry(input, settings)
	if err != nil {
		return err
	}
	ctx.State.EmitDataChange("entries")

	fmt.Printf("Added %s entry: %s (week %s, ID: %s)\n", input.Type, entry.Title, entry.WeekKey, entry.ID)
	return nil
}

// runEntryForm fills the remaining entry fields interactively, pre-seeded with
// whatever the flags already supplied.
func runEntryForm(input *journal.EntryInput) error {
	typeValue := string(input.Type)
	energyValue := input.Energy
	tagsValue := ""
	if len(input.Tags) > 0 {
		tagsValue = input.Tags[0]
		for _, tag := range input.Tags[1:] {
			tagsValue += "," + tag
		}
	}
	durationValue := ""
	if input.DurationMin != nil {
		durationValue = strconv.Itoa(*input.DurationMin)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What did you do?").
				Value(&input.Title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Did it give or drain energy?").
				Options(
					huh.NewOption("Gave energy (GREEN)", string(models.EntryGreen)),
					huh.NewOption("Drained energy (RED)", string(models.EntryRed)),
				).
				Value(&typeValue),
			huh.NewSelect[int]().
				Title("How strong was the effect?").
				Options(
					huh.NewOption("++ strongly energizing", 2),
					huh.NewOption("+  energizing", 1),
					huh.NewOption("0  neutral", 0),
					huh.NewOption("-  draining", -1),
					huh.NewOption("-- strongly draining", -2),
				).
				Value(&energyValue),
			huh.NewText().
				Title("Note (optional)").
				Value(&input.Note),
			huh.NewInput().
				Title("Duration in minutes (optional)").
				Value(&durationValue).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					d, err := strconv.Atoi(s)
					if err != nil || d < 0 {
						return fmt.Errorf("enter a non-negative number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Tags, comma-separated (optional)").
				Value(&tagsValue),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}

	input.Type = models.EntryType(typeValue)
	input.Energy = energyValue
	input.Tags = cli.ParseTags(tagsValue)
	input.DurationMin = nil
	if durationValue != "" {
		if d, err := strconv.Atoi(durationValue); err == nil && d > 0 {
			input.DurationMin = &d
		}
	}
	return nil
}
