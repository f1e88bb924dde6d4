package entries

import (
	"fmt"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

type EditCmd struct {
	ID string `arg:"" help:"ID of the entry to edit."`

	Title    *string `help:"New title."`
	Type     *string `short:"t" help:"New activity type (green|red)."`
	Energy   *int    `short:"e" help:"New energy score (-2..2)."`
	Note     *string `short:"n" help:"New note."`
	Duration *int    `short:"d" help:"New duration in minutes (0 clears it)."`
	Tags     *string `help:"New comma-separated tag list (replaces existing tags)."`
	At       *string `help:"New occurrence timestamp."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	entry, err := ctx.Journal.GetEntry(c.ID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("entry not found: %s", c.ID)
	}

	updated := false
	if c.Title != nil {
		entry.Title = *c.Title
		updated = true
	}
	if c.Type != nil {
		entry.Type, err = cli.ParseEntryType(*c.Type)
		if err != nil {
			return err
		}
		updated = true
	}
	if c.Energy != nil {
		entry.Energy = *c.Energy
		updated = true
	}
	if c.Note != nil {
		entry.Note = *c.Note
		updated = true
	}
	if c.Duration != nil {
		entry.DurationMin = nil
		if *c.Duration > 0 {
			entry.DurationMin = c.Duration
		}
		updated = true
	}
	if c.Tags != nil {
		entry.Tags = cli.ParseTags(*c.Tags)
		updated = true
	}
	if c.At != nil {
		if _, err := utils.ParseTimestamp(*c.At); err != nil {
			return err
		}
		entry.OccurredAt = *c.At
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}

	saved, err := ctx.Journal.UpdateEntry(*entry, settings)
	if err != nil {
		return err
	}
	ctx.State.EmitDataChange("entries")

	fmt.Printf("Updated entry: %s (week %s)\n", saved.Title, saved.WeekKey)
	return nil
}
