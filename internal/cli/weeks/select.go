package weeks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/review"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

type SelectCmd struct {
	Kind        string   `arg:"" optional:"" help:"Selection kind (green|red)." default:"green"`
	Week        string   `short:"w" help:"Week to review (YYYY-WW). Defaults to the current week."`
	Add         []string `short:"a" help:"Entry IDs to add to the shortlist."`
	Remove      []string `short:"r" help:"Entry IDs to remove from the shortlist."`
	Note        string   `short:"n" help:"Attach a hypothesis to a selected entry (ENTRY_ID=text)."`
	Lock        bool     `help:"Toggle the selection's lock after applying changes."`
	Interactive bool     `short:"i" help:"Pick the shortlist from the week's candidates interactively."`
}

func (c *SelectCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	year, week, err := ctx.ResolveWeek(c.Week)
	if err != nil {
		return err
	}
	kind, err := cli.ParseSelectionKind(c.Kind)
	if err != nil {
		return err
	}
	weekKey := utils.FormatWeekKey(year, week)

	existing, err := ctx.Review.LoadSelection(year, week, kind)
	if err != nil {
		return fmt.Errorf("failed to load selection: %w", err)
	}
	draft := review.DraftOf(weekKey, kind, existing)

	mutated := false
	if c.Interactive {
		candidates, err := ctx.Engine.CollectWeekCandidates(year, week, kind, settings.WeekStartsOn)
		if err != nil {
			return fmt.Errorf("failed to collect candidates: %w", err)
		}
		if len(candidates) == 0 {
			fmt.Printf("No %s entries in week %s to select from.\n", kind.EntryType(), weekKey)
			return nil
		}
		draft, err = runSelectForm(weekKey, kind, candidates, draft)
		if err != nil {
			return err
		}
		mutated = true
	} else {
		for _, id := range c.Add {
			if err := draft.Add(id); err != nil {
				return fmt.Errorf("cannot add %s: %w", id, err)
			}
			mutated = true
		}
		for _, id := range c.Remove {
			if err := draft.Remove(id); err != nil {
				return fmt.Errorf("cannot remove %s: %w", id, err)
			}
			mutated = true
		}
		if c.Note != "" {
			id, hypothesis, ok := strings.Cut(c.Note, "=")
			if !ok {
				return fmt.Errorf("invalid --note (expected ENTRY_ID=text)")
			}
			if err := draft.SetNote(id, hypothesis); err != nil {
				return err
			}
			mutated = true
		}
	}

	if mutated {
		saved, err := ctx.Review.SaveSelection(draft.Selection())
		if err != nil {
			return err
		}
		ctx.State.EmitDataChange("weekly-selection")
		fmt.Printf("Saved %s selection for week %s (%d/%d entries).\n",
			c.Kind, weekKey, len(saved.EntryIDs), models.SelectionCap)
	}

	if c.Lock {
		sel, err := ctx.Review.ToggleLock(year, week, kind)
		if err != nil {
			return err
		}
		ctx.State.EmitDataChange("weekly-selection")
		if sel.Locked {
			fmt.Printf("Locked %s selection for week %s.\n", c.Kind, weekKey)
		} else {
			fmt.Printf("Unlocked %s selection for week %s.\n", c.Kind, weekKey)
		}
	}

	if !mutated && !c.Lock {
		return c.show(ctx, draft)
	}
	return nil
}

func (c *SelectCmd) show(ctx *cli.Context, draft *review.Draft) error {
	header := fmt.Sprintf("%s selection for week %s:", strings.ToUpper(c.Kind), draft.WeekKey)
	if draft.Locked {
		header += " " + cli.LockedBadge()
	}
	fmt.Println(cli.Header(header))

	ids := draft.EntryIDs()
	if len(ids) == 0 {
		fmt.Println(cli.Dim("  nothing selected yet (use --add, or -i to pick interactively)"))
		return nil
	}
	for _, id := range ids {
		entry, err := ctx.Store.GetEntry(id)
		if err != nil {
			return err
		}
		if entry == nil {
			fmt.Printf("  %s\n", cli.Dim("(deleted entry "+id+")"))
			continue
		}
		fmt.Println(cli.EntryLine(*entry, true))
		if note := draft.Note(id); note != "" {
			fmt.Printf("      %s\n", cli.Dim("hypothesis: "+note))
		}
	}
	return nil
}

// runSelectForm replaces the draft's shortlist with an interactive pick from
// the week's candidates, then collects an optional hypothesis per pick.
func runSelectForm(weekKey string, kind models.SelectionType, candidates []models.ActivityEntry, seed *review.Draft) (*review.Draft, error) {
	if seed.Locked {
		return nil, review.ErrSelectionLocked
	}

	title := "Pick the activities that gave you the most energy"
	if kind == models.SelectionRedWorst {
		title = "Pick the activities that drained you the most"
	}

	options := make([]huh.Option[string], 0, len(candidates))
	for _, entry := range candidates {
		label := fmt.Sprintf("%s  %-2s  %s", entry.OccurredAt[:10], utils.FormatEnergy(entry.Energy), entry.Title)
		options = append(options, huh.NewOption(label, entry.ID).Selected(containsID(seed.EntryIDs(), entry.ID)))
	}

	var picked []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(title).
				Options(options...).
				Limit(models.SelectionCap).
				Value(&picked).
				Validate(func(ids []string) error {
					if len(ids) == 0 {
						return fmt.Errorf("select at least one entry")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("interactive form error: %w", err)
	}

	draft := review.NewDraft(weekKey, kind)
	for _, id := range picked {
		if err := draft.Add(id); err != nil {
			return nil, err
		}
		hypothesis := seed.Note(id)
		prompt := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("Why did %q stand out? (optional hypothesis)", titleOf(candidates, id))).
					Value(&hypothesis),
			),
		)
		if err := prompt.Run(); err != nil {
			return nil, fmt.Errorf("interactive form error: %w", err)
		}
		if hypothesis != "" {
			if err := draft.SetNote(id, hypothesis); err != nil {
				return nil, err
			}
		}
	}

	return draft, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func titleOf(candidates []models.ActivityEntry, id string) string {
	for _, entry := range candidates {
		if entry.ID == id {
			return entry.Title
		}
	}
	return id
}
