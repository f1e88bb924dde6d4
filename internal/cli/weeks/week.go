package weeks

import (
	"fmt"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
	"github.com/Tsukasa80/rg-app-v2/internal/constants"
	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/query"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

type WeekCmd struct {
	Week    string `arg:"" optional:"" help:"Week to show (YYYY-WW). Defaults to the current week."`
	ShowIDs bool   `help:"Show entry IDs." name:"show-ids"`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	year, week, err := ctx.ResolveWeek(c.Week)
	if err != nil {
		return err
	}

	weekKey := utils.FormatWeekKey(year, week)
	start, end := utils.WeekRange(year, week, settings.WeekStartsOn)
	fmt.Println(cli.Header(fmt.Sprintf("Week %s (%s to %s)", weekKey,
		start.Format(constants.DisplayDateFormat), end.Format(constants.DisplayDateFormat))))

	entries, err := ctx.Store.GetEntriesByWeek(weekKey)
	if err != nil {
		return fmt.Errorf("failed to fetch week entries: %w", err)
	}

	summary := query.Summarise(entries)
	fmt.Printf("  %d entries (%d green, %d red), avg energy %.1f\n\n",
		summary.Total, summary.GreenCount, summary.RedCount, summary.AvgEnergy)

	for _, kind := range []models.SelectionType{models.SelectionGreenBest, models.SelectionRedWorst} {
		if err := c.printSelection(ctx, year, week, kind, settings.WeekStartsOn); err != nil {
			return err
		}
	}

	reflection, err := ctx.Review.LoadReflection(year, week)
	if err != nil {
		return fmt.Errorf("failed to load reflection: %w", err)
	}
	if reflection == nil {
		fmt.Println(cli.Dim("No reflection recorded yet. Run 'rgx reflect' to answer the weekly prompts."))
	} else {
		fmt.Println(cli.Header("Reflection:"))
		printAnswer("1", reflection.Q1)
		printAnswer("2", reflection.Q2)
		printAnswer("3", reflection.Q3)
		if reflection.Summary != "" {
			fmt.Printf("  Summary: %s\n", reflection.Summary)
		}
	}

	return nil
}

func (c *WeekCmd) printSelection(ctx *cli.Context, year, week int, kind models.SelectionType, weekStartsOn int) error {
	label := "Best green activities"
	if kind == models.SelectionRedWorst {
		label = "Worst red activities"
	}

	candidates, err := ctx.Engine.CollectWeekCandidates(year, week, kind, weekStartsOn)
	if err != nil {
		return fmt.Errorf("failed to collect candidates: %w", err)
	}
	sel, err := ctx.Review.LoadSelection(year, week, kind)
	if err != nil {
		return fmt.Errorf("failed to load selection: %w", err)
	}

	header := fmt.Sprintf("%s (%d candidates):", label, len(candidates))
	if sel != nil && sel.Locked {
		header += " " + cli.LockedBadge()
	}
	fmt.Println(cli.Header(header))

	if sel == nil || len(sel.EntryIDs) == 0 {
		fmt.Println(cli.Dim("  nothing selected yet"))
		fmt.Println()
		return nil
	}

	for _, id := range sel.EntryIDs {
		entry, err := ctx.Store.GetEntry(id)
		if err != nil {
			return err
		}
		if entry == nil {
			fmt.Printf("  %s\n", cli.Dim("(deleted entry "+id+")"))
			continue
		}
		fmt.Println(cli.EntryLine(*entry, c.ShowIDs))
		if note, ok := sel.Notes[id]; ok && note.Hypothesis != "" {
			fmt.Printf("      %s\n", cli.Dim("hypothesis: "+note.Hypothesis))
		}
	}
	fmt.Println()
	return nil
}

func printAnswer(n, answer string) {
	if answer == "" {
		answer = "(unanswered)"
	}
	fmt.Printf("  Q%s: %s\n", n, answer)
}
