package weeks

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
	"github.com/Tsukasa80/rg-app-v2/internal/constants"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

type ReflectCmd struct {
	Week string `short:"w" help:"Week to reflect on (YYYY-WW). Defaults to the current week."`

	Q1      string `help:"Answer to the first prompt (skips the form when any answer flag is set)."`
	Q2      string `help:"Answer to the second prompt."`
	Q3      string `help:"Answer to the third prompt."`
	Summary string `help:"Free-form weekly summary."`
	Show    bool   `help:"Show the stored reflection instead of editing it."`
}

func (c *ReflectCmd) Run(ctx *cli.Context) error {
	year, week, err := ctx.ResolveWeek(c.Week)
	if err != nil {
		return err
	}
	weekKey := utils.FormatWeekKey(year, week)

	existing, err := ctx.Review.LoadReflection(year, week)
	if err != nil {
		return fmt.Errorf("failed to load reflection: %w", err)
	}

	if c.Show {
		if existing == nil {
			fmt.Printf("No reflection recorded for week %s.\n", weekKey)
			return nil
		}
		fmt.Println(cli.Header("Reflection for week " + weekKey + ":"))
		fmt.Printf("  %s\n    %s\n", constants.ReflectionPromptQ1, orUnanswered(existing.Q1))
		fmt.Printf("  %s\n    %s\n", constants.ReflectionPromptQ2, orUnanswered(existing.Q2))
		fmt.Printf("  %s\n    %s\n", constants.ReflectionPromptQ3, orUnanswered(existing.Q3))
		if existing.Summary != "" {
			fmt.Printf("  Summary:\n    %s\n", existing.Summary)
		}
		return nil
	}

	q1, q2, q3, summary := c.Q1, c.Q2, c.Q3, c.Summary
	useForm := q1 == "" && q2 == "" && q3 == "" && summary == ""

	if useForm {
		if existing != nil {
			q1, q2, q3, summary = existing.Q1, existing.Q2, existing.Q3, existing.Summary
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewText().Title(constants.ReflectionPromptQ1).Value(&q1),
				huh.NewText().Title(constants.ReflectionPromptQ2).Value(&q2),
				huh.NewText().Title(constants.ReflectionPromptQ3).Value(&q3),
				huh.NewText().Title("Anything else about this week? (optional)").Value(&summary),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
	} else if existing != nil {
		// Flag-driven edits keep unanswered prompts as stored.
		if q1 == "" {
			q1 = existing.Q1
		}
		if q2 == "" {
			q2 = existing.Q2
		}
		if q3 == "" {
			q3 = existing.Q3
		}
		if summary == "" {
			summary = existing.Summary
		}
	}

	if _, err := ctx.Review.SaveReflection(year, week, q1, q2, q3, summary); err != nil {
		return err
	}
	ctx.State.EmitDataChange("weekly-reflection")

	fmt.Printf("Saved reflection for week %s.\n", weekKey)
	return nil
}

func orUnanswered(s string) string {
	if s == "" {
		return "(unanswered)"
	}
	return s
}
