package entries

import (
	"fmt"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
	"github.com/Tsukasa80/rg-app-v2/internal/query"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

// FilterFlags are the shared narrowing flags of the list and stats commands.
// All populated filters apply together.
type FilterFlags struct {
	Type   string `short:"t" help:"Only entries of this type (green|red)."`
	Energy *int   `short:"e" help:"Only entries with this exact energy score (-2..2)."`
	Tags   string `help:"Comma-separated tags; entries must carry all of them."`
	Search string `short:"s" help:"Case-insensitive keyword over title and note."`
	Range  int    `short:"r" help:"Only entries within the last N days."`
	Start  string `help:"Window start date (inclusive, used with --end)."`
	End    string `help:"Window end date (inclusive, used with --start)."`
	Week   string `short:"w" help:"Only entries of one week (YYYY-WW)."`
}

// Build turns the flags into engine filters. The --week shorthand expands to
// the week's canonical date window.
func (f *FilterFlags) Build(ctx *cli.Context) (query.Filters, error) {
	filters := query.Filters{
		Energy:    f.Energy,
		Tags:      cli.ParseTags(f.Tags),
		Search:    f.Search,
		RangeDays: f.Range,
		StartDate: f.Start,
		EndDate:   f.End,
	}

	if f.Type != "" {
		entryType, err := cli.ParseEntryType(f.Type)
		if err != nil {
			return query.Filters{}, err
		}
		filters.Type = entryType
	}

	if (f.Start == "") != (f.End == "") {
		return query.Filters{}, fmt.Errorf("--start and --end must be given together")
	}

	if f.Week != "" {
		if f.Start != "" || f.Range > 0 {
			return query.Filters{}, fmt.Errorf("--week cannot be combined with --range or --start/--end")
		}
		settings, err := ctx.Settings()
		if err != nil {
			return query.Filters{}, err
		}
		year, week, err := utils.ParseWeekKey(f.Week)
		if err != nil {
			return query.Filters{}, err
		}
		start, end := utils.WeekRange(year, week, settings.WeekStartsOn)
		filters.StartDate = utils.FormatTimestamp(start)
		filters.EndDate = utils.FormatTimestamp(end)
	}

	return filters, nil
}
