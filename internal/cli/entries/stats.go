package entries

import (
	"fmt"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/query"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

type StatsCmd struct {
	FilterFlags
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	filters, err := c.FilterFlags.Build(ctx)
	if err != nil {
		return err
	}

	entries, err := ctx.Engine.FetchEntries(filters)
	if err != nil {
		return fmt.Errorf("failed to fetch entries: %w", err)
	}

	summary := query.Summarise(entries)

	fmt.Println(cli.Header("Summary:"))
	fmt.Printf("  Entries:        %d (%d green, %d red)\n", summary.Total, summary.GreenCount, summary.RedCount)
	fmt.Printf("  Avg energy:     %.1f\n", summary.AvgEnergy)
	fmt.Printf("  Median energy:  %d\n", summary.MedianEnergy)
	if summary.TotalDuration > 0 {
		fmt.Printf("  Total duration: %s (avg %.1f min)\n", utils.FormatDuration(summary.TotalDuration), summary.AvgDuration)
	}

	fmt.Println("\n" + cli.Header("Energy histogram:"))
	maxCount := 0
	for _, level := range models.EnergyLevels {
		if summary.EnergyHistogram[level] > maxCount {
			maxCount = summary.EnergyHistogram[level]
		}
	}
	for _, level := range models.EnergyLevels {
		count := summary.EnergyHistogram[level]
		fmt.Printf("  %-2s %s %d\n", utils.FormatEnergy(level), histogramBar(count, maxCount), count)
	}

	if len(summary.TagStats) > 0 {
		fmt.Println("\n" + cli.Header("Tags:"))
		for _, stat := range summary.TagStats {
			fmt.Printf("  #%-16s %3d entries, avg energy %.1f\n", stat.Tag, stat.Count, stat.AvgEnergy)
		}
	}

	return nil
}

func histogramBar(count, maxCount int) string {
	const width = 24
	if maxCount == 0 {
		return ""
	}
	n := count * width / maxCount
	bar := ""
	for i := 0; i < n; i++ {
		bar += "█"
	}
	return bar
}
