package entries

import (
	"fmt"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
)

type ListCmd struct {
	FilterFlags
	ShowIDs bool `help:"Show entry IDs." name:"show-ids"`
	Limit   int  `short:"l" help:"Show at most N entries (0 = all)."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	filters, err := c.FilterFlags.Build(ctx)
	if err != nil {
		return err
	}

	entries, err := ctx.Engine.FetchEntries(filters)
	if err != nil {
		return fmt.Errorf("failed to fetch entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	fmt.Println(cli.Header(fmt.Sprintf("Entries (%d):", len(entries))))
	for _, entry := range entries {
		fmt.Println(cli.EntryLine(entry, c.ShowIDs))
		if entry.Note != "" {
			fmt.Printf("      %s\n", cli.Dim(entry.Note))
		}
	}

	return nil
}
