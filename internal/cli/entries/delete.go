package entries

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
)

type DeleteCmd struct {
	ID  string `arg:"" help:"ID of the entry to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.Journal.GetEntry(c.ID)
	if err != nil {
		return err
	}
	if entry == nil {
		fmt.Printf("Entry %s not found (nothing to delete).\n", c.ID)
		return nil
	}

	if !c.Yes {
		fmt.Printf("Delete %s entry %q from %s? [y/N]: ", entry.Type, entry.Title, entry.OccurredAt)
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Journal.DeleteEntry(c.ID); err != nil {
		return err
	}
	ctx.State.EmitDataChange("entries")

	fmt.Printf("Deleted entry: %s\n", entry.Title)
	fmt.Println("Note: a locked weekly selection referencing this entry keeps its ID until its next save.")
	return nil
}
