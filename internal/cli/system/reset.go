package system

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
)

type ResetCmd struct {
	Yes      bool `short:"y" help:"Skip the confirmation prompt."`
	NoBackup bool `help:"Skip the automatic pre-reset backup."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		fmt.Println("⚠️  WARNING: This deletes every entry, weekly selection, and reflection.")
		fmt.Println("Settings are kept. A backup is created first unless --no-backup is set.")
		fmt.Print("Continue? [y/N]: ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if !c.NoBackup {
		ctx.PerformAutomaticBackup()
	}

	if err := ctx.Store.ClearAll(); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	ctx.State.EmitDataChange("reset")

	fmt.Println("✓ All journal data cleared.")
	return nil
}
