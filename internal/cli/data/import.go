package data

import (
	"fmt"
	"os"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
)

type ImportCmd struct {
	Input    string `arg:"" help:"File to import (json interchange payload, or entries csv)." type:"path"`
	Format   string `short:"f" help:"Import format (json|csv). Defaults to the file extension." default:""`
	Rekey    bool   `help:"Re-file all entries under the active week-start setting after importing."`
	NoBackup bool   `help:"Skip the automatic pre-import backup."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	format, err := resolveFormat(c.Format, c.Input)
	if err != nil {
		return err
	}
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	f, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	if !c.NoBackup {
		ctx.PerformAutomaticBackup()
	}

	switch format {
	case "json":
		stats, err := ctx.Exchange.ImportJSON(f)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d entries, %d selections, %d reflections.\n",
			stats.Entries, stats.Selections, stats.Reflections)
	case "csv":
		count, err := ctx.Exchange.ImportCSV(f, settings)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d entries.\n", count)
	}
	ctx.State.EmitDataChange("import")

	if c.Rekey {
		changed, err := ctx.Journal.RekeyAll(settings)
		if err != nil {
			return fmt.Errorf("import succeeded but rekey failed: %w", err)
		}
		fmt.Printf("Re-filed %d entries under week-start %d.\n", changed, settings.WeekStartsOn)
	}

	return nil
}
