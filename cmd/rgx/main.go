package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
	"github.com/Tsukasa80/rg-app-v2/internal/cli/backups"
	"github.com/Tsukasa80/rg-app-v2/internal/cli/data"
	"github.com/Tsukasa80/rg-app-v2/internal/cli/entries"
	"github.com/Tsukasa80/rg-app-v2/internal/cli/settings"
	"github.com/Tsukasa80/rg-app-v2/internal/cli/system"
	"github.com/Tsukasa80/rg-app-v2/internal/cli/weeks"
	"github.com/Tsukasa80/rg-app-v2/internal/constants"
	"github.com/Tsukasa80/rg-app-v2/internal/errors"
	"github.com/Tsukasa80/rg-app-v2/internal/logger"
	"github.com/Tsukasa80/rg-app-v2/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"${db_file}"`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize journal storage."`
	Add     entries.AddCmd    `cmd:"" help:"Log an activity entry."`
	Edit    entries.EditCmd   `cmd:"" help:"Edit an existing entry."`
	Delete  entries.DeleteCmd `cmd:"" help:"Delete an entry."`
	List    entries.ListCmd   `cmd:"" help:"List entries with filters."`
	Stats   entries.StatsCmd  `cmd:"" help:"Show aggregate statistics for a filtered entry set."`
	Week    weeks.WeekCmd     `cmd:"" help:"Show the weekly review dashboard." default:"1"`
	Select  weeks.SelectCmd   `cmd:"" help:"Pick the week's best-green / worst-red shortlist."`
	Reflect weeks.ReflectCmd  `cmd:"" help:"Answer the weekly reflection prompts."`
	Export  data.ExportCmd    `cmd:"" help:"Export journal data as JSON or CSV."`
	Import  data.ImportCmd    `cmd:"" help:"Import journal data from JSON or CSV."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Reset    system.ResetCmd      `cmd:"" help:"Delete all journal data (destructive)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal green/red activity journal with weekly energy reviews"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": "v0.1.0",
			"db_file": constants.DefaultDBFile,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := storage.NewSQLiteStore(CLI.Config)
	appCtx := cli.NewContext(store)

	// Load the store before running the command (init handles its own loading)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
