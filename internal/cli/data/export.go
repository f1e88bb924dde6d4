package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
	"github.com/Tsukasa80/rg-app-v2/internal/exchange"
)

type ExportCmd struct {
	Output string `short:"o" help:"Output file. Defaults to stdout." type:"path"`
	Format string `short:"f" help:"Export format (json|csv). Defaults to json, or the output file extension." default:""`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := resolveFormat(c.Format, c.Output)
	if err != nil {
		return err
	}

	out := os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		if err := ctx.Exchange.WriteJSON(out); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
	case "csv":
		// CSV carries entries only; selections and reflections need JSON.
		payload, err := ctx.Exchange.ExportAll()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if err := exchange.WriteCSV(out, payload.Entries); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
	}

	if c.Output != "" {
		fmt.Printf("Exported %s to %s\n", format, c.Output)
	}
	return nil
}

// resolveFormat picks the export/import format from the explicit flag, falling
// back to the file extension, then json.
func resolveFormat(flag, path string) (string, error) {
	format := strings.ToLower(flag)
	if format == "" && path != "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			format = "csv"
		case ".json":
			format = "json"
		}
	}
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		return "", fmt.Errorf("invalid format: %s (use json or csv)", flag)
	}
	return format, nil
}
