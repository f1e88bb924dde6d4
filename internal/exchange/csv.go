package exchange

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
	"github.com/Tsukasa80/rg-app-v2/internal/validation"
)

// CSV interchange for entries only. The format is fixed: the 8-column header
// below, every cell quoted with embedded quotes doubled, tags pipe-joined in
// list order. encoding/csv is not used because it only quotes cells that need
// it, and the always-quoted layout is the contract.
var csvHeaders = []string{"id", "occurredAt", "type", "title", "note", "energy", "durationMin", "tags"}

// WriteCSV renders entries one row each, columns per csvHeaders.
func WriteCSV(w io.Writer, entries []models.ActivityEntry) error {
	if _, err := io.WriteString(w, strings.Join(csvHeaders, ",")+"\n"); err != nil {
		return err
	}

	for _, entry := range entries {
		duration := ""
		if entry.DurationMin != nil {
			duration = strconv.Itoa(*entry.DurationMin)
		}
		cells := []string{
			entry.ID,
			entry.OccurredAt,
			string(entry.Type),
			entry.Title,
			entry.Note,
			strconv.Itoa(entry.Energy),
			duration,
			strings.Join(entry.Tags, "|"),
		}
		for i, cell := range cells {
			cells[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		}
		if _, err := io.WriteString(w, strings.Join(cells, ",")+"\n"); err != nil {
			return err
		}
	}

	return nil
}

// ParseCSV reads rows back into entries. Best-effort by contract: tags
// round-trip via the pipe join, but weekKey and the created/updated
// timestamps are not restored (the store regenerates them on import).
func ParseCSV(r io.Reader) ([]models.ActivityEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines := splitCSVLines(string(data))
	if len(lines) == 0 {
		return nil, fmt.Errorf("malformed CSV: empty input")
	}

	header, err := parseCSVRow(lines[0])
	if err != nil {
		return nil, fmt.Errorf("malformed CSV header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, name := range []string{"occurredAt", "type", "title", "energy"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("malformed CSV: missing column %q", name)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var entries []models.ActivityEntry
	for n, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := parseCSVRow(line)
		if err != nil {
			return nil, fmt.Errorf("malformed CSV row %d: %w", n+2, err)
		}

		entry := models.ActivityEntry{
			ID:         cell(row, "id"),
			OccurredAt: cell(row, "occurredAt"),
			Type:       models.EntryType(cell(row, "type")),
			Title:      cell(row, "title"),
			Note:       cell(row, "note"),
		}
		energy, err := strconv.Atoi(cell(row, "energy"))
		if err != nil {
			return nil, fmt.Errorf("malformed CSV row %d: invalid energy %q", n+2, cell(row, "energy"))
		}
		entry.Energy = energy
		if raw := cell(row, "durationMin"); raw != "" {
			d, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("malformed CSV row %d: invalid durationMin %q", n+2, raw)
			}
			entry.DurationMin = &d
		}
		if raw := cell(row, "tags"); raw != "" {
			for _, tag := range strings.Split(raw, "|") {
				if tag != "" {
					entry.Tags = append(entry.Tags, tag)
				}
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// ImportCSV parses and merges CSV rows, assigning missing ids and re-filing
// every row's weekKey under the given week-start setting. All rows validate
// before any write.
func (s *Service) ImportCSV(r io.Reader, settings models.Settings) (int, error) {
	entries, err := ParseCSV(r)
	if err != nil {
		return 0, err
	}

	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		if err := validation.ValidateEntry(entries[i]); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+2, err)
		}
		ts, err := utils.ParseTimestamp(entries[i].OccurredAt)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries[i].WeekKey = utils.WeekKey(ts, settings.WeekStartsOn)
	}

	if err := s.Store.BulkPutEntries(entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// splitCSVLines splits on newlines outside quoted cells.
func splitCSVLines(data string) []string {
	var lines []string
	var b strings.Builder
	inQuotes := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			b.WriteByte(c)
		case (c == '\n' || c == '\r') && !inQuotes:
			if c == '\r' && i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			if b.Len() > 0 {
				lines = append(lines, b.String())
				b.Reset()
			}
		default:
			b.WriteByte(c)
		}
	}
	if b.Len() > 0 {
		lines = append(lines, b.String())
	}
	return lines
}

// parseCSVRow splits one line into cells, honoring quoting with doubled
// escape quotes. Unquoted cells are accepted for hand-edited files.
func parseCSVRow(line string) ([]string, error) {
	var cells []string
	var b strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			cells = append(cells, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quoted cell")
	}
	cells = append(cells, b.String())
	return cells, nil
}
