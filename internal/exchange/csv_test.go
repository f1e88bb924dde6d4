package exchange

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
)

func TestWriteCSV(t *testing.T) {
	duration := 30
	entries := []models.ActivityEntry{
		{ID: "e1", OccurredAt: "2025-03-10T09:00:00Z", Type: models.EntryGreen,
			Title: `Run "fast", then rest`, Note: "two\nlines", Energy: 2,
			DurationMin: &duration, Tags: []string{"health", "outdoors"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))

	lines := strings.SplitN(buf.String(), "\n", 2)
	assert.Equal(t, "id,occurredAt,type,title,note,energy,durationMin,tags", lines[0])

	// Every cell is quoted, embedded quotes doubled, tags pipe-joined.
	assert.Contains(t, buf.String(), `"Run ""fast"", then rest"`)
	assert.Contains(t, buf.String(), `"health|outdoors"`)
	assert.Contains(t, buf.String(), `"GREEN"`)
	assert.Contains(t, buf.String(), `"30"`)
}

func TestCSVRoundTrip(t *testing.T) {
	duration := 90
	entries := []models.ActivityEntry{
		{ID: "e1", OccurredAt: "2025-03-10T09:00:00Z", Type: models.EntryGreen,
			Title: `Quoted "title"`, Note: "note, with comma\nand newline", Energy: 2,
			DurationMin: &duration, Tags: []string{"a", "b"}},
		{ID: "e2", OccurredAt: "2025-03-11T10:00:00Z", Type: models.EntryRed,
			Title: "Plain", Energy: -1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))

	parsed, err := ParseCSV(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	assert.Equal(t, entries[0].ID, parsed[0].ID)
	assert.Equal(t, entries[0].Title, parsed[0].Title)
	assert.Equal(t, entries[0].Note, parsed[0].Note)
	assert.Equal(t, entries[0].Energy, parsed[0].Energy)
	assert.Equal(t, []string{"a", "b"}, parsed[0].Tags)
	require.NotNil(t, parsed[0].DurationMin)
	assert.Equal(t, 90, *parsed[0].DurationMin)

	assert.Equal(t, models.EntryRed, parsed[1].Type)
	assert.Nil(t, parsed[1].DurationMin)
	assert.Empty(t, parsed[1].Tags)
}

func TestParseCSV(t *testing.T) {
	t.Run("accepts unquoted hand-edited cells", func(t *testing.T) {
		input := "occurredAt,type,title,energy\n2025-03-10,GREEN,Walk,1\n"
		parsed, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, parsed, 1)
		assert.Equal(t, "Walk", parsed[0].Title)
		assert.Equal(t, 1, parsed[0].Energy)
	})

	t.Run("rejects missing required columns", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("id,title\n\"x\",\"y\"\n"))
		assert.ErrorContains(t, err, "missing column")
	})

	t.Run("rejects non-numeric energy", func(t *testing.T) {
		input := "occurredAt,type,title,energy\n2025-03-10,GREEN,Walk,high\n"
		_, err := ParseCSV(strings.NewReader(input))
		assert.ErrorContains(t, err, "invalid energy")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.Error(t, err)
	})

	t.Run("rejects unterminated quotes", func(t *testing.T) {
		input := "occurredAt,type,title,energy\n\"2025-03-10,GREEN,Walk,1\n"
		_, err := ParseCSV(strings.NewReader(input))
		assert.Error(t, err)
	})

	t.Run("skips blank lines", func(t *testing.T) {
		input := "occurredAt,type,title,energy\n\n2025-03-10,GREEN,Walk,1\n\n"
		parsed, err := ParseCSV(strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, parsed, 1)
	})
}

func TestImportCSV(t *testing.T) {
	s := newTestService(t)
	settings := models.DefaultSettings()

	t.Run("assigns ids and derives week keys", func(t *testing.T) {
		input := "occurredAt,type,title,energy\n2025-03-12T10:00,GREEN,Walk,1\n"
		count, err := s.ImportCSV(strings.NewReader(input), settings)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		all, err := s.Store.GetAllEntries()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.NotEmpty(t, all[0].ID)
		assert.Equal(t, "2025-11", all[0].WeekKey)
	})

	t.Run("one invalid row rejects the whole file", func(t *testing.T) {
		s := newTestService(t)
		input := "occurredAt,type,title,energy\n" +
			"2025-03-12,GREEN,Fine,1\n" +
			"2025-03-12,PURPLE,Bad,1\n"
		_, err := s.ImportCSV(strings.NewReader(input), settings)
		require.Error(t, err)

		all, err := s.Store.GetAllEntries()
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
