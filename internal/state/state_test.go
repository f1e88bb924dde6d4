package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/query"
	"github.com/Tsukasa80/rg-app-v2/internal/storage"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return NewApp(store)
}

func TestInit(t *testing.T) {
	app := newTestApp(t)
	assert.False(t, app.Ready())

	var gotReady bool
	app.Subscribe(EventReady, func(payload any) { gotReady = true })

	require.NoError(t, app.Init())
	assert.True(t, app.Ready())
	assert.True(t, gotReady)
	assert.Equal(t, models.DefaultSettings().WeekStartsOn, app.Settings().WeekStartsOn)
}

func TestSetRoute(t *testing.T) {
	app := newTestApp(t)

	var events []string
	app.Subscribe(EventRouteChange, func(payload any) {
		events = append(events, payload.(string))
	})

	assert.Equal(t, "home", app.Route())
	app.SetRoute("review")
	assert.Equal(t, "review", app.Route())

	// Re-setting the same route must not notify again.
	app.SetRoute("review")
	assert.Equal(t, []string{"review"}, events)
}

func TestUpdateSettingsPersists(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.Init())

	var notified bool
	app.Subscribe(EventSettingsChange, func(payload any) { notified = true })

	settings := app.Settings()
	settings.WeekStartsOn = 0
	settings.Locale = "en-US"
	require.NoError(t, app.UpdateSettings(settings))
	assert.True(t, notified)

	// The change survives a fresh state layer over the same store.
	fresh := NewApp(app.store)
	require.NoError(t, fresh.Init())
	assert.Equal(t, 0, fresh.Settings().WeekStartsOn)
	assert.Equal(t, "en-US", fresh.Settings().Locale)
}

func TestFilters(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, DefaultFilters(), app.Filters())

	var changes int
	app.Subscribe(EventFilterChange, func(payload any) { changes++ })

	app.UpdateFilters(query.Filters{Type: models.EntryRed, RangeDays: 30})
	assert.Equal(t, models.EntryRed, app.Filters().Type)
	assert.Equal(t, 30, app.Filters().RangeDays)

	app.ResetFilters()
	assert.Equal(t, DefaultFilters(), app.Filters())
	assert.Equal(t, 2, changes)
}

func TestUnsubscribe(t *testing.T) {
	app := newTestApp(t)

	var calls int
	unsubscribe := app.Subscribe(EventDataChange, func(payload any) { calls++ })

	app.EmitDataChange("entries")
	unsubscribe()
	app.EmitDataChange("entries")

	assert.Equal(t, 1, calls)
}

func TestEmitDataChangePayload(t *testing.T) {
	app := newTestApp(t)

	var scopes []string
	app.Subscribe(EventDataChange, func(payload any) {
		scopes = append(scopes, payload.(string))
	})

	app.EmitDataChange("entries")
	app.EmitDataChange("import")
	assert.Equal(t, []string{"entries", "import"}, scopes)
}
