package state

import (
	"sync"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/query"
	"github.com/Tsukasa80/rg-app-v2/internal/storage"
)

// Event identifies a state change a subscriber can listen for.
type Event string

const (
	EventReady          Event = "state:ready"
	EventRouteChange    Event = "route:change"
	EventFilterChange   Event = "filters:change"
	EventSettingsChange Event = "settings:change"
	EventDataChange     Event = "data:change"
)

// Handler receives the event payload: the new route, filters, settings, or a
// data-change scope string depending on the event.
type Handler func(payload any)

// App is the explicit application state shared by view components: current
// route, active filters, and settings, with a publish/subscribe interface.
// It is passed to collaborators instead of living as package globals.
type App struct {
	mu    sync.RWMutex
	store storage.Provider

	ready    bool
	route    string
	settings models.Settings
	filters  query.Filters

	subMu  sync.Mutex
	nextID int
	subs   map[Event]map[int]Handler
}

func NewApp(store storage.Provider) *App {
	return &App{
		store:    store,
		route:    "home",
		settings: models.DefaultSettings(),
		filters:  DefaultFilters(),
		subs:     map[Event]map[int]Handler{},
	}
}

// DefaultFilters is the filter state applied at startup and on reset.
func DefaultFilters() query.Filters {
	return query.Filters{RangeDays: 7}
}

// Init loads persisted settings merged over defaults and marks the state
// ready.
func (a *App) Init() error {
	settings, err := a.store.GetSettings()
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.settings = settings
	a.ready = true
	a.mu.Unlock()

	a.emit(EventReady, settings)
	return nil
}

// Subscribe registers a handler for an event and returns its unsubscribe
// function.
func (a *App) Subscribe(event Event, handler Handler) (unsubscribe func()) {
	a.subMu.Lock()
	defer a.subMu.Unlock()

	if a.subs[event] == nil {
		a.subs[event] = map[int]Handler{}
	}
	id := a.nextID
	a.nextID++
	a.subs[event][id] = handler

	return func() {
		a.subMu.Lock()
		defer a.subMu.Unlock()
		delete(a.subs[event], id)
	}
}

func (a *App) emit(event Event, payload any) {
	a.subMu.Lock()
	handlers := make([]Handler, 0, len(a.subs[event]))
	for _, h := range a.subs[event] {
		handlers = append(handlers, h)
	}
	a.subMu.Unlock()

	for _, h := range handlers {
		h(payload)
	}
}

// Ready reports whether Init has completed.
func (a *App) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ready
}

// Route returns the current route.
func (a *App) Route() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.route
}

// SetRoute switches the current route, notifying subscribers on change.
func (a *App) SetRoute(route string) {
	a.mu.Lock()
	if a.route == route {
		a.mu.Unlock()
		return
	}
	a.route = route
	a.mu.Unlock()

	a.emit(EventRouteChange, route)
}

// Settings returns the active settings.
func (a *App) Settings() models.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// UpdateSettings persists new settings and notifies subscribers.
func (a *App) UpdateSettings(settings models.Settings) error {
	if err := a.store.SaveSettings(settings); err != nil {
		return err
	}

	a.mu.Lock()
	a.settings = settings
	a.mu.Unlock()

	a.emit(EventSettingsChange, settings)
	return nil
}

// Filters returns the active entry filters.
func (a *App) Filters() query.Filters {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.filters
}

// UpdateFilters replaces the active filters and notifies subscribers.
func (a *App) UpdateFilters(filters query.Filters) {
	a.mu.Lock()
	a.filters = filters
	a.mu.Unlock()

	a.emit(EventFilterChange, filters)
}

// ResetFilters restores the default filter state.
func (a *App) ResetFilters() {
	a.UpdateFilters(DefaultFilters())
}

// EmitDataChange tells subscribers that stored data changed in the given
// scope ("entries", "weekly-selection", "weekly-reflection", "import", ...).
func (a *App) EmitDataChange(scope string) {
	a.emit(EventDataChange, scope)
}
