package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tsukasa80/rg-app-v2/internal/backup"
	"github.com/Tsukasa80/rg-app-v2/internal/exchange"
	"github.com/Tsukasa80/rg-app-v2/internal/journal"
	"github.com/Tsukasa80/rg-app-v2/internal/logger"
	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/query"
	"github.com/Tsukasa80/rg-app-v2/internal/review"
	"github.com/Tsukasa80/rg-app-v2/internal/state"
	"github.com/Tsukasa80/rg-app-v2/internal/storage"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

// Context carries the store and the services every command runs against.
type Context struct {
	Store    storage.Provider
	State    *state.App
	Journal  *journal.Service
	Engine   *query.Engine
	Review   *review.Service
	Exchange *exchange.Service
}

func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:    store,
		State:    state.NewApp(store),
		Journal:  journal.New(store),
		Engine:   query.New(store),
		Review:   review.New(store),
		Exchange: exchange.New(store),
	}
}

// Settings returns the active settings, loading them on first use.
func (c *Context) Settings() (models.Settings, error) {
	if !c.State.Ready() {
		if err := c.State.Init(); err != nil {
			return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
		}
	}
	return c.State.Settings(), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveWeek turns an optional "YYYY-WW" flag into a concrete (year, week)
// pair, defaulting to the week containing today.
func (c *Context) ResolveWeek(weekFlag string) (year, week int, err error) {
	settings, err := c.Settings()
	if err != nil {
		return 0, 0, err
	}
	if weekFlag == "" {
		year, week = utils.DeriveWeek(time.Now(), settings.WeekStartsOn)
		return year, week, nil
	}
	return utils.ParseWeekKey(weekFlag)
}

// ParseTags splits a comma-separated tag list, dropping empty items.
func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// ParseEntryType maps a flag value to an activity type.
func ParseEntryType(s string) (models.EntryType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GREEN", "G":
		return models.EntryGreen, nil
	case "RED", "R":
		return models.EntryRed, nil
	default:
		return "", fmt.Errorf("invalid type: %s (use green or red)", s)
	}
}

// ParseSelectionKind maps a flag value to a weekly selection kind.
func ParseSelectionKind(s string) (models.SelectionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "green", "best", "green-best":
		return models.SelectionGreenBest, nil
	case "red", "worst", "red-worst":
		return models.SelectionRedWorst, nil
	default:
		return "", fmt.Errorf("invalid selection kind: %s (use green or red)", s)
	}
}
