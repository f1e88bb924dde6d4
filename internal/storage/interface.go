package storage

import "github.com/Tsukasa80/rg-app-v2/internal/models"

// Provider is the durable record store behind the journaling core: three
// keyed collections with secondary indexes, plus the settings blob.
//
// Contract notes:
//   - Get* returns a nil record (not an error) when the key is absent.
//   - Put* fully replaces the record for its id and refreshes updatedAt
//     (and createdAt when unset). No partial single-record writes.
//   - Delete* is idempotent.
//   - BulkPut* runs in one transaction: all records land or none do.
//   - List order is unspecified; ordering is the caller's job.
//   - Concurrent calls on the same key are not serialized by the store;
//     last write wins.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Activity entries
	PutEntry(models.ActivityEntry) (models.ActivityEntry, error)
	GetEntry(id string) (*models.ActivityEntry, error)
	GetAllEntries() ([]models.ActivityEntry, error)
	GetEntriesByWeek(weekKey string) ([]models.ActivityEntry, error)
	DeleteEntry(id string) error
	BulkPutEntries([]models.ActivityEntry) error

	// Weekly selections, one per (weekKey, type)
	PutSelection(models.WeeklySelection) (models.WeeklySelection, error)
	GetSelection(weekKey string, selType models.SelectionType) (*models.WeeklySelection, error)
	GetAllSelections() ([]models.WeeklySelection, error)
	BulkPutSelections([]models.WeeklySelection) error

	// Weekly reflections, one per weekKey
	PutReflection(models.WeeklyReflection) (models.WeeklyReflection, error)
	GetReflection(weekKey string) (*models.WeeklyReflection, error)
	GetAllReflections() ([]models.WeeklyReflection, error)
	BulkPutReflections([]models.WeeklyReflection) error

	// ClearAll wipes all three collections. Destructive reset only.
	ClearAll() error

	// Utils
	GetConfigPath() string
}
