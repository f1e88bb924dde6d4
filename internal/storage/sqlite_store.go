package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.ensureSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.loadSettings(); err != nil {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'rgx init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema is additive-only; re-running the DDL upgrades older files in place.
	if err := s.ensureSchema(); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS activity_entries (
			id           TEXT PRIMARY KEY,
			occurred_at  TEXT NOT NULL,
			type         TEXT NOT NULL,
			title        TEXT NOT NULL,
			note         TEXT NOT NULL DEFAULT '',
			energy       INTEGER NOT NULL,
			duration_min INTEGER,
			tags         TEXT NOT NULL DEFAULT '[]',
			week_key     TEXT NOT NULL,
			created_at   TEXT NOT NULL,
			updated_at   TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entries_by_date ON activity_entries(occurred_at);
		CREATE INDEX IF NOT EXISTS idx_entries_by_type ON activity_entries(type);
		CREATE INDEX IF NOT EXISTS idx_entries_by_week ON activity_entries(week_key);

		CREATE TABLE IF NOT EXISTS weekly_selections (
			id         TEXT PRIMARY KEY,
			week_key   TEXT NOT NULL,
			type       TEXT NOT NULL,
			entry_ids  TEXT NOT NULL DEFAULT '[]',
			notes      TEXT NOT NULL DEFAULT '{}',
			locked     INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_selections_by_week_type ON weekly_selections(week_key, type);

		CREATE TABLE IF NOT EXISTS weekly_reflections (
			id         TEXT PRIMARY KEY,
			week_key   TEXT NOT NULL,
			q1         TEXT NOT NULL DEFAULT '',
			q2         TEXT NOT NULL DEFAULT '',
			q3         TEXT NOT NULL DEFAULT '',
			summary    TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reflections_by_week ON weekly_reflections(week_key);

		CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// Settings

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	settings, err := s.loadSettings()
	if err != nil {
		// Missing rows are not an error; defaults apply until first save.
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *SQLiteStore) loadSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.DefaultSettings()
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "week_starts_on":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 || n > 6 {
				return models.Settings{}, fmt.Errorf("parsing week_starts_on: invalid value %q", value)
			}
			settings.WeekStartsOn = n
		case "locale":
			settings.Locale = value
		case "enable_notifications":
			settings.EnableNotifications = value == "true"
		case "enable_weekly_reminder":
			settings.EnableWeeklyReminder = value == "true"
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("week_starts_on", strconv.Itoa(settings.WeekStartsOn)); err != nil {
		return err
	}
	if _, err := stmt.Exec("locale", settings.Locale); err != nil {
		return err
	}
	if _, err := stmt.Exec("enable_notifications", fmt.Sprintf("%v", settings.EnableNotifications)); err != nil {
		return err
	}
	if _, err := stmt.Exec("enable_weekly_reminder", fmt.Sprintf("%v", settings.EnableWeeklyReminder)); err != nil {
		return err
	}

	return tx.Commit()
}

// Activity entries

const entryColumns = "id, occurred_at, type, title, note, energy, duration_min, tags, week_key, created_at, updated_at"

// stampEntry applies the store-assigned fields before a write.
func stampEntry(e models.ActivityEntry, now string) models.ActivityEntry {
	if e.CreatedAt == "" {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	return e
}

func (s *SQLiteStore) PutEntry(entry models.ActivityEntry) (models.ActivityEntry, error) {
	entry = stampEntry(entry, time.Now().Format(time.RFC3339))

	tagsJSON, err := json.Marshal(entry.Tags)
	if err != nil {
		return models.ActivityEntry{}, fmt.Errorf("failed to marshal tags: %w", err)
	}

	var duration sql.NullInt64
	if entry.DurationMin != nil {
		duration = sql.NullInt64{Int64: int64(*entry.DurationMin), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO activity_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			occurred_at = excluded.occurred_at,
			type = excluded.type,
			title = excluded.title,
			note = excluded.note,
			energy = excluded.energy,
			duration_min = excluded.duration_min,
			tags = excluded.tags,
			week_key = excluded.week_key,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		entry.ID, entry.OccurredAt, entry.Type, entry.Title, entry.Note,
		entry.Energy, duration, string(tagsJSON), entry.WeekKey,
		entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return models.ActivityEntry{}, err
	}

	return entry, nil
}

func (s *SQLiteStore) GetEntry(id string) (*models.ActivityEntry, error) {
	row := s.db.QueryRow("SELECT "+entryColumns+" FROM activity_entries WHERE id = ?", id)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *SQLiteStore) GetAllEntries() ([]models.ActivityEntry, error) {
	return s.queryEntries("SELECT " + entryColumns + " FROM activity_entries")
}

func (s *SQLiteStore) GetEntriesByWeek(weekKey string) ([]models.ActivityEntry, error) {
	return s.queryEntries("SELECT "+entryColumns+" FROM activity_entries WHERE week_key = ?", weekKey)
}

func (s *SQLiteStore) queryEntries(query string, args ...any) ([]models.ActivityEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.ActivityEntry, error) {
	var e models.ActivityEntry
	var duration sql.NullInt64
	var tagsJSON string

	err := row.Scan(&e.ID, &e.OccurredAt, &e.Type, &e.Title, &e.Note,
		&e.Energy, &duration, &tagsJSON, &e.WeekKey, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return models.ActivityEntry{}, err
	}

	if duration.Valid {
		d := int(duration.Int64)
		e.DurationMin = &d
	}
	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			return models.ActivityEntry{}, fmt.Errorf("failed to unmarshal tags for entry %s: %w", e.ID, err)
		}
	}

	return e, nil
}

func (s *SQLiteStore) DeleteEntry(id string) error {
	// Idempotent: deleting an id that is already gone is not an error.
	_, err := s.db.Exec("DELETE FROM activity_entries WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) BulkPutEntries(entries []models.ActivityEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO activity_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			occurred_at = excluded.occurred_at,
			type = excluded.type,
			title = excluded.title,
			note = excluded.note,
			energy = excluded.energy,
			duration_min = excluded.duration_min,
			tags = excluded.tags,
			week_key = excluded.week_key,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for _, entry := range entries {
		entry = stampEntry(entry, now)

		tagsJSON, err := json.Marshal(entry.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags for entry %s: %w", entry.ID, err)
		}
		var duration sql.NullInt64
		if entry.DurationMin != nil {
			duration = sql.NullInt64{Int64: int64(*entry.DurationMin), Valid: true}
		}

		if _, err := stmt.Exec(
			entry.ID, entry.OccurredAt, entry.Type, entry.Title, entry.Note,
			entry.Energy, duration, string(tagsJSON), entry.WeekKey,
			entry.CreatedAt, entry.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Weekly selections

const selectionColumns = "id, week_key, type, entry_ids, notes, locked, updated_at"

func (s *SQLiteStore) PutSelection(sel models.WeeklySelection) (models.WeeklySelection, error) {
	if sel.ID == "" {
		sel.ID = models.SelectionID(sel.WeekKey, sel.Type)
	}
	sel.UpdatedAt = time.Now().Format(time.RFC3339)

	idsJSON, notesJSON, err := marshalSelection(sel)
	if err != nil {
		return models.WeeklySelection{}, err
	}

	_, err = s.db.Exec(`
		INSERT INTO weekly_selections (`+selectionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			week_key = excluded.week_key,
			type = excluded.type,
			entry_ids = excluded.entry_ids,
			notes = excluded.notes,
			locked = excluded.locked,
			updated_at = excluded.updated_at`,
		sel.ID, sel.WeekKey, sel.Type, idsJSON, notesJSON, sel.Locked, sel.UpdatedAt)
	if err != nil {
		return models.WeeklySelection{}, err
	}

	return sel, nil
}

func marshalSelection(sel models.WeeklySelection) (idsJSON, notesJSON string, err error) {
	ids, err := json.Marshal(sel.EntryIDs)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal entry ids: %w", err)
	}
	notes := sel.Notes
	if notes == nil {
		notes = map[string]models.SelectionNote{}
	}
	notesRaw, err := json.Marshal(notes)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal notes: %w", err)
	}
	return string(ids), string(notesRaw), nil
}

func (s *SQLiteStore) GetSelection(weekKey string, selType models.SelectionType) (*models.WeeklySelection, error) {
	row := s.db.QueryRow(
		"SELECT "+selectionColumns+" FROM weekly_selections WHERE week_key = ? AND type = ?",
		weekKey, selType)
	sel, err := scanSelection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sel, nil
}

func (s *SQLiteStore) GetAllSelections() ([]models.WeeklySelection, error) {
	rows, err := s.db.Query("SELECT " + selectionColumns + " FROM weekly_selections")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var selections []models.WeeklySelection
	for rows.Next() {
		sel, err := scanSelection(rows)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}

	return selections, rows.Err()
}

func scanSelection(row rowScanner) (models.WeeklySelection, error) {
	var sel models.WeeklySelection
	var idsJSON, notesJSON string

	err := row.Scan(&sel.ID, &sel.WeekKey, &sel.Type, &idsJSON, &notesJSON, &sel.Locked, &sel.UpdatedAt)
	if err != nil {
		return models.WeeklySelection{}, err
	}

	if err := json.Unmarshal([]byte(idsJSON), &sel.EntryIDs); err != nil {
		return models.WeeklySelection{}, fmt.Errorf("failed to unmarshal entry ids for selection %s: %w", sel.ID, err)
	}
	if err := json.Unmarshal([]byte(notesJSON), &sel.Notes); err != nil {
		return models.WeeklySelection{}, fmt.Errorf("failed to unmarshal notes for selection %s: %w", sel.ID, err)
	}

	return sel, nil
}

func (s *SQLiteStore) BulkPutSelections(selections []models.WeeklySelection) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO weekly_selections (` + selectionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			week_key = excluded.week_key,
			type = excluded.type,
			entry_ids = excluded.entry_ids,
			notes = excluded.notes,
			locked = excluded.locked,
			updated_at = excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for _, sel := range selections {
		if sel.ID == "" {
			sel.ID = models.SelectionID(sel.WeekKey, sel.Type)
		}
		if sel.UpdatedAt == "" {
			sel.UpdatedAt = now
		}
		idsJSON, notesJSON, err := marshalSelection(sel)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(sel.ID, sel.WeekKey, sel.Type, idsJSON, notesJSON, sel.Locked, sel.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Weekly reflections

const reflectionColumns = "id, week_key, q1, q2, q3, summary, updated_at"

func (s *SQLiteStore) PutReflection(ref models.WeeklyReflection) (models.WeeklyReflection, error) {
	if ref.ID == "" {
		ref.ID = models.ReflectionID(ref.WeekKey)
	}
	ref.UpdatedAt = time.Now().Format(time.RFC3339)

	_, err := s.db.Exec(`
		INSERT INTO weekly_reflections (`+reflectionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			week_key = excluded.week_key,
			q1 = excluded.q1,
			q2 = excluded.q2,
			q3 = excluded.q3,
			summary = excluded.summary,
			updated_at = excluded.updated_at`,
		ref.ID, ref.WeekKey, ref.Q1, ref.Q2, ref.Q3, ref.Summary, ref.UpdatedAt)
	if err != nil {
		return models.WeeklyReflection{}, err
	}

	return ref, nil
}

func (s *SQLiteStore) GetReflection(weekKey string) (*models.WeeklyReflection, error) {
	row := s.db.QueryRow(
		"SELECT "+reflectionColumns+" FROM weekly_reflections WHERE week_key = ?", weekKey)

	var ref models.WeeklyReflection
	err := row.Scan(&ref.ID, &ref.WeekKey, &ref.Q1, &ref.Q2, &ref.Q3, &ref.Summary, &ref.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (s *SQLiteStore) GetAllReflections() ([]models.WeeklyReflection, error) {
	rows, err := s.db.Query("SELECT " + reflectionColumns + " FROM weekly_reflections")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reflections []models.WeeklyReflection
	for rows.Next() {
		var ref models.WeeklyReflection
		if err := rows.Scan(&ref.ID, &ref.WeekKey, &ref.Q1, &ref.Q2, &ref.Q3, &ref.Summary, &ref.UpdatedAt); err != nil {
			return nil, err
		}
		reflections = append(reflections, ref)
	}

	return reflections, rows.Err()
}

func (s *SQLiteStore) BulkPutReflections(reflections []models.WeeklyReflection) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO weekly_reflections (` + reflectionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			week_key = excluded.week_key,
			q1 = excluded.q1,
			q2 = excluded.q2,
			q3 = excluded.q3,
			summary = excluded.summary,
			updated_at = excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for _, ref := range reflections {
		if ref.ID == "" {
			ref.ID = models.ReflectionID(ref.WeekKey)
		}
		if ref.UpdatedAt == "" {
			ref.UpdatedAt = now
		}
		if _, err := stmt.Exec(ref.ID, ref.WeekKey, ref.Q1, ref.Q2, ref.Q3, ref.Summary, ref.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ClearAll() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"activity_entries", "weekly_selections", "weekly_reflections"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
