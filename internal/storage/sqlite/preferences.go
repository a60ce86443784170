package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/models"
)

var preferenceColumns = []string{"id", "display_name", "reminder_enabled", "reminder_time", "dark_mode", "updated_at"}

// PreferencesStore holds the single preferences record. Every read and
// write is keyed on constants.PreferencesID, so at most one row exists.
type PreferencesStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPreferencesStore(db *sql.DB) *PreferencesStore {
	return &PreferencesStore{db: db, now: time.Now}
}

// Get returns found=false when preferences were never saved
func (p *PreferencesStore) Get(ctx context.Context) (models.Preferences, bool, error) {
	query, args, err := sq.Select(preferenceColumns...).
		From(preferencesTable).
		Where(sq.Eq{"id": constants.PreferencesID}).
		ToSql()
	if err != nil {
		return models.Preferences{}, false, err
	}

	var prefs models.Preferences
	var reminderEnabled, darkMode int
	var updatedAt sql.NullString

	err = p.db.QueryRowContext(ctx, query, args...).Scan(
		&prefs.ID, &prefs.DisplayName, &reminderEnabled, &prefs.ReminderTime, &darkMode, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Preferences{}, false, nil
	}
	if err != nil {
		return models.Preferences{}, false, err
	}

	prefs.ReminderEnabled = reminderEnabled == 1
	prefs.DarkMode = darkMode == 1
	if updatedAt.Valid {
		t, err := time.Parse(time.RFC3339, updatedAt.String)
		if err != nil {
			return models.Preferences{}, false, fmt.Errorf("failed to parse updated_at: %w", err)
		}
		prefs.UpdatedAt = t
	}

	return prefs, true, nil
}

// Save forces the sentinel id and inserts or updates the single row
func (p *PreferencesStore) Save(ctx context.Context, prefs models.Preferences) (models.Preferences, error) {
	prefs.ID = constants.PreferencesID
	prefs.UpdatedAt = p.now().Truncate(time.Second)

	var reminderEnabled, darkMode int
	if prefs.ReminderEnabled {
		reminderEnabled = 1
	}
	if prefs.DarkMode {
		darkMode = 1
	}

	query, args, err := sq.Insert(preferencesTable).
		Columns(preferenceColumns...).
		Values(prefs.ID, prefs.DisplayName, reminderEnabled, prefs.ReminderTime, darkMode, prefs.UpdatedAt.Format(time.RFC3339)).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			display_name = excluded.display_name,
			reminder_enabled = excluded.reminder_enabled,
			reminder_time = excluded.reminder_time,
			dark_mode = excluded.dark_mode,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return models.Preferences{}, err
	}

	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return models.Preferences{}, err
	}
	return prefs, nil
}

// GetPreferences returns found=false when preferences were never saved
func (s *Store) GetPreferences(ctx context.Context) (models.Preferences, bool, error) {
	c, err := s.ensureReady(ctx)
	if err != nil {
		return models.Preferences{}, false, err
	}
	prefs, found, err := c.prefs.Get(ctx)
	if err != nil {
		return models.Preferences{}, false, s.fail("get preferences", err)
	}
	return prefs, found, nil
}

func (s *Store) SavePreferences(ctx context.Context, prefs models.Preferences) (models.Preferences, error) {
	c, err := s.ensureReady(ctx)
	if err != nil {
		return models.Preferences{}, err
	}
	saved, err := c.prefs.Save(ctx, prefs)
	if err != nil {
		return models.Preferences{}, s.fail("save preferences", err)
	}
	return saved, nil
}
