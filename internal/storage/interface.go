package storage

import (
	"context"

	"github.com/julianstephens/moodlog/internal/models"
)

// Provider is the persistence surface consumed by the CLI, the history
// browser and the query pipeline.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error

	// Entries
	// SaveEntry inserts when entry.ID is 0 and upserts otherwise. CreatedAt
	// must lie between 1677 and 2262.
	SaveEntry(ctx context.Context, entry *models.Entry) (models.Entry, error)
	// ListEntries returns every entry, newest first. Entries sharing a
	// timestamp are ordered by id, highest first.
	ListEntries(ctx context.Context) ([]models.Entry, error)
	// GetEntry reports found=false with a nil error when no entry has the id.
	GetEntry(ctx context.Context, id int64) (models.Entry, bool, error)
	DeleteEntry(ctx context.Context, id int64) error
	CountEntries(ctx context.Context) (int, error)

	// Preferences
	GetPreferences(ctx context.Context) (models.Preferences, bool, error)
	SavePreferences(ctx context.Context, prefs models.Preferences) (models.Preferences, error)

	// Utils
	GetConfigPath() string
}
