package sqlite

import (
	"context"
	"database/sql"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/logger"
	"github.com/julianstephens/moodlog/internal/models"
)

var entryColumns = []string{"id", "created_at", "text", "mood", "social_comfort", "regret"}

const entryUpsertSuffix = `ON CONFLICT(id) DO UPDATE SET
	created_at = excluded.created_at,
	text = excluded.text,
	mood = excluded.mood,
	social_comfort = excluded.social_comfort,
	regret = excluded.regret`

// created_at is stored as unix nanoseconds, which covers 1677-09-21 to
// 2262-04-11
var (
	minStoredTime = time.Unix(0, math.MinInt64)
	maxStoredTime = time.Unix(0, math.MaxInt64)
)

// SaveEntry inserts the entry when its id is 0 and returns it with the new
// id. Otherwise the row with that id is overwritten; the store does not
// check that it existed. CreatedAt outside the storable range is rejected
// with ErrInvalidArgument; every other value is accepted as given.
func (s *Store) SaveEntry(ctx context.Context, entry *models.Entry) (models.Entry, error) {
	if entry == nil {
		return models.Entry{}, errors.InvalidArgument("entry is required")
	}
	if at := entry.CreatedAt; at.Before(minStoredTime) || at.After(maxStoredTime) {
		return models.Entry{}, errors.InvalidArgument("created_at %s is outside %s to %s",
			at.UTC().Format(time.RFC3339), minStoredTime.UTC().Format(time.DateOnly), maxStoredTime.UTC().Format(time.DateOnly))
	}
	c, err := s.ensureReady(ctx)
	if err != nil {
		return models.Entry{}, err
	}

	saved := *entry
	createdAt := saved.CreatedAt.UnixNano()

	if !saved.IsPersisted() {
		query, args, err := sq.Insert(entriesTable).
			Columns(entryColumns[1:]...).
			Values(createdAt, saved.Text, saved.Mood, saved.SocialComfort, saved.Regret).
			ToSql()
		if err != nil {
			return models.Entry{}, s.fail("save entry", err)
		}

		result, err := c.db.ExecContext(ctx, query, args...)
		if err != nil {
			return models.Entry{}, s.fail("save entry", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return models.Entry{}, s.fail("save entry", err)
		}
		saved.ID = id
		logger.Debug("Inserted entry", "id", id)
		return saved, nil
	}

	query, args, err := sq.Insert(entriesTable).
		Columns(entryColumns...).
		Values(saved.ID, createdAt, saved.Text, saved.Mood, saved.SocialComfort, saved.Regret).
		Suffix(entryUpsertSuffix).
		ToSql()
	if err != nil {
		return models.Entry{}, s.fail("save entry", err, "id", saved.ID)
	}
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return models.Entry{}, s.fail("save entry", err, "id", saved.ID)
	}
	logger.Debug("Updated entry", "id", saved.ID)
	return saved, nil
}

func (s *Store) ListEntries(ctx context.Context) ([]models.Entry, error) {
	c, err := s.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sq.Select(entryColumns...).
		From(entriesTable).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, s.fail("list entries", err)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail("list entries", err)
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, s.fail("list entries", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list entries", err)
	}

	return entries, nil
}

// GetEntry returns found=false and a nil error when no row has the id
func (s *Store) GetEntry(ctx context.Context, id int64) (models.Entry, bool, error) {
	c, err := s.ensureReady(ctx)
	if err != nil {
		return models.Entry{}, false, err
	}

	query, args, err := sq.Select(entryColumns...).
		From(entriesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Entry{}, false, s.fail("get entry", err, "id", id)
	}

	e, err := scanEntry(c.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, false, nil
	}
	if err != nil {
		return models.Entry{}, false, s.fail("get entry", err, "id", id)
	}
	return e, true, nil
}

// DeleteEntry removes the row if present. Deleting a missing id is a no-op.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	c, err := s.ensureReady(ctx)
	if err != nil {
		return err
	}

	query, args, err := sq.Delete(entriesTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return s.fail("delete entry", err, "id", id)
	}

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return s.fail("delete entry", err, "id", id)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return s.fail("delete entry", err, "id", id)
	}
	if rows == 0 {
		logger.Warn("Delete ignored, entry not found", "id", id)
		return nil
	}
	logger.Debug("Deleted entry", "id", id)
	return nil
}

func (s *Store) CountEntries(ctx context.Context) (int, error) {
	c, err := s.ensureReady(ctx)
	if err != nil {
		return 0, err
	}

	query, args, err := sq.Select("COUNT(*)").From(entriesTable).ToSql()
	if err != nil {
		return 0, s.fail("count entries", err)
	}

	var count int
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, s.fail("count entries", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.Entry, error) {
	var e models.Entry
	var createdAt int64
	if err := row.Scan(&e.ID, &createdAt, &e.Text, &e.Mood, &e.SocialComfort, &e.Regret); err != nil {
		return models.Entry{}, err
	}
	e.CreatedAt = time.Unix(0, createdAt)
	return e, nil
}
