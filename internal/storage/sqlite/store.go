package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/logger"
	"github.com/julianstephens/moodlog/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Option configures a Store
type Option func(*Store)

// WithTemporary marks the database as throwaway. Write-ahead logging is not
// enabled for temporary databases.
func WithTemporary() Option {
	return func(s *Store) {
		s.temporary = true
	}
}

// WithBusyTimeout sets how long a connection waits on a locked database
func WithBusyTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.busyTimeout = d
	}
}

// Store is the SQLite-backed record store. The database is opened and the
// schema created lazily by the first operation; concurrent first callers
// wait for a single setup.
type Store struct {
	path        string
	temporary   bool
	busyTimeout time.Duration

	open   atomic.Pointer[handle]
	initMu sync.Mutex
	setups atomic.Int32
}

// handle is one open database. Operations keep the handle they started
// with, so a concurrent Close surfaces as "sql: database is closed".
type handle struct {
	db    *sql.DB
	prefs *PreferencesStore
}

func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:        path,
		busyTimeout: constants.DefaultBusyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if path == MemoryPath {
		s.temporary = true
	}
	return s
}

// Init forces initialization. Every other operation initializes on demand,
// so calling Init is optional.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.ensureReady(ctx)
	return err
}

// ensureReady runs setup exactly once and returns the open connection. The
// pointer is read without locking on the fast path and re-checked under
// initMu.
func (s *Store) ensureReady(ctx context.Context) (*handle, error) {
	if err := errors.CheckContext(ctx); err != nil {
		return nil, err
	}
	if c := s.open.Load(); c != nil {
		return c, nil
	}

	s.initMu.Lock()
	defer s.initMu.Unlock()

	if c := s.open.Load(); c != nil {
		return c, nil
	}
	c, err := s.setup(ctx)
	if err != nil {
		return nil, s.fail("initialize store", err)
	}
	s.open.Store(c)
	return c, nil
}

func (s *Store) setup(ctx context.Context) (*handle, error) {
	s.setups.Add(1)

	if s.path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if s.path == MemoryPath {
		// Every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if !s.temporary {
		s.enableWAL(ctx, db)
	}

	if err := applySchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("Store initialized", "path", s.path, "temporary", s.temporary)
	return &handle{db: db, prefs: NewPreferencesStore(db)}, nil
}

func (s *Store) dsn() string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(ON)", s.path, s.busyTimeout.Milliseconds())
}

// enableWAL switches the file to write-ahead logging so readers are not
// blocked by writers. Failure only costs concurrency and is not fatal.
func (s *Store) enableWAL(ctx context.Context, db *sql.DB) {
	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode = WAL").Scan(&mode); err != nil {
		logger.Warn("Failed to enable WAL mode, continuing with default journal", "path", s.path, "error", err)
		return
	}
	if mode != "wal" {
		logger.Warn("WAL mode not applied, continuing with default journal", "path", s.path, "mode", mode)
	}
}

// fail logs err with the operation name and returns it classified
func (s *Store) fail(op string, err error, keyvals ...interface{}) error {
	classified := errors.Storage(op, err)
	fields := append([]interface{}{"op", op, "path", s.path, "error", err}, keyvals...)
	if errors.Is(classified, errors.ErrCancelled) {
		logger.Debug("Storage operation cancelled", fields...)
	} else {
		logger.Error("Storage operation failed", fields...)
	}
	return classified
}

// Close closes the open connection, if any. The next operation reopens
// the database. Operations already running get an error from database/sql.
func (s *Store) Close() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	c := s.open.Swap(nil)
	if c == nil {
		return nil
	}
	return c.db.Close()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before the
// store has been initialized.
func (s *Store) GetDB() *sql.DB {
	if c := s.open.Load(); c != nil {
		return c.db
	}
	return nil
}
