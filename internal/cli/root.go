package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/moodlog/internal/backup"
	"github.com/julianstephens/moodlog/internal/config"
	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/logger"
	"github.com/julianstephens/moodlog/internal/models"
	"github.com/julianstephens/moodlog/internal/query"
	"github.com/julianstephens/moodlog/internal/storage"
)

// Context is shared by every command
type Context struct {
	Store  storage.Provider
	Config *config.Config
	Out    io.Writer
	In     io.Reader
	base   context.Context
}

func NewContext(base context.Context, store storage.Provider, cfg *config.Config) *Context {
	return &Context{
		Store:  store,
		Config: cfg,
		Out:    os.Stdout,
		In:     os.Stdin,
		base:   base,
	}
}

// Context returns the context commands pass to blocking calls
func (c *Context) Context() context.Context {
	if c.base == nil {
		return context.Background()
	}
	return c.base
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Pipeline returns a query pipeline over the store sized from config
func (c *Context) Pipeline() *query.Pipeline {
	pageSize := constants.PageSize
	if c.Config != nil {
		pageSize = c.Config.PageSize
	}
	return query.NewPipeline(c.Store, query.WithPageSize(pageSize))
}

// Backups returns the backup manager for the store's database file
func (c *Context) Backups() *backup.Manager {
	var opts []backup.Option
	if c.Config != nil {
		opts = append(opts, backup.WithMaxBackups(c.Config.MaxBackups))
		if c.Config.DBPath == c.Store.GetConfigPath() {
			opts = append(opts, backup.WithBackupDir(c.Config.BackupDir()))
		}
	}
	return backup.NewManager(c.Store.GetConfigPath(), opts...)
}

// PerformAutomaticBackup creates a backup and only logs failures
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups().Create(c.Context()); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// lookupEntry fetches an entry or returns an error wrapping ErrNotFound
func (c *Context) lookupEntry(id int64) (models.Entry, error) {
	entry, found, err := c.Store.GetEntry(c.Context(), id)
	if err != nil {
		return models.Entry{}, err
	}
	if !found {
		return models.Entry{}, fmt.Errorf("entry %d: %w", id, errors.ErrNotFound)
	}
	return entry, nil
}

// parseDate parses YYYY-MM-DD in the local zone
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, errors.InvalidArgument("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// parseTimestamp accepts "YYYY-MM-DD HH:MM", a bare date or RFC3339
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{constants.DateTimeFormat, constants.DateFormat} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.InvalidArgument("invalid time %q, expected YYYY-MM-DD HH:MM", s)
}

func formatEntryLine(e models.Entry) string {
	text := strings.ReplaceAll(e.Text, "\n", " ")
	return fmt.Sprintf("#%-4d %s  mood %2d  social %2d  regret %2d  %s",
		e.ID, e.CreatedAt.Local().Format(constants.DateTimeFormat), e.Mood, e.SocialComfort, e.Regret, text)
}
