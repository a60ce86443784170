package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/moodlog/internal/models"
	"github.com/julianstephens/moodlog/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing database before initializing."`
	Source string `help:"Copy entries and preferences from another moodlog database." type:"path"`
}

func (c *InitCmd) Run(ctx *Context) error {
	dbPath := ctx.Store.GetConfigPath()

	if c.Source != "" {
		absDB, _ := filepath.Abs(dbPath)
		absSource, _ := filepath.Abs(c.Source)
		if absDB == absSource {
			return fmt.Errorf("source and destination are the same database: %s", dbPath)
		}
	}

	if c.Force {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if _, err := os.Stat(dbPath); err == nil {
			for _, suffix := range []string{"", "-wal", "-shm"} {
				if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to delete existing database: %w", err)
				}
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(ctx.Context()); err != nil {
		return err
	}
	ctx.Printf("Initialized moodlog storage at: %s\n", dbPath)

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrate(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (c *InitCmd) migrate(ctx *Context) error {
	if _, err := os.Stat(c.Source); err != nil {
		return fmt.Errorf("source database: %w", err)
	}
	source := sqlite.NewStore(c.Source)
	defer source.Close()

	entries, err := source.ListEntries(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to read entries from source: %w", err)
	}
	prefs, found, err := source.GetPreferences(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to read preferences from source: %w", err)
	}
	var p *models.Preferences
	if found {
		p = &prefs
	}
	return copyJournal(ctx, entries, p)
}

// copyJournal writes entries under their existing ids, then preferences
func copyJournal(ctx *Context, entries []models.Entry, prefs *models.Preferences) error {
	for i := range entries {
		if _, err := ctx.Store.SaveEntry(ctx.Context(), &entries[i]); err != nil {
			return fmt.Errorf("failed to save entry %d: %w", entries[i].ID, err)
		}
	}
	ctx.Printf("  Copied %d entries\n", len(entries))

	if prefs != nil {
		if _, err := ctx.Store.SavePreferences(ctx.Context(), *prefs); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}
		ctx.Println("  Copied preferences")
	}
	return nil
}
