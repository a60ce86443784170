package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/export"
	"github.com/julianstephens/moodlog/internal/models"
)

type ExportCmd struct {
	Format string `short:"f" help:"Output format (json or yaml)." enum:"json,yaml,yml" default:"json"`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	doc, err := export.Build(ctx.Context(), ctx.Store, time.Now())
	if err != nil {
		return err
	}

	if c.Output == "" {
		return export.Encode(ctx.out(), doc, format)
	}
	if err := export.WriteFile(c.Output, doc, format); err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d entries to %s\n", len(doc.Entries), c.Output)
	return nil
}

type ImportCmd struct {
	File   string `arg:"" help:"Export file to import." type:"existingfile"`
	Format string `short:"f" help:"Input format (json or yaml). Guessed from the extension when omitted."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	format, err := c.format()
	if err != nil {
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.File, err)
	}
	defer f.Close()

	doc, err := export.Decode(f, format)
	if err != nil {
		return err
	}

	for _, e := range doc.Entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", e.ID, err)
		}
	}
	var prefs *models.Preferences
	if doc.Preferences != nil {
		if err := doc.Preferences.Validate(); err != nil {
			return fmt.Errorf("preferences: %w", err)
		}
		prefs = doc.Preferences
	}

	ctx.PerformAutomaticBackup()
	ctx.Printf("Importing from: %s\n", c.File)
	return copyJournal(ctx, doc.Entries, prefs)
}

func (c *ImportCmd) format() (export.Format, error) {
	if c.Format != "" {
		return export.ParseFormat(c.Format)
	}
	ext := filepath.Ext(c.File)
	if ext == "" {
		return "", errors.InvalidArgument("cannot tell the format of %s, pass --format", c.File)
	}
	return export.ParseFormat(ext[1:])
}
