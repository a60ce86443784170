package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/models"
	"github.com/julianstephens/moodlog/internal/tui"
)

type AddCmd struct {
	Text        string `short:"t" help:"What happened (up to 200 characters)."`
	Mood        int    `short:"m" help:"Mood (1-10)." default:"5"`
	Social      int    `short:"s" help:"Social comfort (1-10)." default:"5"`
	Regret      int    `short:"r" help:"Regret (1-10)." default:"1"`
	At          string `help:"When it happened (YYYY-MM-DD HH:MM). Defaults to now."`
	Interactive bool   `short:"i" help:"Fill in the entry with a form."`
}

func (c *AddCmd) Run(ctx *Context) error {
	entry := models.Entry{
		CreatedAt:     time.Now(),
		Text:          c.Text,
		Mood:          c.Mood,
		SocialComfort: c.Social,
		Regret:        c.Regret,
	}
	if c.At != "" {
		at, err := parseTimestamp(c.At)
		if err != nil {
			return err
		}
		entry.CreatedAt = at
	}

	if c.Interactive {
		if err := tui.RunEntryForm(&entry); err != nil {
			return err
		}
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	saved, err := ctx.Store.SaveEntry(ctx.Context(), &entry)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	ctx.Printf("✓ Saved entry #%d\n", saved.ID)
	return nil
}

type EditCmd struct {
	ID          int64   `arg:"" help:"Entry ID to edit."`
	Text        *string `short:"t" help:"New text."`
	Mood        *int    `short:"m" help:"New mood (1-10)."`
	Social      *int    `short:"s" help:"New social comfort (1-10)."`
	Regret      *int    `short:"r" help:"New regret (1-10)."`
	At          *string `help:"New timestamp (YYYY-MM-DD HH:MM)."`
	Interactive bool    `short:"i" help:"Edit the entry with a form."`
}

func (c *EditCmd) Run(ctx *Context) error {
	entry, err := ctx.lookupEntry(c.ID)
	if err != nil {
		return err
	}

	updated := c.Interactive
	if c.Text != nil {
		entry.Text = *c.Text
		updated = true
	}
	if c.Mood != nil {
		entry.Mood = *c.Mood
		updated = true
	}
	if c.Social != nil {
		entry.SocialComfort = *c.Social
		updated = true
	}
	if c.Regret != nil {
		entry.Regret = *c.Regret
		updated = true
	}
	if c.At != nil {
		at, err := parseTimestamp(*c.At)
		if err != nil {
			return err
		}
		entry.CreatedAt = at
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use flags such as --mood or --interactive to edit the entry.")
		return nil
	}

	if c.Interactive {
		if err := tui.RunEntryForm(&entry); err != nil {
			return err
		}
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	if _, err := ctx.Store.SaveEntry(ctx.Context(), &entry); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	ctx.Printf("✓ Updated entry #%d\n", entry.ID)
	return nil
}

type ShowCmd struct {
	ID int64 `arg:"" help:"Entry ID to show."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	entry, err := ctx.lookupEntry(c.ID)
	if err != nil {
		return err
	}

	ctx.Printf("Entry #%d\n", entry.ID)
	ctx.Printf("  When:           %s\n", entry.CreatedAt.Local().Format(constants.DateTimeFormat))
	ctx.Printf("  Mood:           %d\n", entry.Mood)
	ctx.Printf("  Social comfort: %d\n", entry.SocialComfort)
	ctx.Printf("  Regret:         %d\n", entry.Regret)
	if entry.Text != "" {
		ctx.Printf("\n%s\n", entry.Text)
	}
	return nil
}

type DeleteCmd struct {
	ID int64 `arg:"" help:"Entry ID to delete."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	entry, err := ctx.lookupEntry(c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteEntry(ctx.Context(), c.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ctx.Printf("Deleted entry #%d from %s\n", entry.ID, entry.CreatedAt.Local().Format(constants.DateTimeFormat))
	return nil
}
