package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodlog/internal/models"
)

type PrefsCmd struct {
	List         bool    `short:"l" help:"Show the current preferences."`
	Name         *string `help:"Display name."`
	Reminder     *bool   `help:"Enable or disable the daily reminder (--reminder=false to disable)."`
	ReminderTime *string `help:"Reminder time (HH:MM)."`
	DarkMode     *bool   `help:"Enable or disable dark mode (--dark-mode=false to disable)."`
}

func (c *PrefsCmd) Run(ctx *Context) error {
	prefs, found, err := ctx.Store.GetPreferences(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	if !found {
		prefs = models.DefaultPreferences()
	}

	updated := false
	if c.Name != nil {
		prefs.DisplayName = strings.TrimSpace(*c.Name)
		updated = true
	}
	if c.Reminder != nil {
		prefs.ReminderEnabled = *c.Reminder
		updated = true
	}
	if c.ReminderTime != nil {
		prefs.ReminderTime = strings.TrimSpace(*c.ReminderTime)
		updated = true
	}
	if c.DarkMode != nil {
		prefs.DarkMode = *c.DarkMode
		updated = true
	}

	if !updated {
		printPreferences(ctx, prefs, found)
		return nil
	}

	if err := prefs.Validate(); err != nil {
		return err
	}
	saved, err := ctx.Store.SavePreferences(ctx.Context(), prefs)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	ctx.Println("✓ Preferences updated")
	if c.List {
		printPreferences(ctx, saved, true)
	}
	return nil
}

func printPreferences(ctx *Context, p models.Preferences, saved bool) {
	name := p.DisplayName
	if name == "" {
		name = "(not set)"
	}
	ctx.Println("Preferences:")
	ctx.Printf("  Display name:  %s\n", name)
	ctx.Printf("  Reminder:      %s\n", onOff(p.ReminderEnabled))
	ctx.Printf("  Reminder time: %s\n", p.ReminderTime)
	ctx.Printf("  Dark mode:     %s\n", onOff(p.DarkMode))
	if !saved {
		ctx.Println("\nUsing defaults. Nothing has been saved yet.")
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
