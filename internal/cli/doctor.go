package cli

import (
	"context"
	"fmt"
	"time"
)

// storeChecker is implemented by stores that can inspect their own file
type storeChecker interface {
	CheckSchema(ctx context.Context) error
	IntegrityCheck(ctx context.Context) error
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, err error) {
		if err != nil {
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			return
		}
		ctx.Printf("✓ %s: OK\n", name)
	}

	reachErr := checkDBReachable(ctx)
	report("Database reachable", reachErr)

	if reachErr == nil {
		report("Schema", checkSchema(ctx))
		report("Integrity", checkIntegrity(ctx))
		report("Data validation", checkValidation(ctx))
	} else {
		ctx.Printf("⊘ Schema, integrity and data validation: SKIPPED (database not reachable)\n")
	}

	// Warning only
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.Printf("⚠ Backups present: WARNING\n")
		ctx.Printf("   %v\n", err)
	} else {
		ctx.Printf("✓ Backups present: OK\n")
	}

	report("Clock/timezone", checkClockTimezone(ctx, time.Now()))

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Init(ctx.Context()); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := ctx.Store.CountEntries(ctx.Context()); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchema(ctx *Context) error {
	checker, ok := ctx.Store.(storeChecker)
	if !ok {
		return nil
	}
	return checker.CheckSchema(ctx.Context())
}

func checkIntegrity(ctx *Context) error {
	checker, ok := ctx.Store.(storeChecker)
	if !ok {
		return nil
	}
	return checker.IntegrityCheck(ctx.Context())
}

func checkValidation(ctx *Context) error {
	entries, err := ctx.Store.ListEntries(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}

	seen := make(map[int64]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			return fmt.Errorf("duplicate entry ID found: %d", e.ID)
		}
		seen[e.ID] = true
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", e.ID, err)
		}
	}

	prefs, found, err := ctx.Store.GetPreferences(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	if found {
		if err := prefs.Validate(); err != nil {
			return fmt.Errorf("preferences: %w", err)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := ctx.Backups().List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'moodlog backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *Context, now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	// Day boundaries for filters and stats follow the local zone
	if _, offset := now.Zone(); offset == 0 && now.Location() == time.UTC {
		ctx.Printf("   Note: timezone is UTC\n")
	}
	return nil
}
