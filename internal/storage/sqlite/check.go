package sqlite

import (
	"context"
	"fmt"
)

// CheckSchema reports the first table or index missing from the database
func (s *Store) CheckSchema(ctx context.Context) error {
	c, err := s.ensureReady(ctx)
	if err != nil {
		return err
	}
	for _, table := range []string{entriesTable, preferencesTable, quotesTable} {
		ok, err := tableExists(ctx, c.db, table)
		if err != nil {
			return s.fail("check schema", err, "table", table)
		}
		if !ok {
			return fmt.Errorf("table %s is missing", table)
		}
	}
	ok, err := indexExists(ctx, c.db, createdAtIndex)
	if err != nil {
		return s.fail("check schema", err, "index", createdAtIndex)
	}
	if !ok {
		return fmt.Errorf("index %s is missing", createdAtIndex)
	}
	return nil
}

// IntegrityCheck runs SQLite's integrity_check and returns its first
// complaint, if any
func (s *Store) IntegrityCheck(ctx context.Context) error {
	c, err := s.ensureReady(ctx)
	if err != nil {
		return err
	}
	var result string
	if err := c.db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return s.fail("integrity check", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}
