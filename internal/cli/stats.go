package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/moodlog/internal/stats"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.ListEntries(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	return stats.Render(ctx.out(), stats.Compute(entries, time.Now()))
}
