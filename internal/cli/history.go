package cli

import (
	"fmt"

	"github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/query"
)

type HistoryCmd struct {
	Search  string `short:"s" help:"Only entries whose text contains this (case-insensitive)."`
	MinMood *int   `help:"Lowest mood to include."`
	MaxMood *int   `help:"Highest mood to include."`
	From    string `help:"First day to include (YYYY-MM-DD)."`
	To      string `help:"Last day to include (YYYY-MM-DD)."`
	All     bool   `short:"a" help:"Print every page instead of only the first."`
}

func (c *HistoryCmd) filter() (query.Filter, error) {
	f := query.Filter{
		Text:    c.Search,
		MinMood: c.MinMood,
		MaxMood: c.MaxMood,
	}
	if c.MinMood != nil && c.MaxMood != nil && *c.MinMood > *c.MaxMood {
		return f, errors.InvalidArgument("--min-mood %d is greater than --max-mood %d", *c.MinMood, *c.MaxMood)
	}
	if c.From != "" {
		from, err := parseDate(c.From)
		if err != nil {
			return f, err
		}
		f.StartDate = &from
	}
	if c.To != "" {
		to, err := parseDate(c.To)
		if err != nil {
			return f, err
		}
		f.EndDate = &to
	}
	return f, nil
}

func (c *HistoryCmd) Run(ctx *Context) error {
	f, err := c.filter()
	if err != nil {
		return err
	}

	p := ctx.Pipeline()
	p.SetFilter(f)
	page, err := p.LoadFirstPage(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if page.Total == 0 {
		if f.IsZero() {
			ctx.Println("No entries yet. Add one with `moodlog add`.")
		} else {
			ctx.Println("No entries match the filter.")
		}
		return nil
	}

	shown := 0
	for {
		for _, e := range page.Entries {
			ctx.Println(formatEntryLine(e))
		}
		shown += len(page.Entries)
		if !c.All || !page.HasMore {
			break
		}
		if page, err = p.LoadNextPage(ctx.Context()); err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
	}

	if page.HasMore {
		ctx.Printf("\nShowing %d of %d entries. Use --all to see everything.\n", shown, page.Total)
	}
	return nil
}
