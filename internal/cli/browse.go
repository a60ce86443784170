package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlog/internal/tui"
)

type BrowseCmd struct{}

func (c *BrowseCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(ctx.Context()); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Context(), ctx.Pipeline()), tea.WithAltScreen(), tea.WithContext(ctx.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("history browser failed: %w", err)
	}
	return nil
}
