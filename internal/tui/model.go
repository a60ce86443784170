// Package tui is the interactive history browser. It reads through a
// query.Pipeline and never writes to the store.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlog/internal/query"
	"github.com/julianstephens/moodlog/internal/tui/components/entrylist"
)

// pageMsg carries a page loaded off the update loop
type pageMsg struct {
	page  query.Page
	reset bool // page 0: replace the list instead of appending
}

type errMsg struct {
	err error
}

type Model struct {
	ctx       context.Context
	pipeline  *query.Pipeline
	keys      KeyMap
	help      help.Model
	list      entrylist.Model
	search    textinput.Model
	searching bool
	hasMore   bool
	total     int
	err       error
	quitting  bool
	width     int
	height    int
}

func NewModel(ctx context.Context, pipeline *query.Pipeline) Model {
	search := textinput.New()
	search.Placeholder = "search text"
	search.Prompt = "/ "
	search.CharLimit = 200

	return Model{
		ctx:      ctx,
		pipeline: pipeline,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		list:     entrylist.New(0, 0),
		search:   search,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadFirst()
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) loadFirst() tea.Cmd {
	p, ctx := m.pipeline, m.ctx
	return func() tea.Msg {
		page, err := p.LoadFirstPage(ctx)
		if err != nil {
			return errMsg{err}
		}
		return pageMsg{page: page, reset: true}
	}
}

func (m Model) loadNext() tea.Cmd {
	p, ctx := m.pipeline, m.ctx
	return func() tea.Msg {
		page, err := p.LoadNextPage(ctx)
		if err != nil {
			return errMsg{err}
		}
		return pageMsg{page: page}
	}
}

func (m Model) refresh() tea.Cmd {
	p, ctx := m.pipeline, m.ctx
	return func() tea.Msg {
		page, err := p.Refresh(ctx)
		if err != nil {
			return errMsg{err}
		}
		return pageMsg{page: page, reset: true}
	}
}

func (m Model) status() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	s := fmt.Sprintf("Showing %d of %d", m.list.Len(), m.total)
	if f := m.pipeline.Filter(); f.Text != "" {
		s += fmt.Sprintf(" matching %q", f.Text)
	}
	if m.hasMore {
		s += " · press n for more"
	}
	return statusStyle.Render(s)
}
