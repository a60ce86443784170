package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlog/internal/query"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case pageMsg:
		m.err = nil
		m.hasMore = msg.page.HasMore
		m.total = msg.page.Total
		if msg.reset {
			return m, m.list.SetEntries(msg.page.Entries)
		}
		return m, m.list.AppendEntries(msg.page.Entries)

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.More):
			if m.hasMore {
				return m, m.loadNext()
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		case key.Matches(msg, m.keys.Search):
			m.searching = true
			m.search.SetValue(m.pipeline.Filter().Text)
			return m, m.search.Focus()
		case key.Matches(msg, m.keys.Clear):
			if m.pipeline.Filter().IsZero() {
				return m, nil
			}
			m.pipeline.ClearFilter()
			return m, m.loadFirst()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		f := m.pipeline.Filter()
		f.Text = m.search.Value()
		m.pipeline.SetFilter(f)
		return m, m.loadFirst()
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// Filter exposes the pipeline filter for callers embedding the model
func (m Model) Filter() query.Filter {
	return m.pipeline.Filter()
}
