// Package entrylist renders a scrollable list of journal entries.
package entrylist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/models"
)

type Item struct {
	Entry models.Entry
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  mood %d · social %d · regret %d",
		i.Entry.CreatedAt.Format(constants.DateTimeFormat), i.Entry.Mood, i.Entry.SocialComfort, i.Entry.Regret)
}

func (i Item) Description() string {
	if i.Entry.Text == "" {
		return "(no text)"
	}
	return i.Entry.Text
}

func (i Item) FilterValue() string { return i.Entry.Text }

type Model struct {
	list list.Model
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	// filtering goes through the query pipeline, not the list
	l.SetFilteringEnabled(false)
	return Model{list: l}
}

// SetEntries replaces the list contents and moves the cursor to the top
func (m *Model) SetEntries(entries []models.Entry) tea.Cmd {
	m.list.ResetSelected()
	return m.list.SetItems(toItems(entries))
}

// AppendEntries adds a loaded page below the current items
func (m *Model) AppendEntries(entries []models.Entry) tea.Cmd {
	items := append(m.list.Items(), toItems(entries)...)
	return m.list.SetItems(items)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Selected returns the highlighted entry
func (m Model) Selected() (models.Entry, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Entry, true
	}
	return models.Entry{}, false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No entries yet.\n  Add one with `moodlog add`."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func toItems(entries []models.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}
