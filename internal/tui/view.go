package tui

import "github.com/charmbracelet/lipgloss"

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render("moodlog · history")
	if m.searching {
		header = lipgloss.JoinVertical(lipgloss.Left, header, m.search.View())
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.list.View(),
		m.status(),
		m.help.View(m),
	))
}
