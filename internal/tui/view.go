package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tutr/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateReminders:
		content = m.upcoming.View()
	case constants.StateToday:
		content = m.today.View()
	}

	var banner string
	if m.storeError != "" {
		banner = warningStyle.Render("⚠ " + m.storeError)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		banner,
		docStyle.Render(content),
		m.viewNotices(),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	var tabs []string
	titles := []string{
		fmt.Sprintf("Reminders (%d)", m.upcoming.Len()),
		fmt.Sprintf("Today (%d)", m.today.Len()),
	}
	for i, title := range titles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, clockStyle.Render(m.clock.Format("Mon Jan 2 15:04:05")))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewNotices() string {
	if len(m.notices) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.notices))
	for _, n := range m.notices {
		lines = append(lines, fmt.Sprintf("%s 🔔 %s  %s",
			n.At.Format("15:04"), noticeTitleStyle.Render(n.Title), n.Body))
	}
	return noticeBoxStyle.Render(strings.Join(lines, "\n"))
}
