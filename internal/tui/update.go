package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tutr/internal/constants"
)

const tabCount = 2

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, notices and help take roughly ten lines
		h := max(msg.Height-10-len(m.notices), 3)
		m.upcoming.SetSize(msg.Width-4, h)
		m.today.SetSize(msg.Width-4, h)
		return m, nil

	case TickMsg:
		m.refresh(time.Time(msg), false)
		return m, tick()

	case NotificationMsg:
		m.notices = append([]NotificationMsg{msg}, m.notices...)
		if len(m.notices) > maxNotices {
			m.notices = m.notices[:maxNotices]
		}
		// The fired task was re-armed for next week.
		m.refresh(m.now(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.notices = nil
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.refresh(m.now(), true)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateReminders:
		m.upcoming, cmd = m.upcoming.Update(msg)
	case constants.StateToday:
		m.today, cmd = m.today.Update(msg)
	}
	return m, cmd
}
