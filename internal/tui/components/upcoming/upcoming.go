// Package upcoming renders the armed reminder tasks as a table.
package upcoming

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tutr/internal/reminders"
	"github.com/julianstephens/tutr/internal/utils"
)

type Model struct {
	table table.Model
	now   time.Time
}

func columns() []table.Column {
	return []table.Column{
		{Title: "Fires", Width: 16},
		{Title: "In", Width: 10},
		{Title: "Subject", Width: 24},
		{Title: "Class", Width: 16},
		{Title: "Lead", Width: 8},
	}
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithWidth(width),
		table.WithHeight(height),
	)
	return Model{table: t}
}

// SetPending replaces the rows. now is used for the countdown column.
func (m *Model) SetPending(pending []reminders.Pending, now time.Time) {
	m.now = now
	rows := make([]table.Row, 0, len(pending))
	for _, p := range pending {
		rows = append(rows, table.Row{
			p.FireAt.Format("Mon Jan 2 15:04"),
			Countdown(p.FireAt.Sub(now)),
			p.Subject,
			fmt.Sprintf("%s %s", p.ClassStart.Format("Mon"), utils.Format12h(p.ClassStart.Format("15:04"))),
			fmt.Sprintf("%d min", p.LeadMin),
		})
	}
	m.table.SetRows(rows)
}

func (m Model) Len() int {
	return len(m.table.Rows())
}

// Countdown renders a duration as "3d 4h", "2h 05m" or "12m".
func Countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Minute)
	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	mins := int(d % time.Hour / time.Minute)
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %02dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.table.Rows()) == 0 {
		return "No reminders scheduled."
	}
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}
