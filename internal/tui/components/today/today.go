// Package today lists the classes meeting today.
package today

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tutr/internal/utils"
)

type Model struct {
	table table.Model
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Time", Width: 20},
			{Title: "Subject", Width: 24},
			{Title: "Student", Width: 20},
			{Title: "Status", Width: 12},
		}),
		table.WithFocused(true),
		table.WithWidth(width),
		table.WithHeight(height),
	)
	return Model{table: t}
}

// SetOccurrences fills the table. students maps student id to name.
func (m *Model) SetOccurrences(occ []utils.Occurrence, students map[string]string, now time.Time) {
	rows := make([]table.Row, 0, len(occ))
	for _, o := range occ {
		rows = append(rows, table.Row{
			fmt.Sprintf("%s - %s", utils.Format12h(o.Class.StartTime), utils.Format12h(o.Class.EndTime)),
			o.Class.Subject,
			students[o.Class.StudentID],
			Status(o, now),
		})
	}
	m.table.SetRows(rows)
}

func (m Model) Len() int {
	return len(m.table.Rows())
}

// Status is "done", "in progress" or "upcoming".
func Status(o utils.Occurrence, now time.Time) string {
	switch {
	case !now.Before(o.End):
		return "done"
	case !now.Before(o.Start):
		return "in progress"
	default:
		return "upcoming"
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.table.Rows()) == 0 {
		return "No classes today."
	}
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}
