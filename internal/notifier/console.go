package notifier

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	consoleTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	consoleTimeStyle  = lipgloss.NewStyle().Faint(true)
)

// Console prints notifications to a writer. It is always granted.
type Console struct {
	w   io.Writer
	now func() time.Time
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w, now: time.Now}
}

func (c *Console) RequestPermission(context.Context) Permission {
	return PermissionGranted
}

func (c *Console) Display(_ context.Context, title, body string) error {
	_, err := fmt.Fprintf(c.w, "%s 🔔 %s\n   %s\n",
		consoleTimeStyle.Render(c.now().Format("Mon 15:04")),
		consoleTitleStyle.Render(title),
		body,
	)
	return err
}
