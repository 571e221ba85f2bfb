package reminders

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/tutr/internal/constants"
	"github.com/julianstephens/tutr/internal/notifier"
)

// Notifier is the notification primitive the scheduler dispatches to.
type Notifier interface {
	RequestPermission(ctx context.Context) notifier.Permission
	Display(ctx context.Context, title, body string) error
}

// Title and Body build the notification text for a firing reminder.
func Title(subject string) string { return fmt.Sprintf(constants.ReminderTitleFormat, subject) }
func Body(leadMin int) string     { return fmt.Sprintf(constants.ReminderBodyFormat, leadMin) }

// dispatch asks for permission and displays the reminder. Nothing here is
// reported to the caller: a skipped or failed notification only gets logged.
func dispatch(ctx context.Context, n Notifier, l *log.Logger, subject string, leadMin int) bool {
	if n == nil {
		return false
	}
	if perm := n.RequestPermission(ctx); perm != notifier.PermissionGranted {
		l.Debug("Notification skipped", "subject", subject, "permission", perm)
		return false
	}
	if err := n.Display(ctx, Title(subject), Body(leadMin)); err != nil {
		l.Warn("Failed to display notification", "subject", subject, "error", err)
		return false
	}
	l.Info("Reminder sent", "subject", subject, "lead_min", leadMin)
	return true
}
