package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/notifier"
)

const notifyTimeout = 10 * time.Second

// NotifyCmd sends one notification through the same path reminders use.
type NotifyCmd struct {
	Title  string `arg:"" help:"Notification title."`
	Body   string `arg:"" optional:"" help:"Notification body."`
	DryRun bool   `help:"Print the notification to stdout instead of sending it to the tray."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	var n notifier.Notifier = notifier.NewTray()
	if c.DryRun {
		n = notifier.NewConsole(ctx.Writer())
	}
	n = notifier.NewGate(n, func() bool { return settings.NotificationsEnabled })

	reqCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	switch p := n.RequestPermission(reqCtx); p {
	case notifier.PermissionGranted:
	case notifier.PermissionDenied:
		if !settings.NotificationsEnabled {
			return fmt.Errorf("notifications are disabled in settings (tutr settings --set notifications_enabled=true)")
		}
		return fmt.Errorf("notification permission denied, check that tutr-tray is running")
	default:
		return fmt.Errorf("notifications are %s on this system, is tutr-tray installed?", p)
	}

	if err := n.Display(reqCtx, c.Title, c.Body); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	if !c.DryRun {
		ctx.Println("✓ Notification sent")
	}
	return nil
}
