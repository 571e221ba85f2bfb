package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/daemon"
	"github.com/julianstephens/tutr/internal/tui"
)

// WatchCmd runs the scheduler in the foreground with the dashboard
// instead of the tray. Scheduled backups stay with `tutr run`.
type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on dashboard startup (after successful load)
	ctx.PerformAutomaticBackup()

	fwd := tui.NewForwarder()
	d := daemon.New(ctx.Store, fwd, daemonConfig(ctx, false))

	p := tea.NewProgram(tui.NewModel(d.Scheduler(), ctx.Store), tea.WithAltScreen())
	fwd.Attach(p.Send)

	runCtx, stop := signalContext()
	defer stop()

	done := make(chan error, 1)
	go func() {
		err := d.Run(runCtx)
		if err != nil {
			p.Quit()
		}
		done <- err
	}()

	if _, err := p.Run(); err != nil {
		stop()
		<-done
		return fmt.Errorf("dashboard failed: %w", err)
	}
	stop()
	return <-done
}
