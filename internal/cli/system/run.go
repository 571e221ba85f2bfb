package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/tutr/internal/backup"
	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/daemon"
	"github.com/julianstephens/tutr/internal/logger"
	"github.com/julianstephens/tutr/internal/notifier"
)

// signalContext is swapped in tests.
var signalContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

type RunCmd struct {
	DryRun bool `help:"Print reminders to stdout instead of sending them to the tray."`
}

func (c *RunCmd) Run(ctx *cli.Context) error {
	var n notifier.Notifier = notifier.NewTray()
	if c.DryRun {
		n = notifier.NewConsole(ctx.Writer())
	}

	d := daemon.New(ctx.Store, n, daemonConfig(ctx, true))

	runCtx, stop := signalContext()
	defer stop()

	logger.Info("Starting reminder daemon", "store", ctx.Store.GetConfigPath(), "dry_run", c.DryRun)
	return d.Run(runCtx)
}

// daemonConfig watches the SQLite file for changes. PostgreSQL has no
// file to watch, so the daemon polls it instead.
func daemonConfig(ctx *cli.Context, backups bool) daemon.Config {
	var cfg daemon.Config
	s, ok := ctx.SQLite()
	if !ok {
		return cfg
	}
	cfg.WatchPath = s.GetConfigPath()
	if backups {
		cfg.Backup = backup.NewManager(cfg.WatchPath).CreateBackup
	}
	return cfg
}
