// Package daemon keeps the reminder scheduler in step with the store while
// `tutr run` is up.
package daemon

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	sddaemon "github.com/coreos/go-systemd/v22/daemon"
	"golang.org/x/time/rate"

	"github.com/julianstephens/tutr/internal/constants"
	"github.com/julianstephens/tutr/internal/logger"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/notifier"
	"github.com/julianstephens/tutr/internal/reminders"
)

// Store is the part of storage.Provider the daemon reads.
type Store interface {
	Snapshot() (models.AppState, error)
	Fingerprint() (string, error)
	GetSettings() (models.Settings, error)
}

type Config struct {
	// WatchPath is the SQLite database file. Empty means poll the store's
	// fingerprint instead (PostgreSQL).
	WatchPath    string
	PollInterval time.Duration
	ReloadEvery  time.Duration
	// Backup runs on the backup_schedule setting. Nil disables backups.
	Backup func() (string, error)
}

type Option func(*Daemon)

func WithLogger(l *log.Logger) Option {
	return func(d *Daemon) { d.log = l }
}

// WithClock is handed to the scheduler.
func WithClock(c reminders.Clock) Option {
	return func(d *Daemon) { d.clock = c }
}

// WithSdNotify replaces the systemd notification call.
func WithSdNotify(fn func(state string) (bool, error)) Option {
	return func(d *Daemon) { d.sdNotify = fn }
}

type Daemon struct {
	store    Store
	cfg      Config
	log      *log.Logger
	clock    reminders.Clock
	sched    *reminders.Scheduler
	limiter  *rate.Limiter
	sdNotify func(state string) (bool, error)
	enabled  atomic.Bool

	mu          sync.Mutex
	last        models.AppState
	fingerprint string
	reloads     int
}

// New builds the daemon and its scheduler. Notifications go through n,
// gated on the notifications_enabled setting.
func New(store Store, n notifier.Notifier, cfg Config, opts ...Option) *Daemon {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = constants.PollInterval
	}
	if cfg.ReloadEvery <= 0 {
		cfg.ReloadEvery = constants.ReloadInterval
	}

	d := &Daemon{
		store:    store,
		cfg:      cfg,
		sdNotify: func(state string) (bool, error) { return sddaemon.SdNotify(false, state) },
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = logger.Logger
	}
	if d.log == nil {
		d.log = log.New(io.Discard)
	}
	d.enabled.Store(true)
	d.limiter = rate.NewLimiter(rate.Every(cfg.ReloadEvery), 1)

	schedOpts := []reminders.Option{reminders.WithLogger(d.log)}
	if d.clock != nil {
		schedOpts = append(schedOpts, reminders.WithClock(d.clock))
	}
	d.sched = reminders.New(notifier.NewGate(n, d.enabled.Load), schedOpts...)
	return d
}

// Scheduler exposes the task table, mainly for the watch dashboard.
func (d *Daemon) Scheduler() *reminders.Scheduler {
	return d.sched
}

// Start loads the store and arms every reminder.
func (d *Daemon) Start() error {
	state, err := d.store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	fp, err := d.store.Fingerprint()
	if err != nil {
		return err
	}
	d.refreshSettings()

	d.mu.Lock()
	d.last = state
	d.fingerprint = fp
	d.mu.Unlock()

	d.sched.ScheduleAll(state.Reminders, state.Classes)
	d.log.Info("Reminders scheduled", "reminders", len(state.Reminders), "tasks", d.sched.Len())
	return nil
}

// Run starts the daemon and blocks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(); err != nil {
		return err
	}
	defer d.sched.ClearAll()

	if c := d.startBackups(); c != nil {
		defer func() { <-c.Stop().Done() }()
	}

	changes := make(chan struct{}, 1)
	if d.cfg.WatchPath != "" {
		go d.watch(ctx, changes)
	} else {
		go d.poll(ctx, changes)
	}

	d.notify(sddaemon.SdNotifyReady)
	defer d.notify(sddaemon.SdNotifyStopping)

	for {
		select {
		case <-ctx.Done():
			d.log.Info("Daemon stopping")
			return nil
		case <-changes:
			if err := d.limiter.Wait(ctx); err != nil {
				return nil
			}
			if _, err := d.Reload(); err != nil {
				d.log.Warn("Reload failed", "error", err)
			}
		}
	}
}

// Reload re-reads the store if its fingerprint moved and reconciles the
// scheduler. It reports whether anything was reloaded.
func (d *Daemon) Reload() (bool, error) {
	fp, err := d.store.Fingerprint()
	if err != nil {
		return false, err
	}

	d.mu.Lock()
	unchanged := fp == d.fingerprint
	d.mu.Unlock()
	if unchanged {
		return false, nil
	}

	state, err := d.store.Snapshot()
	if err != nil {
		return false, fmt.Errorf("failed to load data: %w", err)
	}
	d.refreshSettings()

	d.mu.Lock()
	prev := d.last
	d.last = state
	d.fingerprint = fp
	d.reloads++
	d.mu.Unlock()

	p := diff(prev, state)
	p.apply(d.sched, state)
	d.log.Debug("Store reloaded", "fingerprint", fp, "rescheduled", p.rescheduleAll, "updated", len(p.update), "removed", len(p.remove))
	return true, nil
}

func (d *Daemon) refreshSettings() {
	settings, err := d.store.GetSettings()
	if err != nil {
		d.log.Warn("Failed to read settings", "error", err)
		return
	}
	d.enabled.Store(settings.NotificationsEnabled)
}

// NotificationsEnabled mirrors the notifications_enabled setting as of the
// last reload.
func (d *Daemon) NotificationsEnabled() bool {
	return d.enabled.Load()
}

func (d *Daemon) notify(state string) {
	sent, err := d.sdNotify(state)
	if err != nil {
		d.log.Warn("Failed to notify systemd", "state", state, "error", err)
		return
	}
	if sent {
		d.log.Debug("Notified systemd", "state", state)
	}
}

func (d *Daemon) signal(changes chan<- struct{}) {
	select {
	case changes <- struct{}{}:
	default:
	}
}

func (d *Daemon) poll(ctx context.Context, changes chan<- struct{}) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.signal(changes)
		}
	}
}
