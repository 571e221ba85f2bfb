package daemon

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/notifier"
	"github.com/julianstephens/tutr/internal/reminders"
)

type fakeStore struct {
	mu       sync.Mutex
	state    models.AppState
	settings models.Settings
	rev      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: baseState(), settings: models.DefaultSettings()}
}

func (f *fakeStore) Snapshot() (models.AppState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneState(f.state), nil
}

func (f *fakeStore) Fingerprint() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strconv.Itoa(f.rev), nil
}

func (f *fakeStore) GetSettings() (models.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings, nil
}

func (f *fakeStore) edit(fn func(*models.AppState, *models.Settings)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.state, &f.settings)
	f.rev++
}

// stillClock never fires; tasks only need to be armed.
type stillClock struct{ now time.Time }

type nopTimer struct{}

func (nopTimer) Stop() bool { return true }

func (c stillClock) Now() time.Time { return c.now }

func (c stillClock) AfterFunc(time.Duration, func()) reminders.Timer { return nopTimer{} }

// Monday 2026-03-09 08:00.
var monday = time.Date(2026, 3, 9, 8, 0, 0, 0, time.Local)

func newTestDaemon(t *testing.T, store Store, cfg Config, opts ...Option) *Daemon {
	t.Helper()
	opts = append([]Option{
		WithClock(stillClock{now: monday}),
		WithLogger(log.New(io.Discard)),
		WithSdNotify(func(string) (bool, error) { return false, nil }),
	}, opts...)
	return New(store, notifier.NewConsole(os.Stdout), cfg, opts...)
}

func leadFor(d *Daemon, reminderID string) []int {
	var leads []int
	for _, p := range d.Scheduler().Pending() {
		if p.ReminderID == reminderID {
			leads = append(leads, p.LeadMin)
		}
	}
	return leads
}

func TestDaemon_StartSchedulesEverything(t *testing.T) {
	d := newTestDaemon(t, newFakeStore(), Config{})
	if err := d.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	// r1: Tue+Thu, r2: Mon.
	if got := d.Scheduler().Len(); got != 3 {
		t.Errorf("tasks = %d, want 3", got)
	}
	if !d.NotificationsEnabled() {
		t.Error("notifications should start enabled")
	}
}

func TestDaemon_ReloadReconciles(t *testing.T) {
	store := newFakeStore()
	d := newTestDaemon(t, store, Config{})
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}

	reloaded, err := d.Reload()
	if err != nil || reloaded {
		t.Fatalf("Reload() with unchanged store = %v, %v", reloaded, err)
	}

	store.edit(func(s *models.AppState, _ *models.Settings) { s.Reminders[0].LeadMin = 45 })
	if reloaded, err := d.Reload(); err != nil || !reloaded {
		t.Fatalf("Reload() = %v, %v", reloaded, err)
	}
	if got := leadFor(d, "r1"); len(got) != 2 || got[0] != 45 || got[1] != 45 {
		t.Errorf("r1 leads = %v, want [45 45]", got)
	}

	store.edit(func(s *models.AppState, _ *models.Settings) { s.Reminders = s.Reminders[:1] })
	if _, err := d.Reload(); err != nil {
		t.Fatal(err)
	}
	if got := leadFor(d, "r2"); len(got) != 0 {
		t.Errorf("r2 should be cancelled, got %v", got)
	}

	store.edit(func(s *models.AppState, _ *models.Settings) { s.Classes[0].Days = models.Weekdays{time.Friday} })
	if _, err := d.Reload(); err != nil {
		t.Fatal(err)
	}
	pending := d.Scheduler().Pending()
	if len(pending) != 1 || pending[0].Weekday != time.Friday {
		t.Errorf("pending after class edit = %+v", pending)
	}
}

func TestDaemon_SettingsGateNotifications(t *testing.T) {
	store := newFakeStore()
	d := newTestDaemon(t, store, Config{})
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}

	store.edit(func(_ *models.AppState, st *models.Settings) { st.NotificationsEnabled = false })
	if _, err := d.Reload(); err != nil {
		t.Fatal(err)
	}
	if d.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = true after disabling")
	}
	// Tasks stay armed; only display is suppressed.
	if d.Scheduler().Len() != 3 {
		t.Errorf("tasks = %d, want 3", d.Scheduler().Len())
	}
}

type failingStore struct{ fakeStore }

func (f *failingStore) Snapshot() (models.AppState, error) {
	return models.AppState{}, errors.New("database is locked")
}

func TestDaemon_StartError(t *testing.T) {
	d := newTestDaemon(t, &failingStore{}, Config{})
	if err := d.Run(context.Background()); err == nil {
		t.Fatal("expected Run to fail when the store cannot be read")
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDaemon_RunPollsAndNotifiesSystemd(t *testing.T) {
	store := newFakeStore()

	var (
		mu     sync.Mutex
		states []string
	)
	sd := func(state string) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, state)
		return true, nil
	}

	d := newTestDaemon(t, store, Config{PollInterval: 10 * time.Millisecond, ReloadEvery: time.Millisecond}, WithSdNotify(sd))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	waitFor(t, "initial schedule", func() bool { return d.Scheduler().Len() == 3 })
	store.edit(func(s *models.AppState, _ *models.Settings) {
		s.Reminders = append(s.Reminders, models.Reminder{ID: "r3", ClassID: "c2", LeadMin: 5, Enabled: true})
	})
	waitFor(t, "reload", func() bool { return len(leadFor(d, "r3")) == 1 })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not stop")
	}

	if d.Scheduler().Len() != 0 {
		t.Errorf("tasks after stop = %d, want 0", d.Scheduler().Len())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(states) != 2 || states[0] != "READY=1" || states[1] != "STOPPING=1" {
		t.Errorf("systemd states = %v", states)
	}
}

func TestDaemon_ScheduledBackups(t *testing.T) {
	store := newFakeStore()
	store.settings.BackupSchedule = "@every 1s"

	var (
		mu    sync.Mutex
		count int
	)
	backup := func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		count++
		return "/tmp/tutr-backup.db", nil
	}

	d := newTestDaemon(t, store, Config{Backup: backup, PollInterval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	waitFor(t, "scheduled backup", func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count > 0
	})
	cancel()
	<-done
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
	}{
		{spec: ""},
		{spec: "@daily"},
		{spec: "@every 6h"},
		{spec: "0 3 * * *"},
		{spec: "30 0 3 * * *"},
		{spec: "not a schedule", wantErr: true},
		{spec: "61 * * * *", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if err := ValidateSchedule(tt.spec); (err != nil) != tt.wantErr {
				t.Errorf("ValidateSchedule(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
		})
	}
}

func TestIsDatabaseFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "tutr.db", want: true},
		{name: "tutr.db-wal", want: true},
		{name: "tutr.db-journal", want: true},
		{name: "TUTR.DB", want: true},
		{name: "tutr.db-shm", want: false},
		{name: "other.db", want: false},
	}
	for _, tt := range tests {
		if got := isDatabaseFile(tt.name, "tutr.db"); got != tt.want {
			t.Errorf("isDatabaseFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWatchSignalsOnWrite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tutr.db")
	if err := os.WriteFile(dbPath, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	d := newTestDaemon(t, newFakeStore(), Config{WatchPath: dbPath, PollInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan struct{}, 1)
	go d.watch(ctx, changes)

	// The watcher registers asynchronously; keep writing until it notices.
	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-changes:
			return
		case <-tick.C:
			if err := os.WriteFile(dbPath, []byte("y"), 0o600); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no change signalled")
		}
	}
}
