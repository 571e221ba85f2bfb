package tui

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tutr/internal/notifier"
)

// NotificationMsg carries a fired reminder into the dashboard.
type NotificationMsg struct {
	Title string
	Body  string
	At    time.Time
}

var errDetached = errors.New("dashboard is not running")

// Forwarder is a notifier that hands notifications to a running program.
// It is created before the program so the scheduler can be built first.
type Forwarder struct {
	mu   sync.Mutex
	send func(tea.Msg)
	now  func() time.Time
}

func NewForwarder() *Forwarder {
	return &Forwarder{now: time.Now}
}

// Attach connects the forwarder to a program's Send.
func (f *Forwarder) Attach(send func(tea.Msg)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.send = send
}

// RequestPermission is unsupported until a program is attached.
func (f *Forwarder) RequestPermission(context.Context) notifier.Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.send == nil {
		return notifier.PermissionUnsupported
	}
	return notifier.PermissionGranted
}

func (f *Forwarder) Display(_ context.Context, title, body string) error {
	f.mu.Lock()
	send := f.send
	f.mu.Unlock()
	if send == nil {
		return errDetached
	}
	send(NotificationMsg{Title: title, Body: body, At: f.now()})
	return nil
}
