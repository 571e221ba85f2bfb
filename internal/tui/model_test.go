package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tutr/internal/constants"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/notifier"
	"github.com/julianstephens/tutr/internal/reminders"
)

type staticPending []reminders.Pending

func (s staticPending) Pending() []reminders.Pending { return s }

type staticStore struct {
	state models.AppState
	err   error
	reads int
}

func (s *staticStore) Snapshot() (models.AppState, error) {
	s.reads++
	return s.state, s.err
}

// Tuesday 2026-03-10 15:00.
var tuesday = time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)

func testModel(store *staticStore) Model {
	pending := staticPending{{
		ReminderID: "r1",
		Subject:    "Algebra",
		LeadMin:    30,
		ClassStart: tuesday.Add(time.Hour),
		FireAt:     tuesday.Add(30 * time.Minute),
		State:      reminders.TaskArmed,
	}}
	m := NewModel(pending, store)
	m.now = func() time.Time { return tuesday }
	m.refresh(tuesday, true)
	return m
}

func testStore() *staticStore {
	return &staticStore{state: models.AppState{
		Students: []models.Student{{ID: "s1", Name: "Ana"}},
		Classes: []models.Class{
			{ID: "c1", Subject: "Algebra", StudentID: "s1", Days: models.Weekdays{time.Tuesday}, StartTime: "16:00", EndTime: "17:00"},
			{ID: "c2", Subject: "Physics", StudentID: "s1", Days: models.Weekdays{time.Monday}, StartTime: "10:00", EndTime: "11:00"},
		},
	}}
}

func TestModel_TabsCycle(t *testing.T) {
	m := testModel(testStore())
	if m.state != constants.StateReminders {
		t.Fatalf("initial state = %v", m.state)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.state != constants.StateToday {
		t.Errorf("after tab state = %v, want today", m.state)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.state != constants.StateReminders {
		t.Errorf("tab should wrap, got %v", m.state)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	if m.state != constants.StateToday {
		t.Errorf("shift+tab should wrap backwards, got %v", m.state)
	}
}

func TestModel_Quit(t *testing.T) {
	m := testModel(testStore())
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(Model).quitting {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Fatal("expected tea.Quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command is not tea.Quit")
	}
	if next.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModel_NotificationsAreKept(t *testing.T) {
	m := testModel(testStore())
	for i := 0; i < maxNotices+2; i++ {
		next, _ := m.Update(NotificationMsg{Title: "Class Reminder: Algebra", Body: "Your class starts in 30 minutes.", At: tuesday})
		m = next.(Model)
	}
	if len(m.notices) != maxNotices {
		t.Errorf("notices = %d, want %d", len(m.notices), maxNotices)
	}
	if !strings.Contains(m.View(), "Class Reminder: Algebra") {
		t.Error("view should show the notification")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if n := len(next.(Model).notices); n != 0 {
		t.Errorf("clear left %d notices", n)
	}
}

func TestModel_ViewShowsData(t *testing.T) {
	m := testModel(testStore())
	m.refresh(tuesday, true)

	view := m.View()
	for _, want := range []string{"Reminders (1)", "Today (1)", "Algebra", "30 min"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_StoreReadThrottled(t *testing.T) {
	store := testStore()
	m := testModel(store)
	reads := store.reads

	next, _ := m.Update(TickMsg(tuesday.Add(10 * time.Second)))
	m = next.(Model)
	if store.reads != reads {
		t.Errorf("store read within the same minute")
	}
	next, _ = m.Update(TickMsg(tuesday.Add(time.Minute)))
	m = next.(Model)
	if store.reads != reads+1 {
		t.Errorf("store reads = %d, want %d", store.reads, reads+1)
	}
}

func TestModel_RefreshKeyReloads(t *testing.T) {
	store := testStore()
	m := testModel(store)
	reads := store.reads

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(Model)
	if store.reads != reads+1 {
		t.Errorf("store reads = %d, want %d", store.reads, reads+1)
	}
}

func TestModel_StoreError(t *testing.T) {
	store := &staticStore{err: errors.New("database is locked")}
	m := testModel(store)
	if !strings.Contains(m.View(), "database is locked") {
		t.Error("store error should be shown")
	}
}

func TestForwarder(t *testing.T) {
	f := NewForwarder()
	ctx := context.Background()
	if p := f.RequestPermission(ctx); p != notifier.PermissionUnsupported {
		t.Errorf("detached permission = %v", p)
	}
	if err := f.Display(ctx, "t", "b"); err == nil {
		t.Error("detached display should fail")
	}

	var got []tea.Msg
	f.Attach(func(msg tea.Msg) { got = append(got, msg) })
	if p := f.RequestPermission(ctx); p != notifier.PermissionGranted {
		t.Errorf("attached permission = %v", p)
	}
	if err := f.Display(ctx, "Class Reminder: Algebra", "Your class starts in 30 minutes."); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("messages = %d", len(got))
	}
	msg, ok := got[0].(NotificationMsg)
	if !ok || msg.Title != "Class Reminder: Algebra" || msg.At.IsZero() {
		t.Errorf("message = %#v", got[0])
	}
}
