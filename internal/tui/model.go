// Package tui is the `tutr watch` dashboard: the armed reminders, today's
// classes and the notifications fired while it is open.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tutr/internal/constants"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/reminders"
	"github.com/julianstephens/tutr/internal/tui/components/today"
	"github.com/julianstephens/tutr/internal/tui/components/upcoming"
	"github.com/julianstephens/tutr/internal/utils"
)

const (
	maxNotices = 5

	// used until the first WindowSizeMsg
	defaultWidth  = 80
	defaultHeight = 12
)

// PendingSource is the scheduler's read side.
type PendingSource interface {
	Pending() []reminders.Pending
}

// Snapshotter reads the store for today's classes.
type Snapshotter interface {
	Snapshot() (models.AppState, error)
}

type TickMsg time.Time

type Model struct {
	pending    PendingSource
	store      Snapshotter
	now        func() time.Time
	state      constants.SessionState
	keys       KeyMap
	help       help.Model
	upcoming   upcoming.Model
	today      today.Model
	notices    []NotificationMsg
	storeError string
	clock      time.Time
	lastLoad   time.Time
	quitting   bool
	width      int
	height     int
}

func NewModel(pending PendingSource, store Snapshotter) Model {
	m := Model{
		pending:  pending,
		store:    store,
		now:      time.Now,
		state:    constants.StateReminders,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		upcoming: upcoming.New(defaultWidth, defaultHeight),
		today:    today.New(defaultWidth, defaultHeight),
	}
	m.refresh(m.now(), true)
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(constants.WatchTickPeriod, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// refresh re-reads the task table every tick and the store once a minute
// or when forced.
func (m *Model) refresh(now time.Time, reload bool) {
	m.clock = now
	m.upcoming.SetPending(m.pending.Pending(), now)

	if !reload && now.Truncate(time.Minute).Equal(m.lastLoad.Truncate(time.Minute)) {
		return
	}
	m.lastLoad = now

	state, err := m.store.Snapshot()
	if err != nil {
		m.storeError = err.Error()
		return
	}
	m.storeError = ""

	names := make(map[string]string, len(state.Students))
	for _, st := range state.Students {
		names[st.ID] = st.Name
	}
	m.today.SetOccurrences(utils.TodayOccurrences(state.Classes, now), names, now)
}
