package reminders

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/tutr/internal/logger"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/utils"
)

const dispatchTimeout = 10 * time.Second

// TaskState is the lifecycle position of one scheduled task.
type TaskState int

const (
	TaskArmed TaskState = iota
	TaskFiring
	TaskCancelled
)

func (s TaskState) String() string {
	switch s {
	case TaskArmed:
		return "armed"
	case TaskFiring:
		return "firing"
	default:
		return "cancelled"
	}
}

// task is one weekday instance of one reminder with a single countdown.
type task struct {
	reminder models.Reminder
	class    models.Class
	weekday  time.Weekday
	start    time.Time
	fireAt   time.Time
	timer    Timer
	state    TaskState
}

// Pending describes a live task.
type Pending struct {
	ReminderID string
	ClassID    string
	Subject    string
	Weekday    time.Weekday
	LeadMin    int
	ClassStart time.Time
	FireAt     time.Time
	State      TaskState
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithLogger sets the scheduler's logger. It defaults to the global logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// Scheduler keeps one countdown per (reminder, weekday) and re-arms each one
// for the following week after it fires.
type Scheduler struct {
	mu       sync.Mutex
	clock    Clock
	notifier Notifier
	log      *log.Logger
	tasks    map[string]map[time.Weekday]*task
}

func New(n Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:    SystemClock{},
		notifier: n,
		tasks:    make(map[string]map[time.Weekday]*task),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Logger
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	return s
}

// ScheduleAll rebuilds the table: every task is cancelled, then each enabled
// reminder whose class exists gets one task per class weekday.
func (s *Scheduler) ScheduleAll(reminders []models.Reminder, classes []models.Class) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		s.armReminderLocked(r, classes)
	}
	s.log.Debug("Reminders scheduled", "tasks", s.lenLocked())
}

// ClearAll cancels every task. Calling it on an empty table is a no-op.
func (s *Scheduler) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Update cancels the reminder's tasks and re-arms them if it is enabled.
func (s *Scheduler) Update(r models.Reminder, classes []models.Class) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelReminderLocked(r.ID)
	if r.Enabled {
		s.armReminderLocked(r, classes)
	}
}

// Delete cancels the reminder's tasks. Unknown ids are ignored.
func (s *Scheduler) Delete(reminderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelReminderLocked(reminderID)
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lenLocked()
}

// Pending returns the live tasks ordered by fire time.
func (s *Scheduler) Pending() []Pending {
	s.mu.Lock()
	out := make([]Pending, 0, s.lenLocked())
	for _, byDay := range s.tasks {
		for _, t := range byDay {
			out = append(out, Pending{
				ReminderID: t.reminder.ID,
				ClassID:    t.class.ID,
				Subject:    t.class.Subject,
				Weekday:    t.weekday,
				LeadMin:    t.reminder.LeadMin,
				ClassStart: t.start,
				FireAt:     t.fireAt,
				State:      t.state,
			})
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].FireAt.Equal(out[j].FireAt) {
			return out[i].FireAt.Before(out[j].FireAt)
		}
		return out[i].ReminderID < out[j].ReminderID
	})
	return out
}

func (s *Scheduler) lenLocked() int {
	n := 0
	for _, byDay := range s.tasks {
		n += len(byDay)
	}
	return n
}

func (s *Scheduler) clearLocked() {
	for id := range s.tasks {
		s.cancelReminderLocked(id)
	}
}

func (s *Scheduler) cancelReminderLocked(reminderID string) {
	byDay, ok := s.tasks[reminderID]
	if !ok {
		return
	}
	for _, t := range byDay {
		t.timer.Stop()
		t.state = TaskCancelled
	}
	delete(s.tasks, reminderID)
}

// armReminderLocked arms one task per weekday of the reminder's class.
func (s *Scheduler) armReminderLocked(r models.Reminder, classes []models.Class) {
	class, ok := findClass(classes, r.ClassID)
	if !ok {
		// The class was deleted: the reminder stays dormant.
		s.log.Debug("Reminder class not found", "reminder", r.ID, "class", r.ClassID)
		return
	}
	for _, wd := range class.Days.Normalize() {
		s.armLocked(r, class, wd)
	}
}

// armLocked computes the next fire time for (r, wd) and replaces whatever
// task the key held. Callers cancel the previous task first unless it is
// the one that just fired.
func (s *Scheduler) armLocked(r models.Reminder, class models.Class, wd time.Weekday) {
	start, err := utils.ParseTime(class.StartTime)
	if err != nil {
		s.log.Debug("Class start time is malformed", "class", class.ID, "start", class.StartTime)
		return
	}

	now := s.clock.Now()
	fireAt, occurrence := NextFireTime(now, wd, start.Hour(), start.Minute(), r.LeadMin)

	t := &task{
		reminder: r,
		class:    class,
		weekday:  wd,
		start:    occurrence,
		fireAt:   fireAt,
		state:    TaskArmed,
	}
	t.timer = s.clock.AfterFunc(fireAt.Sub(now), func() { s.fire(t) })

	byDay, ok := s.tasks[r.ID]
	if !ok {
		byDay = make(map[time.Weekday]*task)
		s.tasks[r.ID] = byDay
	}
	byDay[wd] = t

	s.log.Debug("Reminder armed", "reminder", r.ID, "subject", class.Subject, "weekday", wd, "fire_at", fireAt.Format(time.RFC3339))
}

// isLiveLocked reports whether t is still the task stored for its key.
func (s *Scheduler) isLiveLocked(t *task) bool {
	byDay, ok := s.tasks[t.reminder.ID]
	return ok && byDay[t.weekday] == t
}

// fire runs when a task's countdown expires: armed -> firing -> re-armed.
// A callback for a task that was cancelled or replaced does nothing.
func (s *Scheduler) fire(t *task) {
	s.mu.Lock()
	if !s.isLiveLocked(t) || t.state != TaskArmed {
		s.mu.Unlock()
		return
	}
	t.state = TaskFiring
	subject, lead := t.class.Subject, t.reminder.LeadMin
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	dispatch(ctx, s.notifier, s.log, subject, lead)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	// Cancelled or replaced while the notification was on screen.
	if !s.isLiveLocked(t) || t.state != TaskFiring {
		return
	}
	s.armLocked(t.reminder, t.class, t.weekday)
}

func findClass(classes []models.Class, id string) (models.Class, bool) {
	for _, c := range classes {
		if c.ID == id {
			return c, true
		}
	}
	return models.Class{}, false
}
