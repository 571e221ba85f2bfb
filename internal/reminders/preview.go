package reminders

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/tutr/internal/models"
)

// frozenClock never advances and never fires.
type frozenClock struct{ now time.Time }

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

func (c frozenClock) Now() time.Time                        { return c.now }
func (c frozenClock) AfterFunc(time.Duration, func()) Timer { return idleTimer{} }

// Preview returns the tasks a scheduler started at now would arm, ordered
// by fire time. Nothing is dispatched.
func Preview(reminders []models.Reminder, classes []models.Class, now time.Time) []Pending {
	s := New(nil, WithClock(frozenClock{now: now}), WithLogger(log.New(io.Discard)))
	s.ScheduleAll(reminders, classes)
	return s.Pending()
}
