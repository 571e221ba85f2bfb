package daemon

import (
	"github.com/julianstephens/tutr/internal/models"
)

type scheduler interface {
	ScheduleAll(reminders []models.Reminder, classes []models.Class)
	Update(r models.Reminder, classes []models.Class)
	Delete(reminderID string)
}

// plan is what a reload has to do to the scheduler.
type plan struct {
	rescheduleAll bool
	update        []models.Reminder
	remove        []string
}

// diff compares two snapshots. A class change reschedules everything since
// any of its reminders may move. Otherwise only reminders that were added,
// edited or removed are touched.
func diff(prev, next models.AppState) plan {
	if classesChanged(prev.Classes, next.Classes) {
		return plan{rescheduleAll: true}
	}

	var p plan
	old := make(map[string]models.Reminder, len(prev.Reminders))
	for _, r := range prev.Reminders {
		old[r.ID] = r
	}
	for _, r := range next.Reminders {
		if o, ok := old[r.ID]; !ok || o != r {
			p.update = append(p.update, r)
		}
		delete(old, r.ID)
	}
	for _, r := range prev.Reminders {
		if _, gone := old[r.ID]; gone {
			p.remove = append(p.remove, r.ID)
		}
	}
	return p
}

func (p plan) apply(s scheduler, state models.AppState) {
	if p.rescheduleAll {
		s.ScheduleAll(state.Reminders, state.Classes)
		return
	}
	for _, r := range p.update {
		s.Update(r, state.Classes)
	}
	for _, id := range p.remove {
		s.Delete(id)
	}
}

// classesChanged looks only at what a reminder depends on: identity,
// subject, weekdays and start time.
func classesChanged(prev, next []models.Class) bool {
	if len(prev) != len(next) {
		return true
	}
	old := make(map[string]models.Class, len(prev))
	for _, c := range prev {
		old[c.ID] = c
	}
	for _, c := range next {
		o, ok := old[c.ID]
		if !ok || o.Subject != c.Subject || o.StartTime != c.StartTime || !sameDays(o.Days, c.Days) {
			return true
		}
	}
	return false
}

func sameDays(a, b models.Weekdays) bool {
	a, b = a.Normalize(), b.Normalize()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
