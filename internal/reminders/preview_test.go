package reminders

import (
	"testing"
	"time"

	"github.com/julianstephens/tutr/internal/models"
)

func TestPreview(t *testing.T) {
	class := algebra()
	class.Days = models.Weekdays{time.Tuesday, time.Monday}
	rems := []models.Reminder{
		{ID: "r1", ClassID: class.ID, LeadMin: 30, Enabled: true},
		{ID: "r2", ClassID: class.ID, LeadMin: 60, Enabled: false},
		{ID: "r3", ClassID: "missing", LeadMin: 15, Enabled: true},
	}

	got := Preview(rems, []models.Class{class}, monday8am)
	if len(got) != 2 {
		t.Fatalf("Preview() returned %d tasks, want 2", len(got))
	}

	// Monday's class today counts as next week, so Tuesday comes first.
	want := []time.Time{
		time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 16, 15, 30, 0, 0, time.UTC),
	}
	for i, p := range got {
		if p.ReminderID != "r1" || p.State != TaskArmed {
			t.Errorf("task %d = %+v", i, p)
		}
		if !p.FireAt.Equal(want[i]) {
			t.Errorf("task %d fires at %v, want %v", i, p.FireAt, want[i])
		}
	}
}
