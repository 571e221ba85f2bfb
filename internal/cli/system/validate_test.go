package system

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tutr/internal/models"
)

func TestValidateCmd(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	seedStore(t, store)

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No conflicts detected.") {
		t.Errorf("unexpected output:\n%s", out)
	}

	// A clashing class and a second 30 min reminder on Algebra.
	clash := models.Class{
		ID: "c2", Subject: "Physics", StudentID: "s1",
		Days: models.Weekdays{time.Thursday}, StartTime: "16:30", EndTime: "17:30",
	}
	if err := store.AddClass(clash); err != nil {
		t.Fatal(err)
	}
	if err := store.AddReminder(models.Reminder{ID: "r2", ClassID: "c1", LeadMin: 30, Enabled: true}); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&ValidateCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Classes overlap on Thu", "Duplicate reminders", "✓ Removed 1 duplicate reminder(s)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := store.GetReminder("r2"); err == nil {
		t.Error("duplicate reminder r2 should be deleted")
	}
	if _, err := store.GetReminder("r1"); err != nil {
		t.Errorf("kept reminder r1 missing: %v", err)
	}
}

func TestDoctorCmd_ScheduleConflictsWarn(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	seedStore(t, store)
	if err := store.AddReminder(models.Reminder{ID: "r2", ClassID: "c1", LeadMin: 30, Enabled: true}); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("conflicts should only warn: %v\n%s", err, out)
	}
	if !strings.Contains(out.String(), "⚠ Schedule conflicts: WARNING") {
		t.Errorf("expected conflict warning:\n%s", out)
	}
}
