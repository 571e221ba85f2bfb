package reminders

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/tutr/internal/cli/clitest"
	"github.com/julianstephens/tutr/internal/storage"
)

func TestReminderAddCmd(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t)

	if err := (&ReminderAddCmd{Class: "Algebra"}).Run(env.Ctx); err != nil {
		t.Fatalf("add with default lead failed: %v", err)
	}
	lead := 120
	if err := (&ReminderAddCmd{Class: "c1", Lead: &lead, Disabled: true}).Run(env.Ctx); err != nil {
		t.Fatalf("add with lead failed: %v", err)
	}

	rems, err := env.Store.GetRemindersForClass("c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rems) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(rems))
	}
	var sawDefault, sawDisabled bool
	for _, r := range rems {
		if r.LeadMin == 15 && r.Enabled {
			sawDefault = true
		}
		if r.LeadMin == 120 && !r.Enabled {
			sawDisabled = true
		}
	}
	if !sawDefault || !sawDisabled {
		t.Errorf("reminders = %+v", rems)
	}
	if !strings.Contains(env.Out.String(), "✓ Reminder added: 2h before Algebra") {
		t.Errorf("unexpected output: %s", env.Out)
	}

	neg := -1
	if err := (&ReminderAddCmd{Class: "c1", Lead: &neg}).Run(env.Ctx); err == nil {
		t.Error("expected error for negative lead")
	}
}

func TestReminderEditCmd(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t)

	lead := 60
	if err := (&ReminderEditCmd{Reminder: "r1", Lead: &lead, Disable: true}).Run(env.Ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	r, err := env.Store.GetReminder("r1")
	if err != nil {
		t.Fatal(err)
	}
	if r.LeadMin != 60 || r.Enabled {
		t.Errorf("edited reminder = %+v", r)
	}

	if err := (&ReminderEditCmd{Reminder: "r1", Enable: true}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if r, _ := env.Store.GetReminder("r1"); !r.Enabled {
		t.Error("reminder should be enabled again")
	}
}

func TestReminderNextAndList(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t)

	if err := (&ReminderNextCmd{Limit: 1}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Out.String()
	// Tuesday's class today counts as next week, so Thursday fires first.
	for _, want := range []string{"Thu Mar 12 15:30", "2d 6h", "Class Reminder: Algebra", "Your class starts in 30 minutes."} {
		if !strings.Contains(out, want) {
			t.Errorf("next output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Mar 17") {
		t.Errorf("limit not applied:\n%s", out)
	}

	env.Out.Reset()
	if err := (&ReminderListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Algebra", "30 min", "true", "Thu Mar 12 15:30"} {
		if !strings.Contains(env.Out.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, env.Out)
		}
	}
}

func TestReminderNextCmd_Disabled(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t)
	if err := (&ReminderEditCmd{Reminder: "r1", Disable: true}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	env.Out.Reset()

	if err := (&ReminderNextCmd{Limit: 5}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "No reminders armed.") {
		t.Errorf("unexpected output: %s", env.Out)
	}
}

func TestReminderDeleteCmd(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t)

	if err := (&ReminderDeleteCmd{Reminder: "r1"}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Store.GetReminder("r1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("reminder still present: %v", err)
	}
	if err := (&ReminderDeleteCmd{Reminder: "r1"}).Run(env.Ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}
