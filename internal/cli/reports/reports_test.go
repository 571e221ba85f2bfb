package reports

import (
	"strings"
	"testing"

	"github.com/julianstephens/tutr/internal/cli/clitest"
)

func TestIncomeCmd(t *testing.T) {
	tests := []struct {
		name  string
		month string
		want  []string
	}{
		{
			name: "current month",
			want: []string{"Income for March 2026", "Expected: $200.00", "Paid:     $0.00", "Due:      $200.00"},
		},
		{
			name:  "month without records",
			month: "2026-01",
			want:  []string{"Income for January 2026", "Expected: $200.00", "Due:      $0.00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := clitest.New(t)
			env.Seed(t)
			cmd := &IncomeCmd{Month: tt.month}
			if err := cmd.Validate(); err != nil {
				t.Fatal(err)
			}
			if err := cmd.Run(env.Ctx); err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(env.Out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, env.Out)
				}
			}
		})
	}

	if err := (&IncomeCmd{Month: "2026/03"}).Validate(); err == nil {
		t.Error("expected error for malformed month")
	}
}

func TestTodayCmd(t *testing.T) {
	env := clitest.New(t)
	if err := (&TodayCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "No classes today (Tuesday, Mar 10).") {
		t.Errorf("unexpected output: %s", env.Out)
	}

	env.Seed(t)
	env.Out.Reset()
	if err := (&TodayCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Today, Tuesday, Mar 10", "4:00 PM-5:00 PM", "Algebra", "Ana"} {
		if !strings.Contains(env.Out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, env.Out)
		}
	}
}

func TestUpcomingCmd(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t)

	if err := (&UpcomingCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Out.String()
	for _, want := range []string{"Tue Mar 10", "Thu Mar 12", "4:00 PM", "Algebra"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Mar 17") {
		t.Errorf("window should end before next Tuesday:\n%s", out)
	}

	env.Out.Reset()
	if err := (&UpcomingCmd{Days: 1}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(env.Out.String(), "Thu Mar 12") {
		t.Errorf("one-day window includes Thursday:\n%s", env.Out)
	}
}
