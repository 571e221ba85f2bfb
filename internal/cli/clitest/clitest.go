// Package clitest builds command contexts over throwaway SQLite stores.
package clitest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/storage/sqlite"
)

// Now is the fixed clock of every test context: Tuesday 2026-03-10 09:00.
var Now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

type Env struct {
	Ctx   *cli.Context
	Store *sqlite.Store
	Out   *bytes.Buffer
}

// New initializes a store in t's temp dir and captures command output.
func New(t *testing.T) *Env {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &Env{
		Ctx: &cli.Context{
			Store: store,
			Out:   out,
			In:    strings.NewReader(""),
			Now:   func() time.Time { return Now },
		},
		Store: store,
		Out:   out,
	}
}

// Answer queues the text read by the next confirmation prompt.
func (e *Env) Answer(s string) {
	e.Ctx.In = strings.NewReader(s)
}

// Seed adds student s1 "Ana" with class c1 "Algebra" (Tue/Thu 16:00-17:00),
// reminder r1 (30 min) and a due March payment p1.
func (e *Env) Seed(t *testing.T) {
	t.Helper()
	st := models.Student{ID: "s1", Name: "Ana", MonthlySalary: 200, SalaryStatus: models.PaymentDue, CreatedAt: Now, UpdatedAt: Now}
	if err := e.Store.AddStudent(st); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	c := models.Class{
		ID:        "c1",
		Subject:   "Algebra",
		StudentID: "s1",
		Days:      models.Weekdays{time.Tuesday, time.Thursday},
		StartTime: "16:00",
		EndTime:   "17:00",
		CreatedAt: Now,
		UpdatedAt: Now,
	}
	if err := e.Store.AddClass(c); err != nil {
		t.Fatalf("AddClass: %v", err)
	}
	if err := e.Store.AddReminder(models.Reminder{ID: "r1", ClassID: "c1", LeadMin: 30, Enabled: true}); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	p := models.SalaryRecord{ID: "p1", StudentID: "s1", Amount: 200, Month: "2026-03", Status: models.PaymentDue}
	if err := e.Store.AddPayment(p); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
}
