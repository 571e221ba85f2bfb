package classes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/models"
)

type ClassListCmd struct {
	Student string `help:"Only list classes of this student (id, id prefix or name)."`
}

func (c *ClassListCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to get classes: %w", err)
	}

	classes := state.Classes
	if c.Student != "" {
		st, err := ctx.ResolveStudent(c.Student)
		if err != nil {
			return err
		}
		classes = classes[:0]
		for _, cl := range state.Classes {
			if cl.StudentID == st.ID {
				classes = append(classes, cl)
			}
		}
	}
	if len(classes) == 0 {
		ctx.Println("No classes found.")
		return nil
	}

	sort.Slice(classes, func(i, j int) bool {
		if classes[i].StartTime != classes[j].StartTime {
			return classes[i].StartTime < classes[j].StartTime
		}
		return strings.ToLower(classes[i].Subject) < strings.ToLower(classes[j].Subject)
	})

	reminders := make(map[string][]string)
	for _, r := range state.Reminders {
		if r.Enabled {
			reminders[r.ClassID] = append(reminders[r.ClassID], r.FormatLead())
		}
	}

	rows := make([][]string, 0, len(classes))
	for _, cl := range classes {
		rows = append(rows, []string{
			cli.ShortID(cl.ID),
			cl.Subject,
			studentName(state, cl.StudentID),
			cli.FormatSchedule(cl),
			fmt.Sprintf("%d min", cl.DurationMin()),
			strings.Join(reminders[cl.ID], ", "),
		})
	}
	ctx.Println(cli.RenderTable([]string{"ID", "Subject", "Student", "Schedule", "Length", "Reminders"}, rows))
	return nil
}

type ClassShowCmd struct {
	Class string `arg:"" help:"Class id, id prefix or subject."`
}

func (c *ClassShowCmd) Run(ctx *cli.Context) error {
	cl, err := ctx.ResolveClass(c.Class)
	if err != nil {
		return err
	}
	st, err := ctx.Store.GetStudent(cl.StudentID)
	if err != nil {
		return fmt.Errorf("failed to get student: %w", err)
	}
	reminders, err := ctx.Store.GetRemindersForClass(cl.ID)
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}

	ctx.Printf("%s with %s\n", cl.Subject, st.Name)
	ctx.Printf("  ID:       %s\n", cl.ID)
	ctx.Printf("  Days:     %s\n", strings.Join(cl.Days.Names(), ", "))
	ctx.Printf("  Time:     %s (%d min)\n", cli.FormatSchedule(cl), cl.DurationMin())
	if cl.Location != "" {
		ctx.Printf("  Location: %s\n", cl.Location)
	}
	if cl.Notes != "" {
		ctx.Printf("  Notes:    %s\n", cl.Notes)
	}

	ctx.Println("\nReminders:")
	if len(reminders) == 0 {
		ctx.Println("  none")
	}
	for _, r := range reminders {
		state := "enabled"
		if !r.Enabled {
			state = "disabled"
		}
		ctx.Printf("  %s  %s before (%s)\n", cli.ShortID(r.ID), r.FormatLead(), state)
	}
	return nil
}

func studentName(state models.AppState, id string) string {
	if st, ok := state.StudentByID(id); ok {
		return st.Name
	}
	return "?"
}
