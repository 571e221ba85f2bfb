package classes

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/logger"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/validation"
)

type ClassEditCmd struct {
	Class    string  `arg:"" help:"Class id, id prefix or subject."`
	Subject  *string `help:"New subject."`
	Student  *string `help:"Move the class to another student (id, id prefix or name)."`
	Days     *string `help:"New comma-separated weekdays."`
	Start    *string `help:"New start time (HH:MM)."`
	End      *string `help:"New end time (HH:MM)."`
	Location *string `help:"New location."`
	Notes    *string `help:"New notes."`
}

func (c *ClassEditCmd) Run(ctx *cli.Context) error {
	cl, err := ctx.ResolveClass(c.Class)
	if err != nil {
		return err
	}

	updated := false
	if c.Subject != nil {
		cl.Subject = strings.TrimSpace(*c.Subject)
		updated = true
	}
	if c.Student != nil {
		st, err := ctx.ResolveStudent(*c.Student)
		if err != nil {
			return err
		}
		cl.StudentID = st.ID
		updated = true
	}
	if c.Days != nil {
		days, err := cli.ParseWeekdays(*c.Days)
		if err != nil {
			return err
		}
		cl.Days = days
		updated = true
	}
	if c.Start != nil {
		cl.StartTime = strings.TrimSpace(*c.Start)
		updated = true
	}
	if c.End != nil {
		cl.EndTime = strings.TrimSpace(*c.End)
		updated = true
	}
	if c.Location != nil {
		cl.Location = *c.Location
		updated = true
	}
	if c.Notes != nil {
		cl.Notes = *c.Notes
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use flags such as --days or --start to update the class.")
		return nil
	}
	if err := cl.Validate(); err != nil {
		return err
	}
	cl.UpdatedAt = ctx.Clock()
	if err := ctx.Store.UpdateClass(cl); err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	ctx.Printf("✓ Class updated: %s, %s\n", cl.Subject, cli.FormatSchedule(cl))
	warnOverlaps(ctx, cl)
	return nil
}

// warnOverlaps prints clashes with the rest of the timetable. The class is
// already saved; overlaps are allowed.
func warnOverlaps(ctx *cli.Context, cl models.Class) {
	all, err := ctx.Store.GetAllClasses()
	if err != nil {
		logger.Warn("Failed to check for overlapping classes", "error", err)
		return
	}
	for _, c := range validation.New().ValidateClass(cl, all) {
		ctx.Printf("⚠ %s\n", c.Description)
	}
}
