package classes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/constants"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/tui/forms"
)

type ClassAddCmd struct {
	Subject     string `arg:"" optional:"" help:"Class subject."`
	Student     string `help:"Student id, id prefix or name."`
	Days        string `help:"Comma-separated weekdays (e.g. mon,wed or 1,3)."`
	Start       string `help:"Start time (HH:MM)."`
	End         string `help:"End time (HH:MM)."`
	Location    string `help:"Where the class takes place."`
	Notes       string `help:"Free-form notes."`
	Remind      bool   `help:"Add a reminder with the default lead time."`
	Lead        *int   `help:"Add a reminder this many minutes before each class."`
	Interactive bool   `short:"i" help:"Fill in the class with a form."`
}

func (c *ClassAddCmd) Validate() error {
	if c.Interactive {
		return nil
	}
	var missing []string
	for flag, v := range map[string]string{"subject": c.Subject, "--student": c.Student, "--days": c.Days, "--start": c.Start, "--end": c.End} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, flag)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("missing %s (or use --interactive)", strings.Join(missing, ", "))
	}
	if c.Lead != nil && *c.Lead < 0 {
		return fmt.Errorf("--lead cannot be negative")
	}
	return nil
}

func (c *ClassAddCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	var (
		class    models.Class
		reminder *models.Reminder
	)
	if c.Interactive {
		class, reminder, err = c.fromForm(ctx, settings)
	} else {
		class, reminder, err = c.fromFlags(ctx, settings)
	}
	if err != nil {
		return err
	}

	if err := ctx.Store.AddClass(class); err != nil {
		return fmt.Errorf("failed to add class: %w", err)
	}
	ctx.Printf("✓ Class added: %s, %s [%s]\n", class.Subject, cli.FormatSchedule(class), cli.ShortID(class.ID))
	warnOverlaps(ctx, class)

	if reminder != nil {
		if err := ctx.Store.AddReminder(*reminder); err != nil {
			return fmt.Errorf("failed to add reminder: %w", err)
		}
		ctx.Printf("✓ Reminder added: %s before each class\n", reminder.FormatLead())
	}
	return nil
}

func (c *ClassAddCmd) fromFlags(ctx *cli.Context, settings models.Settings) (models.Class, *models.Reminder, error) {
	st, err := ctx.ResolveStudent(c.Student)
	if err != nil {
		return models.Class{}, nil, err
	}
	days, err := cli.ParseWeekdays(c.Days)
	if err != nil {
		return models.Class{}, nil, err
	}

	now := ctx.Clock()
	class := models.Class{
		ID:        uuid.New().String(),
		Subject:   strings.TrimSpace(c.Subject),
		StudentID: st.ID,
		Days:      days,
		StartTime: strings.TrimSpace(c.Start),
		EndTime:   strings.TrimSpace(c.End),
		Location:  c.Location,
		Notes:     c.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := class.Validate(); err != nil {
		return models.Class{}, nil, err
	}

	if !c.Remind && c.Lead == nil {
		return class, nil, nil
	}
	lead := settings.DefaultLeadMin
	if c.Lead != nil {
		lead = *c.Lead
	}
	r := &models.Reminder{ID: uuid.New().String(), ClassID: class.ID, LeadMin: lead, Enabled: true}
	return class, r, r.Validate()
}

func (c *ClassAddCmd) fromForm(ctx *cli.Context, settings models.Settings) (models.Class, *models.Reminder, error) {
	students, err := ctx.Store.GetAllStudents()
	if err != nil {
		return models.Class{}, nil, fmt.Errorf("failed to get students: %w", err)
	}
	if len(students) == 0 {
		return models.Class{}, nil, fmt.Errorf("add a student first with 'tutr student add'")
	}

	in := forms.ClassInput{
		Subject:   c.Subject,
		StartTime: c.Start,
		EndTime:   c.End,
		Location:  c.Location,
		Notes:     c.Notes,
		Remind:    true,
		LeadMin:   constants.LeadTimeOptions[0],
	}
	if slices.Contains(constants.LeadTimeOptions, settings.DefaultLeadMin) {
		in.LeadMin = settings.DefaultLeadMin
	}
	if c.Student != "" {
		if st, err := ctx.ResolveStudent(c.Student); err == nil {
			in.StudentID = st.ID
		}
	}
	if c.Days != "" {
		if days, err := cli.ParseWeekdays(c.Days); err == nil {
			in.Days = days
		}
	}

	if err := forms.NewClassForm(&in, students).Run(); err != nil {
		return models.Class{}, nil, err
	}
	return in.Class(ctx.Clock())
}
