package reminders

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/models"
	sched "github.com/julianstephens/tutr/internal/reminders"
	"github.com/julianstephens/tutr/internal/tui/components/upcoming"
)

type ReminderAddCmd struct {
	Class    string `arg:"" help:"Class id, id prefix or subject."`
	Lead     *int   `help:"Minutes before class (defaults to the default_lead_min setting)."`
	Disabled bool   `help:"Store the reminder without arming it."`
}

func (c *ReminderAddCmd) Run(ctx *cli.Context) error {
	cl, err := ctx.ResolveClass(c.Class)
	if err != nil {
		return err
	}
	lead := 0
	if c.Lead != nil {
		lead = *c.Lead
	} else {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		lead = settings.DefaultLeadMin
	}

	r := models.Reminder{ID: uuid.New().String(), ClassID: cl.ID, LeadMin: lead, Enabled: !c.Disabled}
	if err := r.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddReminder(r); err != nil {
		return fmt.Errorf("failed to add reminder: %w", err)
	}
	ctx.Printf("✓ Reminder added: %s before %s [%s]\n", r.FormatLead(), cl.Subject, cli.ShortID(r.ID))
	return nil
}

type ReminderListCmd struct{}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}
	if len(state.Reminders) == 0 {
		ctx.Println("No reminders configured.")
		return nil
	}

	next := make(map[string]sched.Pending)
	for _, p := range sched.Preview(state.Reminders, state.Classes, ctx.Clock()) {
		if _, ok := next[p.ReminderID]; !ok {
			next[p.ReminderID] = p
		}
	}

	rows := make([][]string, 0, len(state.Reminders))
	for _, r := range state.Reminders {
		subject, schedule := "(deleted class)", ""
		if cl, ok := state.ClassByID(r.ClassID); ok {
			subject, schedule = cl.Subject, cli.FormatSchedule(cl)
		}
		nextFire := "-"
		if p, ok := next[r.ID]; ok {
			nextFire = p.FireAt.Format("Mon Jan 2 15:04")
		}
		rows = append(rows, []string{
			cli.ShortID(r.ID),
			subject,
			schedule,
			r.FormatLead(),
			strconv.FormatBool(r.Enabled),
			nextFire,
		})
	}
	ctx.Println(cli.RenderTable([]string{"ID", "Class", "Schedule", "Lead", "Enabled", "Next"}, rows))
	return nil
}

type ReminderEditCmd struct {
	Reminder string `arg:"" help:"Reminder id or id prefix."`
	Lead     *int   `help:"New lead time in minutes."`
	Enable   bool   `xor:"state" help:"Arm the reminder."`
	Disable  bool   `xor:"state" help:"Stop the reminder without deleting it."`
}

func (c *ReminderEditCmd) Run(ctx *cli.Context) error {
	r, err := ctx.ResolveReminder(c.Reminder)
	if err != nil {
		return err
	}
	if c.Lead == nil && !c.Enable && !c.Disable {
		ctx.Println("No changes specified. Use --lead, --enable or --disable.")
		return nil
	}
	if c.Lead != nil {
		r.LeadMin = *c.Lead
	}
	if c.Enable {
		r.Enabled = true
	}
	if c.Disable {
		r.Enabled = false
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateReminder(r); err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	state := "enabled"
	if !r.Enabled {
		state = "disabled"
	}
	ctx.Printf("✓ Reminder updated: %s before class (%s)\n", r.FormatLead(), state)
	return nil
}

type ReminderDeleteCmd struct {
	Reminder string `arg:"" help:"Reminder id or id prefix."`
}

func (c *ReminderDeleteCmd) Run(ctx *cli.Context) error {
	r, err := ctx.ResolveReminder(c.Reminder)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteReminder(r.ID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	ctx.Printf("✓ Reminder deleted: %s\n", cli.ShortID(r.ID))
	return nil
}

// ReminderNextCmd lists the notifications a daemon started now would send.
type ReminderNextCmd struct {
	Limit int `short:"n" default:"5" help:"How many upcoming notifications to show."`
}

func (c *ReminderNextCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}
	now := ctx.Clock()
	pending := sched.Preview(state.Reminders, state.Classes, now)
	if len(pending) == 0 {
		ctx.Println("No reminders armed.")
		return nil
	}
	if c.Limit > 0 && len(pending) > c.Limit {
		pending = pending[:c.Limit]
	}

	rows := make([][]string, 0, len(pending))
	for _, p := range pending {
		rows = append(rows, []string{
			p.FireAt.Format("Mon Jan 2 15:04"),
			upcoming.Countdown(p.FireAt.Sub(now)),
			sched.Title(p.Subject),
			sched.Body(p.LeadMin),
		})
	}
	ctx.Println(cli.RenderTable([]string{"Fires", "In", "Title", "Body"}, rows))
	return nil
}
