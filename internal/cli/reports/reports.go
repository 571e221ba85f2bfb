package reports

import (
	"fmt"
	"time"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/constants"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/utils"
)

type IncomeCmd struct {
	Month string `help:"Month to summarize as YYYY-MM (defaults to the current month)."`
}

func (c *IncomeCmd) Validate() error {
	if c.Month == "" {
		return nil
	}
	if _, err := time.Parse("2006-01", c.Month); err != nil {
		return fmt.Errorf("invalid --month %q (expected YYYY-MM)", c.Month)
	}
	return nil
}

func (c *IncomeCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	month := c.Month
	if month == "" {
		month = utils.CurrentMonth(ctx.Clock())
	}
	sum := utils.SummarizeIncome(state, month)
	label := month
	if t, err := time.Parse("2006-01", month); err == nil {
		label = t.Format("January 2006")
	}

	ctx.Printf("Income for %s\n", label)
	ctx.Printf("  Expected: %s\n", utils.FormatCurrency(sum.Expected, settings.Currency))
	ctx.Printf("  Paid:     %s\n", utils.FormatCurrency(sum.Paid, settings.Currency))
	ctx.Printf("  Due:      %s\n", utils.FormatCurrency(sum.Due, settings.Currency))
	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	now := ctx.Clock()
	occ := utils.TodayOccurrences(state.Classes, now)
	if len(occ) == 0 {
		ctx.Printf("No classes today (%s).\n", now.Format("Monday, Jan 2"))
		return nil
	}

	ctx.Printf("Today, %s\n", now.Format("Monday, Jan 2"))
	rows := make([][]string, 0, len(occ))
	for _, o := range occ {
		status := ""
		switch {
		case now.Before(o.Start):
		case now.Before(o.End):
			status = "in progress"
		default:
			status = "done"
		}
		rows = append(rows, []string{
			utils.Format12h(o.Class.StartTime) + "-" + utils.Format12h(o.Class.EndTime),
			o.Class.Subject,
			studentName(state, o.Class.StudentID),
			o.Class.Location,
			status,
		})
	}
	ctx.Println(cli.RenderTable([]string{"Time", "Subject", "Student", "Location", "Status"}, rows))
	return nil
}

type UpcomingCmd struct {
	Days int `short:"d" help:"How many days ahead to look." default:"${upcoming_days}"`
}

func (c *UpcomingCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	days := c.Days
	if days <= 0 {
		days = constants.UpcomingWindow
	}
	occ := utils.UpcomingOccurrences(state.Classes, ctx.Clock(), days)
	if len(occ) == 0 {
		ctx.Printf("No classes in the next %d days.\n", days)
		return nil
	}

	rows := make([][]string, 0, len(occ))
	for _, o := range occ {
		rows = append(rows, []string{
			o.Start.Format("Mon Jan 2"),
			utils.Format12h(o.Class.StartTime),
			o.Class.Subject,
			studentName(state, o.Class.StudentID),
		})
	}
	ctx.Println(cli.RenderTable([]string{"Day", "Time", "Subject", "Student"}, rows))
	return nil
}

func studentName(state models.AppState, id string) string {
	if st, ok := state.StudentByID(id); ok {
		return st.Name
	}
	return "(unknown)"
}
