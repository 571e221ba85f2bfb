package students

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/utils"
)

type StudentListCmd struct{}

func (c *StudentListCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to get students: %w", err)
	}
	if len(state.Students) == 0 {
		ctx.Println("No students yet. Add one with 'tutr student add'.")
		return nil
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	classCount := make(map[string]int)
	for _, cl := range state.Classes {
		classCount[cl.StudentID]++
	}

	students := state.Students
	sort.Slice(students, func(i, j int) bool {
		return strings.ToLower(students[i].Name) < strings.ToLower(students[j].Name)
	})

	rows := make([][]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, []string{
			cli.ShortID(st.ID),
			st.Name,
			st.Phone,
			utils.FormatCurrency(st.MonthlySalary, settings.Currency),
			string(st.SalaryStatus),
			strconv.Itoa(classCount[st.ID]),
		})
	}
	ctx.Println(cli.RenderTable([]string{"ID", "Name", "Phone", "Monthly", "Status", "Classes"}, rows))
	ctx.Printf("Expected monthly income: %s\n", utils.FormatCurrency(utils.MonthlyIncome(students), settings.Currency))
	return nil
}

type StudentShowCmd struct {
	Student string `arg:"" help:"Student id, id prefix or name."`
}

func (c *StudentShowCmd) Run(ctx *cli.Context) error {
	st, err := ctx.ResolveStudent(c.Student)
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	classes, err := ctx.Store.GetClassesForStudent(st.ID)
	if err != nil {
		return fmt.Errorf("failed to get classes: %w", err)
	}
	payments, err := ctx.Store.GetAllPayments()
	if err != nil {
		return fmt.Errorf("failed to get payments: %w", err)
	}

	ctx.Printf("%s\n", st.Name)
	ctx.Printf("  ID:       %s\n", st.ID)
	printField(ctx, "Phone", st.Phone)
	printField(ctx, "Address", st.Address)
	if st.Location.Lat != nil && st.Location.Lng != nil {
		ctx.Printf("  Location: %.5f, %.5f\n", *st.Location.Lat, *st.Location.Lng)
	}
	ctx.Printf("  Monthly:  %s (%s)\n", utils.FormatCurrency(st.MonthlySalary, settings.Currency), st.SalaryStatus)
	printField(ctx, "Notes", st.Notes)

	ctx.Println("\nClasses:")
	if len(classes) == 0 {
		ctx.Println("  none")
	}
	for _, cl := range classes {
		ctx.Printf("  %s  %-20s %s\n", cli.ShortID(cl.ID), cl.Subject, cli.FormatSchedule(cl))
	}

	ctx.Println("\nPayments:")
	n := 0
	for _, p := range payments {
		if p.StudentID != st.ID {
			continue
		}
		n++
		ctx.Printf("  %s  %s  %s  %s\n", cli.ShortID(p.ID), p.Month, utils.FormatCurrency(p.Amount, settings.Currency), p.Status)
	}
	if n == 0 {
		ctx.Println("  none")
	}
	return nil
}

func printField(ctx *cli.Context, label, value string) {
	if value == "" {
		return
	}
	ctx.Printf("  %-9s %s\n", label+":", value)
}
