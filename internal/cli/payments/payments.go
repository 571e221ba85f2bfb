package payments

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/utils"
)

type PaymentAddCmd struct {
	Student string   `arg:"" help:"Student id, id prefix or name."`
	Amount  *float64 `help:"Amount billed (defaults to the student's monthly fee)."`
	Month   string   `help:"Billing month as YYYY-MM (defaults to the current month)."`
	Status  string   `help:"Payment status (paid|due)." enum:"paid,due" default:"due"`
	Notes   string   `help:"Free-form notes."`
}

func (c *PaymentAddCmd) Validate() error {
	if c.Month != "" {
		if _, err := time.Parse("2006-01", c.Month); err != nil {
			return fmt.Errorf("invalid --month %q (expected YYYY-MM)", c.Month)
		}
	}
	return nil
}

func (c *PaymentAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.ResolveStudent(c.Student)
	if err != nil {
		return err
	}
	now := ctx.Clock()

	p := models.SalaryRecord{
		ID:        uuid.New().String(),
		StudentID: st.ID,
		Amount:    st.MonthlySalary,
		Month:     c.Month,
		Status:    models.PaymentStatus(c.Status),
		Notes:     c.Notes,
	}
	if c.Amount != nil {
		p.Amount = *c.Amount
	}
	if p.Month == "" {
		p.Month = utils.CurrentMonth(now)
	}
	if p.Status == models.PaymentPaid {
		p.MarkPaid(now)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddPayment(p); err != nil {
		return fmt.Errorf("failed to add payment: %w", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	ctx.Printf("✓ Payment added: %s %s for %s (%s) [%s]\n",
		st.Name, utils.FormatCurrency(p.Amount, settings.Currency), p.Month, p.Status, cli.ShortID(p.ID))
	return nil
}

type PaymentListCmd struct {
	Month   string `help:"Only show this month (YYYY-MM)."`
	Student string `help:"Only show this student's payments."`
}

func (c *PaymentListCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to get payments: %w", err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	studentID := ""
	if c.Student != "" {
		st, err := ctx.ResolveStudent(c.Student)
		if err != nil {
			return err
		}
		studentID = st.ID
	}

	var records []models.SalaryRecord
	for _, p := range state.SalaryRecords {
		if c.Month != "" && p.Month != c.Month {
			continue
		}
		if studentID != "" && p.StudentID != studentID {
			continue
		}
		records = append(records, p)
	}
	if len(records) == 0 {
		ctx.Println("No payments found.")
		return nil
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Month > records[j].Month
	})

	rows := make([][]string, 0, len(records))
	for _, p := range records {
		name := "(deleted student)"
		if st, ok := state.StudentByID(p.StudentID); ok {
			name = st.Name
		}
		paid := "-"
		if p.PaidDate != "" {
			paid = p.PaidDate
		}
		rows = append(rows, []string{
			cli.ShortID(p.ID),
			name,
			p.Month,
			utils.FormatCurrency(p.Amount, settings.Currency),
			string(p.Status),
			paid,
		})
	}
	ctx.Println(cli.RenderTable([]string{"ID", "Student", "Month", "Amount", "Status", "Paid On"}, rows))
	return nil
}

// PaymentPayCmd marks a payment paid today, or back to due with --undo.
type PaymentPayCmd struct {
	Payment string `arg:"" help:"Payment id or id prefix."`
	Undo    bool   `help:"Mark the payment as due again."`
}

func (c *PaymentPayCmd) Run(ctx *cli.Context) error {
	p, err := ctx.ResolvePayment(c.Payment)
	if err != nil {
		return err
	}
	if c.Undo {
		p.Status = models.PaymentDue
		p.PaidDate = ""
	} else {
		if p.Status == models.PaymentPaid {
			ctx.Printf("Payment %s is already paid (%s).\n", cli.ShortID(p.ID), p.PaidDate)
			return nil
		}
		p.MarkPaid(ctx.Clock())
	}
	if err := ctx.Store.UpdatePayment(p); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	ctx.Printf("✓ Payment %s marked %s\n", cli.ShortID(p.ID), p.Status)
	return nil
}

type PaymentDeleteCmd struct {
	Payment string `arg:"" help:"Payment id or id prefix."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *PaymentDeleteCmd) Run(ctx *cli.Context) error {
	p, err := ctx.ResolvePayment(c.Payment)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete the %s payment %s?", p.Month, cli.ShortID(p.ID)))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}
	if err := ctx.Store.DeletePayment(p.ID); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	ctx.Printf("✓ Payment deleted: %s\n", cli.ShortID(p.ID))
	return nil
}
