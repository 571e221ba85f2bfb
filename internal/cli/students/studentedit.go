package students

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/models"
)

type StudentEditCmd struct {
	Student string   `arg:"" help:"Student id, id prefix or name."`
	Name    *string  `help:"New name."`
	Phone   *string  `help:"New phone number."`
	Address *string  `help:"New address."`
	Salary  *float64 `help:"New monthly fee."`
	Status  *string  `help:"Salary status (paid|due)."`
	Lat     *float64 `help:"Latitude of the lesson location."`
	Lng     *float64 `help:"Longitude of the lesson location."`
	Notes   *string  `help:"New notes."`
}

func (c *StudentEditCmd) Validate() error {
	if c.Status != nil && !models.PaymentStatus(*c.Status).Valid() {
		return fmt.Errorf("invalid status %q (must be paid or due)", *c.Status)
	}
	return nil
}

func (c *StudentEditCmd) Run(ctx *cli.Context) error {
	st, err := ctx.ResolveStudent(c.Student)
	if err != nil {
		return err
	}

	updated := false
	if c.Name != nil {
		st.Name = strings.TrimSpace(*c.Name)
		updated = true
	}
	if c.Phone != nil {
		st.Phone = *c.Phone
		updated = true
	}
	if c.Address != nil {
		st.Address = *c.Address
		updated = true
	}
	if c.Salary != nil {
		st.MonthlySalary = *c.Salary
		updated = true
	}
	if c.Status != nil {
		st.SalaryStatus = models.PaymentStatus(*c.Status)
		updated = true
	}
	if c.Lat != nil {
		st.Location.Lat = c.Lat
		updated = true
	}
	if c.Lng != nil {
		st.Location.Lng = c.Lng
		updated = true
	}
	if c.Notes != nil {
		st.Notes = *c.Notes
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use flags such as --name or --salary to update the student.")
		return nil
	}
	if err := st.Validate(); err != nil {
		return err
	}
	st.UpdatedAt = ctx.Clock()
	if err := ctx.Store.UpdateStudent(st); err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	ctx.Printf("✓ Student updated: %s\n", st.Name)
	return nil
}
