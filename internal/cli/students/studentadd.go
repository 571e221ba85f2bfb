package students

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/tui/forms"
	"github.com/julianstephens/tutr/internal/utils"
)

type StudentAddCmd struct {
	Name        string   `arg:"" optional:"" help:"Student name."`
	Phone       string   `help:"Phone number."`
	Address     string   `help:"Home address."`
	Salary      float64  `help:"Monthly fee."`
	Status      string   `help:"Salary status for the current month (paid|due)." enum:"paid,due" default:"due"`
	Lat         *float64 `help:"Latitude of the lesson location."`
	Lng         *float64 `help:"Longitude of the lesson location."`
	Notes       string   `help:"Free-form notes."`
	Interactive bool     `short:"i" help:"Fill in the student with a form."`
}

func (c *StudentAddCmd) Validate() error {
	if !c.Interactive && strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required unless --interactive is set")
	}
	if (c.Lat == nil) != (c.Lng == nil) {
		return fmt.Errorf("--lat and --lng must be given together")
	}
	return nil
}

func (c *StudentAddCmd) Run(ctx *cli.Context) error {
	st, err := c.build(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Store.AddStudent(st); err != nil {
		return fmt.Errorf("failed to add student: %w", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	ctx.Printf("✓ Student added: %s (%s/month) [%s]\n", st.Name, utils.FormatCurrency(st.MonthlySalary, settings.Currency), cli.ShortID(st.ID))
	return nil
}

func (c *StudentAddCmd) build(ctx *cli.Context) (models.Student, error) {
	now := ctx.Clock()
	if c.Interactive {
		in := forms.StudentInput{Name: c.Name, Phone: c.Phone, Address: c.Address, Notes: c.Notes}
		if c.Salary > 0 {
			in.Salary = fmt.Sprintf("%.2f", c.Salary)
		}
		if err := forms.NewStudentForm(&in).Run(); err != nil {
			return models.Student{}, err
		}
		return in.Student(now)
	}

	st := models.Student{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(c.Name),
		Phone:         c.Phone,
		Address:       c.Address,
		Location:      models.Location{Lat: c.Lat, Lng: c.Lng},
		MonthlySalary: c.Salary,
		SalaryStatus:  models.PaymentStatus(c.Status),
		Notes:         c.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return st, st.Validate()
}
