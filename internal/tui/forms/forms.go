// Package forms holds the huh forms behind `student add -i` and
// `class add -i`.
package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/tutr/internal/constants"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/utils"
)

type StudentInput struct {
	Name    string
	Phone   string
	Address string
	Salary  string
	Notes   string
}

func NewStudentForm(in *StudentInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&in.Name).
				Validate(required("student name")),
			huh.NewInput().
				Title("Phone").
				Value(&in.Phone),
			huh.NewInput().
				Title("Address").
				Value(&in.Address),
			huh.NewInput().
				Title("Monthly salary").
				Value(&in.Salary).
				Validate(validateAmount),
			huh.NewText().
				Title("Notes").
				Value(&in.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// Student builds a new student from the form values.
func (in StudentInput) Student(now time.Time) (models.Student, error) {
	salary, err := parseAmount(in.Salary)
	if err != nil {
		return models.Student{}, err
	}
	st := models.Student{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		MonthlySalary: salary,
		SalaryStatus:  models.PaymentDue,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return st, st.Validate()
}

type ClassInput struct {
	Subject   string
	StudentID string
	Days      []time.Weekday
	StartTime string
	EndTime   string
	Location  string
	Notes     string
	Remind    bool
	LeadMin   int
}

// NewClassForm asks for the class and, optionally, a reminder. students
// must not be empty.
func NewClassForm(in *ClassInput, students []models.Student) *huh.Form {
	studentOpts := make([]huh.Option[string], 0, len(students))
	for _, st := range students {
		studentOpts = append(studentOpts, huh.NewOption(st.Name, st.ID))
	}
	dayOpts := make([]huh.Option[time.Weekday], 0, 7)
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		dayOpts = append(dayOpts, huh.NewOption(wd.String(), wd))
	}
	leadOpts := make([]huh.Option[int], 0, len(constants.LeadTimeOptions))
	for _, lead := range constants.LeadTimeOptions {
		r := models.Reminder{LeadMin: lead}
		leadOpts = append(leadOpts, huh.NewOption(r.FormatLead()+" before", lead))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Value(&in.Subject).
				Validate(required("subject")),
			huh.NewSelect[string]().
				Title("Student").
				Options(studentOpts...).
				Value(&in.StudentID),
			huh.NewMultiSelect[time.Weekday]().
				Title("Days").
				Options(dayOpts...).
				Value(&in.Days).
				Validate(func(days []time.Weekday) error {
					if len(days) == 0 {
						return fmt.Errorf("pick at least one day")
					}
					return nil
				}),
			huh.NewInput().
				Title("Start time (HH:MM)").
				Value(&in.StartTime).
				Validate(validateClock),
			huh.NewInput().
				Title("End time (HH:MM)").
				Value(&in.EndTime).
				Validate(validateClock),
			huh.NewInput().
				Title("Location").
				Value(&in.Location),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Add a reminder?").
				Value(&in.Remind),
			huh.NewSelect[int]().
				Title("Remind me").
				Options(leadOpts...).
				Value(&in.LeadMin),
		),
	).WithTheme(huh.ThemeDracula())
}

// Class builds the class and, if requested, its reminder.
func (in ClassInput) Class(now time.Time) (models.Class, *models.Reminder, error) {
	c := models.Class{
		ID:        uuid.New().String(),
		Subject:   strings.TrimSpace(in.Subject),
		StudentID: in.StudentID,
		Days:      models.Weekdays(in.Days).Normalize(),
		StartTime: strings.TrimSpace(in.StartTime),
		EndTime:   strings.TrimSpace(in.EndTime),
		Location:  strings.TrimSpace(in.Location),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return models.Class{}, nil, err
	}
	if !in.Remind {
		return c, nil, nil
	}
	r := &models.Reminder{
		ID:      uuid.New().String(),
		ClassID: c.ID,
		LeadMin: in.LeadMin,
		Enabled: true,
	}
	return c, r, r.Validate()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func validateClock(s string) error {
	if !utils.ValidateTimeFormat(strings.TrimSpace(s)) {
		return fmt.Errorf("use HH:MM, e.g. 16:30")
	}
	return nil
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %s", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("amount cannot be negative")
	}
	return f, nil
}
