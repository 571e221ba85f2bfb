package models

import (
	"fmt"
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentPaid PaymentStatus = "paid"
	PaymentDue  PaymentStatus = "due"
)

// Valid reports whether s is one of the known payment states.
func (s PaymentStatus) Valid() bool {
	return s == PaymentPaid || s == PaymentDue
}

type Location struct {
	Lat *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty" yaml:"lng,omitempty"`
}

type Student struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Phone         string        `json:"phone" yaml:"phone"`
	Address       string        `json:"address" yaml:"address"`
	Location      Location      `json:"location" yaml:"location"`
	MonthlySalary float64       `json:"monthlySalary" yaml:"monthlySalary"`
	SalaryStatus  PaymentStatus `json:"salaryStatus" yaml:"salaryStatus"`
	Notes         string        `json:"notes" yaml:"notes"`
	PhotoURL      string        `json:"photoUrl,omitempty" yaml:"photoUrl,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" yaml:"updatedAt"`
}

func (s *Student) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("student name cannot be empty")
	}
	if s.MonthlySalary < 0 {
		return fmt.Errorf("monthly salary cannot be negative")
	}
	if s.SalaryStatus != "" && !s.SalaryStatus.Valid() {
		return fmt.Errorf("invalid salary status %q (must be paid or due)", s.SalaryStatus)
	}
	if s.Location.Lat != nil && (*s.Location.Lat < -90 || *s.Location.Lat > 90) {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if s.Location.Lng != nil && (*s.Location.Lng < -180 || *s.Location.Lng > 180) {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}
