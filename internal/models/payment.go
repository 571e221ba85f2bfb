package models

import (
	"fmt"
	"time"
)

// SalaryRecord is one month's fee for one student.
type SalaryRecord struct {
	ID        string        `json:"id" yaml:"id"`
	StudentID string        `json:"studentId" yaml:"studentId"`
	Amount    float64       `json:"amount" yaml:"amount"`
	Month     string        `json:"month" yaml:"month"` // YYYY-MM format
	Status    PaymentStatus `json:"status" yaml:"status"`
	PaidDate  string        `json:"paidDate,omitempty" yaml:"paidDate,omitempty"` // YYYY-MM-DD format
	Notes     string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (p *SalaryRecord) Validate() error {
	if p.StudentID == "" {
		return fmt.Errorf("payment must belong to a student")
	}
	if p.Amount < 0 {
		return fmt.Errorf("payment amount cannot be negative")
	}
	if _, err := time.Parse("2006-01", p.Month); err != nil {
		return fmt.Errorf("invalid month format (expected YYYY-MM): %w", err)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("invalid payment status %q (must be paid or due)", p.Status)
	}
	if p.PaidDate != "" {
		if _, err := time.Parse("2006-01-02", p.PaidDate); err != nil {
			return fmt.Errorf("invalid paid date format (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

// MarkPaid sets the record to paid on the given day.
func (p *SalaryRecord) MarkPaid(on time.Time) {
	p.Status = PaymentPaid
	p.PaidDate = on.Format("2006-01-02")
}
