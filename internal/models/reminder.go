package models

import "fmt"

// Reminder fires a notification LeadMin minutes before every occurrence of a class.
// The JSON name "time" is kept for compatibility with existing exports.
type Reminder struct {
	ID      string `json:"id" yaml:"id"`
	ClassID string `json:"classId" yaml:"classId"`
	LeadMin int    `json:"time" yaml:"time"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

func (r *Reminder) Validate() error {
	if r.ClassID == "" {
		return fmt.Errorf("reminder must belong to a class")
	}
	if r.LeadMin < 0 {
		return fmt.Errorf("lead time cannot be negative")
	}
	return nil
}

// FormatLead renders the lead time as "30 min" or "2h".
func (r *Reminder) FormatLead() string {
	if r.LeadMin >= 60 && r.LeadMin%60 == 0 {
		return fmt.Sprintf("%dh", r.LeadMin/60)
	}
	return fmt.Sprintf("%d min", r.LeadMin)
}
