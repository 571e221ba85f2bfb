package models

import (
	"fmt"
	"strings"
	"time"
)

type Class struct {
	ID        string    `json:"id" yaml:"id"`
	Subject   string    `json:"subject" yaml:"subject"`
	StudentID string    `json:"studentId" yaml:"studentId"`
	Days      Weekdays  `json:"days" yaml:"days"`
	StartTime string    `json:"startTime" yaml:"startTime"` // HH:MM format
	EndTime   string    `json:"endTime" yaml:"endTime"`     // HH:MM format
	Location  string    `json:"location" yaml:"location"`
	Notes     string    `json:"notes" yaml:"notes"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

func (c *Class) Validate() error {
	if strings.TrimSpace(c.Subject) == "" {
		return fmt.Errorf("class subject cannot be empty")
	}
	if c.StudentID == "" {
		return fmt.Errorf("class must belong to a student")
	}
	if len(c.Days) == 0 {
		return fmt.Errorf("class must occur on at least one weekday")
	}
	if len(c.Days.Normalize()) != len(c.Days) {
		return fmt.Errorf("class weekdays must not repeat")
	}

	start, err := time.Parse("15:04", c.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time (expected HH:MM): %w", err)
	}
	end, err := time.Parse("15:04", c.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time (expected HH:MM): %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("start time %s must be before end time %s", c.StartTime, c.EndTime)
	}

	return nil
}

// OccursOn reports whether the class meets on the given weekday.
func (c *Class) OccursOn(wd time.Weekday) bool {
	return c.Days.Contains(wd)
}

// DurationMin returns the class length in minutes, or 0 if either time is malformed.
func (c *Class) DurationMin() int {
	start, err := time.Parse("15:04", c.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", c.EndTime)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Minutes())
}

// FormatSchedule returns a human-readable description such as "Mon,Wed 16:00-17:00".
func (c *Class) FormatSchedule() string {
	return fmt.Sprintf("%s %s-%s", c.Days.Short(), c.StartTime, c.EndTime)
}
