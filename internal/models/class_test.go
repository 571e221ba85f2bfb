package models

import (
	"testing"
	"time"
)

func TestClass_Validate(t *testing.T) {
	tests := []struct {
		name    string
		class   Class
		wantErr bool
	}{
		{
			name: "valid class",
			class: Class{
				ID:        "c1",
				Subject:   "Algebra",
				StudentID: "s1",
				Days:      Weekdays{time.Tuesday, time.Thursday},
				StartTime: "16:00",
				EndTime:   "17:00",
			},
			wantErr: false,
		},
		{
			name: "empty subject",
			class: Class{
				StudentID: "s1",
				Days:      Weekdays{time.Monday},
				StartTime: "16:00",
				EndTime:   "17:00",
			},
			wantErr: true,
		},
		{
			name: "missing student",
			class: Class{
				Subject:   "Algebra",
				Days:      Weekdays{time.Monday},
				StartTime: "16:00",
				EndTime:   "17:00",
			},
			wantErr: true,
		},
		{
			name: "no weekdays",
			class: Class{
				Subject:   "Algebra",
				StudentID: "s1",
				StartTime: "16:00",
				EndTime:   "17:00",
			},
			wantErr: true,
		},
		{
			name: "repeated weekday",
			class: Class{
				Subject:   "Algebra",
				StudentID: "s1",
				Days:      Weekdays{time.Monday, time.Monday},
				StartTime: "16:00",
				EndTime:   "17:00",
			},
			wantErr: true,
		},
		{
			name: "invalid start time",
			class: Class{
				Subject:   "Algebra",
				StudentID: "s1",
				Days:      Weekdays{time.Monday},
				StartTime: "25:00",
				EndTime:   "17:00",
			},
			wantErr: true,
		},
		{
			name: "start after end",
			class: Class{
				Subject:   "Algebra",
				StudentID: "s1",
				Days:      Weekdays{time.Monday},
				StartTime: "18:00",
				EndTime:   "17:00",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.class.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Class.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClass_DurationMin(t *testing.T) {
	c := Class{StartTime: "09:15", EndTime: "10:45"}
	if got := c.DurationMin(); got != 90 {
		t.Errorf("DurationMin() = %d, want 90", got)
	}

	c.EndTime = "bad"
	if got := c.DurationMin(); got != 0 {
		t.Errorf("DurationMin() with malformed end = %d, want 0", got)
	}
}

func TestClass_OccursOn(t *testing.T) {
	c := Class{Days: Weekdays{time.Monday, time.Wednesday}}
	if !c.OccursOn(time.Wednesday) {
		t.Error("expected class to occur on Wednesday")
	}
	if c.OccursOn(time.Friday) {
		t.Error("expected class not to occur on Friday")
	}
}
