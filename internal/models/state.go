package models

import "fmt"

// AppState is the full normalized dataset. It is the unit of import/export
// and the read-only snapshot handed to the reminder scheduler.
type AppState struct {
	Students      []Student      `json:"students" yaml:"students"`
	Classes       []Class        `json:"classes" yaml:"classes"`
	SalaryRecords []SalaryRecord `json:"salaryRecords" yaml:"salaryRecords"`
	Reminders     []Reminder     `json:"reminders" yaml:"reminders"`
}

// ClassByID finds a class by identity.
func (s *AppState) ClassByID(id string) (Class, bool) {
	for _, c := range s.Classes {
		if c.ID == id {
			return c, true
		}
	}
	return Class{}, false
}

// StudentByID finds a student by identity.
func (s *AppState) StudentByID(id string) (Student, bool) {
	for _, st := range s.Students {
		if st.ID == id {
			return st, true
		}
	}
	return Student{}, false
}

// Prune drops rows whose parent no longer exists (class without student,
// reminder without class, payment without student) and returns a description
// of each dropped row.
func (s *AppState) Prune() []string {
	var dropped []string

	students := make(map[string]bool, len(s.Students))
	for _, st := range s.Students {
		students[st.ID] = true
	}

	classes := s.Classes[:0]
	for _, c := range s.Classes {
		if !students[c.StudentID] {
			dropped = append(dropped, fmt.Sprintf("class %s: student %s not found", c.ID, c.StudentID))
			continue
		}
		classes = append(classes, c)
	}
	s.Classes = classes

	classIDs := make(map[string]bool, len(s.Classes))
	for _, c := range s.Classes {
		classIDs[c.ID] = true
	}

	reminders := s.Reminders[:0]
	for _, r := range s.Reminders {
		if !classIDs[r.ClassID] {
			dropped = append(dropped, fmt.Sprintf("reminder %s: class %s not found", r.ID, r.ClassID))
			continue
		}
		reminders = append(reminders, r)
	}
	s.Reminders = reminders

	records := s.SalaryRecords[:0]
	for _, p := range s.SalaryRecords {
		if !students[p.StudentID] {
			dropped = append(dropped, fmt.Sprintf("payment %s: student %s not found", p.ID, p.StudentID))
			continue
		}
		records = append(records, p)
	}
	s.SalaryRecords = records

	return dropped
}
