package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/tutr/internal/models"
)

// Snapshot reads the whole dataset.
func (s *Store) Snapshot() (models.AppState, error) {
	var (
		state models.AppState
		err   error
	)
	if state.Students, err = s.GetAllStudents(); err != nil {
		return models.AppState{}, fmt.Errorf("failed to read students: %w", err)
	}
	if state.Classes, err = s.GetAllClasses(); err != nil {
		return models.AppState{}, fmt.Errorf("failed to read classes: %w", err)
	}
	if state.SalaryRecords, err = s.GetAllPayments(); err != nil {
		return models.AppState{}, fmt.Errorf("failed to read payments: %w", err)
	}
	if state.Reminders, err = s.GetAllReminders(); err != nil {
		return models.AppState{}, fmt.Errorf("failed to read reminders: %w", err)
	}
	return state, nil
}

// ReplaceState deletes every row and inserts state, parents first.
// Settings are left alone.
func (s *Store) ReplaceState(state models.AppState) error {
	return s.write(func(tx *sql.Tx) error {
		for _, table := range []string{"reminders", "salary_records", "classes", "students"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		for _, st := range state.Students {
			if err := s.insertStudent(tx, st); err != nil {
				return fmt.Errorf("failed to import student %s: %w", st.ID, err)
			}
		}
		for _, c := range state.Classes {
			if err := s.insertClass(tx, c); err != nil {
				return fmt.Errorf("failed to import class %s: %w", c.ID, err)
			}
		}
		for _, p := range state.SalaryRecords {
			if err := s.insertPayment(tx, p); err != nil {
				return fmt.Errorf("failed to import payment %s: %w", p.ID, err)
			}
		}
		for _, r := range state.Reminders {
			if err := s.insertReminder(tx, r); err != nil {
				return fmt.Errorf("failed to import reminder %s: %w", r.ID, err)
			}
		}
		return nil
	})
}
