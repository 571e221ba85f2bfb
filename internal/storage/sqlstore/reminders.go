package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/storage"
)

const reminderColumns = "id, class_id, lead_min, enabled"

func (s *Store) insertReminder(qr querier, r models.Reminder) error {
	_, err := qr.Exec(s.q("INSERT INTO reminders ("+reminderColumns+") VALUES (?, ?, ?, ?)"),
		r.ID, r.ClassID, r.LeadMin, r.Enabled)
	return err
}

func (s *Store) AddReminder(r models.Reminder) error {
	return s.write(func(tx *sql.Tx) error {
		if err := s.exists(tx, "classes", r.ClassID); err != nil {
			return fmt.Errorf("class %s: %w", r.ClassID, err)
		}
		if err := s.insertReminder(tx, r); err != nil {
			return fmt.Errorf("failed to add reminder: %w", err)
		}
		return nil
	})
}

func (s *Store) GetReminder(id string) (models.Reminder, error) {
	row := s.db.QueryRow(s.q("SELECT "+reminderColumns+" FROM reminders WHERE id = ?"), id)
	r, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reminder{}, fmt.Errorf("reminder %s: %w", id, storage.ErrNotFound)
	}
	return r, err
}

func (s *Store) GetAllReminders() ([]models.Reminder, error) {
	return s.queryReminders("SELECT " + reminderColumns + " FROM reminders ORDER BY class_id, lead_min, id")
}

func (s *Store) GetRemindersForClass(classID string) ([]models.Reminder, error) {
	return s.queryReminders(s.q("SELECT "+reminderColumns+" FROM reminders WHERE class_id = ? ORDER BY lead_min, id"), classID)
}

func (s *Store) queryReminders(query string, args ...any) ([]models.Reminder, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *Store) UpdateReminder(r models.Reminder) error {
	return s.write(func(tx *sql.Tx) error {
		if err := s.exists(tx, "classes", r.ClassID); err != nil {
			return fmt.Errorf("class %s: %w", r.ClassID, err)
		}
		res, err := tx.Exec(s.q("UPDATE reminders SET class_id = ?, lead_min = ?, enabled = ? WHERE id = ?"),
			r.ClassID, r.LeadMin, r.Enabled, r.ID)
		if err != nil {
			return fmt.Errorf("failed to update reminder: %w", err)
		}
		return requireAffected(res, "reminder", r.ID)
	})
}

func (s *Store) DeleteReminder(id string) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec(s.q("DELETE FROM reminders WHERE id = ?"), id)
		if err != nil {
			return fmt.Errorf("failed to delete reminder: %w", err)
		}
		return requireAffected(res, "reminder", id)
	})
}

func scanReminder(sc scanner) (models.Reminder, error) {
	var r models.Reminder
	err := sc.Scan(&r.ID, &r.ClassID, &r.LeadMin, &r.Enabled)
	return r, err
}
