package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/storage"
)

const classColumns = "id, subject, student_id, days, start_time, end_time, location, notes, created_at, updated_at"

func (s *Store) insertClass(qr querier, c models.Class) error {
	_, err := qr.Exec(s.q("INSERT INTO classes ("+classColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		c.ID, c.Subject, c.StudentID, encodeDays(c.Days), c.StartTime, c.EndTime,
		c.Location, c.Notes, formatTimestamp(c.CreatedAt), formatTimestamp(c.UpdatedAt),
	)
	return err
}

func (s *Store) AddClass(c models.Class) error {
	return s.write(func(tx *sql.Tx) error {
		if err := s.exists(tx, "students", c.StudentID); err != nil {
			return fmt.Errorf("student %s: %w", c.StudentID, err)
		}
		if err := s.insertClass(tx, c); err != nil {
			return fmt.Errorf("failed to add class: %w", err)
		}
		return nil
	})
}

func (s *Store) GetClass(id string) (models.Class, error) {
	row := s.db.QueryRow(s.q("SELECT "+classColumns+" FROM classes WHERE id = ?"), id)
	c, err := scanClass(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Class{}, fmt.Errorf("class %s: %w", id, storage.ErrNotFound)
	}
	return c, err
}

func (s *Store) GetAllClasses() ([]models.Class, error) {
	return s.queryClasses("SELECT " + classColumns + " FROM classes ORDER BY start_time, subject, id")
}

func (s *Store) GetClassesForStudent(studentID string) ([]models.Class, error) {
	return s.queryClasses(s.q("SELECT "+classColumns+" FROM classes WHERE student_id = ? ORDER BY start_time, subject, id"), studentID)
}

func (s *Store) queryClasses(query string, args ...any) ([]models.Class, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func (s *Store) UpdateClass(c models.Class) error {
	return s.write(func(tx *sql.Tx) error {
		if err := s.exists(tx, "students", c.StudentID); err != nil {
			return fmt.Errorf("student %s: %w", c.StudentID, err)
		}
		res, err := tx.Exec(s.q(`UPDATE classes SET subject = ?, student_id = ?, days = ?, start_time = ?, end_time = ?,
			location = ?, notes = ?, updated_at = ? WHERE id = ?`),
			c.Subject, c.StudentID, encodeDays(c.Days), c.StartTime, c.EndTime,
			c.Location, c.Notes, formatTimestamp(c.UpdatedAt), c.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update class: %w", err)
		}
		return requireAffected(res, "class", c.ID)
	})
}

// DeleteClass removes the class and its reminders.
func (s *Store) DeleteClass(id string) error {
	return s.write(func(tx *sql.Tx) error {
		if _, err := tx.Exec(s.q("DELETE FROM reminders WHERE class_id = ?"), id); err != nil {
			return fmt.Errorf("failed to delete class reminders: %w", err)
		}
		res, err := tx.Exec(s.q("DELETE FROM classes WHERE id = ?"), id)
		if err != nil {
			return fmt.Errorf("failed to delete class: %w", err)
		}
		return requireAffected(res, "class", id)
	})
}

func scanClass(sc scanner) (models.Class, error) {
	var (
		c                    models.Class
		days                 string
		createdAt, updatedAt string
	)
	err := sc.Scan(&c.ID, &c.Subject, &c.StudentID, &days, &c.StartTime, &c.EndTime,
		&c.Location, &c.Notes, &createdAt, &updatedAt)
	if err != nil {
		return models.Class{}, err
	}
	c.Days, err = decodeDays(days)
	if err != nil {
		return models.Class{}, fmt.Errorf("class %s: %w", c.ID, err)
	}
	c.CreatedAt = parseTimestamp(createdAt)
	c.UpdatedAt = parseTimestamp(updatedAt)
	return c, nil
}

// Days are stored as comma separated lowercase names.
func encodeDays(days models.Weekdays) string {
	return strings.Join(days.Names(), ",")
}

func decodeDays(s string) (models.Weekdays, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make(models.Weekdays, 0, len(parts))
	for _, p := range parts {
		wd, err := models.ParseWeekday(p)
		if err != nil {
			return nil, err
		}
		days = append(days, wd)
	}
	return days, nil
}
