package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/storage"
)

const studentColumns = "id, name, phone, address, lat, lng, monthly_salary, salary_status, notes, photo_url, created_at, updated_at"

func (s *Store) insertStudent(qr querier, st models.Student) error {
	_, err := qr.Exec(s.q("INSERT INTO students ("+studentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		st.ID, st.Name, st.Phone, st.Address,
		nullFloat(st.Location.Lat), nullFloat(st.Location.Lng),
		st.MonthlySalary, string(st.SalaryStatus), st.Notes, st.PhotoURL,
		formatTimestamp(st.CreatedAt), formatTimestamp(st.UpdatedAt),
	)
	return err
}

func (s *Store) AddStudent(st models.Student) error {
	if st.SalaryStatus == "" {
		st.SalaryStatus = models.PaymentDue
	}
	return s.write(func(tx *sql.Tx) error {
		if err := s.insertStudent(tx, st); err != nil {
			return fmt.Errorf("failed to add student: %w", err)
		}
		return nil
	})
}

func (s *Store) GetStudent(id string) (models.Student, error) {
	row := s.db.QueryRow(s.q("SELECT "+studentColumns+" FROM students WHERE id = ?"), id)
	st, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, fmt.Errorf("student %s: %w", id, storage.ErrNotFound)
	}
	return st, err
}

func (s *Store) GetAllStudents() ([]models.Student, error) {
	rows, err := s.db.Query("SELECT " + studentColumns + " FROM students ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

func (s *Store) UpdateStudent(st models.Student) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec(s.q(`UPDATE students SET name = ?, phone = ?, address = ?, lat = ?, lng = ?,
			monthly_salary = ?, salary_status = ?, notes = ?, photo_url = ?, updated_at = ? WHERE id = ?`),
			st.Name, st.Phone, st.Address,
			nullFloat(st.Location.Lat), nullFloat(st.Location.Lng),
			st.MonthlySalary, string(st.SalaryStatus), st.Notes, st.PhotoURL,
			formatTimestamp(st.UpdatedAt), st.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update student: %w", err)
		}
		return requireAffected(res, "student", st.ID)
	})
}

// DeleteStudent removes the student with its classes, their reminders and
// its payments.
func (s *Store) DeleteStudent(id string) error {
	return s.write(func(tx *sql.Tx) error {
		stmts := []string{
			"DELETE FROM reminders WHERE class_id IN (SELECT id FROM classes WHERE student_id = ?)",
			"DELETE FROM classes WHERE student_id = ?",
			"DELETE FROM salary_records WHERE student_id = ?",
		}
		for _, stmt := range stmts {
			if _, err := tx.Exec(s.q(stmt), id); err != nil {
				return fmt.Errorf("failed to delete student data: %w", err)
			}
		}
		res, err := tx.Exec(s.q("DELETE FROM students WHERE id = ?"), id)
		if err != nil {
			return fmt.Errorf("failed to delete student: %w", err)
		}
		return requireAffected(res, "student", id)
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(sc scanner) (models.Student, error) {
	var (
		st                   models.Student
		lat, lng             sql.NullFloat64
		status               string
		createdAt, updatedAt string
	)
	err := sc.Scan(&st.ID, &st.Name, &st.Phone, &st.Address, &lat, &lng,
		&st.MonthlySalary, &status, &st.Notes, &st.PhotoURL, &createdAt, &updatedAt)
	if err != nil {
		return models.Student{}, err
	}
	if lat.Valid {
		st.Location.Lat = &lat.Float64
	}
	if lng.Valid {
		st.Location.Lng = &lng.Float64
	}
	st.SalaryStatus = models.PaymentStatus(status)
	st.CreatedAt = parseTimestamp(createdAt)
	st.UpdatedAt = parseTimestamp(updatedAt)
	return st, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
