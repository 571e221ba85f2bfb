package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/storage"
)

const paymentColumns = "id, student_id, amount, month, status, paid_date, notes"

func (s *Store) insertPayment(qr querier, p models.SalaryRecord) error {
	_, err := qr.Exec(s.q("INSERT INTO salary_records ("+paymentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)"),
		p.ID, p.StudentID, p.Amount, p.Month, string(p.Status), p.PaidDate, p.Notes)
	return err
}

func (s *Store) AddPayment(p models.SalaryRecord) error {
	return s.write(func(tx *sql.Tx) error {
		if err := s.exists(tx, "students", p.StudentID); err != nil {
			return fmt.Errorf("student %s: %w", p.StudentID, err)
		}
		if err := s.insertPayment(tx, p); err != nil {
			return fmt.Errorf("failed to add payment: %w", err)
		}
		return nil
	})
}

func (s *Store) GetPayment(id string) (models.SalaryRecord, error) {
	row := s.db.QueryRow(s.q("SELECT "+paymentColumns+" FROM salary_records WHERE id = ?"), id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SalaryRecord{}, fmt.Errorf("payment %s: %w", id, storage.ErrNotFound)
	}
	return p, err
}

func (s *Store) GetAllPayments() ([]models.SalaryRecord, error) {
	return s.queryPayments("SELECT " + paymentColumns + " FROM salary_records ORDER BY month DESC, student_id, id")
}

func (s *Store) GetPaymentsForMonth(month string) ([]models.SalaryRecord, error) {
	return s.queryPayments(s.q("SELECT "+paymentColumns+" FROM salary_records WHERE month = ? ORDER BY student_id, id"), month)
}

func (s *Store) queryPayments(query string, args ...any) ([]models.SalaryRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.SalaryRecord
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

func (s *Store) UpdatePayment(p models.SalaryRecord) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec(s.q("UPDATE salary_records SET amount = ?, month = ?, status = ?, paid_date = ?, notes = ? WHERE id = ?"),
			p.Amount, p.Month, string(p.Status), p.PaidDate, p.Notes, p.ID)
		if err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		return requireAffected(res, "payment", p.ID)
	})
}

func (s *Store) DeletePayment(id string) error {
	return s.write(func(tx *sql.Tx) error {
		res, err := tx.Exec(s.q("DELETE FROM salary_records WHERE id = ?"), id)
		if err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}
		return requireAffected(res, "payment", id)
	})
}

func scanPayment(sc scanner) (models.SalaryRecord, error) {
	var (
		p      models.SalaryRecord
		status string
	)
	if err := sc.Scan(&p.ID, &p.StudentID, &p.Amount, &p.Month, &status, &p.PaidDate, &p.Notes); err != nil {
		return models.SalaryRecord{}, err
	}
	p.Status = models.PaymentStatus(status)
	return p, nil
}
