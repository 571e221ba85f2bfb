package storage

import (
	"errors"

	"github.com/julianstephens/tutr/internal/models"
)

var (
	// ErrNotFound is returned when a row addressed by id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when init has not been run.
	ErrNotInitialized = errors.New("storage not initialized, run 'tutr init' first")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Students. Deleting a student also deletes its classes, their
	// reminders and its payments.
	AddStudent(models.Student) error
	GetStudent(id string) (models.Student, error)
	GetAllStudents() ([]models.Student, error)
	UpdateStudent(models.Student) error
	DeleteStudent(id string) error

	// Classes. Deleting a class also deletes its reminders.
	AddClass(models.Class) error
	GetClass(id string) (models.Class, error)
	GetAllClasses() ([]models.Class, error)
	GetClassesForStudent(studentID string) ([]models.Class, error)
	UpdateClass(models.Class) error
	DeleteClass(id string) error

	// Reminders
	AddReminder(models.Reminder) error
	GetReminder(id string) (models.Reminder, error)
	GetAllReminders() ([]models.Reminder, error)
	GetRemindersForClass(classID string) ([]models.Reminder, error)
	UpdateReminder(models.Reminder) error
	DeleteReminder(id string) error

	// Payments
	AddPayment(models.SalaryRecord) error
	GetPayment(id string) (models.SalaryRecord, error)
	GetAllPayments() ([]models.SalaryRecord, error)
	GetPaymentsForMonth(month string) ([]models.SalaryRecord, error)
	UpdatePayment(models.SalaryRecord) error
	DeletePayment(id string) error

	// Whole-state access
	Snapshot() (models.AppState, error)
	// ReplaceState swaps the entire dataset in one transaction.
	ReplaceState(models.AppState) error
	// Fingerprint changes whenever any row is written.
	Fingerprint() (string, error)

	// Utils
	GetConfigPath() string
}
