package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/tutr/internal/backup"
	"github.com/julianstephens/tutr/internal/logger"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/storage"
	"github.com/julianstephens/tutr/internal/storage/sqlite"
	"github.com/julianstephens/tutr/internal/utils"
)

const shortIDLen = 8

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Context struct {
	Store storage.Provider
	// Out and In default to stdout and stdin.
	Out io.Writer
	In  io.Reader
	// Now defaults to time.Now.
	Now func() time.Time
}

// Writer is where command output goes.
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// Clock returns the current time.
func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// SQLite returns the store as a SQLite store, if it is one.
func (c *Context) SQLite() (*sqlite.Store, bool) {
	s, ok := c.Store.(*sqlite.Store)
	return s, ok
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// PostgreSQL stores are skipped.
func (c *Context) PerformAutomaticBackup() {
	s, ok := c.SQLite()
	if !ok {
		return
	}
	mgr := backup.NewManager(s.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question on Out and reads the answer from In.
// Anything but y or yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ParseWeekdays parses a comma-separated list of weekdays. Repeats are
// dropped and the result is ordered Sunday first.
func ParseWeekdays(s string) (models.Weekdays, error) {
	var days models.Weekdays
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		wd, err := models.ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		days = append(days, wd)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}
	return days.Normalize(), nil
}

// ShortID trims a uuid for display. Every command that takes an id also
// accepts this prefix.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// FormatSchedule renders "Tue,Thu 4:00 PM-5:00 PM".
func FormatSchedule(c models.Class) string {
	return fmt.Sprintf("%s %s-%s", c.Days.Short(), utils.Format12h(c.StartTime), utils.Format12h(c.EndTime))
}

// RenderTable draws rows under headers with a rounded border.
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

// ResolveStudent finds a student by id, id prefix or name.
func (c *Context) ResolveStudent(ref string) (models.Student, error) {
	if st, err := c.Store.GetStudent(ref); err == nil {
		return st, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Student{}, err
	}
	students, err := c.Store.GetAllStudents()
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to get students: %w", err)
	}
	return resolve(ref, "student", students, func(s models.Student) (string, string) { return s.ID, s.Name })
}

// ResolveClass finds a class by id, id prefix or subject.
func (c *Context) ResolveClass(ref string) (models.Class, error) {
	if cl, err := c.Store.GetClass(ref); err == nil {
		return cl, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Class{}, err
	}
	classes, err := c.Store.GetAllClasses()
	if err != nil {
		return models.Class{}, fmt.Errorf("failed to get classes: %w", err)
	}
	return resolve(ref, "class", classes, func(cl models.Class) (string, string) { return cl.ID, cl.Subject })
}

// ResolveReminder finds a reminder by id or id prefix.
func (c *Context) ResolveReminder(ref string) (models.Reminder, error) {
	if r, err := c.Store.GetReminder(ref); err == nil {
		return r, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Reminder{}, err
	}
	all, err := c.Store.GetAllReminders()
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to get reminders: %w", err)
	}
	return resolve(ref, "reminder", all, func(r models.Reminder) (string, string) { return r.ID, "" })
}

// ResolvePayment finds a payment by id or id prefix.
func (c *Context) ResolvePayment(ref string) (models.SalaryRecord, error) {
	if p, err := c.Store.GetPayment(ref); err == nil {
		return p, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.SalaryRecord{}, err
	}
	all, err := c.Store.GetAllPayments()
	if err != nil {
		return models.SalaryRecord{}, fmt.Errorf("failed to get payments: %w", err)
	}
	return resolve(ref, "payment", all, func(p models.SalaryRecord) (string, string) { return p.ID, "" })
}

// resolve matches ref against id prefixes first, then names (case
// insensitive). More than one match is an error.
func resolve[T any](ref, kind string, items []T, key func(T) (id, name string)) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, fmt.Errorf("%s reference cannot be empty", kind)
	}

	var byID, byName []T
	for _, it := range items {
		id, name := key(it)
		if strings.HasPrefix(id, ref) {
			byID = append(byID, it)
		}
		if name != "" && strings.EqualFold(name, ref) {
			byName = append(byName, it)
		}
	}

	for _, matches := range [][]T{byID, byName} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return zero, fmt.Errorf("%q matches %d %ss, use a longer id", ref, len(matches), kind)
		}
	}
	return zero, fmt.Errorf("%s %q: %w", kind, ref, storage.ErrNotFound)
}
