// Package transfer moves the whole dataset in and out of the store as a
// JSON or YAML document.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	yaml "go.yaml.in/yaml/v3"

	"github.com/julianstephens/tutr/internal/constants"
	"github.com/julianstephens/tutr/internal/logger"
	"github.com/julianstephens/tutr/internal/models"
)

var ErrUnsupportedFormat = errors.New("unsupported format (use .json, .yaml or .yml)")

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// DefaultFileName is tutr-backup-YYYY-MM-DD.<ext>.
func DefaultFileName(now time.Time, f Format) string {
	return constants.ExportFilePrefix + now.Format(constants.DateFormat) + "." + string(f)
}

type Snapshotter interface {
	Snapshot() (models.AppState, error)
}

type Replacer interface {
	ReplaceState(models.AppState) error
}

// Encode writes state as indented JSON or YAML.
func Encode(w io.Writer, state models.AppState, f Format) error {
	normalize(&state)
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(state); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Decode reads a document written by Encode or by the mobile app's
// export. Missing collections decode as empty.
func Decode(r io.Reader, f Format) (models.AppState, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.AppState{}, err
	}

	var state models.AppState
	switch f {
	case JSON:
		err = json.Unmarshal(data, &state)
	case YAML:
		err = yaml.Unmarshal(data, &state)
	default:
		return models.AppState{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return models.AppState{}, fmt.Errorf("failed to parse %s: %w", f, err)
	}
	normalize(&state)
	return state, nil
}

// Export writes the store's snapshot to path on fsys.
func Export(fsys afero.Fs, path string, f Format, src Snapshotter) (models.AppState, error) {
	state, err := src.Snapshot()
	if err != nil {
		return models.AppState{}, fmt.Errorf("failed to read data: %w", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, state, f); err != nil {
		return models.AppState{}, fmt.Errorf("failed to encode %s: %w", f, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return models.AppState{}, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fsys, path, buf.Bytes(), 0o600); err != nil {
		return models.AppState{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("Data exported", "path", path, "format", f)
	return state, nil
}

// Result summarizes an import.
type Result struct {
	State    models.AppState
	Warnings []string
}

// Import reads path, drops rows whose parent is missing and replaces the
// store's contents in one transaction. Rows without an id get a fresh one.
func Import(fsys afero.Fs, path string, dst Replacer) (Result, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Result{}, err
	}
	file, err := fsys.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	state, err := Decode(file, f)
	if err != nil {
		return Result{}, err
	}
	warnings := Prepare(&state)
	for _, w := range warnings {
		logger.Warn("Dropped row during import", "reason", w)
	}

	if err := dst.ReplaceState(state); err != nil {
		return Result{}, fmt.Errorf("failed to import data: %w", err)
	}
	logger.Info("Data imported", "path", path, "students", len(state.Students), "classes", len(state.Classes))
	return Result{State: state, Warnings: warnings}, nil
}

// Prepare fills in missing ids and timestamps, then prunes dangling rows.
// It returns one warning per dropped row.
func Prepare(state *models.AppState) []string {
	now := time.Now()
	for i := range state.Students {
		st := &state.Students[i]
		if st.ID == "" {
			st.ID = uuid.New().String()
		}
		if st.SalaryStatus == "" {
			st.SalaryStatus = models.PaymentDue
		}
		if st.CreatedAt.IsZero() {
			st.CreatedAt = now
		}
		if st.UpdatedAt.IsZero() {
			st.UpdatedAt = st.CreatedAt
		}
	}
	for i := range state.Classes {
		c := &state.Classes[i]
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = c.CreatedAt
		}
	}
	for i := range state.SalaryRecords {
		if state.SalaryRecords[i].ID == "" {
			state.SalaryRecords[i].ID = uuid.New().String()
		}
	}
	for i := range state.Reminders {
		if state.Reminders[i].ID == "" {
			state.Reminders[i].ID = uuid.New().String()
		}
	}
	return state.Prune()
}

func normalize(state *models.AppState) {
	if state.Students == nil {
		state.Students = []models.Student{}
	}
	if state.Classes == nil {
		state.Classes = []models.Class{}
	}
	if state.SalaryRecords == nil {
		state.SalaryRecords = []models.SalaryRecord{}
	}
	if state.Reminders == nil {
		state.Reminders = []models.Reminder{}
	}
}
