package backup

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/storage/sqlite"
)

// TestIntegrationBackupRestoreWorkflow runs backup and restore against a
// migrated tutr database.
func TestIntegrationBackupRestoreWorkflow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tutr.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.AddStudent(models.Student{ID: "s1", Name: "Ana"}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))
	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	store = sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.AddStudent(models.Student{ID: "s2", Name: "Ben"}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	if _, err := mgr.RestoreBackup(mgr.Resolve(filepath.Base(first))); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	store = sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load after restore failed: %v", err)
	}
	defer store.Close()

	students, err := store.GetAllStudents()
	if err != nil {
		t.Fatal(err)
	}
	if len(students) != 1 || students[0].ID != "s1" {
		t.Errorf("students after restore = %+v", students)
	}
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("settings after restore = %+v", settings)
	}
}
