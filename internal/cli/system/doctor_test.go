package system

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/julianstephens/tutr/internal/backup"
	"github.com/julianstephens/tutr/internal/migration"
	"github.com/julianstephens/tutr/migrations"
)

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	seedStore(t, store)

	// Missing backups and tray are warnings, not failures
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor command failed on healthy database: %v\n%s", err, out)
	}
	for _, want := range []string{"✓ Database reachable: OK", "✓ Data integrity: OK", "⚠ Backups present: WARNING", "All diagnostics passed!"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDoctorCmd_WithBackup(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	if _, err := backup.NewManager(store.GetConfigPath()).CreateBackup(); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backups present: OK") {
		t.Errorf("expected backups OK:\n%s", out)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	tests := []struct {
		name    string
		version int
		want    string
	}{
		{name: "newer than binary", version: 99, want: "❌ Schema version: FAIL"},
		{name: "pending migrations", version: 0, want: "❌ Migrations complete: FAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, store, out := setupTestContext(t)
			sub, err := fs.Sub(migrations.FS, "sqlite")
			if err != nil {
				t.Fatal(err)
			}
			if err := migration.NewRunner(store.GetDB(), sub).SetVersion(tt.version); err != nil {
				t.Fatal(err)
			}

			if err := (&DoctorCmd{}).Run(ctx); err == nil {
				t.Fatal("expected doctor to fail")
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestDoctorCmd_InvalidSettings(t *testing.T) {
	ctx, store, out := setupTestContext(t)
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.BackupSchedule = "every tuesday"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail")
	}
	if !strings.Contains(out.String(), "❌ Settings: FAIL") {
		t.Errorf("expected settings failure:\n%s", out)
	}
}
