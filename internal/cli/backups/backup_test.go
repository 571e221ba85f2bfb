package backups

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/tutr/internal/backup"
	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/cli/clitest"
	"github.com/julianstephens/tutr/internal/storage"
	"github.com/julianstephens/tutr/internal/storage/sqlite"
)

type remoteStore struct{ storage.Provider }

func TestBackupCmds_RequireSQLite(t *testing.T) {
	ctx := &cli.Context{Store: remoteStore{}}
	if err := (&BackupCreateCmd{}).Run(ctx); !errors.Is(err, errNotSQLite) {
		t.Errorf("create error = %v, want errNotSQLite", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); !errors.Is(err, errNotSQLite) {
		t.Errorf("list error = %v, want errNotSQLite", err)
	}
}

func TestBackupListCmd_Empty(t *testing.T) {
	env := clitest.New(t)
	if err := (&BackupListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "No backups found.") {
		t.Errorf("unexpected output: %s", env.Out)
	}
}

func TestBackupCreateListRestore(t *testing.T) {
	env := clitest.New(t)
	env.Seed(t)
	dbPath := env.Store.GetConfigPath()

	if err := (&BackupCreateCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(env.Out.String(), "✓ Backup created: tutr-") {
		t.Errorf("unexpected output: %s", env.Out)
	}

	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("ListBackups() = %v, %v", backups, err)
	}
	name := backups[0].Name()

	env.Out.Reset()
	if err := (&BackupListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), name) {
		t.Errorf("list output missing %s:\n%s", name, env.Out)
	}

	if err := env.Store.DeleteStudent("s1"); err != nil {
		t.Fatal(err)
	}

	env.Out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(env.Ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(env.Out.String(), "Previous database saved as") {
		t.Errorf("unexpected output: %s", env.Out)
	}

	restored := sqlite.NewStore(dbPath)
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	defer restored.Close()
	if st, err := restored.GetStudent("s1"); err != nil || st.Name != "Ana" {
		t.Errorf("restored student = %+v, %v", st, err)
	}
}

func TestBackupRestoreCmd_Errors(t *testing.T) {
	env := clitest.New(t)

	missing := filepath.Join(t.TempDir(), "nope.db")
	if err := (&BackupRestoreCmd{BackupFile: missing, Yes: true}).Run(env.Ctx); err == nil {
		t.Error("expected error for missing backup")
	}

	if err := (&BackupCreateCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	backups, _ := backup.NewManager(env.Store.GetConfigPath()).ListBackups()
	env.Answer("no\n")
	env.Out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: backups[0].Name()}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %s", env.Out)
	}
}
