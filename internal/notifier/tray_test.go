package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/tutr/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func trayProcess(pid int) (ps.Process, error) {
	return &mockProcess{pid: pid, executable: constants.TrayProcessName}, nil
}

// withTrayDir points the user config dir at a temp directory and returns the
// tray's lockfile path inside it.
func withTrayDir(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	oldUserConfigDirFunc := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = oldUserConfigDirFunc })
	userConfigDirFunc = func() (string, error) { return tempDir, nil }

	trayDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	return filepath.Join(trayDir, constants.NotifierLockfileName)
}

func withFindProcess(t *testing.T, f func(int) (ps.Process, error)) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = f
}

func TestGetTrayAppConfigDir(t *testing.T) {
	lockfile := withTrayDir(t)
	trayDir := filepath.Dir(lockfile)

	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != trayDir {
		t.Errorf("expected %s, got %s", trayDir, dir)
	}

	customDir := "/custom/tutr/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(trayDir, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, err := findAndValidateTrayProcess(lockfilePath); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("missing lockfile: got %v, want ErrTrayNotRunning", err)
	}

	tests := []struct {
		name     string
		content  string
		process  func(int) (ps.Process, error)
		wantErr  string
		wantPort string
	}{
		{name: "old two part format", content: "8080|12345", process: trayProcess, wantErr: "malformed"},
		{name: "garbage", content: "invalid", process: trayProcess, wantErr: "malformed"},
		{name: "empty secret", content: "8080|12345|", process: trayProcess, wantErr: "secret"},
		{name: "empty port", content: "|12345|s3cret", process: trayProcess, wantErr: "port"},
		{name: "port out of range", content: "99999|12345|s3cret", process: trayProcess, wantErr: "range"},
		{name: "bad pid", content: "8080|abc|s3cret", process: trayProcess, wantErr: "process ID"},
		{
			name:    "process not running",
			content: "8080|12345|s3cret",
			process: func(int) (ps.Process, error) { return nil, nil },
			wantErr: "not running",
		},
		{
			name:    "wrong executable",
			content: "8080|12345|s3cret",
			process: func(pid int) (ps.Process, error) { return &mockProcess{pid: pid, executable: "other-app"}, nil },
			wantErr: "other-app",
		},
		{name: "valid", content: "8080|12345|s3cret\n", process: trayProcess, wantPort: "8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFindProcess(t, tt.process)
			if err := os.WriteFile(lockfilePath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			ep, err := findAndValidateTrayProcess(lockfilePath)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				if !errors.Is(err, ErrTrayInvalid) {
					t.Errorf("expected ErrTrayInvalid, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ep.port != tt.wantPort || ep.secret != "s3cret" {
				t.Errorf("endpoint = %+v", ep)
			}
		})
	}
}

func TestTray_RequestPermission(t *testing.T) {
	lockfile := withTrayDir(t)
	withFindProcess(t, trayProcess)
	tray := NewTray()
	ctx := context.Background()

	if got := tray.RequestPermission(ctx); got != PermissionUnsupported {
		t.Errorf("no lockfile: got %v, want unsupported", got)
	}

	if err := os.WriteFile(lockfile, []byte("bogus"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := tray.RequestPermission(ctx); got != PermissionDenied {
		t.Errorf("malformed lockfile: got %v, want denied", got)
	}

	if err := os.WriteFile(lockfile, []byte("8080|12345|s3cret"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := tray.RequestPermission(ctx); got != PermissionGranted {
		t.Errorf("valid lockfile: got %v, want granted", got)
	}
}

func TestTray_Display(t *testing.T) {
	var received WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get(constants.TraySecretHeader) != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if received.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	parts := strings.Split(server.URL, ":")
	port := parts[len(parts)-1]

	lockfile := withTrayDir(t)
	withFindProcess(t, trayProcess)
	tray := NewTray()
	ctx := context.Background()

	if err := tray.Display(ctx, "Class Reminder: Algebra", "hello"); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("no tray: got %v, want ErrTrayNotRunning", err)
	}

	if err := os.WriteFile(lockfile, []byte(port+"|12345|test-secret"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := tray.Display(ctx, "Class Reminder: Algebra", "Your class starts in 30 minutes."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.Title != "Class Reminder: Algebra" || received.Text != "Your class starts in 30 minutes." {
		t.Errorf("payload = %+v", received)
	}
	if received.DurationMs != constants.NotificationDurationMs {
		t.Errorf("duration = %d, want %d", received.DurationMs, constants.NotificationDurationMs)
	}

	if err := tray.Display(ctx, "t", "fail"); err == nil {
		t.Error("expected error for server failure")
	}

	if err := os.WriteFile(lockfile, []byte(port+"|12345|wrong-secret"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := tray.Display(ctx, "t", "hello"); err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("wrong secret: got %v, want 401 error", err)
	}
}
