package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/tutr/internal/constants"
	"github.com/julianstephens/tutr/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

var (
	// ErrTrayNotRunning means no lockfile was found, so there is no tray
	// helper on this host at all.
	ErrTrayNotRunning = errors.New("tutr-tray is not running")
	// ErrTrayInvalid means a lockfile exists but does not point at a live tray.
	ErrTrayInvalid = errors.New("tutr-tray lockfile is invalid")
)

// Tray delivers notifications through the desktop tray helper, which listens
// on a localhost port advertised in its lockfile.
type Tray struct {
	client *http.Client
}

type WebhookPayload struct {
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

type trayEndpoint struct {
	port   string
	secret string
}

func NewTray() *Tray {
	return &Tray{client: &http.Client{Timeout: 5 * time.Second}}
}

// RequestPermission probes the tray helper. A missing lockfile means the host
// has no notification capability; a stale or foreign one is treated as denied.
func (n *Tray) RequestPermission(ctx context.Context) Permission {
	_, err := n.endpoint()
	switch {
	case err == nil:
		return PermissionGranted
	case errors.Is(err, ErrTrayNotRunning):
		logger.Debug("Tray helper not found", "error", err)
		return PermissionUnsupported
	default:
		logger.Warn("Tray helper rejected", "error", err)
		return PermissionDenied
	}
}

func (n *Tray) Display(ctx context.Context, title, body string) error {
	ep, err := n.endpoint()
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Title:      title,
		Text:       body,
		DurationMs: constants.NotificationDurationMs,
	}
	return n.send(ctx, ep, payload)
}

func (n *Tray) endpoint() (trayEndpoint, error) {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return trayEndpoint{}, err
	}
	return findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
}

// GetTrayAppConfigDir returns the configuration directory used by the tray application.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// settings.json may relocate the lockfile
	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err == nil {
		var store struct {
			Settings struct {
				LockfileDir *string `json:"lockfile_dir"`
			} `json:"settings"`
		}
		if err := json.Unmarshal(data, &store); err == nil {
			if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
				return *store.Settings.LockfileDir, nil
			}
		}
	}

	return trayConfigDir, nil
}

// findAndValidateTrayProcess parses a "port|pid|secret" lockfile and checks
// that pid belongs to the tray helper.
func findAndValidateTrayProcess(lockfilePath string) (trayEndpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return trayEndpoint{}, ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return trayEndpoint{}, fmt.Errorf("%w: malformed lockfile", ErrTrayInvalid)
	}

	port := strings.TrimSpace(parts[0])
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return trayEndpoint{}, fmt.Errorf("%w: invalid port number %q", ErrTrayInvalid, port)
	}
	if portNum < 1 || portNum > 65535 {
		return trayEndpoint{}, fmt.Errorf("%w: port number %d is outside valid range (1-65535)", ErrTrayInvalid, portNum)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return trayEndpoint{}, fmt.Errorf("%w: invalid process ID", ErrTrayInvalid)
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return trayEndpoint{}, fmt.Errorf("%w: secret is empty", ErrTrayInvalid)
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return trayEndpoint{}, fmt.Errorf("%w: process %d not running", ErrTrayInvalid, pid)
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayProcessName) {
		return trayEndpoint{}, fmt.Errorf("%w: process with PID %d is %s", ErrTrayInvalid, pid, process.Executable())
	}

	return trayEndpoint{port: port, secret: secret}, nil
}

func (n *Tray) send(ctx context.Context, ep trayEndpoint, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", ep.port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.TraySecretHeader, ep.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
