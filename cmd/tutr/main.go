package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/cli/backups"
	"github.com/julianstephens/tutr/internal/cli/classes"
	"github.com/julianstephens/tutr/internal/cli/exports"
	"github.com/julianstephens/tutr/internal/cli/payments"
	"github.com/julianstephens/tutr/internal/cli/reminders"
	"github.com/julianstephens/tutr/internal/cli/reports"
	"github.com/julianstephens/tutr/internal/cli/settings"
	"github.com/julianstephens/tutr/internal/cli/students"
	"github.com/julianstephens/tutr/internal/cli/system"
	"github.com/julianstephens/tutr/internal/constants"
	apperrors "github.com/julianstephens/tutr/internal/errors"
	"github.com/julianstephens/tutr/internal/keyring"
	"github.com/julianstephens/tutr/internal/logger"
	"github.com/julianstephens/tutr/internal/storage"
	"github.com/julianstephens/tutr/internal/storage/postgres"
	"github.com/julianstephens/tutr/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded; use ${env} or the OS keyring instead." type:"string" default:"${default_config}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize tutr storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check the timetable for clashing classes and duplicate reminders."`
	Run      system.RunCmd      `cmd:"" help:"Run the reminder daemon in the foreground."`
	Watch    system.WatchCmd    `cmd:"" help:"Run the reminder daemon with a live dashboard." default:"1"`

	Student struct {
		Add    students.StudentAddCmd    `cmd:"" help:"Add a student."`
		List   students.StudentListCmd   `cmd:"" help:"List students." default:"1"`
		Show   students.StudentShowCmd   `cmd:"" help:"Show a student with classes and payments."`
		Edit   students.StudentEditCmd   `cmd:"" help:"Edit a student."`
		Delete students.StudentDeleteCmd `cmd:"" help:"Delete a student and everything attached to them."`
	} `cmd:"" help:"Manage students."`
	Class struct {
		Add    classes.ClassAddCmd    `cmd:"" help:"Add a weekly class."`
		List   classes.ClassListCmd   `cmd:"" help:"List classes." default:"1"`
		Show   classes.ClassShowCmd   `cmd:"" help:"Show a class and its reminders."`
		Edit   classes.ClassEditCmd   `cmd:"" help:"Edit a class."`
		Delete classes.ClassDeleteCmd `cmd:"" help:"Delete a class and its reminders."`
	} `cmd:"" help:"Manage classes."`
	Reminder struct {
		Add    reminders.ReminderAddCmd    `cmd:"" help:"Add a reminder to a class."`
		List   reminders.ReminderListCmd   `cmd:"" help:"List reminders." default:"1"`
		Edit   reminders.ReminderEditCmd   `cmd:"" help:"Change a reminder's lead time or state."`
		Delete reminders.ReminderDeleteCmd `cmd:"" help:"Delete a reminder."`
		Next   reminders.ReminderNextCmd   `cmd:"" help:"Show the next notifications the daemon will send."`
	} `cmd:"" help:"Manage class reminders."`
	Payment struct {
		Add    payments.PaymentAddCmd    `cmd:"" help:"Record a monthly payment."`
		List   payments.PaymentListCmd   `cmd:"" help:"List payments." default:"1"`
		Pay    payments.PaymentPayCmd    `cmd:"" help:"Mark a payment as paid."`
		Delete payments.PaymentDeleteCmd `cmd:"" help:"Delete a payment."`
	} `cmd:"" help:"Manage payments."`

	Income   reports.IncomeCmd   `cmd:"" help:"Show expected, paid and due income for a month."`
	Today    reports.TodayCmd    `cmd:"" help:"Show today's classes."`
	Upcoming reports.UpcomingCmd `cmd:"" help:"Show classes in the coming days."`

	Export exports.ExportCmd `cmd:"" help:"Export all data as JSON or YAML."`
	Import exports.ImportCmd `cmd:"" help:"Replace all data with an export."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Show or update application settings."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage PostgreSQL credentials in the OS keyring."`
	Notify system.NotifyCmd `cmd:"" help:"Send a test notification."`
}

// commands that open the store themselves or never touch it.
var skipLoad = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Tutoring manager: students, weekly classes, payments and class reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"env":            constants.EnvDBConnection,
			"upcoming_days":  strconv.Itoa(constants.UpcomingWindow),
		},
	)
	command := topCommand(ctx.Command())

	store, configDir, err := openStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:      CLI.Debug,
		ConfigDir:  configDir,
		Foreground: command == "run",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "version", constants.Version)

	appCtx := &cli.Context{Store: store}

	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

func topCommand(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// openStore picks the backend. TUTR_DB_CONNECTION wins, then the keyring
// (only when --config is left at its default), then --config itself.
// Connection strings from the environment or keyring may carry a password;
// ones given on the command line may not.
func openStore(config string) (storage.Provider, string, error) {
	if conn := os.Getenv(constants.EnvDBConnection); conn != "" {
		return openPostgres(conn, true)
	}
	if config == constants.DefaultConfigPath {
		conn, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			return openPostgres(conn, true)
		case !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable):
			return nil, "", err
		}
	}
	if postgres.IsConnString(config) {
		return openPostgres(config, false)
	}

	path, err := expandHome(config)
	if err != nil {
		return nil, "", err
	}
	return sqlite.NewStore(path), filepath.Dir(path), nil
}

func openPostgres(conn string, trusted bool) (storage.Provider, string, error) {
	err := postgres.ValidateConnString(conn)
	switch {
	case errors.Is(err, postgres.ErrEmbeddedCredentials) && !trusted:
		return nil, "", fmt.Errorf("%w; store it with 'tutr keyring set' or export %s instead", err, constants.EnvDBConnection)
	case err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials):
		return nil, "", err
	}
	return postgres.New(conn), defaultConfigDir(), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// defaultConfigDir holds logs when the data lives on a PostgreSQL server.
func defaultConfigDir() string {
	path, err := expandHome(constants.DefaultConfigPath)
	if err != nil {
		return filepath.Join(os.TempDir(), constants.AppName)
	}
	return filepath.Dir(path)
}
