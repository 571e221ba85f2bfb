package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/tutr/internal/backup"
	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/daemon"
	"github.com/julianstephens/tutr/internal/notifier"
	"github.com/julianstephens/tutr/internal/utils"
	"github.com/julianstephens/tutr/internal/validation"
)

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	// warnOnly failures print a warning without failing the run.
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data integrity", needsDB: true, run: checkIntegrity},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Schedule conflicts", needsDB: true, warnOnly: true, run: checkConflicts},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Notifications", warnOnly: true, run: checkNotifier},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.Fingerprint(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func schemaStatus(ctx *cli.Context) (int, int, error) {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return 0, 0, fmt.Errorf("storage backend does not report a schema version")
	}
	current, latest, err := m.SchemaStatus()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := schemaStatus(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := schemaStatus(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'tutr migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	s, ok := ctx.SQLite()
	if !ok {
		return fmt.Errorf("backups are only managed for SQLite storage")
	}
	backups, err := backup.NewManager(s.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'tutr backup create'")
	}
	return nil
}

// checkIntegrity looks for rows whose parent is gone.
func checkIntegrity(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	if warnings := state.Prune(); len(warnings) > 0 {
		return fmt.Errorf("found %d dangling rows, first: %s", len(warnings), warnings[0])
	}
	return nil
}

// checkConflicts reports clashing classes and duplicate reminders.
func checkConflicts(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	result := validation.New().ValidateClasses(state.Classes, state.Reminders)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s), first: %s (run 'tutr validate')", len(result.Conflicts), result.Conflicts[0].Description)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	for _, st := range state.Students {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("student %s: %w", st.ID, err)
		}
	}
	for _, c := range state.Classes {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("class %s: %w", c.ID, err)
		}
	}
	for _, r := range state.Reminders {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("reminder %s: %w", r.ID, err)
		}
	}
	for _, p := range state.SalaryRecords {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("payment %s: %w", p.ID, err)
		}
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := utils.ValidateCurrency(settings.Currency); err != nil {
		return err
	}
	if settings.BackupSchedule != "" {
		if err := daemon.ValidateSchedule(settings.BackupSchedule); err != nil {
			return err
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkNotifier(ctx *cli.Context) error {
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if p := notifier.NewTray().RequestPermission(c); p != notifier.PermissionGranted {
		return fmt.Errorf("tray notifications are %s, is tutr-tray running?", p)
	}
	return nil
}
