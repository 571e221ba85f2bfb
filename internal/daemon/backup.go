package daemon

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Schedules accept an optional seconds field and descriptors like @daily.
var scheduleParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule checks a backup_schedule value. Empty disables backups.
func ValidateSchedule(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := scheduleParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	return nil
}

// startBackups registers the backup job on the configured schedule. It
// returns nil when backups are off.
func (d *Daemon) startBackups() *cron.Cron {
	if d.cfg.Backup == nil {
		return nil
	}
	settings, err := d.store.GetSettings()
	if err != nil {
		d.log.Warn("Failed to read backup schedule", "error", err)
		return nil
	}
	if settings.BackupSchedule == "" {
		d.log.Debug("Scheduled backups disabled")
		return nil
	}

	c := cron.New(cron.WithParser(scheduleParser))
	if _, err := c.AddFunc(settings.BackupSchedule, d.runBackup); err != nil {
		d.log.Warn("Invalid backup schedule", "schedule", settings.BackupSchedule, "error", err)
		return nil
	}
	c.Start()
	d.log.Info("Scheduled backups enabled", "schedule", settings.BackupSchedule)
	return c
}

func (d *Daemon) runBackup() {
	path, err := d.cfg.Backup()
	if err != nil {
		d.log.Error("Scheduled backup failed", "error", err)
		return
	}
	d.log.Info("Scheduled backup created", "path", path)
}
