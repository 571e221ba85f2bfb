package settings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/constants"
	"github.com/julianstephens/tutr/internal/daemon"
	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/utils"
)

type SettingsCmd struct {
	Set []string `help:"Update a setting as key=value (repeatable)." placeholder:"KEY=VALUE" sep:"none"`

	NotificationsEnabled *bool   `help:"Enable or disable class reminders."`
	DefaultLead          *int    `help:"Lead time in minutes for new reminders."`
	BackupSchedule       *string `help:"Cron spec for daemon backups (empty disables them)."`
	Currency             *string `help:"ISO 4217 currency code used for amounts."`
}

func (c *SettingsCmd) Validate() error {
	for _, kv := range c.Set {
		if k, _, ok := strings.Cut(kv, "="); !ok || strings.TrimSpace(k) == "" {
			return fmt.Errorf("invalid --set %q (expected key=value)", kv)
		}
	}
	return nil
}

// changes merges the typed flags and --set pairs into key/value updates.
// Typed flags are applied after --set.
func (c *SettingsCmd) changes() [][2]string {
	var out [][2]string
	for _, kv := range c.Set {
		k, v, _ := strings.Cut(kv, "=")
		out = append(out, [2]string{strings.TrimSpace(k), strings.TrimSpace(v)})
	}
	if c.NotificationsEnabled != nil {
		out = append(out, [2]string{constants.SettingNotificationsEnabled, strconv.FormatBool(*c.NotificationsEnabled)})
	}
	if c.DefaultLead != nil {
		out = append(out, [2]string{constants.SettingDefaultLeadMin, strconv.Itoa(*c.DefaultLead)})
	}
	if c.BackupSchedule != nil {
		out = append(out, [2]string{constants.SettingBackupSchedule, *c.BackupSchedule})
	}
	if c.Currency != nil {
		out = append(out, [2]string{constants.SettingCurrency, *c.Currency})
	}
	return out
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	changes := c.changes()
	if len(changes) == 0 {
		printSettings(ctx, settings)
		return nil
	}

	for _, kv := range changes {
		key, value := kv[0], kv[1]
		if key == constants.SettingCurrency {
			value = strings.ToUpper(value)
		}
		if err := settings.Set(key, value); err != nil {
			return err
		}
	}
	if err := utils.ValidateCurrency(settings.Currency); err != nil {
		return err
	}
	if err := daemon.ValidateSchedule(settings.BackupSchedule); err != nil {
		return err
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("✓ Settings updated.")
	if _, ok := ctx.SQLite(); !ok && settings.BackupSchedule != "" {
		ctx.Println("  Note: scheduled backups only run for SQLite databases.")
	}
	return nil
}

func printSettings(ctx *cli.Context, s models.Settings) {
	m := models.SettingsToMap(s)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx.Println("Current Settings:")
	for _, k := range keys {
		v := m[k]
		if v == "" {
			v = "(off)"
		}
		ctx.Printf("  %-22s %s\n", k, v)
	}
}
