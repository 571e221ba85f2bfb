package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/tutr/internal/constants"
)

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		DefaultLeadMin:       constants.DefaultLeadMin,
		BackupSchedule:       constants.DefaultBackupSchedule,
		Currency:             constants.DefaultCurrency,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys missing from data keep their default values.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		if err := settings.Set(key, value); err != nil {
			return Settings{}, err
		}
	}

	return settings, nil
}

// SettingsToMap converts a Settings struct to key-value pairs for storage.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingDefaultLeadMin:       strconv.Itoa(settings.DefaultLeadMin),
		constants.SettingBackupSchedule:       settings.BackupSchedule,
		constants.SettingCurrency:             settings.Currency,
	}
}

// Set updates a single setting by its storage key. Unknown keys are rejected.
func (s *Settings) Set(key, value string) error {
	switch key {
	case constants.SettingNotificationsEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		s.NotificationsEnabled = b
	case constants.SettingDefaultLeadMin:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		if n < 0 {
			return fmt.Errorf("%s cannot be negative", key)
		}
		s.DefaultLeadMin = n
	case constants.SettingBackupSchedule:
		s.BackupSchedule = value
	case constants.SettingCurrency:
		if len(value) != 3 {
			return fmt.Errorf("%s must be a 3-letter ISO code", key)
		}
		s.Currency = value
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}
	return nil
}
