package models

import (
	"testing"

	"github.com/julianstephens/tutr/internal/constants"
)

func TestMapToSettings(t *testing.T) {
	settings, err := MapToSettings(map[string]string{
		constants.SettingNotificationsEnabled: "false",
		constants.SettingDefaultLeadMin:       "30",
	})
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}
	if settings.NotificationsEnabled {
		t.Error("expected notifications to be disabled")
	}
	if settings.DefaultLeadMin != 30 {
		t.Errorf("DefaultLeadMin = %d, want 30", settings.DefaultLeadMin)
	}
	if settings.BackupSchedule != constants.DefaultBackupSchedule {
		t.Errorf("BackupSchedule = %q, want default %q", settings.BackupSchedule, constants.DefaultBackupSchedule)
	}

	if _, err := MapToSettings(map[string]string{"bogus": "1"}); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := MapToSettings(map[string]string{constants.SettingDefaultLeadMin: "-5"}); err == nil {
		t.Error("expected error for negative lead")
	}
}

func TestSettingsToMap_RoundTrip(t *testing.T) {
	want := Settings{NotificationsEnabled: true, DefaultLeadMin: 60, BackupSchedule: "0 3 * * *", Currency: "EUR"}
	got, err := MapToSettings(SettingsToMap(want))
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
