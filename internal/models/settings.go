package models

// Settings represents application-wide settings
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether class reminders are displayed
	DefaultLeadMin       int    `json:"default_lead_min"`      // lead time used when none is given
	BackupSchedule       string `json:"backup_schedule"`       // cron spec for daemon backups, empty disables them
	Currency             string `json:"currency"`              // ISO 4217 code used when printing amounts
}
