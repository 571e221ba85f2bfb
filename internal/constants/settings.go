package constants

const (
	// General Settings
	SettingNotificationsEnabled = "notifications_enabled"
	SettingDefaultLeadMin       = "default_lead_min"
	SettingBackupSchedule       = "backup_schedule"
	SettingCurrency             = "currency"

	// Default Settings Values
	DefaultNotificationsEnabled = true
	DefaultLeadMin              = 15
	DefaultBackupSchedule       = "@daily"
	DefaultCurrency             = "USD"
)
