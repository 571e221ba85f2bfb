package constants

import "time"

// SessionState represents the current view of the watch dashboard
type SessionState int

const (
	AppName            = "tutr"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tutr/tutr.db"
	Version            = "v0.3.0"

	// EnvDBConnection overrides --config with a PostgreSQL connection string
	EnvDBConnection = "TUTR_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MonthFormat identifies a billing month (YYYY-MM)
	MonthFormat = "2006-01"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tutr-"
	BackupFileSuffix = ".db"

	// Export constants
	ExportFilePrefix = "tutr-backup-"

	// Notify constants
	NotifierLockfileName   = "tutr-notifier.lock"
	NotificationDurationMs = 8000
	TrayAppIdentifier      = "com.julianstephens.tutr"
	TrayProcessName        = "tutr-tray"
	TraySecretHeader       = "X-Tutr-Secret"

	// Reminder notification text
	ReminderTitleFormat = "Class Reminder: %s"
	ReminderBodyFormat  = "Your class starts in %d minutes."

	// Daemon constants
	ReloadInterval  = 500 * time.Millisecond
	PollInterval    = 30 * time.Second
	UpcomingWindow  = 7 // days
	WatchTickPeriod = time.Second
)

// Session States
const (
	StateReminders SessionState = iota
	StateToday
)

// LeadTimeOptions are the lead times offered by interactive forms.
// Any non-negative number of minutes is accepted from flags and imports.
var LeadTimeOptions = []int{15, 30, 60, 120}
