package constants

import "time"

const (
	AppName        = "moodlog"
	Version        = "v0.1.0"
	DBFileName     = "moodlog.db"
	EnvFileName    = ".env"
	ConfigEnvPath  = "MOODLOG_CONFIG"
	ConfigFileName = "config.yaml"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is used when rendering entry timestamps
	DateTimeFormat = "2006-01-02 15:04"

	// Query constants
	PageSize = 20

	// Entry constants
	MaxTextLength = 200
	MinRating     = 1
	MaxRating     = 10

	// Preferences constants
	PreferencesID          = 1
	DefaultReminderTime    = "20:00"
	DefaultReminderEnabled = false
	DefaultDarkMode        = false

	// Store constants
	DefaultBusyTimeout = 5 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "moodlog-"
	BackupFileSuffix = ".db"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "moodlog.log"

	// Stats windows
	RecentWindowShort = 7 * 24 * time.Hour
	RecentWindowLong  = 30 * 24 * time.Hour
)
