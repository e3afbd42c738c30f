package constants

import "time"

const (
	AppName            = "timesheet"
	DefaultKeyringUser = "tracker-session"
	DefaultConfigDir   = "~/.config/timesheet"
	DefaultConfigFile  = "~/.config/timesheet/config.json"
	Version            = "v0.1.0"

	// DateFormat is the date key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the month selector format accepted by commands and the API (YYYY-MM)
	MonthFormat = "2006-01"

	// Tracker API defaults
	DefaultAPIURL      = "https://api.tracker.yandex.net/v2"
	DefaultPerPage     = 250
	DefaultHTTPTimeout = 30 * time.Second

	// Workday conventions of the tracker installation
	DefaultDayOffset    = 3 * time.Hour
	DefaultWorkdayHours = 8

	// Notify constants
	ToastLifetime          = 5 * time.Second
	NotifierLockfileName   = "timesheet-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.timesheet"
	TrayExecutablePrefix   = "timesheet-tray"

	// Web server defaults
	DefaultListenAddr     = "127.0.0.1:8080"
	DefaultRequestTimeout = 2 * time.Minute
)
