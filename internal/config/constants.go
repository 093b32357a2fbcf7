package config

const (
	// Extractor Defaults
	DefaultExtractorUserAgent           = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultExtractorPageLoadTimeoutSecs = 30
	DefaultExtractorSelectorTimeoutSecs = 10
	DefaultExtractorScreenshotDir       = "screenshots"

	// Source Defaults
	DefaultSourceMaxTitles = 5
	DefaultSourceMode      = "browser"

	// Storage Defaults
	DefaultStorageSnapshotDir      = "snapshots"
	DefaultStorageRunHistoryDBPath = "snapshots/run_history.db"
	DefaultStorageLockFilePath     = "snapshots/.careerwatch.lock"

	// Notification Defaults
	DefaultSMTPHost     = "smtp.gmail.com"
	DefaultSMTPPort     = 587
	DefaultNotifyPolicy = "count-increase-or-titles"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)
