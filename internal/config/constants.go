package config

// Application constants
const (
	// Application Info
	AppName    = "sheetqa"
	AppVersion = "1.0.0"

	// Defaults mirrored by Default()
	DefaultSourceDir       = "excel_files"
	DefaultReportsDir      = "reports"
	DefaultLatestDir       = "latest"
	DefaultTimestampLayout = "20060102_150405"

	// Excel caps sheet names at 31 characters
	MaxSheetNameLength = 31
)

// Version is overridden at build time with -ldflags "-X sheetqa/internal/config.Version=..."
var Version = AppVersion
