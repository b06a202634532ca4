package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load
const EnvPrefix = "SHEETQA"

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Audit   AuditConfig   `yaml:"audit" envconfig:"AUDIT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration. Relative
// directories are resolved against BaseDir, or the working directory
// when BaseDir is empty.
type PathsConfig struct {
	BaseDir    string `yaml:"base_dir" envconfig:"BASE_DIR"`
	SourceDir  string `yaml:"source_dir" envconfig:"SOURCE_DIR" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LatestDir  string `yaml:"latest_dir" envconfig:"LATEST_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// AuditConfig controls how reports are produced
type AuditConfig struct {
	ReportSheet     string `yaml:"report_sheet" envconfig:"REPORT_SHEET" validate:"required"`
	HighlightFill   string `yaml:"highlight_fill" envconfig:"HIGHLIGHT_FILL" validate:"required,hexadecimal,len=6|len=8"`
	HighlightFont   string `yaml:"highlight_font" envconfig:"HIGHLIGHT_FONT" validate:"required,hexadecimal,len=6|len=8"`
	TimestampLayout string `yaml:"timestamp_layout" envconfig:"TIMESTAMP_LAYOUT" validate:"required"`
	CSVBOM          bool   `yaml:"csv_bom" envconfig:"CSV_BOM"`
}

// FillRGB returns the highlight fill as 6-digit RGB, dropping an alpha prefix.
func (a AuditConfig) FillRGB() string { return rgb(a.HighlightFill) }

// FontRGB returns the highlight font colour as 6-digit RGB.
func (a AuditConfig) FontRGB() string { return rgb(a.HighlightFont) }

func rgb(hex string) string {
	hex = strings.ToUpper(strings.TrimPrefix(hex, "#"))
	if len(hex) == 8 {
		return hex[2:]
	}
	return hex
}

// Load builds the configuration from defaults, then the YAML config file
// if one is found, then SHEETQA_* environment variables (highest priority).
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file. An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// only variables that are set override; none of the fields carry
	// envconfig defaults, so file values survive
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	// Always JSON
	c.Logging.Format = "json"
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/sheetqa.log"
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)

	if n := utf8.RuneCountInString(c.Audit.ReportSheet); n > MaxSheetNameLength {
		return fmt.Errorf("audit.report_sheet %q is %d characters, Excel allows %d", c.Audit.ReportSheet, n, MaxSheetNameLength)
	}
	return validator.New().Struct(c)
}

// getConfigFilePath returns the path to the config file, or "" when none exists
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return path
	}

	locations := []string{
		"sheetqa.yaml",
		"configs/sheetqa.yaml",
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "file",
			FilePath: "logs/sheetqa.log",
		},
		Paths: PathsConfig{
			SourceDir:  DefaultSourceDir,
			ReportsDir: DefaultReportsDir,
			LatestDir:  DefaultLatestDir,
			LogsDir:    "logs",
		},
		Audit: AuditConfig{
			ReportSheet:     "Validation Report",
			HighlightFill:   "FFFF0000",
			HighlightFont:   "FFFFFF",
			TimestampLayout: DefaultTimestampLayout,
			CSVBOM:          true,
		},
	}
}
