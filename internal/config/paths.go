package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Paths contains the resolved directories used by an audit.
// This is the single source of truth for file locations.
type Paths struct {
	BaseDir    string
	SourceDir  string // workbooks to audit
	ReportsDir string // one timestamped folder per run lives here
	LatestDir  string // overwritten on every run
	LogsDir    string
}

// NewPaths resolves cfg to absolute directories
func NewPaths(cfg PathsConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	reports := resolve(base, cfg.ReportsDir)
	p := &Paths{
		BaseDir:    base,
		SourceDir:  resolve(base, cfg.SourceDir),
		ReportsDir: reports,
		LatestDir:  resolve(reports, cfg.LatestDir),
		LogsDir:    resolve(base, cfg.LogsDir),
	}
	return p, nil
}

func resolve(base, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates the source, reports and latest folders if they don't exist
func (p *Paths) EnsureDirectories() error {
	logger := slog.Default()

	for _, dir := range []string{p.SourceDir, p.ReportsDir, p.LatestDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetSourcePath returns the path of a workbook in the source folder.
// Absolute paths and paths that already exist are returned as-is.
func (p *Paths) GetSourcePath(name string) string {
	if filepath.IsAbs(name) || FileExists(name) {
		return name
	}
	return filepath.Join(p.SourceDir, name)
}

// GetRunDir returns the timestamped report folder for one run
func (p *Paths) GetRunDir(timestamp string) string {
	return filepath.Join(p.ReportsDir, timestamp)
}

// GetReportPath returns a path inside the reports folder
func (p *Paths) GetReportPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.ReportsDir, name)
}

// ReportBaseName is the shared file stem of both report formats:
// <workbook base>_<sheet>_validation_report_<timestamp>
func ReportBaseName(sourcePath, sheet, timestamp string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return fmt.Sprintf("%s_%s_validation_report_%s", base, sheet, timestamp)
}

// ReportPrefix matches every report generated for one workbook sheet
func ReportPrefix(sourcePath, sheet string) string {
	return ReportBaseName(sourcePath, sheet, "")
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution() {
	slog.Default().Info("Path resolution",
		slog.String("base_dir", p.BaseDir),
		slog.String("source_dir", p.SourceDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("latest_dir", p.LatestDir))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
