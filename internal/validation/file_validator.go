package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	auditerrors "sheetqa/internal/errors"
)

// workbookExtensions are the spreadsheet formats the workbook loader can open.
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// FileValidator checks source workbooks and output folders before a run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputDirectory checks that the source folder exists
func (v *FileValidator) ValidateInputDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("Input directory does not exist",
			slog.String("directory", dir))
		return auditerrors.NewInputNotFound(fmt.Sprintf("input directory %s does not exist", dir))
	}
	if err != nil {
		v.logger.Error("Failed to stat input directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return auditerrors.NewIOFailure("stat "+dir, err)
	}
	if !info.IsDir() {
		v.logger.Error("Input path is not a directory",
			slog.String("path", dir))
		return auditerrors.NewInputNotFound(fmt.Sprintf("%s is not a directory", dir))
	}
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
// and is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return auditerrors.NewIOFailure("create output directory "+dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return auditerrors.NewIOFailure("write to output directory "+dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return auditerrors.NewInputNotFound(fmt.Sprintf("file %s does not exist", path))
	}
	if err != nil {
		return auditerrors.NewIOFailure("stat "+path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return auditerrors.NewInputNotFound(fmt.Sprintf("%s is a directory, not a file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return auditerrors.NewIOFailure("open "+path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// IsWorkbookName reports whether name looks like an openable workbook
// (supported extension, not an office lock file).
func IsWorkbookName(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") {
		return false
	}
	return workbookExtensions[strings.ToLower(filepath.Ext(base))]
}

// ValidateWorkbook checks that path is an existing workbook the loader can open
func (v *FileValidator) ValidateWorkbook(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Skipping temporary Excel file",
			slog.String("file", path))
		return auditerrors.NewInputNotFound(fmt.Sprintf("file %s is a temporary Excel file", path))
	}

	if !IsWorkbookName(path) {
		ext := strings.ToLower(filepath.Ext(path))
		v.logger.Error("File is not a supported workbook",
			slog.String("file", path),
			slog.String("extension", ext))
		return auditerrors.NewInputNotFound(fmt.Sprintf("file %s is not a supported workbook (extension: %s)", path, ext))
	}

	return nil
}
