package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	auditerrors "sheetqa/internal/errors"
	"sheetqa/internal/validation"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Number  int // 1-based position in the listing
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindWorkbooks lists the workbooks in dir, sorted by name and numbered
// from 1. Office lock files are skipped. An empty listing is an
// InputNotFound error.
func (d *Discovery) FindWorkbooks(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, auditerrors.NewIOFailure("read directory "+fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !validation.IsWorkbookName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	if len(files) == 0 {
		return nil, auditerrors.NewInputNotFound(fmt.Sprintf("no Excel files found in %s", fullPath))
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	for i := range files {
		files[i].Number = i + 1
	}

	return files, nil
}

// SelectWorkbook picks a file from a listing by its 1-based number
func SelectWorkbook(files []FileInfo, number int) (FileInfo, error) {
	if number < 1 || number > len(files) {
		return FileInfo{}, auditerrors.NewSelectionInvalid(
			fmt.Sprintf("file number %d out of range (1-%d)", number, len(files)))
	}
	return files[number-1], nil
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}
