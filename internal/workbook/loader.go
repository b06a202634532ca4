package workbook

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	auditerrors "sheetqa/internal/errors"
	"sheetqa/pkg/contracts/domain"
)

// Loader reads sheets of a workbook into memory
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger uses slog.Default().
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "workbook_loader"))}
}

// Sheets lists the sheet names of the workbook at path, in workbook order.
func (l *Loader) Sheets(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, auditerrors.NewIOFailure("open workbook "+path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, auditerrors.NewInputNotFound(fmt.Sprintf("no sheets found in %s", path))
	}
	return sheets, nil
}

// LoadHeaders returns the header row (first row) of a sheet.
func (l *Loader) LoadHeaders(path, sheet string) ([]string, error) {
	table, err := l.Load(path, sheet)
	if err != nil {
		return nil, err
	}
	return table.Headers, nil
}

// LoadRows returns the data rows (everything below the header) of a sheet.
func (l *Loader) LoadRows(path, sheet string) ([][]string, error) {
	table, err := l.Load(path, sheet)
	if err != nil {
		return nil, err
	}
	return table.Rows, nil
}

// Load reads a whole sheet. The first row is the header; every later row,
// blank ones included, is a data row so that row numbers line up with the
// spreadsheet. Cell values are the formatted strings shown in the sheet.
func (l *Loader) Load(path, sheet string) (domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Table{}, auditerrors.NewIOFailure("open workbook "+path, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return domain.Table{}, auditerrors.NewInputNotFound(fmt.Sprintf("sheet %q not found in %s", sheet, path))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.Table{}, auditerrors.NewIOFailure(fmt.Sprintf("read sheet %q", sheet), err)
	}
	if len(rows) == 0 || !hasText(rows[0]) {
		return domain.Table{}, auditerrors.NewInputNotFound(fmt.Sprintf("no column headers found in sheet %q", sheet))
	}

	table := domain.Table{
		Path:    path,
		Sheet:   sheet,
		Headers: rows[0],
		Rows:    rows[1:],
	}

	l.logger.Info("Opened sheet",
		slog.String("file", path),
		slog.String("sheet", sheet),
		slog.Int("columns", len(table.Headers)),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

func hasText(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
