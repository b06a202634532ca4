package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// SheetRows is one sheet of a fixture workbook. Rows start at A1; a nil row
// leaves that spreadsheet row empty.
type SheetRows struct {
	Name string
	Rows [][]any
}

// WriteWorkbook saves a workbook with the given sheets, in order, to path and
// returns path. The first sheet takes the place of the default "Sheet1".
func WriteWorkbook(t *testing.T, path string, sheets ...SheetRows) string {
	t.Helper()
	require.NotEmpty(t, sheets, "fixture needs at least one sheet")

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet.Name))
		} else {
			_, err := f.NewSheet(sheet.Name)
			require.NoError(t, err)
		}
		for r, row := range sheet.Rows {
			if row == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(sheet.Name, cell, &values))
		}
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, f.SaveAs(path))
	return path
}
