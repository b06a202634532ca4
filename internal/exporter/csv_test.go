package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetqa/internal/config"
)

func readCSV(t *testing.T, path string) ([]byte, [][]string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	require.NoError(t, err)
	return data, records
}

func TestCSVWriter_WriteDelimited(t *testing.T) {
	tests := []struct {
		name    string
		bom     bool
		records [][]string
	}{
		{"with bom", true, [][]string{{"2", "SKU", "AB 12", "[Strict Spacing] contains 1 space(s)", "AB12"}}},
		{"without bom", false, [][]string{{"3", "Name", "a, \"b\"", "x", "y"}}},
		{"no records", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "nested", "out.csv")
			w := NewCSVWriter(nil, tt.bom)

			require.NoError(t, w.WriteDelimited(path, []string{"Row", "Column", "Original Value", "Issues", "Suggested Fix"}, tt.records))

			data, records := readCSV(t, path)
			assert.Equal(t, tt.bom, bytes.HasPrefix(data, utf8BOM))
			require.Len(t, records, len(tt.records)+1)
			assert.Equal(t, "Row", records[0][0])
			for i, rec := range tt.records {
				assert.Equal(t, rec, records[i+1])
			}
		})
	}
}

func TestCSVWriter_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewCSVWriter(nil, true)

	require.NoError(t, w.WriteDelimited(path, []string{"A"}, [][]string{{"1"}, {"2"}}))
	require.NoError(t, w.WriteDelimited(path, []string{"A"}, [][]string{{"3"}}))

	data, records := readCSV(t, path)
	assert.Equal(t, 1, bytes.Count(data, utf8BOM))
	assert.Equal(t, [][]string{{"A"}, {"3"}}, records)
}

func TestCSVWriter_RelativePathGoesToReports(t *testing.T) {
	base := t.TempDir()
	paths := &config.Paths{ReportsDir: filepath.Join(base, "reports")}
	w := NewCSVWriter(paths, false)

	require.NoError(t, w.WriteDelimited("summary.csv", []string{"A"}, nil))
	assert.FileExists(t, filepath.Join(base, "reports", "summary.csv"))
}
