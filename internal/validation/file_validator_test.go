package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditerrors "sheetqa/internal/errors"
)

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantKind  auditerrors.Kind
	}{
		{
			name: "existing directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "non-existent directory",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing")
			},
			wantKind: auditerrors.KindInputNotFound,
		},
		{
			name: "path is file not directory",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "test.txt")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return file
			},
			wantKind: auditerrors.KindInputNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(nil)
			err := v.ValidateInputDirectory(tt.setupFunc(t))
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, auditerrors.IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)
	dir := filepath.Join(t.TempDir(), "reports", "latest")

	require.NoError(t, v.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	_, err = os.Stat(filepath.Join(dir, ".write_test"))
	assert.True(t, os.IsNotExist(err), "write test file should be removed")
}

func TestFileValidator_ValidateWorkbook(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
		return p
	}

	v := NewFileValidator(nil)

	assert.NoError(t, v.ValidateWorkbook(write("items.xlsx")))
	assert.NoError(t, v.ValidateWorkbook(write("macro.XLSM")))

	err := v.ValidateWorkbook(write("notes.csv"))
	assert.True(t, auditerrors.IsKind(err, auditerrors.KindInputNotFound))

	err = v.ValidateWorkbook(write("~$items.xlsx"))
	assert.True(t, auditerrors.IsKind(err, auditerrors.KindInputNotFound))

	err = v.ValidateWorkbook(filepath.Join(dir, "absent.xlsx"))
	assert.True(t, auditerrors.IsKind(err, auditerrors.KindInputNotFound))

	err = v.ValidateWorkbook(dir)
	assert.True(t, auditerrors.IsKind(err, auditerrors.KindInputNotFound))
}

func TestIsWorkbookName(t *testing.T) {
	assert.True(t, IsWorkbookName("a.xlsx"))
	assert.True(t, IsWorkbookName("/x/y/B.XLSX"))
	assert.False(t, IsWorkbookName("~$lock.xlsx"))
	assert.False(t, IsWorkbookName("legacy.xls"))
	assert.False(t, IsWorkbookName("data.csv"))
}
