package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditerrors "sheetqa/internal/errors"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestDiscovery_FindWorkbooks(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "excel_files")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.xlsx"), 0755))
	touch(t, dir, "b.xlsx")
	touch(t, dir, "A.XLSM")
	touch(t, dir, "~$b.xlsx")
	touch(t, dir, "notes.txt")
	touch(t, dir, "data.csv")

	got, err := NewDiscovery(base).FindWorkbooks("excel_files")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "A.XLSM", got[0].Name)
	assert.Equal(t, 1, got[0].Number)
	assert.Equal(t, "b.xlsx", got[1].Name)
	assert.Equal(t, 2, got[1].Number)
	assert.Equal(t, filepath.Join(dir, "b.xlsx"), got[1].Path)
	assert.Equal(t, int64(1), got[1].Size)
}

func TestDiscovery_FindWorkbooks_Errors(t *testing.T) {
	base := t.TempDir()
	touch(t, base, "readme.md")

	_, err := NewDiscovery("").FindWorkbooks(base)
	assert.Equal(t, auditerrors.KindInputNotFound, auditerrors.KindOf(err))

	_, err = NewDiscovery(base).FindWorkbooks("missing")
	assert.Equal(t, auditerrors.KindIOFailure, auditerrors.KindOf(err))
}

func TestSelectWorkbook(t *testing.T) {
	files := []FileInfo{{Number: 1, Name: "a.xlsx"}, {Number: 2, Name: "b.xlsx"}}

	tests := []struct {
		number  int
		want    string
		wantErr bool
	}{
		{1, "a.xlsx", false},
		{2, "b.xlsx", false},
		{0, "", true},
		{3, "", true},
	}
	for _, tt := range tests {
		got, err := SelectWorkbook(files, tt.number)
		if tt.wantErr {
			assert.True(t, auditerrors.IsKind(err, auditerrors.KindSelectionInvalid))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Name)
	}
}

func TestGetLatestFile(t *testing.T) {
	_, ok := GetLatestFile(nil)
	assert.False(t, ok)

	now := time.Now()
	latest, ok := GetLatestFile([]FileInfo{
		{Name: "old", ModTime: now.Add(-time.Hour)},
		{Name: "new", ModTime: now},
		{Name: "mid", ModTime: now.Add(-time.Minute)},
	})
	require.True(t, ok)
	assert.Equal(t, "new", latest.Name)
}
