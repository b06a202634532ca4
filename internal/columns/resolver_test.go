package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditerrors "sheetqa/internal/errors"
	"sheetqa/pkg/contracts/domain"
)

func TestResolve_ByName(t *testing.T) {
	headers := []string{"Name", "  ", "SKU"}

	res := Resolve(headers, []string{"sku"}, nil)

	require.NoError(t, res.Err())
	require.Len(t, res.Specs, 1)
	assert.Equal(t, domain.ColumnSpec{Position: 2, Name: "SKU", Mode: domain.ModeNormal}, res.Specs[0])
	assert.Empty(t, res.Warnings)
}

func TestResolve_AllColumns(t *testing.T) {
	headers := []string{" Name ", "", "SKU", "   ", "File"}

	res := Resolve(headers, []string{domain.AllColumns}, map[string]bool{"sku": true})

	require.NoError(t, res.Err())
	assert.Equal(t, []domain.ColumnSpec{
		{Position: 0, Name: "Name", Mode: domain.ModeNormal},
		{Position: 2, Name: "SKU", Mode: domain.ModeStrict},
		{Position: 4, Name: "File", Mode: domain.ModeNormal},
	}, res.Specs)
}

func TestResolve_FirstMatchWins(t *testing.T) {
	headers := []string{"Code", "code ", "CODE"}

	res := Resolve(headers, []string{"CODE"}, nil)

	require.Len(t, res.Specs, 1)
	assert.Equal(t, 0, res.Specs[0].Position)
	assert.Equal(t, "Code", res.Specs[0].Name)
}

func TestResolve_DuplicateRequestsKeepPositionsUnique(t *testing.T) {
	res := Resolve([]string{"A", "B"}, []string{"b", "B", "a"}, nil)

	require.Len(t, res.Specs, 2)
	assert.Equal(t, 1, res.Specs[0].Position)
	assert.Equal(t, 0, res.Specs[1].Position)
}

func TestResolve_MissingColumnWarnsAndContinues(t *testing.T) {
	headers := []string{"Customer Name", "Name", "SKU", "Time"}

	res := Resolve(headers, []string{"nam", "Time"}, nil)

	require.NoError(t, res.Err())
	require.Len(t, res.Specs, 1)
	assert.Equal(t, "Time", res.Specs[0].Name)

	require.Len(t, res.Warnings, 1)
	w := res.Warnings[0]
	assert.Equal(t, auditerrors.KindColumnNotFound, w.Kind)
	assert.Equal(t, "nam", w.Column)
	assert.Equal(t, []string{"Customer Name", "Name"}, w.Suggestions)
}

func TestResolve_NothingResolves(t *testing.T) {
	res := Resolve([]string{"A", "B"}, []string{"x", "y"}, nil)

	assert.Empty(t, res.Specs)
	assert.Len(t, res.Warnings, 2)
	err := res.Err()
	require.Error(t, err)
	assert.True(t, auditerrors.IsKind(err, auditerrors.KindNoValidColumns))
}

func TestResolve_StrictMatchingIgnoresCase(t *testing.T) {
	res := Resolve([]string{"SKU", "Notes"}, []string{"sku", "notes"}, map[string]bool{" Sku ": true, "Notes": false})

	require.Len(t, res.Specs, 2)
	assert.Equal(t, domain.ModeStrict, res.Specs[0].Mode)
	assert.Equal(t, domain.ModeNormal, res.Specs[1].Mode)
}

func TestSuggest(t *testing.T) {
	headers := []string{"File Name", "  ", "filename", "Size"}
	assert.Equal(t, []string{"File Name", "filename"}, Suggest(headers, "FILE"))
	assert.Empty(t, Suggest(headers, "owner"))
}

func TestListAndParseSelection(t *testing.T) {
	available := List([]string{"Name", "", "SKU", "Time"})
	require.Equal(t, []Numbered{
		{Number: 1, Position: 0, Name: "Name"},
		{Number: 2, Position: 2, Name: "SKU"},
		{Number: 3, Position: 3, Name: "Time"},
	}, available)

	names, err := ParseSelection("3, 1", available)
	require.NoError(t, err)
	assert.Equal(t, []string{"Time", "Name"}, names)

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: "  "},
		{name: "not a number", input: "1,two"},
		{name: "zero", input: "0"},
		{name: "past the end", input: "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSelection(tt.input, available)
			assert.True(t, auditerrors.IsKind(err, auditerrors.KindSelectionInvalid))
		})
	}
}
