package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetqa/pkg/contracts/domain"
)

func issue(row int, column, desc string) domain.Issue {
	return domain.Issue{Row: row, Column: column, Description: desc}
}

func TestStore_AccumulatesInArrivalOrder(t *testing.T) {
	s := NewStore()
	require.NotEmpty(t, s.ID())
	_, ok := s.Latest()
	assert.False(t, ok)
	assert.Empty(t, s.Issues())

	first := []domain.Issue{issue(2, "A", "[Spacing] double spaces")}
	second := []domain.Issue{
		issue(3, "B", "[Time Format] x"),
		issue(2, "A", "[Spacing] double spaces"),
	}

	r1 := s.Append(Run{Sheet: "S1", Issues: first})
	s.Append(Run{Sheet: "S2", Issues: second})

	assert.NotEmpty(t, r1.ID)
	assert.False(t, r1.FinishedAt.IsZero())
	assert.Equal(t, 2, s.Len())

	all := s.Issues()
	require.Len(t, all, 3, "duplicates across runs are kept")
	assert.Equal(t, "A", all[0].Column)
	assert.Equal(t, "B", all[1].Column)
	assert.Equal(t, "A", all[2].Column)

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, "S2", latest.Sheet)

	runs := s.Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, "S1", runs[0].Sheet)
	assert.NotEqual(t, runs[0].ID, runs[1].ID)
}

func TestStore_CopiesIssues(t *testing.T) {
	s := NewStore()
	issues := []domain.Issue{issue(2, "A", "x")}
	s.Append(Run{Issues: issues})

	issues[0].Column = "mutated"

	assert.Equal(t, "A", s.Issues()[0].Column)
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	a, b := NewStore(), NewStore()
	a.Append(Run{Issues: []domain.Issue{issue(2, "A", "x")}})

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 0, b.Len())
}

func TestSummarize(t *testing.T) {
	issues := []domain.Issue{
		issue(2, "SKU", "[Strict Spacing] contains 1 space(s)"),
		issue(3, "SKU", "[Strict Spacing] contains 2 space(s) | [File Extension] Extension '.PDF' should be lowercase '.pdf'"),
		issue(2, "Name", "[Spacing] double spaces"),
		issue(2, "When", "[Time Format] Invalid hour: '24' (must be 00-23)"),
		issue(4, "Name", "[Spacing] leading/trailing spaces | [Time Format] x"),
	}

	got := Summarize(issues)

	assert.Equal(t, 5, got.TotalIssues)
	assert.Equal(t, 3, got.ColumnsTouched)
	assert.Equal(t, []string{"SKU", "Name", "When"}, got.ColumnOrder)
	assert.Equal(t, map[string]int{"SKU": 2, "Name": 2, "When": 1}, got.ByColumn)
	assert.Equal(t, 2, got.StrictSpacing)
	assert.Equal(t, 2, got.NormalSpacing)
	assert.Equal(t, 2, got.TimeFormat)
	assert.Equal(t, 1, got.FileExtension)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	assert.Equal(t, 0, got.TotalIssues)
	assert.Equal(t, 0, got.ColumnsTouched)
	assert.Empty(t, got.ByColumn)
}
