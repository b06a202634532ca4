package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetqa/internal/validation"
	"sheetqa/pkg/contracts/domain"
)

var _ validation.Recorder = (*AuditMetrics)(nil)

func TestAuditMetrics(t *testing.T) {
	m := NewAuditMetrics()

	m.ColumnsChecked(3)
	m.CellScanned()
	m.CellScanned()
	m.CellSkipped()
	m.IssueRecorded(domain.Issue{Description: "[Strict Spacing] contains 1 space(s)"})
	m.IssueRecorded(domain.Issue{Description: "[Spacing] double spaces | [File Extension] Extension '.PDF' should be lowercase '.pdf'"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cellsScanned))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cellsSkipped))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cellsFlagged))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.columnsChecked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.issues.WithLabelValues(CategoryStrictSpacing)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.issues.WithLabelValues(CategoryNormalSpacing)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.issues.WithLabelValues(CategoryFileExtension)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.issues.WithLabelValues(CategoryTimeFormat)))
}

func TestAuditMetrics_IndependentRegistries(t *testing.T) {
	a, b := NewAuditMetrics(), NewAuditMetrics()
	a.CellScanned()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.cellsScanned))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.cellsScanned))

	n, err := testutil.GatherAndCount(b.registry, "sheetqa_cells_scanned_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAuditMetrics_WriteTextfile(t *testing.T) {
	m := NewAuditMetrics()
	m.CellScanned()
	m.IssueRecorded(domain.Issue{Description: "[Time Format] Hour missing leading zero: '9' should be '09'"})

	path := filepath.Join(t.TempDir(), "sheetqa.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sheetqa_cells_scanned_total 1")
	assert.Contains(t, string(data), `sheetqa_issues_total{category="time_format"} 1`)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{CategoryStrictSpacing, CategoryTimeFormat},
		Categories("[Strict Spacing] contains 2 space(s) | [Time Format] x"))
	assert.Empty(t, Categories("nothing tagged"))
}
