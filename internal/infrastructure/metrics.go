package infrastructure

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"sheetqa/pkg/contracts/domain"
)

// Issue categories used as the "category" label
const (
	CategoryNormalSpacing = "spacing"
	CategoryStrictSpacing = "strict_spacing"
	CategoryTimeFormat    = "time_format"
	CategoryFileExtension = "file_extension"
)

// AuditMetrics holds the counters of one process on a private registry,
// so several sessions in one test binary never collide.
type AuditMetrics struct {
	registry       *prometheus.Registry
	cellsScanned   prometheus.Counter
	cellsSkipped   prometheus.Counter
	cellsFlagged   prometheus.Counter
	issues         *prometheus.CounterVec
	columnsChecked prometheus.Gauge
}

// NewAuditMetrics creates and registers the audit metrics
func NewAuditMetrics() *AuditMetrics {
	m := &AuditMetrics{
		registry: prometheus.NewRegistry(),
		cellsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sheetqa_cells_scanned_total",
			Help: "Non-blank cells evaluated by the active rules.",
		}),
		cellsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sheetqa_cells_skipped_total",
			Help: "Blank or whitespace-only cells skipped.",
		}),
		cellsFlagged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sheetqa_cells_flagged_total",
			Help: "Cells with at least one issue.",
		}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sheetqa_issues_total",
			Help: "Rule violations by category. One flagged cell may count in several categories.",
		}, []string{"category"}),
		columnsChecked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sheetqa_columns_checked",
			Help: "Target columns of the latest run.",
		}),
	}
	m.registry.MustRegister(m.cellsScanned, m.cellsSkipped, m.cellsFlagged, m.issues, m.columnsChecked)
	return m
}

// CellScanned counts a cell that went through the rules
func (m *AuditMetrics) CellScanned() { m.cellsScanned.Inc() }

// CellSkipped counts a blank cell
func (m *AuditMetrics) CellSkipped() { m.cellsSkipped.Inc() }

// ColumnsChecked records the number of target columns of a run
func (m *AuditMetrics) ColumnsChecked(n int) { m.columnsChecked.Set(float64(n)) }

// IssueRecorded counts a flagged cell under every category it carries
func (m *AuditMetrics) IssueRecorded(issue domain.Issue) {
	m.cellsFlagged.Inc()
	for _, category := range Categories(issue.Description) {
		m.issues.WithLabelValues(category).Inc()
	}
}

// Categories returns the issue categories tagged in a combined description
func Categories(description string) []string {
	var out []string
	if strings.Contains(description, domain.TagStrictSpacing) {
		out = append(out, CategoryStrictSpacing)
	}
	if strings.Contains(description, domain.TagSpacing) {
		out = append(out, CategoryNormalSpacing)
	}
	if strings.Contains(description, domain.TagTimeFormat) {
		out = append(out, CategoryTimeFormat)
	}
	if strings.Contains(description, domain.TagFileExtension) {
		out = append(out, CategoryFileExtension)
	}
	return out
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node_exporter textfile collector.
func (m *AuditMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
