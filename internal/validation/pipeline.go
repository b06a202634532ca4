package validation

import (
	"context"
	"log/slog"
	"strings"

	auditerrors "sheetqa/internal/errors"
	"sheetqa/internal/rules"
	"sheetqa/pkg/contracts/domain"
)

// Recorder receives scan counters. A nil Recorder is allowed.
type Recorder interface {
	CellScanned()
	CellSkipped()
	IssueRecorded(issue domain.Issue)
	ColumnsChecked(n int)
}

// ColumnCount is the number of flagged cells in one target column
type ColumnCount struct {
	Spec  domain.ColumnSpec
	Count int
}

// Result is the output of one pipeline run
type Result struct {
	Issues    []domain.Issue
	PerColumn []ColumnCount
}

// Pipeline scans target columns of a table with the active rules
type Pipeline struct {
	logger   *slog.Logger
	recorder Recorder
}

// NewPipeline creates a pipeline. Either argument may be nil.
func NewPipeline(logger *slog.Logger, recorder Recorder) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:   logger.With(slog.String("component", "validation_pipeline")),
		recorder: recorder,
	}
}

// Run evaluates every row of every target column. Columns are scanned in
// the order given, rows top to bottom, so the result is deterministic.
// The table is never modified.
func (p *Pipeline) Run(ctx context.Context, table domain.Table, specs []domain.ColumnSpec, set rules.Set) (*Result, error) {
	if len(specs) == 0 {
		return nil, auditerrors.NewNoValidColumns(nil)
	}
	if len(set.Kinds()) == 0 {
		return nil, auditerrors.NewSelectionInvalid("at least one rule must be active")
	}

	p.logger.InfoContext(ctx, "Running validations",
		slog.String("sheet", table.Sheet),
		slog.Int("columns", len(specs)),
		slog.Int("rows", len(table.Rows)),
		slog.String("rules", set.String()))

	if p.recorder != nil {
		p.recorder.ColumnsChecked(len(specs))
	}

	result := &Result{Issues: []domain.Issue{}}
	for _, spec := range specs {
		count := 0
		for i := range table.Rows {
			value := table.Cell(i, spec.Position)
			if strings.TrimSpace(value) == "" {
				if p.recorder != nil {
					p.recorder.CellSkipped()
				}
				continue
			}
			if p.recorder != nil {
				p.recorder.CellScanned()
			}

			issue, ok := EvaluateCell(value, i+domain.HeaderRowOffset, spec, set)
			if !ok {
				continue
			}
			result.Issues = append(result.Issues, issue)
			if p.recorder != nil {
				p.recorder.IssueRecorded(issue)
			}
			count++
		}

		result.PerColumn = append(result.PerColumn, ColumnCount{Spec: spec, Count: count})
		p.logger.InfoContext(ctx, "Checked column",
			slog.String("column", spec.Name),
			slog.Int("position", spec.Position+1),
			slog.String("mode", spec.Mode.Label()),
			slog.Int("issues", count))
	}

	p.logger.InfoContext(ctx, "Validation complete",
		slog.Int("columns_checked", len(specs)),
		slog.Int("cells_with_issues", len(result.Issues)))

	return result, nil
}

// EvaluateCell runs the active rules on one non-blank cell and merges every
// fired rule into a single Issue. ok is false when no rule fired.
//
// Each fired rule overwrites the running fix, so when several rules fire the
// last one in evaluation order supplies SuggestedFix and earlier fixes are
// dropped (a cell with both a spacing and an extension problem only gets the
// extension fix). This is intentional and kept until product decides whether
// fixes should be chained instead.
func EvaluateCell(value string, row int, spec domain.ColumnSpec, set rules.Set) (domain.Issue, bool) {
	var fragments []string
	fix := value

	for _, kind := range set.Kinds() {
		res := rules.Check(kind, value, spec.Mode)
		if !res.HasIssue {
			continue
		}
		fragments = append(fragments, rules.Tag(kind, spec.Mode)+" "+res.Description)
		fix = res.SuggestedFix
	}

	if len(fragments) == 0 {
		return domain.Issue{}, false
	}

	return domain.Issue{
		Row:            row,
		Column:         spec.Name,
		ColumnPosition: spec.Position,
		OriginalValue:  value,
		Description:    strings.Join(fragments, domain.IssueSeparator),
		SuggestedFix:   fix,
		IsStrict:       spec.Mode.IsStrict(),
	}, true
}
