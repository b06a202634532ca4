package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sheetqa/internal/config"
	auditerrors "sheetqa/internal/errors"
	"sheetqa/pkg/contracts/domain"
)

// Workbook is a mutable copy of a source workbook opened for marking
type Workbook interface {
	HasSheet(sheet string) bool
	MarkCell(sheet string, row, col int) error
	ReplaceSheet(sheet string, rows [][]any) error
	SaveAs(path string) error
	Close() error
}

// OpenFunc opens a workbook for marking
type OpenFunc func(path string) (Workbook, error)

// DelimitedWriter writes a flat table
type DelimitedWriter interface {
	WriteDelimited(path string, headers []string, records [][]string) error
}

// EmitRequest describes one report. Mark and Tabulate are independent:
// typically Mark is the latest run and Tabulate the whole session.
type EmitRequest struct {
	SourcePath string
	Sheet      string
	Mark       []domain.Issue
	Tabulate   []domain.Issue
}

// EmitResult lists every file written by Emit
type EmitResult struct {
	Timestamp string
	RunDir    string
	LatestDir string
	Workbooks []string
	CSVs      []string
}

// ReportEmitter writes the marked workbook and its CSV twin to a
// timestamped folder and to the "latest" folder.
type ReportEmitter struct {
	open        OpenFunc
	csv         DelimitedWriter
	paths       *config.Paths
	reportSheet string
	layout      string
	now         func() time.Time
	logger      *slog.Logger
}

// NewReportEmitter creates an emitter. Empty sheet name or timestamp
// layout fall back to the defaults.
func NewReportEmitter(open OpenFunc, csv DelimitedWriter, paths *config.Paths, audit config.AuditConfig, logger *slog.Logger) *ReportEmitter {
	sheet := audit.ReportSheet
	if sheet == "" {
		sheet = domain.ReportSheetName
	}
	layout := audit.TimestampLayout
	if layout == "" {
		layout = config.DefaultTimestampLayout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportEmitter{
		open:        open,
		csv:         csv,
		paths:       paths,
		reportSheet: sheet,
		layout:      layout,
		now:         time.Now,
		logger:      logger.With(slog.String("component", "report_emitter")),
	}
}

// SetClock replaces the clock used for report timestamps.
func (e *ReportEmitter) SetClock(now func() time.Time) {
	e.now = now
}

// Emit marks req.Mark on a fresh copy of the source workbook, replaces the
// report sheet with req.Tabulate and saves the workbook plus a CSV of the
// same table into both output folders. Any failed write fails the whole
// call with an IOFailure.
func (e *ReportEmitter) Emit(ctx context.Context, req EmitRequest) (*EmitResult, error) {
	ts := e.now().Format(e.layout)
	res := &EmitResult{
		Timestamp: ts,
		RunDir:    e.paths.GetRunDir(ts),
		LatestDir: e.paths.LatestDir,
	}

	for _, dir := range []string{res.RunDir, res.LatestDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, auditerrors.NewIOFailure("create report folder "+dir, err)
		}
	}

	wb, err := e.open(req.SourcePath)
	if err != nil {
		if auditerrors.KindOf(err) != "" {
			return nil, err
		}
		return nil, auditerrors.NewIOFailure("open workbook "+req.SourcePath, err)
	}
	defer wb.Close()

	if !wb.HasSheet(req.Sheet) {
		return nil, auditerrors.NewInputNotFound(fmt.Sprintf("sheet %q not found in %s", req.Sheet, req.SourcePath))
	}

	for _, issue := range req.Mark {
		if err := wb.MarkCell(req.Sheet, issue.Row, issue.ColumnPosition); err != nil {
			return nil, auditerrors.NewIOFailure(fmt.Sprintf("mark %s row %d", issue.Column, issue.Row), err)
		}
	}

	sheetRows, records := tabulate(req.Tabulate)
	if err := wb.ReplaceSheet(e.reportSheet, sheetRows); err != nil {
		return nil, auditerrors.NewIOFailure("write report sheet", err)
	}

	base := config.ReportBaseName(req.SourcePath, req.Sheet, ts)

	var errs []error
	for _, dir := range []string{res.RunDir, res.LatestDir} {
		xlsx := filepath.Join(dir, base+".xlsx")
		if err := wb.SaveAs(xlsx); err != nil {
			errs = append(errs, err)
		} else {
			res.Workbooks = append(res.Workbooks, xlsx)
		}

		csvPath := filepath.Join(dir, base+".csv")
		if err := e.csv.WriteDelimited(csvPath, domain.ReportHeaders, records); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", csvPath, err))
		} else {
			res.CSVs = append(res.CSVs, csvPath)
		}
	}
	if len(errs) > 0 {
		e.logger.ErrorContext(ctx, "Report write failed",
			slog.Int("failed", len(errs)),
			slog.String("error", errors.Join(errs...).Error()))
		return nil, auditerrors.NewIOFailure("save report", errors.Join(errs...))
	}

	// the previous latest report is only dropped once the new one is complete
	if err := e.pruneLatest(req.SourcePath, req.Sheet, base); err != nil {
		return nil, auditerrors.NewIOFailure("clear latest folder", err)
	}

	e.logger.InfoContext(ctx, "Report saved",
		slog.String("run_dir", res.RunDir),
		slog.String("latest_dir", res.LatestDir),
		slog.Int("marked", len(req.Mark)),
		slog.Int("tabulated", len(req.Tabulate)))

	return res, nil
}

// tabulate builds the report rows for the workbook sheet (with the header)
// and for the CSV (records only), in issue order.
func tabulate(issues []domain.Issue) ([][]any, [][]string) {
	header := make([]any, len(domain.ReportHeaders))
	for i, h := range domain.ReportHeaders {
		header[i] = h
	}

	sheetRows := make([][]any, 0, len(issues)+1)
	sheetRows = append(sheetRows, header)
	records := make([][]string, 0, len(issues))
	for _, issue := range issues {
		sheetRows = append(sheetRows, []any{
			issue.Row,
			issue.Column,
			issue.OriginalValue,
			issue.Description,
			issue.SuggestedFix,
		})
		records = append(records, issue.ReportRecord())
	}
	return sheetRows, records
}

// pruneLatest removes older reports for the same workbook sheet from the
// latest folder so it only ever holds the newest pair. A file is ours only
// when the rest of its name after the prefix is a report timestamp.
func (e *ReportEmitter) pruneLatest(sourcePath, sheet, keep string) error {
	entries, err := os.ReadDir(e.paths.LatestDir)
	if err != nil {
		return err
	}
	prefix := config.ReportPrefix(sourcePath, sheet)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if stem == keep {
			continue
		}
		// another workbook or sheet can share the prefix; only a bare
		// timestamp after it marks one of ours
		if _, err := time.Parse(e.layout, strings.TrimPrefix(stem, prefix)); err != nil {
			continue
		}
		if err := os.Remove(filepath.Join(e.paths.LatestDir, name)); err != nil {
			return err
		}
		e.logger.Debug("Removed stale latest report", slog.String("file", name))
	}
	return nil
}
