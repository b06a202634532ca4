package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sheetqa/internal/columns"
	"sheetqa/internal/config"
	auditerrors "sheetqa/internal/errors"
	"sheetqa/internal/exporter"
	"sheetqa/internal/files"
	"sheetqa/internal/infrastructure"
	"sheetqa/internal/rules"
	"sheetqa/internal/session"
	"sheetqa/internal/validation"
	"sheetqa/internal/workbook"
	"sheetqa/pkg/contracts/domain"
)

// Application wires the audit components around one session
type Application struct {
	Config  *config.Config
	Paths   *config.Paths
	Logger  *slog.Logger
	Metrics *infrastructure.AuditMetrics
	Session *session.Store

	loader    *workbook.Loader
	pipeline  *validation.Pipeline
	emitter   *exporter.ReportEmitter
	validator *validation.FileValidator
	discovery *files.Discovery
}

// RunResult is what one audit run produced
type RunResult struct {
	Run       session.Run
	PerColumn []validation.ColumnCount
	Warnings  []*auditerrors.AuditError
	Summary   domain.Summary
}

// ReportOptions selects which issues the report tabulates
type ReportOptions struct {
	// Cumulative tabulates every run of the session instead of the latest
	Cumulative bool
}

// NewApplication creates an application with a fresh session. A nil
// logger uses the infrastructure logger.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	metrics := infrastructure.NewAuditMetrics()
	styler := workbook.NewStyler(workbook.Highlight{
		Fill: cfg.Audit.FillRGB(),
		Font: cfg.Audit.FontRGB(),
	}, logger)
	open := func(path string) (exporter.Workbook, error) {
		h, err := styler.Open(path)
		if err != nil {
			return nil, err
		}
		return h, nil
	}

	a := &Application{
		Config:    cfg,
		Paths:     paths,
		Logger:    infrastructure.WithComponent(logger, "app"),
		Metrics:   metrics,
		Session:   session.NewStore(),
		loader:    workbook.NewLoader(logger),
		pipeline:  validation.NewPipeline(logger, metrics),
		emitter:   exporter.NewReportEmitter(open, exporter.NewCSVWriter(paths, cfg.Audit.CSVBOM), paths, cfg.Audit, logger),
		validator: validation.NewFileValidator(logger),
		discovery: files.NewDiscovery(paths.BaseDir),
	}

	a.Logger.Info("Application ready",
		slog.String("session_id", a.Session.ID()),
		slog.String("version", config.Version))
	paths.LogPathResolution()

	return a, nil
}

// SetClock fixes the report timestamp clock, for reproducible output.
func (a *Application) SetClock(now func() time.Time) {
	a.emitter.SetClock(now)
}

// Workbooks lists the workbooks in the source folder.
func (a *Application) Workbooks() ([]files.FileInfo, error) {
	if err := a.validator.ValidateInputDirectory(a.Paths.SourceDir); err != nil {
		return nil, err
	}
	return a.discovery.FindWorkbooks(a.Paths.SourceDir)
}

// Sheets lists the sheets of a workbook (a bare name is looked up in the
// source folder).
func (a *Application) Sheets(source string) ([]string, error) {
	path := a.Paths.GetSourcePath(source)
	if err := a.validator.ValidateWorkbook(path); err != nil {
		return nil, err
	}
	return a.loader.Sheets(path)
}

// Columns lists the numbered non-blank headers of a sheet.
func (a *Application) Columns(source, sheet string) ([]columns.Numbered, error) {
	path := a.Paths.GetSourcePath(source)
	if err := a.validator.ValidateWorkbook(path); err != nil {
		return nil, err
	}
	headers, err := a.loader.LoadHeaders(path, sheet)
	if err != nil {
		return nil, err
	}
	return columns.List(headers), nil
}

// Run executes one validation run and appends it to the session. The run
// takes the run ID carried by ctx, or a fresh one. On any error nothing is
// appended and earlier runs are untouched.
func (a *Application) Run(ctx context.Context, rc domain.RunConfig) (*RunResult, error) {
	// normalisation below must not touch the caller's slices
	rc.Columns = append([]domain.ColumnRequest(nil), rc.Columns...)
	rc.ActiveRules = append([]domain.RuleKind(nil), rc.ActiveRules...)
	if err := config.ValidateRunConfig(&rc); err != nil {
		return nil, err
	}
	set, err := rules.NewSet(rc.ActiveRules...)
	if err != nil {
		return nil, err
	}

	path := a.Paths.GetSourcePath(rc.SourcePath)
	if err := a.validator.ValidateWorkbook(path); err != nil {
		return nil, err
	}

	// a run ID already on ctx is kept so callers can correlate their own logs
	ctx = infrastructure.EnsureRunID(infrastructure.WithSessionID(ctx, a.Session.ID()))
	runID := infrastructure.GetRunID(ctx)

	table, err := a.loader.Load(path, rc.Sheet)
	if err != nil {
		infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Failed to load sheet")
		return nil, err
	}

	resolution := columns.Resolve(table.Headers, rc.ColumnNames(), rc.StrictSet())
	for _, w := range resolution.Warnings {
		a.Logger.WarnContext(ctx, "Column not found",
			slog.String("column", w.Column),
			slog.Any("suggestions", w.Suggestions))
	}
	if err := resolution.Err(); err != nil {
		return nil, err
	}

	out, err := a.pipeline.Run(ctx, table, resolution.Specs, set)
	if err != nil {
		return nil, err
	}

	run := a.Session.Append(session.Run{
		ID:         runID,
		SourcePath: path,
		Sheet:      rc.Sheet,
		Columns:    resolution.Specs,
		Issues:     out.Issues,
	})

	a.Logger.InfoContext(ctx, "Run complete",
		slog.String("file", path),
		slog.String("sheet", rc.Sheet),
		slog.String("rules", set.String()),
		slog.Int("columns", len(resolution.Specs)),
		slog.Int("issues", len(out.Issues)))

	return &RunResult{
		Run:       run,
		PerColumn: out.PerColumn,
		Warnings:  resolution.Warnings,
		Summary:   session.Summarize(run.Issues),
	}, nil
}

// Report marks the latest run's issues on a copy of its workbook and writes
// the report files. The session is not modified.
func (a *Application) Report(ctx context.Context, opts ReportOptions) (*exporter.EmitResult, error) {
	latest, ok := a.Session.Latest()
	if !ok {
		return nil, auditerrors.NewInputNotFound("no validation runs in this session")
	}
	if err := a.validator.ValidateOutputDirectory(a.Paths.ReportsDir); err != nil {
		return nil, err
	}

	tabulate := latest.Issues
	if opts.Cumulative {
		tabulate = a.Session.Issues()
	}

	ctx = infrastructure.WithRunID(infrastructure.WithSessionID(ctx, a.Session.ID()), latest.ID)
	return a.emitter.Emit(ctx, exporter.EmitRequest{
		SourcePath: latest.SourcePath,
		Sheet:      latest.Sheet,
		Mark:       latest.Issues,
		Tabulate:   tabulate,
	})
}

// SessionSummary aggregates every issue of the session.
func (a *Application) SessionSummary() domain.Summary {
	return session.Summarize(a.Session.Issues())
}

// WriteMetrics writes the session counters as a Prometheus textfile.
func (a *Application) WriteMetrics(path string) error {
	if err := a.Metrics.WriteTextfile(a.Paths.GetReportPath(path)); err != nil {
		return auditerrors.NewIOFailure("write metrics", err)
	}
	return nil
}
