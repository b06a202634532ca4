package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v2"

	"sheetqa/internal/app"
	"sheetqa/internal/columns"
	auditerrors "sheetqa/internal/errors"
	"sheetqa/internal/exporter"
	"sheetqa/internal/files"
	"sheetqa/pkg/contracts/domain"
)

const (
	maxDetailedIssues = 20
	maxCellLocations  = 30
	rule              = "=================================================="
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	strictColor = color.New(color.FgRed)
	normalColor = color.New(color.FgBlue)
	errColor    = color.New(color.FgRed, color.Bold)
)

// printer renders command results as colored text, JSON or YAML
type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) *printer {
	return &printer{w: w, format: format}
}

func (p *printer) structured() bool {
	return p.format == "json" || p.format == "yaml"
}

func (p *printer) encode(v any) error {
	switch p.format {
	case "json":
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = p.w.Write(append([]byte("---\n"), data...))
		return err
	}
	return fmt.Errorf("unsupported output format %q", p.format)
}

type columnView struct {
	Name     string `json:"name" yaml:"name"`
	Position int    `json:"position" yaml:"position"`
	Mode     string `json:"mode" yaml:"mode"`
	Issues   int    `json:"issues" yaml:"issues"`
}

type warningView struct {
	Column      string   `json:"column" yaml:"column"`
	Message     string   `json:"message" yaml:"message"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

type runView struct {
	RunID    string         `json:"run_id" yaml:"run_id"`
	File     string         `json:"file" yaml:"file"`
	Sheet    string         `json:"sheet" yaml:"sheet"`
	Columns  []columnView   `json:"columns" yaml:"columns"`
	Warnings []warningView  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Summary  domain.Summary `json:"summary" yaml:"summary"`
	Issues   []domain.Issue `json:"issues" yaml:"issues"`
}

func newRunView(res *app.RunResult) runView {
	v := runView{
		RunID:   res.Run.ID,
		File:    res.Run.SourcePath,
		Sheet:   res.Run.Sheet,
		Summary: res.Summary,
		Issues:  res.Run.Issues,
	}
	if v.Issues == nil {
		v.Issues = []domain.Issue{}
	}
	for _, c := range res.PerColumn {
		v.Columns = append(v.Columns, columnView{
			Name:     c.Spec.Name,
			Position: c.Spec.Position + 1,
			Mode:     string(c.Spec.Mode),
			Issues:   c.Count,
		})
	}
	v.Warnings = warningViews(res.Warnings)
	return v
}

func warningViews(warnings []*auditerrors.AuditError) []warningView {
	var out []warningView
	for _, w := range warnings {
		out = append(out, warningView{Column: w.Column, Message: w.Message, Suggestions: w.Suggestions})
	}
	return out
}

func modeLabel(mode domain.SpacingMode) (string, *color.Color) {
	if mode == domain.ModeStrict {
		return "STRICT", strictColor
	}
	return "NORMAL", normalColor
}

// runResult prints the outcome of one run
func (p *printer) runResult(res *app.RunResult) error {
	if p.structured() {
		return p.encode(newRunView(res))
	}

	w := p.w
	for _, warn := range res.Warnings {
		warnColor.Fprintf(w, "Warning: column %q not found\n", warn.Column)
		if len(warn.Suggestions) > 0 {
			fmt.Fprintf(w, "  Did you mean: %s\n", strings.Join(warn.Suggestions, ", "))
		}
	}

	fmt.Fprintln(w)
	titleColor.Fprintf(w, "RESULTS: %s / %s\n", filepath.Base(res.Run.SourcePath), res.Run.Sheet)
	fmt.Fprintln(w, rule)
	for _, c := range res.PerColumn {
		label, lc := modeLabel(c.Spec.Mode)
		lc.Fprintf(w, "  %-6s ", label)
		if c.Count == 0 {
			okColor.Fprintf(w, "%s: no issues found\n", c.Spec.Name)
		} else {
			warnColor.Fprintf(w, "%s: %d cells with issues\n", c.Spec.Name, c.Count)
		}
	}

	s := res.Summary
	fmt.Fprintf(w, "Total columns checked: %d\n", len(res.PerColumn))
	fmt.Fprintf(w, "Total cells with issues: %d\n", s.TotalIssues)
	if s.TotalIssues == 0 {
		okColor.Fprintln(w, "All checked cells passed validation.")
		return nil
	}

	fmt.Fprintln(w)
	p.categories(s)

	issues := res.Run.Issues
	fmt.Fprintln(w)
	titleColor.Fprintf(w, "Detailed issues (showing first %d):\n", min(maxDetailedIssues, len(issues)))
	for i, issue := range issues {
		if i == maxDetailedIssues {
			fmt.Fprintf(w, "... and %d more issues\n", len(issues)-maxDetailedIssues)
			break
		}
		mode := domain.ModeNormal
		if issue.IsStrict {
			mode = domain.ModeStrict
		}
		label, lc := modeLabel(mode)
		fmt.Fprintf(w, "%3d. ", i+1)
		lc.Fprintf(w, "[%s]", label)
		fmt.Fprintf(w, " Column '%s', Row %d\n", issue.Column, issue.Row)
		fmt.Fprintf(w, "     Issue:   %s\n", issue.Description)
		fmt.Fprintf(w, "     Current: %s\n", issue.DisplayValue())
		fmt.Fprintf(w, "     Fixed:   '%s'\n", issue.SuggestedFix)
	}

	fmt.Fprintln(w)
	titleColor.Fprintf(w, "Cell locations with issues (first %d):\n", min(maxCellLocations, len(issues)))
	for i, issue := range issues {
		if i == maxCellLocations {
			fmt.Fprintf(w, "... and %d more cells\n", len(issues)-maxCellLocations)
			break
		}
		fmt.Fprintf(w, "  Row %d, Column %d (%s)\n", issue.Row, issue.ColumnPosition+1, issue.Column)
	}
	return nil
}

func (p *printer) categories(s domain.Summary) {
	w := p.w
	fmt.Fprintln(w, "Issues by validation type:")
	for _, c := range []struct {
		label string
		count int
	}{
		{"Strict Spacing (any space)", s.StrictSpacing},
		{"Normal Spacing", s.NormalSpacing},
		{"Time Format", s.TimeFormat},
		{"File Extension", s.FileExtension},
	} {
		if c.count > 0 {
			fmt.Fprintf(w, "  %s: %d\n", c.label, c.count)
		}
	}
}

// runFailed reports a run that was skipped in a multi-run session
func (p *printer) runFailed(rc domain.RunConfig, err error) {
	if p.structured() {
		_ = p.encode(map[string]string{
			"file":  rc.SourcePath,
			"sheet": rc.Sheet,
			"error": err.Error(),
			"kind":  string(auditerrors.KindOf(err)),
		})
		return
	}
	errColor.Fprintf(p.w, "Run %s / %s failed: %v\n", rc.SourcePath, rc.Sheet, err)
}

type reportView struct {
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
	RunDir    string   `json:"run_dir" yaml:"run_dir"`
	LatestDir string   `json:"latest_dir" yaml:"latest_dir"`
	Workbooks []string `json:"workbooks" yaml:"workbooks"`
	CSVs      []string `json:"csvs" yaml:"csvs"`
}

// report lists the files written for the session
func (p *printer) report(res *exporter.EmitResult) error {
	if p.structured() {
		return p.encode(reportView{
			Timestamp: res.Timestamp,
			RunDir:    res.RunDir,
			LatestDir: res.LatestDir,
			Workbooks: res.Workbooks,
			CSVs:      res.CSVs,
		})
	}
	w := p.w
	fmt.Fprintln(w)
	okColor.Fprintln(w, "Report saved:")
	for _, f := range append(append([]string(nil), res.Workbooks...), res.CSVs...) {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintf(w, "Issue cells are highlighted and listed on the '%s' sheet.\n", domain.ReportSheetName)
	return nil
}

type sessionView struct {
	Runs    int            `json:"runs" yaml:"runs"`
	Summary domain.Summary `json:"summary" yaml:"summary"`
}

// sessionSummary prints the totals across every run of the session
func (p *printer) sessionSummary(s domain.Summary, runs int) error {
	if p.structured() {
		return p.encode(sessionView{Runs: runs, Summary: s})
	}
	w := p.w
	fmt.Fprintln(w)
	titleColor.Fprintf(w, "SESSION SUMMARY (%d runs)\n", runs)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total issues found: %d\n", s.TotalIssues)
	fmt.Fprintf(w, "Columns with issues: %d\n", s.ColumnsTouched)
	if s.TotalIssues == 0 {
		return nil
	}
	fmt.Fprintln(w, "Issues by column:")
	for _, name := range s.ColumnOrder {
		fmt.Fprintf(w, "  %s: %d\n", name, s.ByColumn[name])
	}
	p.categories(s)
	return nil
}

type fileView struct {
	Number int    `json:"number" yaml:"number"`
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
	Size   int64  `json:"size" yaml:"size"`
	Latest bool   `json:"latest,omitempty" yaml:"latest,omitempty"`
}

// workbooks lists the workbooks of the source folder, marking the most
// recently modified one
func (p *printer) workbooks(dir string, list []files.FileInfo) error {
	newest, _ := files.GetLatestFile(list)
	if p.structured() {
		views := make([]fileView, 0, len(list))
		for _, f := range list {
			views = append(views, fileView{
				Number: f.Number,
				Name:   f.Name,
				Path:   f.Path,
				Size:   f.Size,
				Latest: f.Path == newest.Path,
			})
		}
		return p.encode(views)
	}
	titleColor.Fprintf(p.w, "Workbooks in %s:\n", dir)
	for _, f := range list {
		fmt.Fprintf(p.w, "%3d. %s", f.Number, f.Name)
		if len(list) > 1 && f.Path == newest.Path {
			okColor.Fprint(p.w, " (most recent)")
		}
		fmt.Fprintln(p.w)
	}
	return nil
}

// sheets lists the sheets of a workbook
func (p *printer) sheets(file string, list []string) error {
	if p.structured() {
		return p.encode(list)
	}
	titleColor.Fprintf(p.w, "Sheets in %s:\n", file)
	for i, s := range list {
		fmt.Fprintf(p.w, "%3d. %s\n", i+1, s)
	}
	return nil
}

type headerView struct {
	Number int    `json:"number" yaml:"number"`
	Name   string `json:"name" yaml:"name"`
}

// columns lists the numbered headers of a sheet
func (p *printer) columns(sheet string, list []columns.Numbered) error {
	if p.structured() {
		views := make([]headerView, 0, len(list))
		for _, c := range list {
			views = append(views, headerView{Number: c.Number, Name: c.Name})
		}
		return p.encode(views)
	}
	titleColor.Fprintf(p.w, "Columns in %s:\n", sheet)
	for _, c := range list {
		fmt.Fprintf(p.w, "%3d. %s\n", c.Number, c.Name)
	}
	return nil
}
