package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"sheetqa/internal/app"
	"sheetqa/internal/columns"
	auditerrors "sheetqa/internal/errors"
	"sheetqa/internal/exporter"
	"sheetqa/internal/files"
	"sheetqa/internal/session"
	"sheetqa/internal/validation"
	"sheetqa/pkg/contracts/domain"
)

func init() {
	color.NoColor = true
}

func sampleResult(n int) *app.RunResult {
	sku := domain.ColumnSpec{Position: 0, Name: "SKU", Mode: domain.ModeStrict}
	file := domain.ColumnSpec{Position: 2, Name: "File", Mode: domain.ModeNormal}

	var issues []domain.Issue
	for i := 0; i < n; i++ {
		issues = append(issues, domain.Issue{
			Row:            i + 2,
			Column:         "SKU",
			ColumnPosition: 0,
			OriginalValue:  "AB 12",
			Description:    "[Strict Spacing] contains 1 space(s)",
			SuggestedFix:   "AB12",
			IsStrict:       true,
		})
	}
	return &app.RunResult{
		Run: session.Run{
			ID:         "run-1",
			SourcePath: "/data/excel_files/items.xlsx",
			Sheet:      "Items",
			Columns:    []domain.ColumnSpec{sku, file},
			Issues:     issues,
		},
		PerColumn: []validation.ColumnCount{{Spec: sku, Count: n}, {Spec: file, Count: 0}},
		Warnings:  []*auditerrors.AuditError{auditerrors.NewColumnNotFound("Fil", []string{"File"})},
		Summary:   session.Summarize(issues),
	}
}

func TestPrinter_RunResultHuman(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newPrinter(&buf, "human").runResult(sampleResult(2)))
	out := buf.String()

	for _, want := range []string{
		`Warning: column "Fil" not found`,
		"Did you mean: File",
		"RESULTS: items.xlsx / Items",
		"STRICT SKU: 2 cells with issues",
		"NORMAL File: no issues found",
		"Total columns checked: 2",
		"Total cells with issues: 2",
		"Strict Spacing (any space): 2",
		"[STRICT] Column 'SKU', Row 2",
		`Current: "AB 12"`,
		"Fixed:   'AB12'",
		"Row 3, Column 1 (SKU)",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Time Format")
	assert.NotContains(t, out, "more issues")
}

func TestPrinter_RunResultTruncates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newPrinter(&buf, "human").runResult(sampleResult(35)))
	out := buf.String()

	assert.Contains(t, out, "showing first 20")
	assert.Contains(t, out, "... and 15 more issues")
	assert.Contains(t, out, "... and 5 more cells")
	assert.Contains(t, out, fmt.Sprintf("Row %d, Column 1 (SKU)", 31))
	assert.NotContains(t, out, "Row 32, Column 1")
}

func TestPrinter_RunResultNoIssues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newPrinter(&buf, "human").runResult(sampleResult(0)))
	assert.Contains(t, buf.String(), "All checked cells passed validation.")
	assert.NotContains(t, buf.String(), "Detailed issues")
}

func TestPrinter_RunResultStructured(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, newPrinter(&buf, "json").runResult(sampleResult(1)))

		var got runView
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "run-1", got.RunID)
		assert.Equal(t, []columnView{
			{Name: "SKU", Position: 1, Mode: "strict", Issues: 1},
			{Name: "File", Position: 3, Mode: "normal", Issues: 0},
		}, got.Columns)
		require.Len(t, got.Issues, 1)
		assert.Equal(t, "AB12", got.Issues[0].SuggestedFix)
		assert.Equal(t, 1, got.Summary.StrictSpacing)
		assert.Equal(t, []string{"File"}, got.Warnings[0].Suggestions)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, newPrinter(&buf, "yaml").runResult(sampleResult(1)))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "Items", got["sheet"])
		assert.Contains(t, buf.String(), "suggested_fix: AB12")
	})
}

func TestPrinter_ReportAndSession(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, "human")

	require.NoError(t, p.report(&exporter.EmitResult{
		Workbooks: []string{"reports/x.xlsx"},
		CSVs:      []string{"reports/x.csv"},
	}))
	require.NoError(t, p.sessionSummary(session.Summarize(sampleResult(3).Run.Issues), 2))

	out := buf.String()
	assert.Contains(t, out, "  reports/x.xlsx\n  reports/x.csv\n")
	assert.Contains(t, out, "SESSION SUMMARY (2 runs)")
	assert.Contains(t, out, "Total issues found: 3")
	assert.Contains(t, out, "Columns with issues: 1")
	assert.Contains(t, out, "  SKU: 3")
}

func TestPrinter_RunFailed(t *testing.T) {
	rc := domain.RunConfig{SourcePath: "items.xlsx", Sheet: "Nope"}
	err := auditerrors.NewInputNotFound(`sheet "Nope" not found`)

	var human bytes.Buffer
	newPrinter(&human, "human").runFailed(rc, err)
	assert.True(t, strings.HasPrefix(human.String(), "Run items.xlsx / Nope failed:"))

	var structured bytes.Buffer
	newPrinter(&structured, "json").runFailed(rc, errors.Join(err))
	var got map[string]string
	require.NoError(t, json.Unmarshal(structured.Bytes(), &got))
	assert.Equal(t, "input_not_found", got["kind"])
}

func TestPrinter_Listings(t *testing.T) {
	cols := []columns.Numbered{{Number: 1, Position: 0, Name: "SKU"}, {Number: 2, Position: 2, Name: "File"}}

	var human bytes.Buffer
	p := newPrinter(&human, "human")
	require.NoError(t, p.sheets("items.xlsx", []string{"Items", "Log"}))
	require.NoError(t, p.columns("Items", cols))
	assert.Equal(t, "Sheets in items.xlsx:\n  1. Items\n  2. Log\nColumns in Items:\n  1. SKU\n  2. File\n", human.String())

	var js bytes.Buffer
	require.NoError(t, newPrinter(&js, "json").columns("Items", cols))
	var got []headerView
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	assert.Equal(t, []headerView{{1, "SKU"}, {2, "File"}}, got)
}

func TestPrinter_Workbooks(t *testing.T) {
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	list := []files.FileInfo{
		{Number: 1, Name: "a.xlsx", Path: "/in/a.xlsx", ModTime: now.Add(-time.Hour)},
		{Number: 2, Name: "b.xlsx", Path: "/in/b.xlsx", ModTime: now},
		{Number: 3, Name: "c.xlsx", Path: "/in/c.xlsx", ModTime: now.Add(-time.Minute)},
	}

	var human bytes.Buffer
	require.NoError(t, newPrinter(&human, "human").workbooks("/in", list))
	assert.Equal(t, "Workbooks in /in:\n  1. a.xlsx\n  2. b.xlsx (most recent)\n  3. c.xlsx\n", human.String())

	var single bytes.Buffer
	require.NoError(t, newPrinter(&single, "human").workbooks("/in", list[:1]))
	assert.NotContains(t, single.String(), "most recent")

	var js bytes.Buffer
	require.NoError(t, newPrinter(&js, "json").workbooks("/in", list))
	var got []fileView
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	require.Len(t, got, 3)
	assert.False(t, got[0].Latest)
	assert.True(t, got[1].Latest)
	assert.False(t, got[2].Latest)
}

func TestRootCmd(t *testing.T) {
	t.Run("version skips config", func(t *testing.T) {
		cmd := newRootCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"version"})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, "sheetqa version 1.0.0\n", buf.String())
	})

	t.Run("unknown output format", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetArgs([]string{"files", "-o", "xml"})
		assert.ErrorContains(t, cmd.Execute(), `unknown output format "xml"`)
	})
}
