package domain

import "strconv"

// SpacingMode selects how the spacing rule treats a column
type SpacingMode string

const (
	// ModeNormal flags only problematic spaces and special characters
	ModeNormal SpacingMode = "normal"
	// ModeStrict flags any space at all (identifier-like columns)
	ModeStrict SpacingMode = "strict"
)

// IsStrict reports whether the mode is strict
func (m SpacingMode) IsStrict() bool {
	return m == ModeStrict
}

// Label returns the console label used for a mode
func (m SpacingMode) Label() string {
	if m.IsStrict() {
		return "STRICT"
	}
	return "NORMAL"
}

// RuleKind identifies one of the cell rules
type RuleKind string

const (
	RuleSpacing   RuleKind = "spacing"
	RuleTime      RuleKind = "time"
	RuleExtension RuleKind = "extension"
)

// RuleOrder is the fixed evaluation order of the cell rules.
var RuleOrder = []RuleKind{RuleSpacing, RuleTime, RuleExtension}

// Description tags prefixed to each fired rule's description in an Issue.
const (
	TagSpacing       = "[Spacing]"
	TagStrictSpacing = "[Strict Spacing]"
	TagTimeFormat    = "[Time Format]"
	TagFileExtension = "[File Extension]"
)

// IssueSeparator joins description fragments.
const IssueSeparator = " | "

// HeaderRowOffset converts a zero-based data row index into the
// spreadsheet row number (1-based, header occupies row 1).
const HeaderRowOffset = 2

// ColumnSpec is a resolved target column for one pipeline run
type ColumnSpec struct {
	Position int         `json:"position" yaml:"position"`
	Name     string      `json:"name" yaml:"name"`
	Mode     SpacingMode `json:"mode" yaml:"mode"`
}

// Issue aggregates every rule violation found in one cell
type Issue struct {
	Row            int    `json:"row" yaml:"row"`
	Column         string `json:"column" yaml:"column"`
	ColumnPosition int    `json:"column_position" yaml:"column_position"`
	OriginalValue  string `json:"original_value" yaml:"original_value"`
	Description    string `json:"issues" yaml:"issues"`
	SuggestedFix   string `json:"suggested_fix" yaml:"suggested_fix"`
	IsStrict       bool   `json:"is_strict" yaml:"is_strict"`
}

// DisplayValue returns the original value quoted with escapes made visible.
func (i Issue) DisplayValue() string {
	return strconv.Quote(i.OriginalValue)
}

// ReportRecord returns the issue as a row of the tabular report.
func (i Issue) ReportRecord() []string {
	return []string{
		strconv.Itoa(i.Row),
		i.Column,
		i.OriginalValue,
		i.Description,
		i.SuggestedFix,
	}
}

// ReportHeaders are the fixed columns of the tabular report.
var ReportHeaders = []string{"Row", "Column", "Original Value", "Issues", "Suggested Fix"}

// ReportSheetName is the sheet that holds the tabular report in the workbook.
const ReportSheetName = "Validation Report"
