package domain

// AllColumns is the sentinel column name meaning every non-blank header.
const AllColumns = "ALL_COLUMNS"

// ColumnRequest is a user-chosen column and the spacing mode to apply to it
type ColumnRequest struct {
	Name string      `json:"name" yaml:"name" validate:"required"`
	Mode SpacingMode `json:"mode,omitempty" yaml:"mode" validate:"omitempty,oneof=normal strict"`
}

// RunConfig describes one validation run, however it was gathered
// (flags, run file, interactive prompt).
type RunConfig struct {
	SourcePath    string          `json:"source_path" yaml:"source_path" validate:"required"`
	Sheet         string          `json:"sheet" yaml:"sheet" validate:"required"`
	AllColumns    bool            `json:"all_columns,omitempty" yaml:"all_columns"`
	Columns       []ColumnRequest `json:"columns,omitempty" yaml:"columns" validate:"required_without=AllColumns,dive"`
	StrictColumns []string        `json:"strict_columns,omitempty" yaml:"strict_columns"`
	ActiveRules   []RuleKind      `json:"active_rules" yaml:"active_rules" validate:"required,min=1,dive,oneof=spacing time extension"`
}

// ColumnNames returns the requested names, or the AllColumns sentinel.
func (c RunConfig) ColumnNames() []string {
	if c.AllColumns {
		return []string{AllColumns}
	}
	names := make([]string, 0, len(c.Columns))
	for _, col := range c.Columns {
		names = append(names, col.Name)
	}
	return names
}

// StrictSet returns the set of column names that use strict spacing,
// merging per-column modes with the StrictColumns list.
func (c RunConfig) StrictSet() map[string]bool {
	strict := make(map[string]bool, len(c.StrictColumns))
	for _, name := range c.StrictColumns {
		strict[name] = true
	}
	for _, col := range c.Columns {
		if col.Mode.IsStrict() {
			strict[col.Name] = true
		}
	}
	return strict
}

// Summary aggregates an Issue list
type Summary struct {
	TotalIssues    int            `json:"total_issues" yaml:"total_issues"`
	ColumnsTouched int            `json:"columns_touched" yaml:"columns_touched"`
	ByColumn       map[string]int `json:"by_column" yaml:"by_column"`
	ColumnOrder    []string       `json:"column_order" yaml:"column_order"`
	StrictSpacing  int            `json:"strict_spacing" yaml:"strict_spacing"`
	NormalSpacing  int            `json:"normal_spacing" yaml:"normal_spacing"`
	TimeFormat     int            `json:"time_format" yaml:"time_format"`
	FileExtension  int            `json:"file_extension" yaml:"file_extension"`
}
