package domain

// Table is one sheet loaded into memory: a header row plus data rows whose
// cells are already coerced to strings. Rows may be shorter than Headers.
type Table struct {
	Path    string     `json:"path"`
	Sheet   string     `json:"sheet"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Cell returns the value at (row, col), or "" when the cell is absent.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
