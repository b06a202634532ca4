package columns

import (
	"fmt"
	"strconv"
	"strings"

	auditerrors "sheetqa/internal/errors"
)

// Numbered is a selectable column as presented to a user
type Numbered struct {
	Number   int    // 1-based position in the listing
	Position int    // 0-based position in the header row
	Name     string // trimmed header text
}

// List returns the non-blank headers numbered from 1.
func List(headers []string) []Numbered {
	var out []Numbered
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if name == "" {
			continue
		}
		out = append(out, Numbered{Number: len(out) + 1, Position: i, Name: name})
	}
	return out
}

// ParseSelection turns a comma separated list of listing numbers ("1, 3")
// into column names. Any non-numeric or out of range entry fails the whole
// selection.
func ParseSelection(input string, available []Numbered) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, auditerrors.NewSelectionInvalid("column numbers are required")
	}

	var names []string
	for _, part := range strings.Split(input, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, auditerrors.NewSelectionInvalid(fmt.Sprintf("%q is not a valid column number", strings.TrimSpace(part)))
		}
		if n < 1 || n > len(available) {
			return nil, auditerrors.NewSelectionInvalid(fmt.Sprintf("invalid column number: %d (expected 1-%d)", n, len(available)))
		}
		names = append(names, available[n-1].Name)
	}
	return names, nil
}
