// Package columns maps user column selections onto a loaded sheet's header row.
package columns

import (
	"strings"

	auditerrors "sheetqa/internal/errors"
	"sheetqa/pkg/contracts/domain"
)

// Resolution is the outcome of resolving requested columns against a header row
type Resolution struct {
	Specs    []domain.ColumnSpec
	Warnings []*auditerrors.AuditError
}

// Err returns a NoValidColumns error when nothing resolved.
func (r Resolution) Err() error {
	if len(r.Specs) == 0 {
		return auditerrors.NewNoValidColumns(r.Warnings)
	}
	return nil
}

// Resolve maps requested column names onto header positions. A request of
// exactly [domain.AllColumns] selects every non-blank header. Names are
// matched case-insensitively against trimmed headers, first match wins.
// Unmatched names become ColumnNotFound warnings and resolution carries on.
// A column is strict when its header name is in strict (case-insensitive).
func Resolve(headers []string, requested []string, strict map[string]bool) Resolution {
	strictSet := normalizeSet(strict)
	modeFor := func(name string) domain.SpacingMode {
		if strictSet[strings.ToLower(name)] {
			return domain.ModeStrict
		}
		return domain.ModeNormal
	}

	var res Resolution
	if len(requested) == 1 && requested[0] == domain.AllColumns {
		for i, h := range headers {
			name := strings.TrimSpace(h)
			if name == "" {
				continue
			}
			res.Specs = append(res.Specs, domain.ColumnSpec{Position: i, Name: name, Mode: modeFor(name)})
		}
		return res
	}

	taken := make(map[int]bool)
	for _, want := range requested {
		want = strings.TrimSpace(want)
		pos := find(headers, want)
		if pos < 0 {
			res.Warnings = append(res.Warnings, auditerrors.NewColumnNotFound(want, Suggest(headers, want)))
			continue
		}
		if taken[pos] {
			continue
		}
		taken[pos] = true
		name := strings.TrimSpace(headers[pos])
		res.Specs = append(res.Specs, domain.ColumnSpec{Position: pos, Name: name, Mode: modeFor(name)})
	}
	return res
}

func find(headers []string, want string) int {
	if want == "" {
		return -1
	}
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i
		}
	}
	return -1
}

// Suggest returns the non-blank headers that contain want, ignoring case.
func Suggest(headers []string, want string) []string {
	needle := strings.ToLower(strings.TrimSpace(want))
	var out []string
	for _, h := range headers {
		name := strings.TrimSpace(h)
		if name != "" && strings.Contains(strings.ToLower(name), needle) {
			out = append(out, name)
		}
	}
	return out
}

func normalizeSet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		if v {
			out[strings.ToLower(strings.TrimSpace(k))] = true
		}
	}
	return out
}
