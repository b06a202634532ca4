package rules

import (
	"fmt"
	"strconv"
	"strings"

	auditerrors "sheetqa/internal/errors"
	"sheetqa/pkg/contracts/domain"
)

// Result is the outcome of running one rule on one cell value
type Result struct {
	HasIssue     bool
	Description  string
	SuggestedFix string
}

func newResult(issues []string, fix, unchanged string) Result {
	if len(issues) == 0 {
		return Result{SuggestedFix: unchanged}
	}
	return Result{
		HasIssue:     true,
		Description:  strings.Join(issues, domain.IssueSeparator),
		SuggestedFix: fix,
	}
}

// Check runs the rule identified by kind. The spacing mode only affects the
// spacing rule.
func Check(kind domain.RuleKind, value string, mode domain.SpacingMode) Result {
	switch kind {
	case domain.RuleSpacing:
		return Spacing(value, mode.IsStrict())
	case domain.RuleTime:
		return TimeFormat(value)
	case domain.RuleExtension:
		return ExtensionCase(value)
	}
	return Result{SuggestedFix: value}
}

// CheckAny is Check for loosely typed cell values: anything that is not a
// string is not applicable and never flagged.
func CheckAny(kind domain.RuleKind, value any, mode domain.SpacingMode) Result {
	s, ok := value.(string)
	if !ok {
		return Result{}
	}
	return Check(kind, s, mode)
}

// Tag returns the description prefix for a fired rule.
func Tag(kind domain.RuleKind, mode domain.SpacingMode) string {
	switch kind {
	case domain.RuleSpacing:
		if mode.IsStrict() {
			return domain.TagStrictSpacing
		}
		return domain.TagSpacing
	case domain.RuleTime:
		return domain.TagTimeFormat
	case domain.RuleExtension:
		return domain.TagFileExtension
	}
	return "[" + string(kind) + "]"
}

// Set is a non-empty subset of the rules, always iterated in domain.RuleOrder.
type Set struct {
	active map[domain.RuleKind]bool
}

// NewSet builds a Set from the given kinds.
func NewSet(kinds ...domain.RuleKind) (Set, error) {
	active := make(map[domain.RuleKind]bool, len(kinds))
	for _, k := range kinds {
		if !isKnown(k) {
			return Set{}, auditerrors.NewSelectionInvalid(fmt.Sprintf("unknown rule %q", k))
		}
		active[k] = true
	}
	if len(active) == 0 {
		return Set{}, auditerrors.NewSelectionInvalid("at least one rule must be active")
	}
	return Set{active: active}, nil
}

// All returns the set of every rule.
func All() Set {
	s, _ := NewSet(domain.RuleOrder...)
	return s
}

// Has reports whether kind is active.
func (s Set) Has(kind domain.RuleKind) bool {
	return s.active[kind]
}

// Kinds returns the active kinds in evaluation order.
func (s Set) Kinds() []domain.RuleKind {
	out := make([]domain.RuleKind, 0, len(s.active))
	for _, k := range domain.RuleOrder {
		if s.active[k] {
			out = append(out, k)
		}
	}
	return out
}

// String lists the active kinds, comma separated.
func (s Set) String() string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func isKnown(kind domain.RuleKind) bool {
	for _, k := range domain.RuleOrder {
		if k == kind {
			return true
		}
	}
	return false
}

// ParseKinds converts rule names (case-insensitive, "all" allowed) to kinds.
func ParseKinds(names []string) ([]domain.RuleKind, error) {
	var kinds []domain.RuleKind
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if name == "all" {
			return append([]domain.RuleKind(nil), domain.RuleOrder...), nil
		}
		kind := domain.RuleKind(name)
		if !isKnown(kind) {
			return nil, auditerrors.NewSelectionInvalid(fmt.Sprintf("unknown rule %q (expected spacing, time or extension)", raw))
		}
		kinds = append(kinds, kind)
	}
	if len(kinds) == 0 {
		return nil, auditerrors.NewSelectionInvalid("no rules selected")
	}
	return kinds, nil
}

// presets maps the numbered validation-type menu to rule subsets.
var presets = map[int][]domain.RuleKind{
	1: {domain.RuleSpacing},
	2: {domain.RuleTime},
	3: {domain.RuleExtension},
	4: {domain.RuleSpacing, domain.RuleTime},
	5: {domain.RuleSpacing, domain.RuleExtension},
	6: {domain.RuleTime, domain.RuleExtension},
	7: {domain.RuleSpacing, domain.RuleTime, domain.RuleExtension},
}

// Preset returns the rule subset for a numbered menu choice (1-7).
func Preset(choice string) ([]domain.RuleKind, error) {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil {
		return nil, auditerrors.NewSelectionInvalid(fmt.Sprintf("preset %q is not a number", choice))
	}
	kinds, ok := presets[n]
	if !ok {
		return nil, auditerrors.NewSelectionInvalid(fmt.Sprintf("preset %d out of range 1-7", n))
	}
	return append([]domain.RuleKind(nil), kinds...), nil
}
