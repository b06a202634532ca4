package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// allowedPunct are the punctuation characters that never count as special.
const allowedPunct = "._:-"

// whitespace matches any Unicode space, so non-breaking spaces pasted into
// cells count the same as ASCII ones.
const whitespace = `[\s\p{Z}\x{85}]`

var (
	multiSpaceRe   = regexp.MustCompile(whitespace + `{2,}`)
	spaceBeforeRe  = regexp.MustCompile(` ([._:-])`)
	spaceAfterRe   = regexp.MustCompile(`([._:-]) `)
	longSpaceRunRe = regexp.MustCompile(whitespace + `{3,}`)
)

// Spacing checks a value for spacing problems and special characters.
// In strict mode any space is an issue; in normal mode only problematic
// spacing is flagged.
func Spacing(value string, strict bool) Result {
	if strict {
		return strictSpacing(value)
	}

	var issues []string
	fix := value

	if strings.Contains(value, "  ") {
		issues = append(issues, "double spaces")
		fix = multiSpaceRe.ReplaceAllString(fix, " ")
	}

	if value != strings.TrimSpace(value) {
		issues = append(issues, "leading/trailing spaces")
		fix = strings.TrimSpace(fix)
	}

	if spaceBeforeRe.MatchString(value) {
		issues = append(issues, "space before "+allowedPunct)
		fix = spaceBeforeRe.ReplaceAllString(fix, "$1")
	}

	if spaceAfterRe.MatchString(value) {
		issues = append(issues, "space after "+allowedPunct)
		fix = spaceAfterRe.ReplaceAllString(fix, "$1")
	}

	// reported only, never auto-fixed
	if special := specialChars(value); special != "" {
		issues = append(issues, "special characters: "+special)
	}

	if longSpaceRunRe.MatchString(value) {
		issues = append(issues, "multiple consecutive spaces")
		fix = longSpaceRunRe.ReplaceAllString(fix, " ")
	}

	return newResult(issues, fix, value)
}

func strictSpacing(value string) Result {
	count := strings.Count(value, " ")
	if count == 0 {
		return Result{SuggestedFix: value}
	}
	return Result{
		HasIssue:     true,
		Description:  fmt.Sprintf("contains %d space(s)", count),
		SuggestedFix: strings.ReplaceAll(value, " ", ""),
	}
}

// specialChars returns each distinct offending character once, in order of
// first appearance.
func specialChars(value string) string {
	var b strings.Builder
	seen := make(map[rune]bool)
	for _, r := range value {
		if isAllowedRune(r) || seen[r] {
			continue
		}
		seen[r] = true
		b.WriteRune(r)
	}
	return b.String()
}

func isAllowedRune(r rune) bool {
	return unicode.IsLetter(r) ||
		unicode.IsNumber(r) ||
		unicode.IsSpace(r) ||
		strings.ContainsRune(allowedPunct, r)
}
