package rules

import (
	"fmt"
	"regexp"
	"strings"
)

var extensionRe = regexp.MustCompile(`\.([a-zA-Z0-9]+)$`)

// ExtensionCase checks that a trailing file extension is lowercase.
func ExtensionCase(value string) Result {
	text := strings.TrimSpace(value)

	loc := extensionRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return Result{SuggestedFix: text}
	}

	ext := text[loc[2]:loc[3]]
	lower := strings.ToLower(ext)
	if ext == lower {
		return Result{SuggestedFix: text}
	}

	return Result{
		HasIssue:     true,
		Description:  fmt.Sprintf("Extension '.%s' should be lowercase '.%s'", ext, lower),
		SuggestedFix: text[:loc[0]] + "." + lower,
	}
}
