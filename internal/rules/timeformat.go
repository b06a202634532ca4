package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// datetimeRe captures date, hour, minute and second of the first
// YYYY-MM-DD[T ]H:MM:SS shaped substring. Minute and second accept a single
// digit so that malformed values are still recognised.
var datetimeRe = regexp.MustCompile(`(\d{4}[-/]\d{2}[-/]\d{2})[T\s](\d{1,2}):(\d{1,2}):(\d{1,2})`)

// TimeFormat checks that an embedded datetime uses zero-padded 24-hour time.
func TimeFormat(value string) Result {
	text := strings.TrimSpace(value)

	m := datetimeRe.FindStringSubmatch(text)
	if m == nil {
		return Result{SuggestedFix: text}
	}
	hour, minute, second := m[2], m[3], m[4]
	original := hour + ":" + minute + ":" + second

	var issues []string
	fix := text

	switch {
	case len(hour) == 1:
		issues = append(issues, fmt.Sprintf("Hour missing leading zero: '%s' should be '0%s'", hour, hour))
		fix = strings.Replace(text, original, "0"+original, 1)
	case hour[0] == '0':
		// already padded
	default:
		if h, _ := strconv.Atoi(hour); h > 23 {
			issues = append(issues, fmt.Sprintf("Invalid hour: '%s' (must be 00-23)", hour))
		}
	}

	if len(minute) == 1 {
		issues = append(issues, fmt.Sprintf("Minute missing leading zero: '%s' should be '0%s'", minute, minute))
		padded := hour
		if len(hour) == 1 {
			padded = "0" + hour
		}
		// rebuilds the hour as well, so it supersedes the hour-only fix
		fix = strings.Replace(text, original, padded+":0"+minute+":"+second, 1)
	}

	if len(second) == 1 {
		issues = append(issues, fmt.Sprintf("Second missing leading zero: '%s' should be '0%s'", second, second))
	}

	return newResult(issues, fix, text)
}
