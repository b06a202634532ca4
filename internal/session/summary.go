package session

import (
	"strings"

	"sheetqa/pkg/contracts/domain"
)

// Summarize derives per-column and per-category counts from issues. Categories
// are detected from the tags in each issue's description, so an issue that
// fired several rules counts once in each category.
func Summarize(issues []domain.Issue) domain.Summary {
	s := domain.Summary{
		TotalIssues: len(issues),
		ByColumn:    make(map[string]int),
	}

	for _, issue := range issues {
		if _, seen := s.ByColumn[issue.Column]; !seen {
			s.ColumnOrder = append(s.ColumnOrder, issue.Column)
		}
		s.ByColumn[issue.Column]++

		desc := issue.Description
		if strings.Contains(desc, domain.TagStrictSpacing) {
			s.StrictSpacing++
		}
		if strings.Contains(desc, domain.TagSpacing) {
			s.NormalSpacing++
		}
		if strings.Contains(desc, domain.TagTimeFormat) {
			s.TimeFormat++
		}
		if strings.Contains(desc, domain.TagFileExtension) {
			s.FileExtension++
		}
	}

	s.ColumnsTouched = len(s.ColumnOrder)
	return s
}
