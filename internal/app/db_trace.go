package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	sqlLineCommentRegex  = regexp.MustCompile(`--[^\n]*`)
	sqlWhitespaceRegex   = regexp.MustCompile(`\s+`)
	sqlPlaceholderRegex  = regexp.MustCompile(`\$\d+(?:\s*,\s*\$\d+){3,}`)
	sqlPlaceholderNumber = regexp.MustCompile(`\$\d+`)
)

// formatDBQueryForTrace turns a statement into a single-line span attribute.
// Long placeholder lists are folded so batched inserts share one shape.
func formatDBQueryForTrace(query string) string {
	query = sqlLineCommentRegex.ReplaceAllString(query, "")
	query = strings.TrimSpace(sqlWhitespaceRegex.ReplaceAllString(query, " "))
	if query == "" {
		return query
	}

	query = sqlPlaceholderRegex.ReplaceAllStringFunc(query, func(list string) string {
		first := sqlPlaceholderNumber.FindString(list)
		return first + ", ..."
	})

	if len(query) <= maxTracedQueryLength {
		return query
	}
	return query[:maxTracedQueryLength] + "..."
}
