package core

import (
	"regexp"
	"strings"
)

// Free-text fields are cleaned before they enter the data model: tag-like
// runs and SQL keyword tokens are stripped, then the HTML-significant
// characters are escaped. Escaping is not idempotent, so Sanitize must be
// applied exactly once per field, on raw input only.
var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	sqlPattern = regexp.MustCompile(`(?i)\b(SELECT|INSERT|DELETE|DROP|UPDATE|UNION)\b`)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
)

// Sanitize cleans a raw free-text field: strips <...> runs, strips SQL
// keyword tokens, escapes & < > " ' and trims surrounding whitespace.
func Sanitize(s string) string {
	cleaned := tagPattern.ReplaceAllString(s, "")
	cleaned = sqlPattern.ReplaceAllString(cleaned, "")
	cleaned = htmlEscaper.Replace(cleaned)
	return strings.TrimSpace(cleaned)
}
