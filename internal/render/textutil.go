package render

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Ellipsis is appended to text cut by Truncate.
const Ellipsis = "..."

// Truncate cuts text longer than limit runes at the limit and appends
// Ellipsis. Shorter text is returned unchanged.
func Truncate(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit]) + Ellipsis
}

var stripPolicy = bluemonday.StrictPolicy()

// plainText strips markup some publishers leave in titles and descriptions
// and collapses whitespace.
func plainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(stripPolicy.Sanitize(s))), " ")
}
