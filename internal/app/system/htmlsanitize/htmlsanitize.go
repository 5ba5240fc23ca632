// Package htmlsanitize cleans operator-authored HTML (policy bodies,
// notices) before storage and display. Formatting, lists, tables,
// links, and images survive; scripts, event handlers, forms, and
// data: URLs do not.
package htmlsanitize

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowElements("u", "s", "sub", "sup", "mark")

	tableElements := []string{"table", "thead", "tbody", "tfoot", "tr", "th", "td"}
	p.AllowElements(tableElements...)
	p.AllowAttrs("class").OnElements(tableElements...)
	p.AllowAttrs("style").OnElements(tableElements...)
	p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")

	return p
}

// Sanitize strips unsafe markup from HTML, preserving the formatting
// the dashboard's rich text fields support.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// SanitizeToHTML sanitizes and marks the result safe for templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// tagPattern matches an opening angle bracket that starts a real tag,
// as opposed to a bare "<" in prose ("5 < 10").
var tagPattern = regexp.MustCompile(`<[a-zA-Z/!]`)

// IsPlainText reports whether s contains no HTML tags.
func IsPlainText(s string) bool {
	return !tagPattern.MatchString(s)
}

// PlainTextToHTML escapes plain text and converts newlines to <br>,
// wrapped in a paragraph.
func PlainTextToHTML(s string) template.HTML {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML("<p>" + escaped + "</p>")
}

// PrepareForDisplay renders stored text for a page: plain text is
// escaped and paragraph-wrapped, HTML is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if IsPlainText(s) {
		return PlainTextToHTML(s)
	}
	return SanitizeToHTML(s)
}
