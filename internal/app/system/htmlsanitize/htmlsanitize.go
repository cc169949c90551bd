// Package htmlsanitize cleans user-supplied text before it is stored or
// embedded in outgoing HTML email.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize removes dangerous markup (scripts, event handlers, javascript:
// links, iframes) and keeps ordinary formatting.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// SanitizeToHTML is Sanitize for use in html/template.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// StripTags removes every tag and returns plain text. Entities produced by
// the policy are decoded again so "Tom & Jerry" round-trips unchanged.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(strict.Sanitize(s))
}

// PlainToHTML escapes plain text and turns newlines into <br> so it can be
// placed inside an HTML email body.
func PlainToHTML(s string) template.HTML {
	escaped := html.EscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return SanitizeToHTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
