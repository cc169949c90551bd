package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/studyhub/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	input := `<a href="javascript:alert('xss')">Click</a>`
	if got := htmlsanitize.Sanitize(input); strings.Contains(got, "javascript:") {
		t.Errorf("expected javascript: href removed, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Linear algebra", "Linear algebra"},
		{"ampersand survives", "Tom & Jerry", "Tom & Jerry"},
		{"tags removed", "<b>Exam</b> prep<script>x()</script>", "Exam prep"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.StripTags(tt.input); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlainToHTML(t *testing.T) {
	got := string(htmlsanitize.PlainToHTML("Meet at 5\n<room 2>"))
	if !strings.Contains(got, "Meet at 5<br") {
		t.Errorf("expected newline converted, got %q", got)
	}
	if strings.Contains(got, "<room 2>") {
		t.Errorf("expected markup escaped, got %q", got)
	}
}
