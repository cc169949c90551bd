package groupfiles

import "testing"

func TestDispositionName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"notes.pdf", "notes.pdf"},
		{`say "hi".pdf`, "say _hi_.pdf"},
		{`a\b.doc`, "a_b.doc"},
		{"line\r\nbreak.png", "linebreak.png"},
		{"", "download"},
	}
	for _, tt := range tests {
		if got := dispositionName(tt.in); got != tt.want {
			t.Errorf("dispositionName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
