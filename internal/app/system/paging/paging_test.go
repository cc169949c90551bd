package paging

import (
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantStart int
		wantLimit int
	}{
		{"defaults", "/", 1, PageSize},
		{"explicit", "/?start=51&limit=25", 51, 25},
		{"limit clamped", "/?limit=5000", 1, MaxPageSize},
		{"zero start", "/?start=0", 1, PageSize},
		{"negative limit", "/?limit=-3", 1, PageSize},
		{"garbage", "/?start=abc&limit=xyz", 1, PageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := FromRequest(httptest.NewRequest("GET", tt.target, nil))
			if w.Start != tt.wantStart || w.Limit != tt.wantLimit {
				t.Errorf("got start=%d limit=%d, want start=%d limit=%d", w.Start, w.Limit, tt.wantStart, tt.wantLimit)
			}
		})
	}
}

func TestWindow_Skip(t *testing.T) {
	if got := (Window{Start: 1, Limit: 10}).Skip(); got != 0 {
		t.Errorf("Skip() at start=1: got %d", got)
	}
	if got := (Window{Start: 21, Limit: 10}).Skip(); got != 20 {
		t.Errorf("Skip() at start=21: got %d", got)
	}
}

func TestWindow_ComputeRange(t *testing.T) {
	tests := []struct {
		name  string
		w     Window
		shown int
		total int64
		want  Range
	}{
		{"empty", Window{Start: 1, Limit: 10}, 0, 0, Range{PrevStart: 1}},
		{"first of many", Window{Start: 1, Limit: 10}, 10, 25, Range{Start: 1, End: 10, Total: 25, PrevStart: 1, NextStart: 11}},
		{"middle", Window{Start: 11, Limit: 10}, 10, 25, Range{Start: 11, End: 20, Total: 25, PrevStart: 1, NextStart: 21}},
		{"last partial", Window{Start: 21, Limit: 10}, 5, 25, Range{Start: 21, End: 25, Total: 25, PrevStart: 11}},
		{"past the end", Window{Start: 41, Limit: 10}, 0, 25, Range{Total: 25, PrevStart: 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.ComputeRange(tt.shown, tt.total); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
