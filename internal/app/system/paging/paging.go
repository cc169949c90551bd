// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows returned by paged lists.
const PageSize = 50

// MaxPageSize caps the "limit" query parameter.
const MaxPageSize = 200

// ParseStart extracts the human-friendly "start" query parameter (1-based index).
// Returns 1 if not present or invalid.
func ParseStart(r *http.Request) int {
	return parsePositive(query.Get(r, "start"), 1)
}

// ParseLimit extracts the "limit" query parameter, defaulting to PageSize and
// clamped to MaxPageSize.
func ParseLimit(r *http.Request) int {
	n := parsePositive(query.Get(r, "limit"), PageSize)
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func parsePositive(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Window is one page of a list addressed by start and limit.
type Window struct {
	Start int // 1-based
	Limit int
}

// FromRequest reads start and limit from the query string.
func FromRequest(r *http.Request) Window {
	return Window{Start: ParseStart(r), Limit: ParseLimit(r)}
}

// Skip returns the number of rows to skip for a Mongo Find.
func (w Window) Skip() int64 { return int64(w.Start - 1) }

// Range holds computed display range values for a paginated list.
type Range struct {
	Start     int   `json:"start"` // 1-based start index (0 if no results)
	End       int   `json:"end"`   // 1-based end index (0 if no results)
	Total     int64 `json:"total"`
	PrevStart int   `json:"prevStart"`
	NextStart int   `json:"nextStart,omitempty"` // 0 when there is no next page
}

// ComputeRange calculates display range values given the window, the number
// of rows returned, and the total row count.
func (w Window) ComputeRange(shown int, total int64) Range {
	prevStart := w.Start - w.Limit
	if prevStart < 1 {
		prevStart = 1
	}
	if shown == 0 {
		return Range{Total: total, PrevStart: prevStart}
	}

	rg := Range{
		Start:     w.Start,
		End:       w.Start + shown - 1,
		Total:     total,
		PrevStart: prevStart,
	}
	if int64(rg.End) < total {
		rg.NextStart = rg.End + 1
	}
	return rg
}
