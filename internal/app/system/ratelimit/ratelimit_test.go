package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAllow_BurstThenBlocked(t *testing.T) {
	l := New(0.001, 2)

	if !l.Allow("1.2.3.4") || !l.Allow("1.2.3.4") {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Error("expected third request to be limited")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("expected a different client to have its own bucket")
	}
}

func TestMiddleware_Returns429(t *testing.T) {
	l := New(0.001, 1)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("request %d: got %d, want %d", i, rec.Code, want)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	if got := ClientIP(req); got != "10.0.0.1" {
		t.Errorf("RemoteAddr: got %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Errorf("X-Forwarded-For: got %q", got)
	}
}
