package errors_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersWriteStatusAndMessage(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
	}{
		{"bad request", func(w http.ResponseWriter) { apierrors.BadRequest(w, "m") }, http.StatusBadRequest},
		{"unauthorized", func(w http.ResponseWriter) { apierrors.Unauthorized(w, "m") }, http.StatusUnauthorized},
		{"forbidden", func(w http.ResponseWriter) { apierrors.Forbidden(w, "m") }, http.StatusForbidden},
		{"not found", func(w http.ResponseWriter) { apierrors.NotFound(w, "m") }, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type: got %q", ct)
			}
			if body := testutil.DecodeJSON(t, rec); body["message"] != "m" {
				t.Errorf("message: got %v", body["message"])
			}
		})
	}
}

func TestLogServerError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	el := apierrors.NewErrorLogger(zap.New(core))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/groups/x/files", nil)
	el.LogServerError(rec, req, "Failed to fetch files", errors.New("connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Error("internal error text must not reach the client")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	if logs.All()[0].ContextMap()["path"] != "/api/groups/x/files" {
		t.Errorf("log fields: %v", logs.All()[0].ContextMap())
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct{ Name string }

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}`))
	if !apierrors.DecodeJSON(rec, req, &v) || v.Name != "x" {
		t.Fatalf("decode failed: %+v", v)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	if apierrors.DecodeJSON(rec, req, &v) {
		t.Fatal("expected decode to fail")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", rec.Code)
	}
}
