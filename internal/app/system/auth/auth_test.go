package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newTestTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager("test-jwt-secret-must-be-32-chars-long", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}
	return tm
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, _ := auth.CurrentUser(r)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(u.ID))
	})
}

func TestIssueAndParse_RoundTrip(t *testing.T) {
	tm := newTestTokenManager(t)

	tok, err := tm.Issue(auth.SessionUser{ID: "abc123", Name: "Bea", Email: "bea@test.com", Role: "user"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	u, err := tm.Parse(tok)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if u.ID != "abc123" || u.Name != "Bea" || u.Role != "user" {
		t.Errorf("unexpected principal: %+v", u)
	}
}

func TestParse_RejectsOtherSecret(t *testing.T) {
	tm := newTestTokenManager(t)
	other, _ := auth.NewTokenManager("another-secret-that-is-32-chars-long!", time.Hour, zap.NewNop())

	tok, _ := other.Issue(auth.SessionUser{ID: "abc123", Role: "user"})
	if _, err := tm.Parse(tok); err == nil {
		t.Error("expected token signed with a different secret to be rejected")
	}
}

func TestParse_RejectsExpired(t *testing.T) {
	tm, _ := auth.NewTokenManager("test-jwt-secret-must-be-32-chars-long", -time.Minute, zap.NewNop())
	tok, _ := tm.Issue(auth.SessionUser{ID: "abc123", Role: "user"})
	if _, err := tm.Parse(tok); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestRequireSignedIn_NoToken_Returns401(t *testing.T) {
	tm := newTestTokenManager(t)
	h := tm.LoadSessionUser(tm.RequireSignedIn(okHandler()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/profile", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No token provided") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestRequireSignedIn_BadToken_Returns401(t *testing.T) {
	tm := newTestTokenManager(t)
	h := tm.LoadSessionUser(tm.RequireSignedIn(okHandler()))

	req := httptest.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "not-a-jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid token") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestLoadSessionUser_RawAndBearerHeaders(t *testing.T) {
	tm := newTestTokenManager(t)
	tok, _ := tm.Issue(auth.SessionUser{ID: "u1", Role: "user"})
	h := tm.LoadSessionUser(tm.RequireSignedIn(okHandler()))

	for _, header := range []string{tok, "Bearer " + tok} {
		req := httptest.NewRequest("GET", "/profile", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("header %q: expected 200, got %d", header[:10], rec.Code)
		}
		if rec.Body.String() != "u1" {
			t.Errorf("expected user u1, got %q", rec.Body.String())
		}
	}
}

type goneFetcher struct{}

func (goneFetcher) FetchUser(ctx context.Context, id string) (*auth.SessionUser, error) {
	return nil, auth.ErrUserNotFound
}

func TestLoadSessionUser_DeletedAccountIsRejected(t *testing.T) {
	tm := newTestTokenManager(t)
	tm.SetUserFetcher(goneFetcher{})
	tok, _ := tm.Issue(auth.SessionUser{ID: "u1", Role: "user"})

	req := httptest.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", tok)
	rec := httptest.NewRecorder()
	tm.LoadSessionUser(tm.RequireSignedIn(okHandler())).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deleted account, got %d", rec.Code)
	}
}

func TestRequireRole_Admin(t *testing.T) {
	tm := newTestTokenManager(t)
	h := tm.RequireRole("admin")(okHandler())

	req := auth.WithTestUser(httptest.NewRequest("GET", "/admin/users", nil),
		&auth.SessionUser{ID: "u1", Role: "user"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("user: expected 403, got %d", rec.Code)
	}

	req = auth.WithTestUser(httptest.NewRequest("GET", "/admin/users", nil),
		&auth.SessionUser{ID: "a1", Role: "admin"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", rec.Code)
	}
}
