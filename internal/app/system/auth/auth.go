// Package auth resolves the principal behind each API request.
//
// Clients send the token returned by /login in the Authorization header,
// either raw or with a "Bearer " prefix. LoadSessionUser verifies it and
// places a *SessionUser in the request context; RequireSignedIn and
// RequireRole gate routes on that user.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// SessionUser is the authenticated principal injected into r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// IsAdmin reports whether the principal holds the admin role.
func (u *SessionUser) IsAdmin() bool {
	return u != nil && strings.EqualFold(u.Role, "admin")
}

// UserFetcher reloads a principal from the backing store so role changes
// and deleted accounts take effect without waiting for the token to expire.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) (*SessionUser, error)
}

// ErrUserNotFound is returned by a UserFetcher when the account is gone.
var ErrUserNotFound = errors.New("user not found")

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	tokenStateKey  ctxKey = "tokenState"
)

type tokenState int

const (
	tokenMissing tokenState = iota
	tokenInvalid
)

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithTestUser places u in the request context, bypassing token checks.
// Intended for handler tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// LoadSessionUser injects the user into context when the request carries a
// valid token. Requests without a token, or with a bad one, continue
// anonymously; RequireSignedIn decides whether that is acceptable.
func (tm *TokenManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := tokenFromHeader(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		u, err := tm.Parse(raw)
		if err == nil && tm.fetcher != nil {
			var fresh *SessionUser
			fresh, err = tm.fetcher.FetchUser(r.Context(), u.ID)
			if err == nil {
				u = fresh
			}
		}
		if err != nil {
			tm.log.Debug("rejecting request token", zap.Error(err))
			r = r.WithContext(context.WithValue(r.Context(), tokenStateKey, tokenInvalid))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn answers 401 unless LoadSessionUser resolved a principal.
func (tm *TokenManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		if st, _ := r.Context().Value(tokenStateKey).(tokenState); st == tokenInvalid {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		writeError(w, http.StatusUnauthorized, "No token provided")
	})
}

// RequireRole answers 401 for anonymous callers and 403 for signed-in users
// whose role is not in allowed.
func (tm *TokenManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return tm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, _ := CurrentUser(r)
			if _, has := set[strings.ToLower(u.Role)]; !has {
				if _, admin := set["admin"]; admin && len(set) == 1 {
					writeError(w, http.StatusForbidden, "Admin access required")
					return
				}
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// tokenFromHeader accepts both "Authorization: <token>" and
// "Authorization: Bearer <token>".
func tokenFromHeader(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		h = strings.TrimSpace(h[7:])
	}
	return h
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
