// internal/app/features/account/login.go
package account

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/passwords"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  string             `json:"role"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// HandleLogin handles POST /login and returns a signed token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if !apierrors.DecodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		apierrors.BadRequest(w, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByEmail(ctx, in.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		h.Audit.LoginFailedUserNotFound(ctx, r, in.Email)
		apierrors.Unauthorized(w, "Invalid credentials")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Login failed", err)
		return
	}
	if err := passwords.Check(u.PasswordHash, in.Password); err != nil {
		if !errors.Is(err, passwords.ErrMismatch) {
			h.Log.Warn("password check failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		}
		h.Audit.LoginFailedWrongPassword(ctx, r, u.ID, u.Email)
		apierrors.Unauthorized(w, "Invalid credentials")
		return
	}

	token, err := h.Tokens.Issue(auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Login failed", err)
		return
	}

	h.Audit.LoginSuccess(ctx, r, u.ID, u.Email)
	apierrors.WriteJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  loginUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
	})
}
