// internal/app/features/account/profile.go
package account

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"github.com/dalemusser/studyhub/internal/app/system/inputval"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeProfile handles GET /profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w, "No token provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByID(ctx, uid)
	if errors.Is(err, userstore.ErrNotFound) {
		apierrors.NotFound(w, "User not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to fetch profile", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, u)
}

type profileInput struct {
	Name          string `json:"name" validate:"max=100" label:"Name"`
	Email         string `json:"email" validate:"omitempty,email" label:"Email"`
	ContactNumber string `json:"contactNumber" validate:"max=30" label:"Contact number"`
}

// HandleUpdateProfile handles PUT /profile. The admin account is managed
// through configuration and cannot be edited here.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w, "No token provided")
		return
	}
	if authz.IsAdmin(r) {
		apierrors.Forbidden(w, "Admin profile cannot be updated")
		return
	}

	var in profileInput
	if !apierrors.DecodeJSON(w, r, &in) {
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apierrors.BadRequest(w, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).UpdateProfile(ctx, uid, userstore.ProfileUpdate{
		Name:          in.Name,
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
	})
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		apierrors.NotFound(w, "User not found")
	case errors.Is(err, userstore.ErrDuplicateEmail):
		apierrors.BadRequest(w, "Email is already in use")
	case err != nil:
		h.ErrLog.LogServerError(w, r, "Failed to update profile", err, zap.String("user_id", uid.Hex()))
	default:
		h.Audit.ProfileUpdated(ctx, r, uid)
		apierrors.WriteJSON(w, http.StatusOK, u)
	}
}
