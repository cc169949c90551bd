// internal/app/features/admin/users.go
package admin

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"github.com/dalemusser/studyhub/internal/app/system/cascade"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeUsers handles GET /admin/users.
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := userstore.New(h.DB).List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to fetch users", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, users)
}

// HandleDeleteUser handles DELETE /admin/users/{id}. The user is taken out
// of every group; groups they created stay.
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "User not found")
	if !ok {
		return
	}
	_, _, self, _ := authz.UserCtx(r)
	if self == id {
		apierrors.BadRequest(w, "You cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	target, err := userstore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		apierrors.NotFound(w, "User not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to delete user", err, zap.String("user_id", id.Hex()))
		return
	}

	err = h.Deleter.DeleteUser(ctx, id)
	if errors.Is(err, cascade.ErrUserNotFound) {
		apierrors.NotFound(w, "User not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to delete user", err, zap.String("user_id", id.Hex()))
		return
	}

	h.Log.Info("user deleted", zap.String("user_id", id.Hex()))
	h.Audit.UserDeleted(ctx, r, self, id, target.Email)
	apierrors.Message(w, http.StatusOK, "User deleted successfully")
}
