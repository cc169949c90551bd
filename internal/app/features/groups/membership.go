// internal/app/features/groups/membership.go
package groups

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleJoin handles POST /groups/{id}/join.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	id, ok := groupIDParam(w, r)
	if !ok {
		return
	}
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w, "No token provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	added, err := groupstore.New(h.DB).AddMember(ctx, id, uid)
	switch {
	case errors.Is(err, groupstore.ErrNotFound):
		apierrors.NotFound(w, "Group not found")
	case err != nil:
		h.ErrLog.LogServerError(w, r, "Failed to join group", err, zap.String("group_id", id.Hex()))
	case !added:
		apierrors.BadRequest(w, "Already a member of this group")
	default:
		apierrors.Message(w, http.StatusOK, "Joined group successfully")
	}
}

// HandleLeave handles POST /groups/{id}/leave. The creator cannot leave.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := groupIDParam(w, r)
	if !ok {
		return
	}
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w, "No token provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := groupstore.New(h.DB)
	g, err := store.GetByID(ctx, id)
	if errors.Is(err, groupstore.ErrNotFound) {
		apierrors.NotFound(w, "Group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to leave group", err, zap.String("group_id", id.Hex()))
		return
	}
	if g.CreatorID == uid {
		apierrors.BadRequest(w, "The group creator cannot leave the group")
		return
	}

	removed, err := store.RemoveMember(ctx, id, uid)
	switch {
	case errors.Is(err, groupstore.ErrNotFound):
		apierrors.NotFound(w, "Group not found")
	case err != nil:
		h.ErrLog.LogServerError(w, r, "Failed to leave group", err, zap.String("group_id", id.Hex()))
	case !removed:
		apierrors.BadRequest(w, "Not a member of this group")
	default:
		apierrors.Message(w, http.StatusOK, "Left group successfully")
	}
}
