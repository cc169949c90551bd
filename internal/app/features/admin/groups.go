// internal/app/features/admin/groups.go
package admin

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	"github.com/dalemusser/studyhub/internal/app/store/queries/groupqueries"
	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"github.com/dalemusser/studyhub/internal/app/system/cascade"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeGroups handles GET /admin/groups: every group, any status.
func (h *Handler) ServeGroups(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	views, err := groupqueries.List(ctx, h.DB, "")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to fetch groups", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, views)
}

type statusResponse struct {
	Message string       `json:"message"`
	Group   models.Group `json:"group"`
}

func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.GroupApproved, "Group approved successfully")
}

func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.GroupRejected, "Group rejected successfully")
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status, okMsg string) {
	id, ok := idParam(w, r, "Group not found")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := groupstore.New(h.DB).SetStatus(ctx, id, status)
	if errors.Is(err, groupstore.ErrNotFound) {
		apierrors.NotFound(w, "Group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to update group status", err,
			zap.String("group_id", id.Hex()), zap.String("status", status))
		return
	}

	h.Log.Info("group status changed", zap.String("group_id", id.Hex()), zap.String("status", status))
	_, _, actor, _ := authz.UserCtx(r)
	if status == models.GroupApproved {
		h.Audit.GroupApproved(ctx, r, actor, id, g.Title)
	} else {
		h.Audit.GroupRejected(ctx, r, actor, id, g.Title)
	}
	apierrors.WriteJSON(w, http.StatusOK, statusResponse{Message: okMsg, Group: g})
}

// HandleDeleteGroup handles DELETE /admin/groups/{id}.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Group not found")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := h.Deleter.DeleteGroup(ctx, id)
	if errors.Is(err, cascade.ErrGroupNotFound) {
		apierrors.NotFound(w, "Group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to delete group", err, zap.String("group_id", id.Hex()))
		return
	}
	_, _, actor, _ := authz.UserCtx(r)
	h.Audit.GroupDeleted(ctx, r, actor, id, models.RoleAdmin, g.Title)
	apierrors.Message(w, http.StatusOK, "Group deleted successfully")
}
