// internal/app/features/groups/delete.go
package groups

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/policy/grouppolicy"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"github.com/dalemusser/studyhub/internal/app/system/cascade"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /groups/{id} (creator or admin). Messages and
// attachment bytes of the group go with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := groupIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := groupstore.New(h.DB).GetByID(ctx, id)
	if errors.Is(err, groupstore.ErrNotFound) {
		apierrors.NotFound(w, "Group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to delete group", err, zap.String("group_id", id.Hex()))
		return
	}
	if !grouppolicy.CanManageGroup(r, &g) {
		apierrors.Forbidden(w, "Not authorized to delete this group")
		return
	}

	if _, err := h.Deleter.DeleteGroup(ctx, id); err != nil {
		if errors.Is(err, cascade.ErrGroupNotFound) {
			apierrors.NotFound(w, "Group not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "Failed to delete group", err, zap.String("group_id", id.Hex()))
		return
	}

	role, _, actor, _ := authz.UserCtx(r)
	h.Audit.GroupDeleted(ctx, r, actor, id, role, g.Title)
	h.Log.Info("group deleted",
		zap.String("group_id", id.Hex()),
		zap.Int("attachments", len(g.Attachments)))
	apierrors.Message(w, http.StatusOK, "Group deleted successfully")
}
