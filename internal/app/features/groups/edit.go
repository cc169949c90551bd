// internal/app/features/groups/edit.go
package groups

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/policy/grouppolicy"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	"github.com/dalemusser/studyhub/internal/app/store/queries/groupqueries"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleUpdate handles PUT /groups/{id} (creator or admin).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := groupIDParam(w, r)
	if !ok {
		return
	}
	var in groupInput
	if !apierrors.DecodeJSON(w, r, &in) {
		return
	}
	in = in.clean()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := groupstore.New(h.DB)
	g, err := store.GetByID(ctx, id)
	if errors.Is(err, groupstore.ErrNotFound) {
		apierrors.NotFound(w, "Group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to update group", err, zap.String("group_id", id.Hex()))
		return
	}
	if !grouppolicy.CanManageGroup(r, &g) {
		apierrors.Forbidden(w, "Not authorized to update this group")
		return
	}

	if _, err := store.UpdateInfo(ctx, id, groupstore.InfoUpdate{
		Title:       in.Title,
		Subject:     in.Subject,
		Description: in.Description,
	}); err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			apierrors.NotFound(w, "Group not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "Failed to update group", err, zap.String("group_id", id.Hex()))
		return
	}

	view, err := groupqueries.Get(ctx, h.DB, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to update group", err, zap.String("group_id", id.Hex()))
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, view)
}
