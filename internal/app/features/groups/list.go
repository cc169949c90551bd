// internal/app/features/groups/list.go
package groups

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/store/queries/groupqueries"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList handles GET /groups: approved groups, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	views, err := groupqueries.List(ctx, h.DB, models.GroupApproved)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to fetch groups", err)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, views)
}

// ServeGroup handles GET /groups/{id}. Groups of any status can be fetched
// by id.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := groupIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	view, err := groupqueries.Get(ctx, h.DB, id)
	if errors.Is(err, groupqueries.ErrNotFound) {
		apierrors.NotFound(w, "Group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Failed to fetch group", err, zap.String("group_id", id.Hex()))
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, view)
}
