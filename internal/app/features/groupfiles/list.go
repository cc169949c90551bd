// internal/app/features/groupfiles/list.go
package groupfiles

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList handles GET /groups/{groupId}/files in upload order.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	gid, _, ok := ids(w, r, false)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Ledger.List(ctx, gid)
	if err != nil {
		h.writeLedgerError(w, r, "Error fetching files", err, zap.String("group_id", gid.Hex()))
		return
	}
	views, err := h.views(ctx, list)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Error fetching files", err, zap.String("group_id", gid.Hex()))
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, views)
}

// ServeFile handles GET /groups/{groupId}/files/{fileId}.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	gid, fid, ok := ids(w, r, true)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Ledger.Get(ctx, gid, fid)
	if err != nil {
		h.writeLedgerError(w, r, "Error fetching file", err,
			zap.String("group_id", gid.Hex()),
			zap.String("attachment_id", fid.Hex()))
		return
	}
	views, err := h.views(ctx, []models.Attachment{a})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "Error fetching file", err, zap.String("attachment_id", fid.Hex()))
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, views[0])
}
