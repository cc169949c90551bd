// internal/app/features/groupfiles/delete.go
package groupfiles

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /groups/{groupId}/files/{fileId}. The uploader
// or the group creator may delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	gid, fid, ok := ids(w, r, true)
	if !ok {
		return
	}
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w, "No token provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Ledger.Remove(ctx, gid, fid, uid); err != nil {
		h.writeLedgerError(w, r, "Error deleting file", err,
			zap.String("group_id", gid.Hex()),
			zap.String("attachment_id", fid.Hex()))
		return
	}

	h.Log.Info("attachment deleted",
		zap.String("group_id", gid.Hex()),
		zap.String("attachment_id", fid.Hex()))
	apierrors.Message(w, http.StatusOK, "File deleted successfully")
}
