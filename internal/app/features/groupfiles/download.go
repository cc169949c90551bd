// internal/app/features/groupfiles/download.go
package groupfiles

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeDownload handles GET /groups/{groupId}/files/{fileId}/download and
// streams the stored bytes under the original file name.
func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
	gid, fid, ok := ids(w, r, true)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Transfer())
	defer cancel()

	a, rc, err := h.Ledger.Open(ctx, gid, fid)
	if err != nil {
		h.writeLedgerError(w, r, "Error downloading file", err,
			zap.String("group_id", gid.Hex()),
			zap.String("attachment_id", fid.Hex()))
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", a.MediaType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+dispositionName(a.OriginalName)+`"`)
	w.Header().Set("Content-Length", strconv.FormatInt(a.Size, 10))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		h.Log.Warn("attachment download interrupted",
			zap.String("group_id", gid.Hex()),
			zap.String("attachment_id", fid.Hex()),
			zap.String("storage_name", a.StorageName),
			zap.Error(err))
	}
}

// dispositionName keeps a file name from breaking out of the quoted
// Content-Disposition parameter.
func dispositionName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\':
			return '_'
		case '\r', '\n':
			return -1
		}
		return r
	}, name)
	if name == "" {
		return "download"
	}
	return name
}
