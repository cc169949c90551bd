// internal/app/features/groupfiles/upload.go
package groupfiles

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/store/queries/groupqueries"
	"github.com/dalemusser/studyhub/internal/app/system/attachments"
	"github.com/dalemusser/studyhub/internal/app/system/authz"
	"github.com/dalemusser/studyhub/internal/app/system/limits"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type uploadResponse struct {
	Message string   `json:"message"`
	File    fileView `json:"file"`
}

// HandleUpload handles POST /groups/{groupId}/files with a multipart "file"
// part. Only members may upload.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	gid, _, ok := ids(w, r, false)
	if !ok {
		return
	}
	_, name, uid, ok := authz.UserCtx(r)
	if !ok {
		apierrors.Unauthorized(w, "No token provided")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxSize+limits.MultipartOverhead)
	if err := r.ParseMultipartForm(limits.MultipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			apierrors.BadRequest(w, "File too large")
			return
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			apierrors.BadRequest(w, "No file uploaded")
			return
		}
		apierrors.BadRequest(w, "Invalid upload")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.BadRequest(w, "No file uploaded")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Transfer())
	defer cancel()

	a, err := h.Ledger.Add(ctx, attachments.Upload{
		GroupID:      gid,
		UploaderID:   uid,
		OriginalName: header.Filename,
		MediaType:    header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         file,
	})
	if err != nil {
		h.writeLedgerError(w, r, "Error uploading file", err,
			zap.String("group_id", gid.Hex()),
			zap.String("original_name", header.Filename))
		return
	}

	h.Log.Info("attachment uploaded",
		zap.String("group_id", gid.Hex()),
		zap.String("attachment_id", a.ID.Hex()),
		zap.String("storage_name", a.StorageName),
		zap.Int64("size", a.Size))

	apierrors.WriteJSON(w, http.StatusOK, uploadResponse{
		Message: "File uploaded successfully",
		File: fileView{
			Attachment: a,
			UploadedBy: groupqueries.PersonRef{ID: uid, Name: name},
		},
	})
}
