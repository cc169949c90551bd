// internal/app/features/groupfiles/handler.go
package groupfiles

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/store/queries/groupqueries"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/attachments"
	"github.com/dalemusser/studyhub/internal/app/system/filestore"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves a group's file attachments.
type Handler struct {
	DB      *mongo.Database
	Ledger  *attachments.Ledger
	MaxSize int64
	ErrLog  *apierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, ledger *attachments.Ledger, maxSize int64, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if maxSize <= 0 {
		maxSize = filestore.DefaultMaxSize
	}
	return &Handler{
		DB:      db,
		Ledger:  ledger,
		MaxSize: maxSize,
		ErrLog:  errLog,
		Log:     logger,
	}
}

// fileView is an attachment with its uploader's name resolved.
type fileView struct {
	models.Attachment
	UploadedBy groupqueries.PersonRef `json:"uploadedBy"`
}

func (h *Handler) views(ctx context.Context, list []models.Attachment) ([]fileView, error) {
	ids := make([]primitive.ObjectID, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.UploadedBy)
	}
	names, err := userstore.New(h.DB).NamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]fileView, 0, len(list))
	for _, a := range list {
		out = append(out, fileView{
			Attachment: a,
			UploadedBy: groupqueries.PersonRef{ID: a.UploadedBy, Name: names[a.UploadedBy]},
		})
	}
	return out, nil
}

// ids parses {groupId} and, when withFile is set, {fileId}. Malformed ids
// answer 404.
func ids(w http.ResponseWriter, r *http.Request, withFile bool) (gid, fid primitive.ObjectID, ok bool) {
	gid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupId"))
	if err != nil {
		apierrors.NotFound(w, "Group not found")
		return gid, fid, false
	}
	if !withFile {
		return gid, fid, true
	}
	fid, err = primitive.ObjectIDFromHex(chi.URLParam(r, "fileId"))
	if err != nil {
		apierrors.NotFound(w, "File not found")
		return gid, fid, false
	}
	return gid, fid, true
}

// writeLedgerError maps ledger and file store failures onto HTTP responses.
func (h *Handler) writeLedgerError(w http.ResponseWriter, r *http.Request, clientMsg string, err error, fields ...zap.Field) {
	switch {
	case errors.Is(err, attachments.ErrGroupNotFound):
		apierrors.NotFound(w, "Group not found")
	case errors.Is(err, attachments.ErrAttachmentNotFound):
		apierrors.NotFound(w, "File not found")
	case errors.Is(err, filestore.ErrNotFound):
		apierrors.NotFound(w, "File not found on server")
	case errors.Is(err, attachments.ErrNotAMember):
		apierrors.Forbidden(w, "You must be a group member to upload files")
	case errors.Is(err, attachments.ErrForbidden):
		apierrors.Forbidden(w, "You can only delete files you uploaded or if you are the group creator")
	case errors.Is(err, filestore.ErrInvalidMediaType):
		apierrors.BadRequest(w, "Invalid file type. Only PDF, PPT, DOC, XLS, images, and videos are allowed.")
	case errors.Is(err, filestore.ErrFileTooLarge):
		apierrors.BadRequest(w, "File too large")
	default:
		h.ErrLog.LogServerError(w, r, clientMsg, err, fields...)
	}
}
