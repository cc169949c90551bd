// internal/app/features/admin/handler.go
package admin

import (
	"net/http"

	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/system/auditlog"
	"github.com/dalemusser/studyhub/internal/app/system/cascade"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin-only moderation endpoints.
type Handler struct {
	DB      *mongo.Database
	Deleter *cascade.Deleter
	Audit   *auditlog.Logger
	ErrLog  *apierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, deleter *cascade.Deleter, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Deleter: deleter,
		Audit:   audit,
		ErrLog:  errLog,
		Log:     logger,
	}
}

func idParam(w http.ResponseWriter, r *http.Request, notFound string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.NotFound(w, notFound)
		return primitive.NilObjectID, false
	}
	return id, true
}
