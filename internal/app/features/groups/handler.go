// internal/app/features/groups/handler.go
package groups

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

// Handler is the shared dependency container for the groups feature.
type Handler struct {
	DB      *mongo.Database
	Deleter *cascade.Deleter
	Audit   *auditlog.Logger
	ErrLog  *apierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler constructs a new groups Handler. It is typically called
// from the bootstrap BuildHandler function.
func NewHandler(db *mongo.Database, deleter *cascade.Deleter, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Deleter: deleter,
		Audit:   audit,
		ErrLog:  errLog,
		Log:     logger,
	}
}

// groupIDParam parses the {id} URL parameter. A malformed id cannot name a
// group, so it answers 404.
func groupIDParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.NotFound(w, "Group not found")
		return primitive.NilObjectID, false
	}
	return id, true
}
