// internal/app/features/auditlog/handler.go
package auditlog

import (
	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

// NewHandler constructs an Audit Log feature handler bound to
// the given Mongo database and logger.
func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
	}
}
