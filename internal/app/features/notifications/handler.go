// internal/app/features/notifications/handler.go
package notifications

import (
	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/system/auditlog"
	"github.com/dalemusser/studyhub/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// sendConcurrency bounds how many emails are in flight per broadcast.
const sendConcurrency = 4

// Handler serves admin email broadcasts to group members.
type Handler struct {
	DB     *mongo.Database
	Mailer mailer.Mailer
	Audit  *auditlog.Logger
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, m mailer.Mailer, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Mailer: m,
		Audit:  audit,
		ErrLog: errLog,
		Log:    logger,
	}
}
