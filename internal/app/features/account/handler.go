// internal/app/features/account/handler.go
package account

import (
	apierrors "github.com/dalemusser/studyhub/internal/app/features/errors"
	"github.com/dalemusser/studyhub/internal/app/system/auditlog"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves registration, login and the signed-in user's profile.
type Handler struct {
	DB     *mongo.Database
	Tokens *auth.TokenManager
	Audit  *auditlog.Logger
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, audit *auditlog.Logger, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Tokens: tokens,
		Audit:  audit,
		ErrLog: errLog,
		Log:    logger,
	}
}
