// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"time"

	accountfeature "github.com/dalemusser/studyhub/internal/app/features/account"
	adminfeature "github.com/dalemusser/studyhub/internal/app/features/admin"
	auditlogfeature "github.com/dalemusser/studyhub/internal/app/features/auditlog"
	errorsfeature "github.com/dalemusser/studyhub/internal/app/features/errors"
	groupfilesfeature "github.com/dalemusser/studyhub/internal/app/features/groupfiles"
	groupsfeature "github.com/dalemusser/studyhub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/studyhub/internal/app/features/health"
	messagesfeature "github.com/dalemusser/studyhub/internal/app/features/messages"
	notificationsfeature "github.com/dalemusser/studyhub/internal/app/features/notifications"
	"github.com/dalemusser/studyhub/internal/app/store/audit"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/attachments"
	"github.com/dalemusser/studyhub/internal/app/system/auditlog"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/cascade"
	"github.com/dalemusser/studyhub/internal/app/system/filestore"
	"github.com/dalemusser/studyhub/internal/app/system/mailer"
	"github.com/dalemusser/studyhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. StudyHub builds the token manager, the
// attachment ledger over the configured file store, and the mailer, then
// mounts the JSON feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}
	// Fetch fresh user data on each request so role changes and deleted
	// accounts take effect immediately.
	tokens.SetUserFetcher(userstore.NewFetcher(db))

	backend, err := newFileBackend(appCfg)
	if err != nil {
		logger.Error("file store init failed", zap.String("storage_type", appCfg.StorageType), zap.Error(err))
		return nil, err
	}
	files := filestore.New(backend, appCfg.MaxUploadBytes())
	ledger := attachments.New(groupstore.New(db), files, logger)
	deleter := cascade.New(db, ledger, logger)

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	throttle := ratelimit.New(appCfg.RateLimitRPS, appCfg.RateLimitBurst)

	audits := auditlog.New(audit.New(db), logger, appCfg.auditConfig())

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	// Loads the SessionUser from the Authorization header when present.
	r.Use(tokens.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, files, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Accounts: /register, /login, /profile
	accountHandler := accountfeature.NewHandler(db, tokens, audits, errLog, logger)
	r.Mount("/", accountfeature.Routes(accountHandler, tokens, throttle.Middleware))

	// Groups and their message boards
	groupsHandler := groupsfeature.NewHandler(db, deleter, audits, errLog, logger)
	messagesHandler := messagesfeature.NewHandler(db, errLog, logger)
	r.Route("/groups", func(r chi.Router) {
		r.Mount("/{groupId}/messages", messagesfeature.Routes(messagesHandler, tokens))
		r.Mount("/", groupsfeature.Routes(groupsHandler, tokens))
	})

	// Attachments
	filesHandler := groupfilesfeature.NewHandler(db, ledger, appCfg.MaxUploadBytes(), errLog, logger)
	r.Mount("/api/groups/{groupId}/files", groupfilesfeature.Routes(filesHandler, tokens))

	// Administration
	adminHandler := adminfeature.NewHandler(db, deleter, audits, errLog, logger)
	auditHandler := auditlogfeature.NewHandler(db, errLog, logger)
	r.Route("/admin", func(r chi.Router) {
		r.Mount("/audit", auditlogfeature.Routes(auditHandler, tokens))
		r.Mount("/", adminfeature.Routes(adminHandler, tokens))
	})

	notificationsHandler := notificationsfeature.NewHandler(db, mail, audits, errLog, logger)
	r.Mount("/api/notifications", notificationsfeature.Routes(notificationsHandler, tokens))

	return r, nil
}

// newFileBackend selects the attachment byte store named by storage_type.
func newFileBackend(appCfg AppConfig) (storage.Store, error) {
	if appCfg.StorageType == "s3" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewS3(ctx, s3Config(appCfg))
	}
	return storage.NewLocal(storage.LocalConfig{BasePath: appCfg.StorageLocalPath})
}

// s3Config maps the storage_s3_* keys. Blank keys leave credentials to the
// SDK default chain (environment, shared config, instance role).
func s3Config(appCfg AppConfig) storage.S3Config {
	endpoint := appCfg.StorageS3Endpoint
	return storage.S3Config{
		Bucket:          appCfg.StorageS3Bucket,
		Region:          appCfg.StorageS3Region,
		Prefix:          appCfg.StorageS3Prefix,
		Endpoint:        endpoint,
		UsePathStyle:    endpoint != "",
		AccessKeyID:     appCfg.StorageS3KeyID,
		SecretAccessKey: appCfg.StorageS3Secret,
	}
}
