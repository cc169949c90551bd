// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/studyhub/internal/app/store/audit"
	userstore "github.com/dalemusser/studyhub/internal/app/store/users"
	"github.com/dalemusser/studyhub/internal/app/system/passwords"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"github.com/dalemusser/studyhub/internal/app/system/workers"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// retention prunes old audit events; started by Startup, stopped by Shutdown.
var retention *workers.AuditRetention

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n), zap.Any("timeouts", timeouts.Current()))
	}

	if appCfg.AdminEmail != "" {
		adminCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
		defer cancel()
		if err := ensureAdmin(adminCtx, deps, appCfg.AdminEmail, appCfg.AdminPassword, logger); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
	}

	if appCfg.AuditRetentionDays > 0 {
		keep := time.Duration(appCfg.AuditRetentionDays) * 24 * time.Hour
		retention = workers.NewAuditRetention(audit.New(deps.MongoDatabase), logger, 6*time.Hour, keep)
		retention.Start()
	}
	return nil
}

// ensureAdmin makes sure the account with the given email holds the admin
// role. An existing account is promoted; otherwise one is created when a
// password is configured.
func ensureAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	u, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.Role == models.RoleAdmin {
			logger.Info("admin account present", zap.String("email", u.Email))
			return nil
		}
		if err := users.SetRole(ctx, u.ID, models.RoleAdmin); err != nil {
			return err
		}
		logger.Info("promoted existing account to admin", zap.String("email", u.Email))
		return nil
	case !errors.Is(err, userstore.ErrNotFound):
		return err
	}

	if password == "" {
		logger.Warn("admin account not found and no admin_password configured; skipping", zap.String("email", email))
		return nil
	}
	hash, err := passwords.Hash(password)
	if err != nil {
		return err
	}
	name, _, _ := strings.Cut(email, "@")
	created, err := users.Create(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return err
	}
	logger.Info("created admin account", zap.String("email", created.Email))
	return nil
}
