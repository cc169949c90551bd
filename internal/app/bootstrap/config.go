// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/studyhub/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devJWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for StudyHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: STUDYHUB_MONGO_URI, STUDYHUB_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "studyhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "jwt_secret", Default: devJWTSecret, Desc: "HS256 token signing key (must be strong in production)"},
	{Name: "jwt_ttl", Default: "24h", Desc: "Token lifetime (e.g., 24h, 90m)"},

	// Attachment storage
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads/groups", Desc: "Local content root for uploaded files"},
	{Name: "max_upload_mb", Default: 50, Desc: "Maximum attachment size in MiB"},

	// S3 configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "groups/", Desc: "S3 key prefix"},
	{Name: "storage_s3_endpoint", Default: "", Desc: "Custom S3 endpoint (MinIO, R2)"},
	{Name: "storage_s3_key_id", Default: "", Desc: "S3 access key ID (blank uses the SDK default chain)"},
	{Name: "storage_s3_secret", Default: "", Desc: "S3 secret access key"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank logs email instead of sending)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@studyhub.local", Desc: "From email address"},
	{Name: "mail_from_name", Default: "StudyHub", Desc: "From display name"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the admin user (promotes/creates on startup)"},
	{Name: "admin_password", Default: "", Desc: "Password for a newly created admin user"},

	// Throttling
	{Name: "rate_limit_rps", Default: 5, Desc: "Login/register requests per second per client"},
	{Name: "rate_limit_burst", Default: 10, Desc: "Login/register burst per client"},

	{Name: "cors_origins", Default: "*", Desc: "Comma-separated origins allowed by CORS"},

	// Audit logging: all (db + log), db, log, or off
	{Name: "audit_log_auth", Default: "all", Desc: "Audit destination for registration, login and profile events"},
	{Name: "audit_log_admin", Default: "all", Desc: "Audit destination for moderation events"},
	{Name: "audit_retention_days", Default: 365, Desc: "Days of audit events to keep (0 keeps all)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// STUDYHUB_* environment variables and command-line flags with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "STUDYHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTTTL:    appValues.Duration("jwt_ttl", 24*time.Hour),

		StorageType:      strings.ToLower(strings.TrimSpace(appValues.String("storage_type"))),
		StorageLocalPath: appValues.String("storage_local_path"),
		MaxUploadMB:      appValues.Int("max_upload_mb"),

		StorageS3Region:   appValues.String("storage_s3_region"),
		StorageS3Bucket:   appValues.String("storage_s3_bucket"),
		StorageS3Prefix:   appValues.String("storage_s3_prefix"),
		StorageS3Endpoint: appValues.String("storage_s3_endpoint"),
		StorageS3KeyID:    appValues.String("storage_s3_key_id"),
		StorageS3Secret:   appValues.String("storage_s3_secret"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),

		RateLimitRPS:   float64(appValues.Int("rate_limit_rps")),
		RateLimitBurst: appValues.Int("rate_limit_burst"),

		CORSOrigins: splitList(appValues.String("cors_origins")),

		AuditLogAuth:  strings.ToLower(strings.TrimSpace(appValues.String("audit_log_auth"))),
		AuditLogAdmin: strings.ToLower(strings.TrimSpace(appValues.String("audit_log_admin"))),

		AuditRetentionDays: appValues.Int("audit_retention_days"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation so that
// misconfiguration aborts startup before any backend is touched.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateApp(appCfg, coreCfg.Env, logger)
}

func validateApp(appCfg AppConfig, env string, logger *zap.Logger) error {
	if strings.TrimSpace(appCfg.JWTSecret) == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if appCfg.JWTSecret == devJWTSecret {
		if env == "prod" {
			return fmt.Errorf("jwt_secret must be changed from the development default in production")
		}
		logger.Warn("using the development jwt_secret; set STUDYHUB_JWT_SECRET before deploying")
	} else if len(appCfg.JWTSecret) < 32 {
		logger.Warn("jwt_secret is shorter than 32 characters")
	}
	if appCfg.JWTTTL <= 0 {
		return fmt.Errorf("jwt_ttl must be positive")
	}

	switch appCfg.StorageType {
	case "local":
		if strings.TrimSpace(appCfg.StorageLocalPath) == "" {
			return fmt.Errorf("storage_local_path is required for local storage")
		}
	case "s3":
		if appCfg.StorageS3Bucket == "" || appCfg.StorageS3Region == "" {
			return fmt.Errorf("s3 storage requires storage_s3_bucket and storage_s3_region")
		}
	default:
		return fmt.Errorf("unknown storage_type %q (want 'local' or 's3')", appCfg.StorageType)
	}

	if appCfg.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive")
	}
	if appCfg.RateLimitRPS <= 0 || appCfg.RateLimitBurst <= 0 {
		return fmt.Errorf("rate_limit_rps and rate_limit_burst must be positive")
	}
	if !appCfg.auditConfig().Valid() {
		return fmt.Errorf("audit_log_auth and audit_log_admin must be one of all, db, log, off")
	}
	if appCfg.AuditRetentionDays < 0 {
		return fmt.Errorf("audit_retention_days must not be negative")
	}
	if appCfg.AdminEmail != "" && appCfg.AdminPassword == "" {
		logger.Warn("admin_email set without admin_password; an existing account can be promoted but none will be created")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c AppConfig) auditConfig() auditlog.Config {
	return auditlog.Config{Auth: c.AuditLogAuth, Admin: c.AuditLogAdmin}
}
