// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// ports, TLS, logging and request limits; everything StudyHub itself needs
// lives here and is passed to every lifecycle hook.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Token signing
	JWTSecret string        // HS256 signing key (must be strong in production)
	JWTTTL    time.Duration // token lifetime

	// Attachment storage
	StorageType      string // "local" or "s3"
	StorageLocalPath string // content root for the local backend (e.g., "./uploads/groups")
	MaxUploadMB      int    // per-file size ceiling

	// S3 configuration (only used if StorageType is "s3")
	StorageS3Region   string
	StorageS3Bucket   string
	StorageS3Prefix   string
	StorageS3Endpoint string // optional, for S3-compatible services
	StorageS3KeyID    string
	StorageS3Secret   string

	// Email/SMTP configuration; a blank host logs mail instead of sending it
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Admin bootstrap: created or promoted at startup when AdminEmail is set
	AdminEmail    string
	AdminPassword string

	// Throttling for /login and /register, per client IP
	RateLimitRPS   float64
	RateLimitBurst int

	// Origins allowed to call the API from a browser
	CORSOrigins []string

	// Audit trail destinations: "all", "db", "log" or "off"
	AuditLogAuth  string
	AuditLogAdmin string
	// Days of audit history to keep; 0 keeps everything
	AuditRetentionDays int
}

// MaxUploadBytes converts the configured ceiling to bytes.
func (c AppConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
