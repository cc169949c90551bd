// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/studyhub/internal/app/store/audit"
	"github.com/dalemusser/studyhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destinations accepted by Config.Auth and Config.Admin.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off" // disabled
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for registration, login and profile events.
	Auth string
	// Admin controls logging for moderation events (group approval and
	// deletion, account deletion, notification broadcasts).
	Admin string
}

// Valid reports whether both settings name a known destination.
func (c Config) Valid() bool {
	return validDest(c.Auth) && validDest(c.Admin)
}

func validDest(s string) bool {
	switch s {
	case All, DB, Log, Off:
		return true
	}
	return false
}

// Logger records audit events to MongoDB (via audit.Store) and zap.
// A nil *Logger is a no-op, so handlers and tests may omit it.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.GroupID != nil {
		fields = append(fields, zap.String("group_id", event.GroupID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Record writes event to the destinations configured for its category.
// Store failures are logged, never returned.
func (l *Logger) Record(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := All
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == Off {
		return
	}

	if setting == All || setting == Log {
		l.logToZap(event)
	}
	if setting == All || setting == DB {
		if err := l.store.Log(context.WithoutCancel(ctx), event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func fromRequest(r *http.Request, e audit.Event) audit.Event {
	e.IP = ratelimit.ClientIP(r)
	e.UserAgent = r.UserAgent()
	return e
}

// --- Authentication Events ---

// UserRegistered logs a new self-service account.
func (l *Logger) UserRegistered(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Record(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventUserRegistered,
		UserID:    &userID,
		Success:   true,
		Details:   map[string]string{"email": email},
	}))
}

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Record(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		Success:   true,
		Details:   map[string]string{"email": email},
	}))
}

// LoginFailedUserNotFound logs a login attempt for an unknown email.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attemptedEmail string) {
	l.Record(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedUserNotFound,
		FailureReason: "user not found",
		Details:       map[string]string{"attempted_email": attemptedEmail},
	}))
}

// LoginFailedWrongPassword logs a login attempt with a bad password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Record(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedWrongPassword,
		UserID:        &userID,
		FailureReason: "wrong password",
		Details:       map[string]string{"email": email},
	}))
}

// ProfileUpdated logs a user editing their own profile.
func (l *Logger) ProfileUpdated(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	l.Record(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventProfileUpdated,
		UserID:    &userID,
		ActorID:   &userID,
		Success:   true,
	}))
}

// --- Admin Events ---

// GroupApproved logs an admin approving a pending group.
func (l *Logger) GroupApproved(ctx context.Context, r *http.Request, actorID, groupID primitive.ObjectID, title string) {
	l.groupEvent(ctx, r, audit.EventGroupApproved, actorID, groupID, map[string]string{"title": title})
}

// GroupRejected logs an admin rejecting a group.
func (l *Logger) GroupRejected(ctx context.Context, r *http.Request, actorID, groupID primitive.ObjectID, title string) {
	l.groupEvent(ctx, r, audit.EventGroupRejected, actorID, groupID, map[string]string{"title": title})
}

// GroupDeleted logs a group removal by its creator or an admin.
func (l *Logger) GroupDeleted(ctx context.Context, r *http.Request, actorID, groupID primitive.ObjectID, actorRole, title string) {
	l.groupEvent(ctx, r, audit.EventGroupDeleted, actorID, groupID, map[string]string{
		"title":      title,
		"actor_role": actorRole,
	})
}

// NotificationSent logs an email broadcast to a group. Failed deliveries
// are recorded with success=false.
func (l *Logger) NotificationSent(ctx context.Context, r *http.Request, actorID, groupID primitive.ObjectID, recipients int, sendErr error) {
	e := audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventNotificationSent,
		ActorID:   &actorID,
		GroupID:   &groupID,
		Success:   sendErr == nil,
		Details:   map[string]string{"recipients": strconv.Itoa(recipients)},
	}
	if sendErr != nil {
		e.FailureReason = sendErr.Error()
	}
	l.Record(ctx, fromRequest(r, e))
}

func (l *Logger) groupEvent(ctx context.Context, r *http.Request, eventType string, actorID, groupID primitive.ObjectID, details map[string]string) {
	l.Record(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   &actorID,
		GroupID:   &groupID,
		Success:   true,
		Details:   details,
	}))
}

// UserDeleted logs an admin deleting an account.
func (l *Logger) UserDeleted(ctx context.Context, r *http.Request, actorID, targetUserID primitive.ObjectID, email string) {
	l.Record(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserDeleted,
		UserID:    &targetUserID,
		ActorID:   &actorID,
		Success:   true,
		Details:   map[string]string{"email": email},
	}))
}
