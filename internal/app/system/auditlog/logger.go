// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/caristo/adminhub/internal/app/store/audit"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, logout, password).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for admin action events (entity CRUD, status
	// changes, settings, account management).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
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

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for reverse proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.ActorEmail != "" {
		fields = append(fields, zap.String("actor_email", event.ActorEmail))
	}
	if event.Entity != "" {
		fields = append(fields, zap.String("entity", event.Entity))
	}
	if event.EntityID != "" {
		fields = append(fields, zap.String("entity_id", event.EntityID))
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

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "db", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}

	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful dashboard sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, adminID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAuth,
		EventType:  audit.EventLoginSuccess,
		ActorID:    &adminID,
		ActorEmail: email,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

// LoginFailedUserNotFound logs a failed login for an unknown email.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attemptedEmail string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedUserNotFound,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "admin not found",
		Details: map[string]string{
			"attempted_email": attemptedEmail,
		},
	})
}

// LoginFailedWrongPassword logs a failed login due to wrong password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, email string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedWrongPassword,
		ActorEmail:    email,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "wrong password",
	})
}

// LoginFailedUserDisabled logs a failed login for a disabled account.
func (l *Logger) LoginFailedUserDisabled(ctx context.Context, r *http.Request, email string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedUserDisabled,
		ActorEmail:    email,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "account disabled",
	})
}

// Logout logs a dashboard sign-out.
// Accepts a string ID from SessionUser and converts it to an ObjectID.
func (l *Logger) Logout(ctx context.Context, r *http.Request, adminIDStr, email string) {
	var actorID *primitive.ObjectID
	if oid, err := primitive.ObjectIDFromHex(adminIDStr); err == nil {
		actorID = &oid
	}

	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAuth,
		EventType:  audit.EventLogout,
		ActorID:    actorID,
		ActorEmail: email,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

// PasswordChanged logs an admin password change.
func (l *Logger) PasswordChanged(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventPasswordChanged,
		ActorID:   &actorID,
		Entity:    "admin",
		EntityID:  targetID.Hex(),
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// --- Admin Events ---

func (l *Logger) entityEvent(ctx context.Context, r *http.Request, eventType string, actorID primitive.ObjectID, entity, entityID string, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   &actorID,
		Entity:    entity,
		EntityID:  entityID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

// EntityCreated logs creation of a marketplace entity (banner, role, service).
func (l *Logger) EntityCreated(ctx context.Context, r *http.Request, actorID primitive.ObjectID, entity, entityID string) {
	l.entityEvent(ctx, r, audit.EventEntityCreated, actorID, entity, entityID, nil)
}

// EntityUpdated logs an update to a marketplace entity.
func (l *Logger) EntityUpdated(ctx context.Context, r *http.Request, actorID primitive.ObjectID, entity, entityID, fieldsChanged string) {
	var details map[string]string
	if fieldsChanged != "" {
		details = map[string]string{"fields_changed": fieldsChanged}
	}
	l.entityEvent(ctx, r, audit.EventEntityUpdated, actorID, entity, entityID, details)
}

// EntityDeleted logs deletion of a marketplace entity.
func (l *Logger) EntityDeleted(ctx context.Context, r *http.Request, actorID primitive.ObjectID, entity, entityID string) {
	l.entityEvent(ctx, r, audit.EventEntityDeleted, actorID, entity, entityID, nil)
}

// StatusChanged logs an activate/deactivate style transition.
func (l *Logger) StatusChanged(ctx context.Context, r *http.Request, actorID primitive.ObjectID, entity, entityID, newStatus string) {
	l.entityEvent(ctx, r, audit.EventStatusChanged, actorID, entity, entityID,
		map[string]string{"new_status": newStatus})
}

// PayoutMarkedPaid logs a payout settlement action.
func (l *Logger) PayoutMarkedPaid(ctx context.Context, r *http.Request, actorID primitive.ObjectID, payoutID string) {
	l.entityEvent(ctx, r, audit.EventPayoutMarkPaid, actorID, "payout", payoutID, nil)
}

// SettingsUpdated logs a system settings save.
func (l *Logger) SettingsUpdated(ctx context.Context, r *http.Request, actorID primitive.ObjectID, fieldsChanged string) {
	var details map[string]string
	if fieldsChanged != "" {
		details = map[string]string{"fields_changed": fieldsChanged}
	}
	l.entityEvent(ctx, r, audit.EventSettingsUpdated, actorID, "settings", "", details)
}

// AdminCreated logs creation of a dashboard admin account.
func (l *Logger) AdminCreated(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID, role string) {
	l.entityEvent(ctx, r, audit.EventAdminCreated, actorID, "admin", targetID.Hex(),
		map[string]string{"role": role})
}

// AdminUpdated logs an update to a dashboard admin account.
func (l *Logger) AdminUpdated(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID, fieldsChanged string) {
	var details map[string]string
	if fieldsChanged != "" {
		details = map[string]string{"fields_changed": fieldsChanged}
	}
	l.entityEvent(ctx, r, audit.EventAdminUpdated, actorID, "admin", targetID.Hex(), details)
}

// AdminDisabled logs disabling of a dashboard admin account.
func (l *Logger) AdminDisabled(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID) {
	l.entityEvent(ctx, r, audit.EventAdminDisabled, actorID, "admin", targetID.Hex(), nil)
}

// AdminEnabled logs re-enabling of a dashboard admin account.
func (l *Logger) AdminEnabled(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID) {
	l.entityEvent(ctx, r, audit.EventAdminEnabled, actorID, "admin", targetID.Hex(), nil)
}

// AdminDeleted logs deletion of a dashboard admin account.
func (l *Logger) AdminDeleted(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID) {
	l.entityEvent(ctx, r, audit.EventAdminDeleted, actorID, "admin", targetID.Hex(), nil)
}
