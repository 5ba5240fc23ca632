// internal/app/features/auditlog/handler.go
package auditlog

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	"github.com/caristo/adminhub/internal/app/store/audit"
)

// Handler owns the read-only audit trail screen. Events are recorded
// locally by the audit logger; nothing here talks to the platform API.
type Handler struct {
	DB     *mongo.Database
	Store  *audit.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs an Audit Log handler bound to the given Mongo
// database.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  audit.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}
