// internal/app/features/adminusers/handler.go
package adminusers

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	adminstore "github.com/caristo/adminhub/internal/app/store/admins"
	"github.com/caristo/adminhub/internal/app/system/auditlog"
)

// Handler owns the dashboard account management screens. Unlike the
// marketplace entities these live in the dashboard's own Mongo
// database, not behind the platform API.
type Handler struct {
	DB     *mongo.Database
	Store  *adminstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
}

// NewHandler constructs an Admin Users handler bound to the given
// Mongo database.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  adminstore.New(db),
		Log:    logger,
		ErrLog: errLog,
		Audit:  audit,
	}
}
