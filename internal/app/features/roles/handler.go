// internal/app/features/roles/handler.go
package roles

import (
	"context"

	"go.uber.org/zap"

	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	"github.com/caristo/adminhub/internal/app/system/auditlog"
	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/app/system/uistate"
	"github.com/caristo/adminhub/internal/upstream"
)

const basePath = "/admin/roles"

// Permissions a marketplace role can grant. The upstream API rejects
// anything outside this set.
var knownPermissions = []string{
	"bookings.read",
	"bookings.write",
	"services.read",
	"services.write",
	"providers.read",
	"providers.write",
	"payouts.read",
	"payouts.write",
	"reports.read",
}

// Handler owns all admin-facing Role handlers.
type Handler struct {
	API    *upstream.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
	Lists  *listkit.Controller[upstream.Role]
	UI     *uistate.Registry
}

// NewHandler constructs a Roles handler bound to the upstream API.
func NewHandler(api *upstream.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, ui *uistate.Registry, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: errLog,
		Audit:  audit,
		UI:     ui,
	}
	h.Lists = listkit.NewController(func(ctx context.Context, q listkit.Query) ([]upstream.Role, listkit.Meta, error) {
		return upstream.List[upstream.Role](ctx, api, basePath, q)
	})
	return h
}
