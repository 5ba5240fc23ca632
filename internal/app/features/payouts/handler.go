// internal/app/features/payouts/handler.go
package payouts

import (
	"context"

	"go.uber.org/zap"

	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	"github.com/caristo/adminhub/internal/app/system/auditlog"
	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/app/system/uistate"
	"github.com/caristo/adminhub/internal/upstream"
)

const basePath = "/admin/payouts"

// Handler owns all admin-facing Payout handlers. Payouts are created
// by providers on the platform; the dashboard only inspects them and
// settles the requested ones.
type Handler struct {
	API    *upstream.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
	Lists  *listkit.Controller[upstream.Payout]
	UI     *uistate.Registry
}

// NewHandler constructs a Payouts handler bound to the upstream API.
func NewHandler(api *upstream.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, ui *uistate.Registry, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: errLog,
		Audit:  audit,
		UI:     ui,
	}
	h.Lists = listkit.NewController(func(ctx context.Context, q listkit.Query) ([]upstream.Payout, listkit.Meta, error) {
		return upstream.List[upstream.Payout](ctx, api, basePath, q)
	})
	return h
}
