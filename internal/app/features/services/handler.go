// internal/app/features/services/handler.go
package services

import (
	"context"

	"go.uber.org/zap"

	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	"github.com/caristo/adminhub/internal/app/system/auditlog"
	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/app/system/uistate"
	"github.com/caristo/adminhub/internal/upstream"
)

const basePath = "/admin/services"

// Handler owns all admin-facing Services handlers.
type Handler struct {
	API    *upstream.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
	Lists  *listkit.Controller[upstream.Service]
	UI     *uistate.Registry
}

// NewHandler constructs a Services handler bound to the upstream API.
func NewHandler(api *upstream.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, ui *uistate.Registry, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: errLog,
		Audit:  audit,
		UI:     ui,
	}
	h.Lists = listkit.NewController(func(ctx context.Context, q listkit.Query) ([]upstream.Service, listkit.Meta, error) {
		return upstream.List[upstream.Service](ctx, api, basePath, q)
	})
	return h
}
