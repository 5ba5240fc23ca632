// internal/app/features/policies/handler.go
package policies

import (
	"context"

	"go.uber.org/zap"

	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	"github.com/caristo/adminhub/internal/app/system/auditlog"
	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/upstream"
)

const basePath = "/admin/policies"

// Handler owns all admin-facing Policy handlers. Policies are the
// marketplace's public legal documents (terms, privacy, cancellation
// rules); the dashboard edits their HTML bodies.
type Handler struct {
	API    *upstream.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
	Lists  *listkit.Controller[upstream.Policy]
}

// NewHandler constructs a Policies handler bound to the upstream API.
func NewHandler(api *upstream.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: errLog,
		Audit:  audit,
	}
	h.Lists = listkit.NewController(func(ctx context.Context, q listkit.Query) ([]upstream.Policy, listkit.Meta, error) {
		return upstream.List[upstream.Policy](ctx, api, basePath, q)
	})
	return h
}
