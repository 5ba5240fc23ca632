// internal/app/features/banners/handler.go
package banners

import (
	"context"

	"go.uber.org/zap"

	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	"github.com/caristo/adminhub/internal/app/system/auditlog"
	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/app/system/uistate"
	"github.com/caristo/adminhub/internal/upstream"
)

const basePath = "/admin/banners"

// UploadLimits bounds banner image uploads.
type UploadLimits struct {
	// MaxBytes is the largest accepted upload; larger files are rejected
	// before any image work happens.
	MaxBytes int64
	// MaxWidth and JPEGQuality drive the transcode applied to files over
	// the transcode threshold.
	MaxWidth    int
	JPEGQuality int
}

// Handler is the feature-level entry point for Banners.
type Handler struct {
	API    *upstream.Client
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
	Lists  *listkit.Controller[upstream.Banner]
	UI     *uistate.Registry
	Limits UploadLimits
}

// NewHandler constructs a Banners handler bound to the upstream API.
func NewHandler(api *upstream.Client, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, ui *uistate.Registry, limits UploadLimits, logger *zap.Logger) *Handler {
	h := &Handler{
		API:    api,
		Log:    logger,
		ErrLog: errLog,
		Audit:  audit,
		UI:     ui,
		Limits: limits,
	}
	h.Lists = listkit.NewController(func(ctx context.Context, q listkit.Query) ([]upstream.Banner, listkit.Meta, error) {
		return upstream.List[upstream.Banner](ctx, api, basePath, q)
	})
	return h
}
