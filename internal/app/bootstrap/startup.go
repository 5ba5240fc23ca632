// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeout overrides applied from environment", zap.Int("count", n))
	}

	listkit.ConfigureWindow(time.Duration(appCfg.DebounceWindowMS) * time.Millisecond)

	logger.Info("local collections",
		zap.Int64("admins", collectionCount(ctx, deps.MongoDatabase, "admins")),
		zap.Int64("audit_events", collectionCount(ctx, deps.MongoDatabase, "audit_events")))
	return nil
}
