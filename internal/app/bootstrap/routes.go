// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminusersfeature "github.com/caristo/adminhub/internal/app/features/adminusers"
	auditlogfeature "github.com/caristo/adminhub/internal/app/features/auditlog"
	bannersfeature "github.com/caristo/adminhub/internal/app/features/banners"
	errorsfeature "github.com/caristo/adminhub/internal/app/features/errors"
	healthfeature "github.com/caristo/adminhub/internal/app/features/health"
	homefeature "github.com/caristo/adminhub/internal/app/features/home"
	loginfeature "github.com/caristo/adminhub/internal/app/features/login"
	logoutfeature "github.com/caristo/adminhub/internal/app/features/logout"
	payoutsfeature "github.com/caristo/adminhub/internal/app/features/payouts"
	policiesfeature "github.com/caristo/adminhub/internal/app/features/policies"
	rolesfeature "github.com/caristo/adminhub/internal/app/features/roles"
	servicesfeature "github.com/caristo/adminhub/internal/app/features/services"
	settingsfeature "github.com/caristo/adminhub/internal/app/features/settings"
	"github.com/caristo/adminhub/internal/app/store/audit"
	"github.com/caristo/adminhub/internal/app/system/auditlog"
	"github.com/caristo/adminhub/internal/app/system/auth"
	"github.com/caristo/adminhub/internal/app/system/uistate"
	"github.com/caristo/adminhub/internal/upstream"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. It initializes the session
// store and template engine, builds the shared upstream API client and
// audit logger, and mounts one subrouter per feature.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	// One upstream client and one audit logger are shared by every
	// feature handler.
	api := upstream.New(appCfg.APIURL, appCfg.APIToken, logger)
	auditLogger := auditlog.New(audit.New(deps.MongoDatabase), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	ui := uistate.NewRegistry()

	r := chi.NewRouter()

	// Global auth middleware: loads the signed-in admin into context so
	// handlers can use auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, api, logger)
	r.Mount("/healthz", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Landing page
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, errLog, auditLogger, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(auditLogger, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Marketplace entities (upstream API)
	limits := bannersfeature.UploadLimits{
		MaxBytes:    appCfg.UploadMaxBytes,
		MaxWidth:    appCfg.ImageMaxWidth,
		JPEGQuality: appCfg.ImageJPEGQuality,
	}
	bannersHandler := bannersfeature.NewHandler(api, errLog, auditLogger, ui, limits, logger)
	r.Mount("/banners", bannersfeature.Routes(bannersHandler))

	servicesHandler := servicesfeature.NewHandler(api, errLog, auditLogger, ui, logger)
	r.Mount("/services", servicesfeature.Routes(servicesHandler))

	rolesHandler := rolesfeature.NewHandler(api, errLog, auditLogger, ui, logger)
	r.Mount("/roles", rolesfeature.Routes(rolesHandler))

	payoutsHandler := payoutsfeature.NewHandler(api, errLog, auditLogger, ui, logger)
	r.Mount("/payouts", payoutsfeature.Routes(payoutsHandler))

	policiesHandler := policiesfeature.NewHandler(api, errLog, auditLogger, logger)
	r.Mount("/policies", policiesfeature.Routes(policiesHandler))

	settingsHandler := settingsfeature.NewHandler(api, errLog, auditLogger, logger)
	r.Mount("/settings", settingsfeature.Routes(settingsHandler))

	// Dashboard-local administration (Mongo)
	adminUsersHandler := adminusersfeature.NewHandler(deps.MongoDatabase, errLog, auditLogger, logger)
	r.Mount("/admin-users", adminusersfeature.Routes(adminUsersHandler))

	auditLogHandler := auditlogfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/audit-log", auditlogfeature.Routes(auditLogHandler))

	return r, nil
}
