// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the dashboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_url, mongo_uri, session_name, etc.
//   - Environment variables: ADMINHUB_API_URL, ADMINHUB_MONGO_URI, etc.
//   - Command-line flags: --api_url, --mongo_uri, etc.
var appConfigKeys = []config.AppKey{
	// Marketplace platform API
	{Name: "api_url", Default: "http://localhost:4000", Desc: "Base URL of the marketplace admin API"},
	{Name: "api_token", Default: "", Desc: "Bearer token for the marketplace admin API"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "adminhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "adminhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Banner image uploads
	{Name: "upload_max_bytes", Default: 10485760, Desc: "Maximum accepted upload size in bytes"},
	{Name: "image_max_width", Default: 1280, Desc: "Maximum width for transcoded banner images"},
	{Name: "image_jpeg_quality", Default: 80, Desc: "JPEG quality for transcoded banner images (1-100)"},

	// List screens
	{Name: "debounce_window", Default: 500, Desc: "Filter debounce window in milliseconds"},

	// SuperAdmin bootstrap
	{Name: "superadmin_email", Default: "", Desc: "Email of the initial superadmin (created on first start)"},
	{Name: "superadmin_password", Default: "", Desc: "Password of the initial superadmin (created on first start)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// WAFFLE's config.LoadWithAppConfig handles .env files, config
// files, environment variables (WAFFLE_* for core, ADMINHUB_* for
// app), and command-line flags, merging with precedence:
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ADMINHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIURL:   appValues.String("api_url"),
		APIToken: appValues.String("api_token"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		UploadMaxBytes:   int64(appValues.Int("upload_max_bytes")),
		ImageMaxWidth:    appValues.Int("image_max_width"),
		ImageJPEGQuality: appValues.Int("image_jpeg_quality"),

		DebounceWindowMS: appValues.Int("debounce_window"),

		SuperAdminEmail:    appValues.String("superadmin_email"),
		SuperAdminPassword: appValues.String("superadmin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation. It runs
// before any backends connect, so configuration mistakes surface as a
// clear startup error instead of a failed request later.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	u, err := url.Parse(appCfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q is not an absolute URL", appCfg.APIURL)
	}

	if appCfg.ImageJPEGQuality < 1 || appCfg.ImageJPEGQuality > 100 {
		return fmt.Errorf("image_jpeg_quality must be between 1 and 100, got %d", appCfg.ImageJPEGQuality)
	}

	if coreCfg.Env == "prod" && appCfg.APIToken == "" {
		return fmt.Errorf("api_token is required in production")
	}

	return nil
}
