// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, CORS, and request body limits. AppConfig
// is everything specific to this dashboard: where the marketplace API
// lives, how to reach the local Mongo database, session cookies, audit
// logging, and upload handling.
type AppConfig struct {
	// Marketplace platform API
	APIURL   string // Base URL of the platform's admin REST API
	APIToken string // Bearer token for the service account

	// MongoDB connection configuration (dashboard-owned data only:
	// admin accounts and the audit trail)
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Audit logging: "all" (db+log), "db", "log", or "off"
	AuditLogAuth  string
	AuditLogAdmin string

	// Banner image uploads
	UploadMaxBytes   int64 // Reject files larger than this
	ImageMaxWidth    int   // Transcoded images are capped to this width
	ImageJPEGQuality int   // JPEG quality for transcoded images

	// Filter debounce window in milliseconds, rendered into the list
	// screens' search controls
	DebounceWindowMS int

	// Initial superadmin seeded on first start when the admins
	// collection is empty
	SuperAdminEmail    string
	SuperAdminPassword string
}
