// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/caristo/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit log routes under the base path (typically
// "/audit-log" from bootstrap). The trail names other admins, so only
// superadmins may read it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("superadmin"))

		pr.Get("/", h.ServeList)
	})

	return r
}
