// internal/app/features/settings/routes.go
package settings

import (
	"github.com/caristo/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the settings routes under the base path (typically
// "/settings" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin", "superadmin"))

		pr.Get("/", h.ServeSettings)
		pr.Post("/", h.HandleSettings)
	})

	return r
}
