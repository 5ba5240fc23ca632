// internal/app/features/policies/routes.go
package policies

import (
	"github.com/caristo/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Policy routes under the base path (typically
// "/policies" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin", "superadmin"))

		// LIST
		pr.Get("/", h.ServeList)

		// VIEW
		pr.Get("/{id}/view", h.ServeView)

		// EDIT
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
	})

	return r
}
