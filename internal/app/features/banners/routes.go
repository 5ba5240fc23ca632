// internal/app/features/banners/routes.go
package banners

import (
	"github.com/caristo/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Banner routes under the base path (typically
// "/banners" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin", "superadmin"))

		// LIST
		pr.Get("/", h.ServeList)
		pr.Post("/columns", h.HandleColumns)

		// CREATE
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)

		// EDIT
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)

		// STATUS
		pr.Post("/{id}/activate", h.HandleActivate)
		pr.Post("/{id}/deactivate", h.HandleDeactivate)

		// DELETE
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
