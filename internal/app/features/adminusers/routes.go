// internal/app/features/adminusers/routes.go
package adminusers

import (
	"github.com/caristo/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Admin User routes under the base path (typically
// "/admin-users" from bootstrap). Account management is superadmin
// territory; plain admins never see these screens.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("superadmin"))

		// LIST
		pr.Get("/", h.ServeList)

		// CREATE
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)

		// EDIT
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/password", h.HandlePassword)

		// STATUS
		pr.Post("/{id}/disable", h.HandleDisable)
		pr.Post("/{id}/enable", h.HandleEnable)

		// DELETE
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
