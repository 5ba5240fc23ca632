// internal/app/features/payouts/routes.go
package payouts

import (
	"github.com/caristo/adminhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Payout routes under the base path (typically
// "/payouts" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin", "superadmin"))

		// LIST
		pr.Get("/", h.ServeList)
		pr.Post("/columns", h.HandleColumns)

		// VIEW
		pr.Get("/{id}/view", h.ServeView)

		// MARK PAID
		pr.Post("/{id}/mark-paid", h.HandleMarkPaid)
	})

	return r
}
