// internal/app/features/payouts/view.go
package payouts

import (
	"context"
	"net/http"

	"github.com/caristo/adminhub/internal/app/system/badges"
	"github.com/caristo/adminhub/internal/app/system/formutil"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/caristo/adminhub/internal/upstream"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeView renders a payout's detail page.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := upstream.Get[upstream.Payout](ctx, h.API, basePath+"/"+id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "payout not found", "That payout no longer exists.", "/payouts")
		return
	}

	data := viewData{
		ID:           p.ID,
		ProviderID:   p.ProviderID,
		ProviderName: p.ProviderName,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Status:       p.Status,
		RequestedAt:  p.RequestedAt,
		PaidAt:       p.PaidAt,
		Badge:        badges.PayoutStatus.Lookup(p.Status),
		CanMarkPaid:  canMarkPaid(p.Status),
	}
	formutil.SetBase(&data.Base, r, "Payout Detail", "/payouts")
	templates.Render(w, r, "payout_view", data)
}
