// internal/app/features/payouts/markpaid.go
package payouts

import (
	"context"
	"net/http"

	"github.com/caristo/adminhub/internal/app/system/auth"
	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/forms"
	"github.com/caristo/adminhub/internal/app/system/navigation"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/caristo/adminhub/internal/app/system/uistate"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const screenName = "payouts"

func (h *Handler) screen(r *http.Request) *uistate.Screen {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return h.UI.Session("anonymous").Screen(screenName)
	}
	return h.UI.Session(u.ID).Screen(screenName)
}

// HandleMarkPaid settles a payout. Marking is a money movement, so the
// same single-submission guard as deletes applies: a repeat
// confirmation while the first is in flight never issues a second
// upstream request.
func (h *Handler) HandleMarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	screen := h.screen(r)
	dlg := screen.EnsureDialog("mark-paid",
		func(d *forms.Dialog) bool { return d.Draft()["id"] == id },
		func() *forms.Dialog {
			d := forms.NewDialog(forms.View, nil)
			d.Open(forms.Draft{"id": id})
			d.OnSuccess(func() { h.Lists.InvalidateAll(); h.Lists.RefetchSoon() })
			return d
		})

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ran, err := dlg.Confirm(ctx, func(ctx context.Context) error {
		return h.API.Post(ctx, basePath+"/"+id+"/mark-paid", nil)
	})
	switch {
	case err != nil:
		// Dialog stays open carrying the failure; the list page
		// surfaces it and a repeat confirm retries.
		h.Log.Warn("mark payout paid failed", zap.String("payout_id", id), zap.Error(err))
	case !ran:
		h.Log.Info("duplicate mark-paid ignored", zap.String("payout_id", id))
	default:
		screen.CloseDialog()
		_, _, actorID, _ := authz.UserCtx(r)
		h.Audit.PayoutMarkedPaid(ctx, r, actorID, id)
	}

	ret := navigation.SafeBackURL(r, navigation.PayoutsBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
