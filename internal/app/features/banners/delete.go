// internal/app/features/banners/delete.go
package banners

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

const screenName = "banners"

// screen resolves the signed-in operator's banners screen state.
func (h *Handler) screen(r *http.Request) *uistate.Screen {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return h.UI.Session("anonymous").Screen(screenName)
	}
	return h.UI.Session(u.ID).Screen(screenName)
}

// HandleDelete confirms and performs a banner delete. Repeat
// confirmations while the first is still in flight never issue a
// second upstream request.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	screen := h.screen(r)
	dlg := screen.EnsureDialog("delete",
		func(d *forms.Dialog) bool { return d.Draft()["id"] == id },
		func() *forms.Dialog {
			d := forms.NewDialog(forms.Delete, nil)
			d.Open(forms.Draft{"id": id})
			d.OnSuccess(func() { h.Lists.InvalidateAll(); h.Lists.RefetchSoon() })
			return d
		})

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ran, err := dlg.ConfirmDelete(ctx, func(ctx context.Context) error {
		return h.API.Delete(ctx, basePath+"/"+id)
	})
	switch {
	case err != nil:
		// Dialog stays open carrying the failure; the list page
		// surfaces it and a repeat confirm retries.
		h.Log.Warn("delete banner failed", zap.String("banner_id", id), zap.Error(err))
	case !ran:
		h.Log.Info("duplicate banner delete ignored", zap.String("banner_id", id))
	default:
		screen.CloseDialog()
		_, _, actorID, _ := authz.UserCtx(r)
		h.Audit.EntityDeleted(ctx, r, actorID, "banner", id)
	}

	ret := navigation.SafeBackURL(r, navigation.BannersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
