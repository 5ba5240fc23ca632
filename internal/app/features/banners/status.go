// internal/app/features/banners/status.go
package banners

import (
	"context"
	"net/http"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/navigation"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// HandleActivate handles POST /banners/{id}/activate.
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, "active")
}

// HandleDeactivate handles POST /banners/{id}/deactivate.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, "inactive")
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.API.Patch(ctx, basePath+"/"+id, map[string]string{"status": status}); err != nil {
		h.ErrLog.LogServerError(w, r, "update banner status failed", err, "Unable to update banner status.", "/banners")
		return
	}

	h.Lists.InvalidateAll()
	h.Lists.RefetchSoon()

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.StatusChanged(ctx, r, actorID, "banner", id, status)

	ret := navigation.SafeBackURL(r, navigation.BannersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
