// internal/app/features/adminusers/status.go
package adminusers

import (
	"context"
	"net/http"

	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/navigation"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/caristo/adminhub/internal/domain/models"
)

// HandleDisable handles POST /admin-users/{id}/disable. Operators
// cannot disable their own account; that would lock the last key in
// the drawer it opens.
func (h *Handler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.AdminStatusDisabled)
}

// HandleEnable handles POST /admin-users/{id}/enable.
func (h *Handler) HandleEnable(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.AdminStatusActive)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	a, ok := h.adminFromPath(w, r)
	if !ok {
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	if status == models.AdminStatusDisabled && actorID == a.ID {
		uierrors.RenderForbidden(w, r, "You cannot disable your own account.", "/admin-users")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Store.SetStatus(ctx, a.ID, status); err != nil {
		h.ErrLog.LogServerError(w, r, "set admin status failed", err, "Unable to update admin user.", "/admin-users")
		return
	}

	if status == models.AdminStatusDisabled {
		h.Audit.AdminDisabled(ctx, r, actorID, a.ID)
	} else {
		h.Audit.AdminEnabled(ctx, r, actorID, a.ID)
	}

	ret := navigation.SafeBackURL(r, navigation.AdminUsersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
