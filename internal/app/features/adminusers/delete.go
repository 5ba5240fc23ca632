// internal/app/features/adminusers/delete.go
package adminusers

import (
	"context"
	"net/http"

	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/navigation"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
)

// HandleDelete removes an admin account. Self-deletion is refused for
// the same reason self-disable is.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	a, ok := h.adminFromPath(w, r)
	if !ok {
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	if actorID == a.ID {
		uierrors.RenderForbidden(w, r, "You cannot delete your own account.", "/admin-users")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Store.Delete(ctx, a.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "delete admin failed", err, "Unable to delete admin user.", "/admin-users")
		return
	}

	h.Audit.AdminDeleted(ctx, r, actorID, a.ID)

	ret := navigation.SafeBackURL(r, navigation.AdminUsersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
