// internal/app/features/logout/handler.go
package logout

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/caristo/adminhub/internal/app/system/auditlog"
	"github.com/caristo/adminhub/internal/app/system/auth"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
)

type Handler struct {
	Log   *zap.Logger
	Audit *auditlog.Logger
}

func NewHandler(audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:   logger,
		Audit: audit,
	}
}

// ServeLogout handles GET /logout. The session cookie is cleared even
// when the audit write fails.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	var id, email string
	if u, ok := auth.CurrentUser(r); ok {
		id, email = u.ID, u.Email
	}

	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("clear session failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	h.Audit.Logout(ctx, r, id, email)

	// HTMX requests get HX-Redirect so the browser performs a full
	// navigation instead of swapping the response into the page.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
