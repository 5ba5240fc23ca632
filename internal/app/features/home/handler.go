package home

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/dalemusser/waffle/pantry/templates"
)

// Handler serves the dashboard landing page.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// homeData is the view model for the landing page.
type homeData struct {
	Title        string
	IsLoggedIn   bool
	Role         string
	UserName     string
	CanManage    bool
	IsSuperAdmin bool
}

// ServeRoot handles GET /. Visitors are sent to the sign-in page; the
// landing page itself is just navigation into the feature screens.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	role, name, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := homeData{
		Title:        "Dashboard",
		IsLoggedIn:   true,
		Role:         role,
		UserName:     name,
		CanManage:    authz.IsAdmin(r),
		IsSuperAdmin: authz.IsSuperAdmin(r),
	}
	templates.Render(w, r, "home", data)
}
