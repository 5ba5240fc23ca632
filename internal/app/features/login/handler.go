// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/caristo/adminhub/internal/app/features/errors"
	adminstore "github.com/caristo/adminhub/internal/app/store/admins"
	"github.com/caristo/adminhub/internal/app/system/auditlog"
	"github.com/caristo/adminhub/internal/app/system/auth"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
)

// Handler owns the sign-in screen for dashboard admins.
type Handler struct {
	DB     *mongo.Database
	Store  *adminstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
}

// NewHandler constructs a Login handler bound to the given Mongo
// database.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  adminstore.New(db),
		Log:    logger,
		ErrLog: errLog,
		Audit:  audit,
	}
}

// loginData is the view model for the sign-in page.
type loginData struct {
	Title string
	Email string
	Error string
}

// ServeLogin renders the sign-in form. Signed-in admins are sent to
// the dashboard.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login", loginData{Title: "Sign in"})
}

// HandleLogin verifies the email/password pair and opens a session.
// All outcomes are audited; the page never says which of the email or
// password was wrong.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form submission.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	fail := func(msg string) {
		templates.Render(w, r, "login", loginData{Title: "Sign in", Email: email, Error: msg})
	}

	if email == "" || password == "" {
		fail("Enter your email and password.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Store.Authenticate(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, adminstore.ErrNotFound):
			h.Audit.LoginFailedUserNotFound(ctx, r, email)
		case errors.Is(err, adminstore.ErrBadPassword):
			h.Audit.LoginFailedWrongPassword(ctx, r, email)
		case errors.Is(err, adminstore.ErrAccountLocked):
			h.Audit.LoginFailedUserDisabled(ctx, r, email)
			fail("This account has been disabled.")
			return
		default:
			h.ErrLog.LogServerError(w, r, "authenticate failed", err, "Unable to sign in right now.", "/login")
			return
		}
		fail("Email or password is incorrect.")
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:    a.ID.Hex(),
		Name:  a.FullName,
		Email: a.Email,
		Role:  a.Role,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "open session failed", err, "Unable to sign in right now.", "/login")
		return
	}

	if err := h.Store.TouchLogin(ctx, a.ID); err != nil {
		h.Log.Warn("record login time failed", zap.String("admin_id", a.ID.Hex()), zap.Error(err))
	}
	h.Audit.LoginSuccess(ctx, r, a.ID, a.Email)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
