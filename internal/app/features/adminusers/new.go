// internal/app/features/adminusers/new.go
package adminusers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/formutil"
	"github.com/caristo/adminhub/internal/app/system/inputval"
	"github.com/caristo/adminhub/internal/app/system/navigation"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/caristo/adminhub/internal/domain/models"
	adminstore "github.com/caristo/adminhub/internal/app/store/admins"
	"github.com/dalemusser/waffle/pantry/templates"
)

// createAdminInput defines validation rules for creating an admin
// account.
type createAdminInput struct {
	FullName string `validate:"required,max=200" label:"Full name"`
	Email    string `validate:"required,email,max=320" label:"Email"`
	Password string `validate:"required,min=12,max=128" label:"Password"`
}

// ServeNew renders the "New Admin User" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{AcctRole: models.RoleAdmin, Status: models.AdminStatusActive}
	formutil.SetBase(&data.Base, r, "New Admin User", "/admin-users")
	templates.Render(w, r, "admin_user_new", data)
}

// HandleCreate processes the New Admin User form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse admin form failed", err, "Invalid form submission.", "/admin-users")
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	acctRole := strings.TrimSpace(r.FormValue("role"))
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	renderWithErrors := func(errs map[string]string) {
		data := formData{FullName: fullName, Email: email, AcctRole: acctRole, Status: models.AdminStatusActive}
		formutil.SetBase(&data.Base, r, "New Admin User", "/admin-users")
		data.SetFieldErrors(errs)
		templates.Render(w, r, "admin_user_new", data)
	}

	input := createAdminInput{FullName: fullName, Email: email, Password: password}
	if result := inputval.Validate(input); result.HasErrors() {
		errs := map[string]string{}
		for _, fe := range result.Errors {
			key := map[string]string{"FullName": "full_name", "Email": "email", "Password": "password"}[fe.Field]
			if _, dup := errs[key]; !dup {
				errs[key] = fe.Message
			}
		}
		renderWithErrors(errs)
		return
	}
	if password != confirm {
		renderWithErrors(map[string]string{"password_confirm": "Passwords do not match."})
		return
	}
	if acctRole != models.RoleAdmin && acctRole != models.RoleSuperAdmin {
		renderWithErrors(map[string]string{"role": "Please choose a valid role."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, models.Admin{
		FullName: fullName,
		Email:    email,
		Role:     acctRole,
		Status:   models.AdminStatusActive,
	}, password)
	if err != nil {
		if errors.Is(err, adminstore.ErrDuplicateEmail) {
			renderWithErrors(map[string]string{"email": "An admin with that email already exists."})
			return
		}
		h.ErrLog.LogServerError(w, r, "create admin failed", err, "Unable to create admin user.", "/admin-users")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.AdminCreated(ctx, r, actorID, created.ID, created.Role)

	ret := navigation.SafeBackURL(r, navigation.AdminUsersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
