// internal/app/features/adminusers/edit.go
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
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// editAdminInput defines validation rules for editing an admin
// account. Password changes go through the separate password form.
type editAdminInput struct {
	FullName string `validate:"required,max=200" label:"Full name"`
	Email    string `validate:"required,email,max=320" label:"Email"`
}

func (h *Handler) adminFromPath(w http.ResponseWriter, r *http.Request) (*models.Admin, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad admin id", err, "Invalid admin user.", "/admin-users")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Store.GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "admin not found", "That admin user no longer exists.", "/admin-users")
		return nil, false
	}
	return a, true
}

// ServeEdit renders the "Edit Admin User" form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	a, ok := h.adminFromPath(w, r)
	if !ok {
		return
	}

	data := formData{
		ID:       a.ID.Hex(),
		FullName: a.FullName,
		Email:    a.Email,
		AcctRole: a.Role,
		Status:   a.Status,
		IsEdit:   true,
	}
	formutil.SetBase(&data.Base, r, "Edit Admin User", "/admin-users")
	templates.Render(w, r, "admin_user_edit", data)
}

// HandleEdit processes the Edit Admin User form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	a, ok := h.adminFromPath(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse admin form failed", err, "Invalid form submission.", "/admin-users")
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	acctRole := strings.TrimSpace(r.FormValue("role"))

	renderWithErrors := func(errs map[string]string) {
		data := formData{ID: a.ID.Hex(), FullName: fullName, Email: email, AcctRole: acctRole, Status: a.Status, IsEdit: true}
		formutil.SetBase(&data.Base, r, "Edit Admin User", "/admin-users")
		data.SetFieldErrors(errs)
		templates.Render(w, r, "admin_user_edit", data)
	}

	input := editAdminInput{FullName: fullName, Email: email}
	if result := inputval.Validate(input); result.HasErrors() {
		errs := map[string]string{}
		for _, fe := range result.Errors {
			key := map[string]string{"FullName": "full_name", "Email": "email"}[fe.Field]
			if _, dup := errs[key]; !dup {
				errs[key] = fe.Message
			}
		}
		renderWithErrors(errs)
		return
	}
	if acctRole != models.RoleAdmin && acctRole != models.RoleSuperAdmin {
		renderWithErrors(map[string]string{"role": "Please choose a valid role."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Store.UpdateAdmin(ctx, a.ID, adminstore.Update{
		FullName: fullName,
		Email:    email,
		Role:     acctRole,
		Status:   a.Status,
	})
	if err != nil {
		if errors.Is(err, adminstore.ErrDuplicateEmail) {
			renderWithErrors(map[string]string{"email": "An admin with that email already exists."})
			return
		}
		h.ErrLog.LogServerError(w, r, "update admin failed", err, "Unable to update admin user.", "/admin-users")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.AdminUpdated(ctx, r, actorID, a.ID, "full_name,email,role")

	ret := navigation.SafeBackURL(r, navigation.AdminUsersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

// HandlePassword processes the password rotation form.
func (h *Handler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	a, ok := h.adminFromPath(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse password form failed", err, "Invalid form submission.", "/admin-users")
		return
	}

	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	renderWithErrors := func(errs map[string]string) {
		data := formData{ID: a.ID.Hex(), FullName: a.FullName, Email: a.Email, AcctRole: a.Role, Status: a.Status, IsEdit: true}
		formutil.SetBase(&data.Base, r, "Edit Admin User", "/admin-users")
		data.SetFieldErrors(errs)
		templates.Render(w, r, "admin_user_edit", data)
	}

	if len(password) < 12 || len(password) > 128 {
		renderWithErrors(map[string]string{"password": "Password must be between 12 and 128 characters."})
		return
	}
	if password != confirm {
		renderWithErrors(map[string]string{"password_confirm": "Passwords do not match."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Store.SetPassword(ctx, a.ID, password); err != nil {
		h.ErrLog.LogServerError(w, r, "set admin password failed", err, "Unable to change password.", "/admin-users")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.PasswordChanged(ctx, r, actorID, a.ID)

	ret := navigation.SafeBackURL(r, navigation.AdminUsersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
