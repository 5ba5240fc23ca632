// internal/app/features/roles/edit.go
package roles

import (
	"context"
	"net/http"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/forms"
	"github.com/caristo/adminhub/internal/app/system/formutil"
	"github.com/caristo/adminhub/internal/app/system/navigation"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/caristo/adminhub/internal/upstream"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeEdit renders the "Edit Role" form seeded from the upstream
// record.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rl, err := upstream.Get[upstream.Role](ctx, h.API, basePath+"/"+id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "role not found", "That role no longer exists.", "/roles")
		return
	}

	data := formData{
		ID:          rl.ID,
		Name:        rl.Name,
		Description: rl.Description,
		Permissions: permissionOptions(rl.Permissions),
		IsEdit:      true,
	}
	formutil.SetBase(&data.Base, r, "Edit Role", "/roles")
	templates.Render(w, r, "role_edit", data)
}

// HandleEdit processes the Edit Role form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse role form failed", err, "Invalid form submission.", "/roles")
		return
	}

	draft := roleDraftFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	dlg := forms.NewDialog(forms.Edit, nil)
	dlg.Open(draft)
	dlg.OnSuccess(func() { h.Lists.InvalidateAll(); h.Lists.RefetchSoon() })

	call := func(ctx context.Context) error {
		return h.API.Put(ctx, basePath+"/"+id, rolePayload(draft))
	}

	if err := dlg.Submit(ctx, validateRole, call); err != nil {
		h.Log.Warn("edit role rejected", zap.String("role_id", id), zap.Error(err))
	}

	if dlg.Phase() != forms.Closed {
		data := formData{
			ID:          id,
			Name:        draft["name"],
			Description: draft["description"],
			Permissions: permissionOptions(splitPermissions(draft["permissions"])),
			IsEdit:      true,
		}
		formutil.SetBase(&data.Base, r, "Edit Role", "/roles")
		data.SetFieldErrors(dlg.FieldErrors())
		if msg := dlg.GeneralError(); msg != "" {
			data.SetError(msg)
		}
		templates.Render(w, r, "role_edit", data)
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.EntityUpdated(ctx, r, actorID, "role", id, "name,description,permissions")

	ret := navigation.SafeBackURL(r, navigation.RolesBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
