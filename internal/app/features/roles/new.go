// internal/app/features/roles/new.go
package roles

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/forms"
	"github.com/caristo/adminhub/internal/app/system/formutil"
	"github.com/caristo/adminhub/internal/app/system/inputval"
	"github.com/caristo/adminhub/internal/app/system/navigation"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// roleInput defines validation rules for role create/edit forms.
type roleInput struct {
	Name        string `validate:"required,max=100" label:"Role name"`
	Description string `validate:"max=500" label:"Description"`
}

func validateRole(d forms.Draft) map[string]string {
	in := roleInput{Name: d["name"], Description: d["description"]}
	res := inputval.Validate(in)
	errs := map[string]string{}
	for _, fe := range res.Errors {
		key := strings.ToLower(fe.Field)
		if _, dup := errs[key]; !dup {
			errs[key] = fe.Message
		}
	}
	for _, p := range splitPermissions(d["permissions"]) {
		if !slices.Contains(knownPermissions, p) {
			errs["permissions"] = "Unknown permission: " + p
			break
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// splitPermissions decodes the comma-joined permission list a draft
// carries. Drafts hold strings only, so the checkbox values are joined
// on the way in and split here.
func splitPermissions(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func permissionOptions(granted []string) []permissionOption {
	out := make([]permissionOption, 0, len(knownPermissions))
	for _, p := range knownPermissions {
		out = append(out, permissionOption{Key: p, Granted: slices.Contains(granted, p)})
	}
	return out
}

func roleDraftFromForm(r *http.Request) forms.Draft {
	return forms.Draft{
		"name":        strings.TrimSpace(r.FormValue("name")),
		"description": strings.TrimSpace(r.FormValue("description")),
		"permissions": strings.Join(r.Form["permissions"], ","),
	}
}

func rolePayload(d forms.Draft) map[string]any {
	return map[string]any{
		"name":        d["name"],
		"description": d["description"],
		"permissions": splitPermissions(d["permissions"]),
	}
}

// ServeNew renders the "New Role" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Permissions: permissionOptions(nil)}
	formutil.SetBase(&data.Base, r, "New Role", "/roles")
	templates.Render(w, r, "role_new", data)
}

// HandleCreate processes the New Role form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse role form failed", err, "Invalid form submission.", "/roles")
		return
	}

	draft := roleDraftFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	dlg := forms.NewDialog(forms.Add, nil)
	dlg.Open(nil)
	dlg.SetFields(draft)
	dlg.OnSuccess(func() { h.Lists.InvalidateAll(); h.Lists.RefetchSoon() })

	call := func(ctx context.Context) error {
		return h.API.Post(ctx, basePath, rolePayload(draft))
	}

	if err := dlg.Submit(ctx, validateRole, call); err != nil {
		h.Log.Warn("create role rejected", zap.Error(err))
	}

	if dlg.Phase() != forms.Closed {
		data := formData{
			Name:        draft["name"],
			Description: draft["description"],
			Permissions: permissionOptions(splitPermissions(draft["permissions"])),
		}
		formutil.SetBase(&data.Base, r, "New Role", "/roles")
		data.SetFieldErrors(dlg.FieldErrors())
		if msg := dlg.GeneralError(); msg != "" {
			data.SetError(msg)
		}
		templates.Render(w, r, "role_new", data)
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.EntityCreated(ctx, r, actorID, "role", draft["name"])

	ret := navigation.SafeBackURL(r, navigation.RolesBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
