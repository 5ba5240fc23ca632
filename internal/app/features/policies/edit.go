// internal/app/features/policies/edit.go
package policies

import (
	"context"
	"net/http"
	"strings"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/forms"
	"github.com/caristo/adminhub/internal/app/system/formutil"
	"github.com/caristo/adminhub/internal/app/system/htmlsanitize"
	"github.com/caristo/adminhub/internal/app/system/inputval"
	"github.com/caristo/adminhub/internal/app/system/navigation"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/caristo/adminhub/internal/upstream"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// policyInput defines validation rules for the policy edit form.
type policyInput struct {
	Title string `validate:"required,max=200" label:"Title"`
	Body  string `validate:"required" label:"Body"`
}

func validatePolicy(d forms.Draft) map[string]string {
	in := policyInput{Title: d["title"], Body: d["body"]}
	res := inputval.Validate(in)
	if !res.HasErrors() {
		return nil
	}
	errs := make(map[string]string, len(res.Errors))
	for _, fe := range res.Errors {
		key := strings.ToLower(fe.Field)
		if _, dup := errs[key]; !dup {
			errs[key] = fe.Message
		}
	}
	return errs
}

// ServeEdit renders the "Edit Policy" form seeded with the raw body.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := upstream.Get[upstream.Policy](ctx, h.API, basePath+"/"+id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "policy not found", "That policy no longer exists.", "/policies")
		return
	}

	data := formData{
		ID:       p.ID,
		Slug:     p.Slug,
		PolTitle: p.Title,
		Body:     p.Body,
	}
	formutil.SetBase(&data.Base, r, "Edit Policy", "/policies")
	templates.Render(w, r, "policy_edit", data)
}

// HandleEdit processes the Edit Policy form submission. The body is
// sanitized before it leaves the dashboard so the platform never
// stores markup the marketplace site would refuse to render.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse policy form failed", err, "Invalid form submission.", "/policies")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	body := htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("body")))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	dlg := forms.NewDialog(forms.Edit, nil)
	dlg.Open(forms.Draft{"title": title, "body": body})
	dlg.OnSuccess(func() { h.Lists.InvalidateAll(); h.Lists.RefetchSoon() })

	call := func(ctx context.Context) error {
		return h.API.Put(ctx, basePath+"/"+id, map[string]string{
			"title": title,
			"body":  body,
		})
	}

	if err := dlg.Submit(ctx, validatePolicy, call); err != nil {
		h.Log.Warn("edit policy rejected", zap.String("policy_id", id), zap.Error(err))
	}

	if dlg.Phase() != forms.Closed {
		data := formData{ID: id, PolTitle: title, Body: body}
		formutil.SetBase(&data.Base, r, "Edit Policy", "/policies")
		data.SetFieldErrors(dlg.FieldErrors())
		if msg := dlg.GeneralError(); msg != "" {
			data.SetError(msg)
		}
		templates.Render(w, r, "policy_edit", data)
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.EntityUpdated(ctx, r, actorID, "policy", id, "title,body")

	ret := navigation.SafeBackURL(r, navigation.PoliciesBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
