// internal/app/features/services/edit.go
package services

import (
	"context"
	"net/http"
	"strconv"

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

// ServeEdit renders the "Edit Service" form seeded from the upstream
// record.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	s, err := upstream.Get[upstream.Service](ctx, h.API, basePath+"/"+id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "service not found", "That service no longer exists.", "/services")
		return
	}

	data := formData{
		ID:       s.ID,
		SvcTitle: s.Title,
		Category: s.Category,
		PriceMin: strconv.Itoa(s.PriceMin),
		PriceMax: strconv.Itoa(s.PriceMax),
		Status:   s.Status,
		IsEdit:   true,
	}
	formutil.SetBase(&data.Base, r, "Edit Service", "/services")
	templates.Render(w, r, "service_edit", data)
}

// HandleEdit processes the Edit Service form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse service form failed", err, "Invalid form submission.", "/services")
		return
	}

	draft := draftFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	dlg := forms.NewDialog(forms.Edit, nil)
	dlg.Open(draft)
	dlg.OnSuccess(func() { h.Lists.InvalidateAll(); h.Lists.RefetchSoon() })

	call := func(ctx context.Context) error {
		return h.API.Put(ctx, basePath+"/"+id, servicePayload(draft))
	}

	if err := dlg.Submit(ctx, validateService, call); err != nil {
		h.Log.Warn("edit service rejected", zap.String("service_id", id), zap.Error(err))
	}

	if dlg.Phase() != forms.Closed {
		data := formDataFromDraft(draft)
		data.ID = id
		data.IsEdit = true
		formutil.SetBase(&data.Base, r, "Edit Service", "/services")
		data.SetFieldErrors(dlg.FieldErrors())
		if msg := dlg.GeneralError(); msg != "" {
			data.SetError(msg)
		}
		templates.Render(w, r, "service_edit", data)
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.EntityUpdated(ctx, r, actorID, "service", id, "title,category,price_min,price_max,status")

	ret := navigation.SafeBackURL(r, navigation.ServicesBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
