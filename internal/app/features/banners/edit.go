// internal/app/features/banners/edit.go
package banners

import (
	"context"
	"net/http"
	"strings"

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

// ServeEdit renders the "Edit Banner" form seeded from the upstream
// record.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	b, err := upstream.Get[upstream.Banner](ctx, h.API, basePath+"/"+id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "banner not found", "That banner no longer exists.", "/banners")
		return
	}

	data := formData{
		ID:       b.ID,
		BTitle:   b.Title,
		LinkURL:  b.LinkURL,
		Status:   b.Status,
		ImageURL: b.ImageURL,
		IsEdit:   true,
	}
	formutil.SetBase(&data.Base, r, "Edit Banner", "/banners")
	templates.Render(w, r, "banner_edit", data)
}

// HandleEdit processes the Edit Banner form submission. The image is
// optional here; omitting it keeps the existing one.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(h.Limits.MaxBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse banner form failed", err, "Invalid form submission.", "/banners")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	linkURL := strings.TrimSpace(r.FormValue("link_url"))
	status := strings.TrimSpace(r.FormValue("status"))

	attach, imgErr := h.readUpload(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	dlg := forms.NewDialog(forms.Edit, nil)
	dlg.Open(forms.Draft{"title": title, "link_url": linkURL, "status": status})
	dlg.OnSuccess(func() { h.Lists.InvalidateAll(); h.Lists.RefetchSoon() })

	validate := func(d forms.Draft) map[string]string {
		errs := validateBanner(d)
		if imgErr != "" {
			if errs == nil {
				errs = map[string]string{}
			}
			errs["image"] = imgErr
		}
		return errs
	}

	call := func(ctx context.Context) error {
		fields := map[string]string{
			"title":    title,
			"link_url": linkURL,
			"status":   status,
		}
		return h.API.PutMultipart(ctx, basePath+"/"+id, fields, attach)
	}

	if err := dlg.Submit(ctx, validate, call); err != nil {
		h.Log.Warn("edit banner rejected", zap.String("banner_id", id), zap.Error(err))
	}

	if dlg.Phase() != forms.Closed {
		data := formData{ID: id, BTitle: title, LinkURL: linkURL, Status: status, IsEdit: true}
		formutil.SetBase(&data.Base, r, "Edit Banner", "/banners")
		data.SetFieldErrors(dlg.FieldErrors())
		if msg := dlg.GeneralError(); msg != "" {
			data.SetError(msg)
		}
		templates.Render(w, r, "banner_edit", data)
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.EntityUpdated(ctx, r, actorID, "banner", id, "title,link_url,status,image")

	ret := navigation.SafeBackURL(r, navigation.BannersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
