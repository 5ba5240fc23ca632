// internal/app/features/banners/new.go
package banners

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/forms"
	"github.com/caristo/adminhub/internal/app/system/formutil"
	"github.com/caristo/adminhub/internal/app/system/imaging"
	"github.com/caristo/adminhub/internal/app/system/inputval"
	"github.com/caristo/adminhub/internal/app/system/navigation"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/caristo/adminhub/internal/upstream"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// bannerInput defines validation rules for banner create/edit forms.
type bannerInput struct {
	Title   string `validate:"required,max=200" label:"Title"`
	LinkURL string `validate:"max=500" label:"Link URL"`
}

// fieldKeys maps validated struct fields back onto form input names.
var fieldKeys = map[string]string{
	"Title":   "title",
	"LinkURL": "link_url",
}

func validateBanner(d forms.Draft) map[string]string {
	in := bannerInput{Title: d["title"], LinkURL: d["link_url"]}
	res := inputval.Validate(in)
	if !res.HasErrors() {
		return nil
	}
	errs := make(map[string]string, len(res.Errors))
	for _, fe := range res.Errors {
		key := fieldKeys[fe.Field]
		if key == "" {
			key = fe.Field
		}
		if _, dup := errs[key]; !dup {
			errs[key] = fe.Message
		}
	}
	return errs
}

// readUpload pulls the optional image file out of the multipart form
// and prepares it for upstream submission. A missing file yields a nil
// attachment; oversized files are rejected and decode/transcode
// failures come back as a field error message.
func (h *Handler) readUpload(r *http.Request) (*upstream.FileAttachment, string) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, ""
	}
	if err != nil {
		return nil, "Unable to read the uploaded image."
	}
	defer file.Close()

	if h.Limits.MaxBytes > 0 && header.Size > h.Limits.MaxBytes {
		return nil, "Image is too large."
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "Unable to read the uploaded image."
	}

	prepared, err := imaging.PrepareUpload(data, header.Header.Get("Content-Type"), h.Limits.MaxWidth, h.Limits.JPEGQuality)
	if err != nil {
		return nil, "Image could not be processed. Please upload a JPEG, PNG, or GIF."
	}

	name := header.Filename
	if prepared.Transcoded {
		name = "banner.jpg"
	}
	return &upstream.FileAttachment{
		Field:       "image",
		Filename:    name,
		ContentType: prepared.ContentType,
		Data:        prepared.Data,
	}, ""
}

// ServeNew renders the "New Banner" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Status: "active"}
	formutil.SetBase(&data.Base, r, "New Banner", "/banners")
	templates.Render(w, r, "banner_new", data)
}

// HandleCreate processes the New Banner form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Limits.MaxBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse banner form failed", err, "Invalid form submission.", "/banners")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	linkURL := strings.TrimSpace(r.FormValue("link_url"))
	status := strings.TrimSpace(r.FormValue("status"))
	if status == "" {
		status = "active"
	}

	attach, imgErr := h.readUpload(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	dlg := forms.NewDialog(forms.Add, forms.Draft{"status": "active"})
	dlg.Open(nil)
	dlg.SetFields(forms.Draft{"title": title, "link_url": linkURL, "status": status})
	dlg.OnSuccess(func() { h.Lists.InvalidateAll(); h.Lists.RefetchSoon() })

	validate := func(d forms.Draft) map[string]string {
		errs := validateBanner(d)
		if attach == nil && imgErr == "" {
			imgErr = "Please choose a banner image."
		}
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
		return h.API.PostMultipart(ctx, basePath, fields, attach)
	}

	if err := dlg.Submit(ctx, validate, call); err != nil {
		h.Log.Warn("create banner rejected", zap.Error(err))
	}

	if dlg.Phase() != forms.Closed {
		data := formData{BTitle: title, LinkURL: linkURL, Status: status}
		formutil.SetBase(&data.Base, r, "New Banner", "/banners")
		data.SetFieldErrors(dlg.FieldErrors())
		if msg := dlg.GeneralError(); msg != "" {
			data.SetError(msg)
		}
		templates.Render(w, r, "banner_new", data)
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.EntityCreated(ctx, r, actorID, "banner", title)

	ret := navigation.SafeBackURL(r, navigation.BannersBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
