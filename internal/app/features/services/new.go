// internal/app/features/services/new.go
package services

import (
	"context"
	"net/http"
	"strconv"
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

// serviceInput defines validation rules for service create/edit forms.
type serviceInput struct {
	Title    string `validate:"required,max=200" label:"Title"`
	Category string `validate:"required,max=100" label:"Category"`
	PriceMin int    `validate:"gte=0" label:"Minimum price"`
	PriceMax int    `validate:"gte=0" label:"Maximum price"`
}

var serviceFieldKeys = map[string]string{
	"Title":    "title",
	"Category": "category",
	"PriceMin": "price_min",
	"PriceMax": "price_max",
}

func validateService(d forms.Draft) map[string]string {
	errs := map[string]string{}

	min, minErr := strconv.Atoi(strings.TrimSpace(d["price_min"]))
	if minErr != nil {
		errs["price_min"] = "Minimum price must be a number."
	}
	max, maxErr := strconv.Atoi(strings.TrimSpace(d["price_max"]))
	if maxErr != nil {
		errs["price_max"] = "Maximum price must be a number."
	}

	in := serviceInput{Title: d["title"], Category: d["category"], PriceMin: min, PriceMax: max}
	res := inputval.Validate(in)
	for _, fe := range res.Errors {
		key := serviceFieldKeys[fe.Field]
		if key == "" {
			key = fe.Field
		}
		if _, dup := errs[key]; !dup {
			errs[key] = fe.Message
		}
	}

	if minErr == nil && maxErr == nil && max < min {
		if _, dup := errs["price_max"]; !dup {
			errs["price_max"] = "Maximum price must not be below the minimum."
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func servicePayload(d forms.Draft) map[string]any {
	min, _ := strconv.Atoi(strings.TrimSpace(d["price_min"]))
	max, _ := strconv.Atoi(strings.TrimSpace(d["price_max"]))
	return map[string]any{
		"title":     d["title"],
		"category":  d["category"],
		"price_min": min,
		"price_max": max,
		"status":    d["status"],
	}
}

func draftFromForm(r *http.Request) forms.Draft {
	status := strings.TrimSpace(r.FormValue("status"))
	if status == "" {
		status = "active"
	}
	return forms.Draft{
		"title":     strings.TrimSpace(r.FormValue("title")),
		"category":  strings.TrimSpace(r.FormValue("category")),
		"price_min": strings.TrimSpace(r.FormValue("price_min")),
		"price_max": strings.TrimSpace(r.FormValue("price_max")),
		"status":    status,
	}
}

func formDataFromDraft(d forms.Draft) formData {
	return formData{
		SvcTitle: d["title"],
		Category: d["category"],
		PriceMin: d["price_min"],
		PriceMax: d["price_max"],
		Status:   d["status"],
	}
}

// ServeNew renders the "New Service" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Status: "active", PriceMin: "0", PriceMax: "0"}
	formutil.SetBase(&data.Base, r, "New Service", "/services")
	templates.Render(w, r, "service_new", data)
}

// HandleCreate processes the New Service form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse service form failed", err, "Invalid form submission.", "/services")
		return
	}

	draft := draftFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	dlg := forms.NewDialog(forms.Add, forms.Draft{"status": "active", "price_min": "0", "price_max": "0"})
	dlg.Open(nil)
	dlg.SetFields(draft)
	dlg.OnSuccess(func() { h.Lists.InvalidateAll(); h.Lists.RefetchSoon() })

	call := func(ctx context.Context) error {
		return h.API.Post(ctx, basePath, servicePayload(draft))
	}

	if err := dlg.Submit(ctx, validateService, call); err != nil {
		h.Log.Warn("create service rejected", zap.Error(err))
	}

	if dlg.Phase() != forms.Closed {
		data := formDataFromDraft(draft)
		formutil.SetBase(&data.Base, r, "New Service", "/services")
		data.SetFieldErrors(dlg.FieldErrors())
		if msg := dlg.GeneralError(); msg != "" {
			data.SetError(msg)
		}
		templates.Render(w, r, "service_new", data)
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.EntityCreated(ctx, r, actorID, "service", draft["title"])

	ret := navigation.SafeBackURL(r, navigation.ServicesBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
