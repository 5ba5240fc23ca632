// internal/app/features/settings/settings.go
package settings

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/forms"
	"github.com/caristo/adminhub/internal/app/system/formutil"
	"github.com/caristo/adminhub/internal/app/system/inputval"
	"github.com/caristo/adminhub/internal/app/system/navigation"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/caristo/adminhub/internal/upstream"
	"github.com/dalemusser/waffle/pantry/templates"
)

// formData is the view model for the settings form.
type formData struct {
	formutil.Base

	SupportEmail      string
	SupportPhone      string
	BookingWindowDays string
	MaintenanceMode   bool
	MaintenanceNotice string
}

// settingsInput defines validation rules for the settings form.
type settingsInput struct {
	SupportEmail string `validate:"required,email,max=320" label:"Support email"`
	SupportPhone string `validate:"max=40" label:"Support phone"`
}

var fieldKeys = map[string]string{
	"SupportEmail": "support_email",
	"SupportPhone": "support_phone",
}

func validateSettings(d forms.Draft) map[string]string {
	in := settingsInput{SupportEmail: d["support_email"], SupportPhone: d["support_phone"]}
	errs := map[string]string{}
	if res := inputval.Validate(in); res.HasErrors() {
		for _, fe := range res.Errors {
			key := fieldKeys[fe.Field]
			if _, dup := errs[key]; !dup {
				errs[key] = fe.Message
			}
		}
	}

	days, err := strconv.Atoi(d["booking_window_days"])
	if err != nil {
		errs["booking_window_days"] = "Booking window must be a number of days."
	} else if days < 1 || days > 365 {
		errs["booking_window_days"] = "Booking window must be between 1 and 365 days."
	}

	if d["maintenance_mode"] == "on" && strings.TrimSpace(d["maintenance_notice"]) == "" {
		errs["maintenance_notice"] = "A notice is required while maintenance mode is on."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ServeSettings renders the settings form seeded from the platform.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	s, err := upstream.Get[upstream.Settings](ctx, h.API, basePath)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load settings failed", err, "Unable to load platform settings.", "/")
		return
	}

	data := formData{
		SupportEmail:      s.SupportEmail,
		SupportPhone:      s.SupportPhone,
		BookingWindowDays: strconv.Itoa(s.BookingWindowDays),
		MaintenanceMode:   s.MaintenanceMode,
		MaintenanceNotice: s.MaintenanceNotice,
	}
	formutil.SetBase(&data.Base, r, "Platform Settings", "/")
	templates.Render(w, r, "settings_edit", data)
}

// HandleSettings processes the settings form submission.
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse settings form failed", err, "Invalid form submission.", "/settings")
		return
	}

	draft := forms.Draft{
		"support_email":       strings.TrimSpace(r.FormValue("support_email")),
		"support_phone":       strings.TrimSpace(r.FormValue("support_phone")),
		"booking_window_days": strings.TrimSpace(r.FormValue("booking_window_days")),
		"maintenance_mode":    r.FormValue("maintenance_mode"),
		"maintenance_notice":  strings.TrimSpace(r.FormValue("maintenance_notice")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	dlg := forms.NewDialog(forms.Edit, nil)
	dlg.Open(draft)

	call := func(ctx context.Context) error {
		days, _ := strconv.Atoi(draft["booking_window_days"])
		return h.API.Put(ctx, basePath, upstream.Settings{
			SupportEmail:      draft["support_email"],
			SupportPhone:      draft["support_phone"],
			BookingWindowDays: days,
			MaintenanceMode:   draft["maintenance_mode"] == "on",
			MaintenanceNotice: draft["maintenance_notice"],
		})
	}

	if err := dlg.Submit(ctx, validateSettings, call); err != nil {
		h.Log.Warn("settings update rejected", zap.Error(err))
	}

	if dlg.Phase() != forms.Closed {
		data := formData{
			SupportEmail:      draft["support_email"],
			SupportPhone:      draft["support_phone"],
			BookingWindowDays: draft["booking_window_days"],
			MaintenanceMode:   draft["maintenance_mode"] == "on",
			MaintenanceNotice: draft["maintenance_notice"],
		}
		formutil.SetBase(&data.Base, r, "Platform Settings", "/")
		data.SetFieldErrors(dlg.FieldErrors())
		if msg := dlg.GeneralError(); msg != "" {
			data.SetError(msg)
		}
		templates.Render(w, r, "settings_edit", data)
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.Audit.SettingsUpdated(ctx, r, actorID, "support_email,support_phone,booking_window_days,maintenance_mode,maintenance_notice")

	ret := navigation.SafeBackURL(r, navigation.SettingsBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
