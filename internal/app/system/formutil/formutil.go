// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
// - Any field-scoped errors keyed for inline display
//
// This package provides a Base struct that can be embedded in form data structs
// to handle the common fields, and helper functions to populate them.
//
// Example usage:
//
//	type bannerFormData struct {
//		formutil.Base
//		Title    string
//		LinkURL  string
//	}
//
//	// In your handler:
//	data := bannerFormData{Title: title, LinkURL: link}
//	formutil.SetBase(&data.Base, r, "Add Banner", "/banners")
//	data.SetError("Title is required.")
//	templates.Render(w, r, "banner_new", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"

	"github.com/caristo/adminhub/internal/app/system/authz"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	BackURL     string
	CurrentPath string
	Error       template.HTML
	FieldErrors map[string]string
}

// SetBase populates the common Base fields from the request context.
// It extracts the signed-in admin from authz.UserCtx and sets navigation fields.
//
// Parameters:
//   - b: pointer to the Base struct to populate
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	role, uname, _, _ := authz.UserCtx(r)
	b.Title = title
	b.IsLoggedIn = true
	b.Role = role
	b.UserName = uname
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
}

// SetError sets the error message on a Base struct.
// This is a convenience method for setting Error as template.HTML.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(msg)
}

// SetFieldErrors attaches a field-keyed error map for inline display and,
// when no general error is set, promotes the map's presence to a generic
// message so the banner area is never silently empty.
func (b *Base) SetFieldErrors(errs map[string]string) {
	b.FieldErrors = errs
	if b.Error == "" && len(errs) > 0 {
		b.Error = template.HTML("Please correct the highlighted fields.")
	}
}

// FieldError returns the error for one field, or "" when the field is clean.
func (b *Base) FieldError(field string) string {
	return b.FieldErrors[field]
}
