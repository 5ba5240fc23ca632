// internal/app/features/policies/view.go
package policies

import (
	"context"
	"net/http"

	"github.com/caristo/adminhub/internal/app/system/badges"
	"github.com/caristo/adminhub/internal/app/system/formutil"
	"github.com/caristo/adminhub/internal/app/system/htmlsanitize"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/caristo/adminhub/internal/upstream"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeView renders a policy's detail page with its sanitized body.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := upstream.Get[upstream.Policy](ctx, h.API, basePath+"/"+id)
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "policy not found", "That policy no longer exists.", "/policies")
		return
	}

	data := viewData{
		ID:        p.ID,
		Slug:      p.Slug,
		PolTitle:  p.Title,
		Body:      htmlsanitize.PrepareForDisplay(p.Body),
		Status:    p.Status,
		UpdatedAt: p.UpdatedAt,
		Badge:     badges.EntityStatus.Lookup(p.Status),
	}
	formutil.SetBase(&data.Base, r, p.Title, "/policies")
	templates.Render(w, r, "policy_view", data)
}
