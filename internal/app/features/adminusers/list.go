// internal/app/features/adminusers/list.go
package adminusers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /admin-users (with optional ?q= search and
// ?status= filter). It supports HTMX partial refresh of the table when
// HX-Target="admins-table-wrap".
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, uname, _, _ := authz.UserCtx(r)

	page, _ := strconv.Atoi(query.Get(r, "page"))
	lq := listkit.NewQuery(query.Search(r, "q"), query.Get(r, "status")).WithPage(page)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	admins, meta, err := h.Store.List(ctx, lq)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list admins failed", err, "Unable to load admin users.", "")
		return
	}

	items := make([]listItem, 0, len(admins))
	for _, a := range admins {
		item := listItem{
			ID:         a.ID,
			FullName:   a.FullName,
			Email:      a.Email,
			Role:       a.Role,
			Status:     a.Status,
			Badge:      adminStatus.Lookup(a.Status),
			IsDisabled: !a.Enabled(),
		}
		if a.LastLoginAt != nil {
			item.LastLoginAt = a.LastLoginAt.Format("2006-01-02 15:04")
		}
		items = append(items, item)
	}

	data := listData{
		Title:       "Admin Users",
		IsLoggedIn:  true,
		Role:        role,
		UserName:    uname,
		Q:           lq.Search,
		DebounceMS:  int(listkit.Window().Milliseconds()),
		Status:      lq.Status,
		Items:       items,
		CurrentPath: httpnav.CurrentPath(r),

		Shown:      len(items),
		Total:      meta.Total,
		Page:       meta.Page,
		PrevPage:   meta.Page - 1,
		NextPage:   meta.Page + 1,
		HasPrev:    meta.HasPrev(),
		HasNext:    meta.HasNext(),
		RangeStart: meta.RangeStart(),
		RangeEnd:   meta.RangeEnd(),
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "admins-table-wrap" {
		templates.RenderSnippet(w, "admin_users_table", data)
		return
	}

	templates.Render(w, r, "admin_users_list", data)
}
