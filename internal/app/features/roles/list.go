// internal/app/features/roles/list.go
package roles

import (
	"context"
	"net/http"
	"strconv"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/badges"
	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/caristo/adminhub/internal/upstream"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /roles (with optional ?q= search and ?status=
// filter). It supports HTMX partial refresh of the table when
// HX-Target="roles-table-wrap".
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, uname, _, _ := authz.UserCtx(r)

	page, _ := strconv.Atoi(query.Get(r, "page"))
	lq := listkit.NewQuery(query.Search(r, "q"), query.Get(r, "status")).WithPage(page)
	screen := h.screen(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// ?retry=1 comes from the error banner's Retry control and forces
	// a fresh fetch past the cache.
	var st listkit.State[upstream.Role]
	if query.Get(r, "retry") != "" {
		st = h.Lists.Refetch(ctx, lq)
	} else {
		st = h.Lists.Load(ctx, lq)
	}
	if st.Err != nil && len(st.Items) == 0 && !st.IsLoading {
		h.ErrLog.LogServerError(w, r, "load roles failed", st.Err, "Unable to load roles.", "")
		return
	}

	items := make([]listItem, 0, len(st.Items))
	for _, rl := range st.Items {
		items = append(items, listItem{
			ID:          rl.ID,
			Name:        rl.Name,
			Description: rl.Description,
			Permissions: rl.Permissions,
			Status:      rl.Status,
			Badge:       badges.EntityStatus.Lookup(rl.Status),
		})
	}

	data := listData{
		Title:       "Roles",
		IsLoggedIn:  true,
		Role:        role,
		UserName:    uname,
		Q:           lq.Search,
		DebounceMS:  int(listkit.Window().Milliseconds()),
		Status:      lq.Status,
		Items:       items,
		Cols:        columnState(screen),
		CurrentPath: httpnav.CurrentPath(r),

		Shown:      len(items),
		Total:      st.Meta.Total,
		Page:       st.Meta.Page,
		PrevPage:   st.Meta.Page - 1,
		NextPage:   st.Meta.Page + 1,
		HasPrev:    st.Meta.HasPrev(),
		HasNext:    st.Meta.HasNext(),
		RangeStart: st.Meta.RangeStart(),
		RangeEnd:   st.Meta.RangeEnd(),
		IsFetching: st.IsFetching,
	}
	if st.Err != nil {
		data.LoadError = "The last refresh failed. Showing previously loaded roles."
	}
	if dlg := screen.Dialog("delete"); dlg != nil {
		data.ActionError = dlg.GeneralError()
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "roles-table-wrap" {
		templates.RenderSnippet(w, "roles_table", data)
		return
	}

	templates.Render(w, r, "roles_list", data)
}
