// internal/app/features/services/list.go
package services

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

// ServeList handles GET /services (with optional ?q= search and
// ?status= filter). It supports HTMX partial refresh of the table when
// HX-Target="services-table-wrap".
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, uname, _, _ := authz.UserCtx(r)

	page, _ := strconv.Atoi(query.Get(r, "page"))
	lq := listkit.NewQuery(query.Search(r, "q"), query.Get(r, "status")).WithPage(page)
	screen := h.screen(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// ?retry=1 comes from the error banner's Retry control and forces
	// a fresh fetch past the cache.
	var st listkit.State[upstream.Service]
	if query.Get(r, "retry") != "" {
		st = h.Lists.Refetch(ctx, lq)
	} else {
		st = h.Lists.Load(ctx, lq)
	}
	if st.Err != nil && len(st.Items) == 0 && !st.IsLoading {
		h.ErrLog.LogServerError(w, r, "load services failed", st.Err, "Unable to load services.", "")
		return
	}

	items := make([]listItem, 0, len(st.Items))
	for _, s := range st.Items {
		items = append(items, listItem{
			ID:       s.ID,
			SvcTitle: s.Title,
			Category: s.Category,
			PriceMin: s.PriceMin,
			PriceMax: s.PriceMax,
			Status:   s.Status,
			Badge:    badges.EntityStatus.Lookup(s.Status),
		})
	}

	data := listData{
		Title:       "Services",
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
		data.LoadError = "The last refresh failed. Showing previously loaded services."
	}
	if dlg := screen.Dialog("delete"); dlg != nil {
		data.ActionError = dlg.GeneralError()
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "services-table-wrap" {
		templates.RenderSnippet(w, "services_table", data)
		return
	}

	templates.Render(w, r, "services_list", data)
}
