// internal/app/features/banners/list.go
package banners

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

// queryFromRequest builds the list query from ?q=, ?status= and ?page=.
// The "all" status sentinel and blank search collapse to no filter.
func queryFromRequest(r *http.Request) listkit.Query {
	page, _ := strconv.Atoi(query.Get(r, "page"))
	return listkit.NewQuery(query.Search(r, "q"), query.Get(r, "status")).WithPage(page)
}

// ServeList handles GET /banners (with optional ?q= search and
// ?status= filter). It supports HTMX partial refresh of the table when
// HX-Target="banners-table-wrap".
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, uname, _, _ := authz.UserCtx(r)

	lq := queryFromRequest(r)
	screen := h.screen(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// ?retry=1 comes from the error banner's Retry control and forces
	// a fresh fetch past the cache.
	var st listkit.State[upstream.Banner]
	if query.Get(r, "retry") != "" {
		st = h.Lists.Refetch(ctx, lq)
	} else {
		st = h.Lists.Load(ctx, lq)
	}
	if st.Err != nil && len(st.Items) == 0 && !st.IsLoading {
		h.ErrLog.LogServerError(w, r, "load banners failed", st.Err, "Unable to load banners.", "")
		return
	}

	items := make([]listItem, 0, len(st.Items))
	for _, b := range st.Items {
		items = append(items, listItem{
			ID:       b.ID,
			Title:    b.Title,
			ImageURL: b.ImageURL,
			LinkURL:  b.LinkURL,
			Status:   b.Status,
			Badge:    badges.EntityStatus.Lookup(b.Status),
		})
	}

	data := listData{
		Title:       "Banners",
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
		// Stale rows stay visible; the banner tells the operator the
		// refresh failed until they retry.
		data.LoadError = "The last refresh failed. Showing previously loaded banners."
	}
	if dlg := screen.Dialog("delete"); dlg != nil {
		data.ActionError = dlg.GeneralError()
	}

	// HTMX partial: just the table
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "banners-table-wrap" {
		templates.RenderSnippet(w, "banners_table", data)
		return
	}

	templates.Render(w, r, "banners_list", data)
}
