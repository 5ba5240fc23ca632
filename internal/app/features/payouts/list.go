// internal/app/features/payouts/list.go
package payouts

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/badges"
	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/caristo/adminhub/internal/upstream"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// canMarkPaid reports whether a payout in the given status can still
// be settled. Casing comes from upstream verbatim.
func canMarkPaid(status string) bool {
	switch status {
	case "requested", "processing":
		return true
	}
	return false
}

// parseDateRange reads ?from= and ?to= (YYYY-MM-DD). An unparseable or
// missing pair leaves the range unbounded. The To day is extended to
// its last instant so the window is inclusive.
func parseDateRange(r *http.Request) (*listkit.DateRange, string, string) {
	fromStr := strings.TrimSpace(query.Get(r, "from"))
	toStr := strings.TrimSpace(query.Get(r, "to"))
	if fromStr == "" || toStr == "" {
		return nil, fromStr, toStr
	}
	from, err1 := time.Parse("2006-01-02", fromStr)
	to, err2 := time.Parse("2006-01-02", toStr)
	if err1 != nil || err2 != nil {
		return nil, fromStr, toStr
	}
	to = to.Add(24*time.Hour - time.Nanosecond)
	return &listkit.DateRange{From: from, To: to}, fromStr, toStr
}

// ServeList handles GET /payouts (with optional ?q= search, ?status=
// and ?from=/?to= date filters). It supports HTMX partial refresh of
// the table when HX-Target="payouts-table-wrap".
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, uname, _, _ := authz.UserCtx(r)

	page, _ := strconv.Atoi(query.Get(r, "page"))
	dr, fromStr, toStr := parseDateRange(r)
	lq := listkit.NewQuery(query.Search(r, "q"), query.Get(r, "status")).
		WithDateRange(dr).
		WithPage(page)

	screen := h.screen(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// ?retry=1 comes from the error banner's Retry control and forces
	// a fresh fetch past the cache.
	var st listkit.State[upstream.Payout]
	if query.Get(r, "retry") != "" {
		st = h.Lists.Refetch(ctx, lq)
	} else {
		st = h.Lists.Load(ctx, lq)
	}
	if st.Err != nil && len(st.Items) == 0 && !st.IsLoading {
		h.ErrLog.LogServerError(w, r, "load payouts failed", st.Err, "Unable to load payouts.", "")
		return
	}

	items := make([]listItem, 0, len(st.Items))
	for _, p := range st.Items {
		items = append(items, listItem{
			ID:           p.ID,
			ProviderName: p.ProviderName,
			Amount:       p.Amount,
			Currency:     p.Currency,
			Status:       p.Status,
			RequestedAt:  p.RequestedAt,
			Badge:        badges.PayoutStatus.Lookup(p.Status),
			CanMarkPaid:  canMarkPaid(p.Status),
		})
	}

	data := listData{
		Title:       "Payouts",
		IsLoggedIn:  true,
		Role:        role,
		UserName:    uname,
		Q:           lq.Search,
		DebounceMS:  int(listkit.Window().Milliseconds()),
		Status:      lq.Status,
		From:        fromStr,
		To:          toStr,
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
		data.LoadError = "The last refresh failed. Showing previously loaded payouts."
	}
	if dlg := screen.Dialog("mark-paid"); dlg != nil {
		data.ActionError = dlg.GeneralError()
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "payouts-table-wrap" {
		templates.RenderSnippet(w, "payouts_table", data)
		return
	}

	templates.Render(w, r, "payouts_list", data)
}
