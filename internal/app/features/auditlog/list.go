// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/caristo/adminhub/internal/app/system/authz"
	"github.com/caristo/adminhub/internal/app/system/listkit"
	"github.com/caristo/adminhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

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

// ServeList handles GET /audit-log (with optional ?q= search,
// ?category= and ?from=/?to= date filters). It supports HTMX partial
// refresh of the table when HX-Target="audit-table-wrap". The query's
// status slot carries the event category.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, uname, _, _ := authz.UserCtx(r)

	page, _ := strconv.Atoi(query.Get(r, "page"))
	dr, fromStr, toStr := parseDateRange(r)
	lq := listkit.NewQuery(query.Search(r, "q"), query.Get(r, "category")).
		WithDateRange(dr).
		WithPage(page)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, meta, err := h.Store.List(ctx, lq)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list audit events failed", err, "Unable to load the audit log.", "")
		return
	}

	items := make([]listItem, 0, len(events))
	for _, e := range events {
		items = append(items, listItem{
			ID:            e.ID.Hex(),
			When:          e.Timestamp.Format("2006-01-02 15:04:05"),
			Category:      e.Category,
			EventType:     e.EventType,
			ActorEmail:    e.ActorEmail,
			Entity:        e.Entity,
			EntityID:      e.EntityID,
			IP:            e.IP,
			Success:       e.Success,
			FailureReason: e.FailureReason,
		})
	}

	data := listData{
		Title:       "Audit Log",
		IsLoggedIn:  true,
		Role:        role,
		UserName:    uname,
		Q:           lq.Search,
		DebounceMS:  int(listkit.Window().Milliseconds()),
		Category:    lq.Status,
		From:        fromStr,
		To:          toStr,
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

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "audit-table-wrap" {
		templates.RenderSnippet(w, "audit_log_table", data)
		return
	}

	templates.Render(w, r, "audit_log_list", data)
}
