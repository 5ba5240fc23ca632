package listkit

// Meta is the pagination metadata returned alongside a page of rows.
// TotalPages is always ceil(Total/Limit); ComputeMeta enforces the
// invariant when the upstream response omits or miscomputes it.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ComputeMeta builds Meta from raw counts, deriving TotalPages and
// clamping Page into [1, TotalPages].
func ComputeMeta(page, limit int, total int64) Meta {
	if limit < 1 {
		limit = DefaultLimit
	}
	if total < 0 {
		total = 0
	}
	m := Meta{Page: page, Limit: limit, Total: total}
	m.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	m.Page = m.clampPage(page)
	return m
}

// Reconcile fills in a missing TotalPages and clamps Page. Upstream
// responses are trusted for counts but not for derived fields.
func (m Meta) Reconcile() Meta {
	return ComputeMeta(m.Page, m.Limit, m.Total)
}

func (m Meta) clampPage(page int) int {
	if page < 1 {
		return 1
	}
	if m.TotalPages > 0 && page > m.TotalPages {
		return m.TotalPages
	}
	return page
}

// HasPrev reports whether a previous page exists. The Previous control
// is disabled exactly when this is false.
func (m Meta) HasPrev() bool { return m.Page > 1 }

// HasNext reports whether a further page exists. The Next control is
// disabled exactly when this is false.
func (m Meta) HasNext() bool { return m.Page < m.TotalPages }

// RangeStart is the 1-based index of the first row on this page, or 0
// when the list is empty.
func (m Meta) RangeStart() int {
	if m.Total == 0 {
		return 0
	}
	return (m.Page-1)*m.Limit + 1
}

// RangeEnd is the 1-based index of the last row on this page, or 0
// when the list is empty.
func (m Meta) RangeEnd() int {
	if m.Total == 0 {
		return 0
	}
	end := m.Page * m.Limit
	if int64(end) > m.Total {
		return int(m.Total)
	}
	return end
}
