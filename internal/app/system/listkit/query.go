// Package listkit is the shared list-controller core used by every
// management screen: a normalized list query, pagination metadata, a
// fetching controller with last-request-wins ordering, and a debouncer
// for coalescing bursts of filter changes or refetch triggers.
package listkit

import (
	"fmt"
	"strings"
	"time"
)

// AllSentinel is the select-control value meaning "no filter". The
// upstream API treats an empty string as unfiltered, not the literal
// word "all", so queries normalize the sentinel away before fetching.
const AllSentinel = "all"

// DefaultLimit is the page size used when a screen does not choose one.
const DefaultLimit = 20

// DateRange bounds a list query by a [From, To] window.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Query is the immutable value object a filter header produces and a
// fetch consumes. Construct with NewQuery and derive variants with the
// With* methods; never mutate in place.
type Query struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	SortBy    string
	DateRange *DateRange
}

// NewQuery returns a normalized query for the given filters, starting
// at page 1.
func NewQuery(search, status string) Query {
	return Query{
		Page:   1,
		Limit:  DefaultLimit,
		Search: strings.TrimSpace(search),
		Status: normalizeStatus(status),
	}
}

// Normalize clamps page/limit to their minimums and maps the "all"
// sentinel to the empty string.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Status = normalizeStatus(q.Status)
	return q
}

// WithPage returns a copy of the query on a different page. All other
// filters are preserved.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q.Normalize()
}

// WithFilters returns a copy with new search/status filters. The page
// resets to 1: a changed filter invalidates the current page position.
func (q Query) WithFilters(search, status string) Query {
	q.Search = search
	q.Status = status
	q.Page = 1
	return q.Normalize()
}

// WithDateRange returns a copy bounded by the given window, reset to
// page 1. A nil range clears the bound.
func (q Query) WithDateRange(dr *DateRange) Query {
	q.DateRange = dr
	q.Page = 1
	return q.Normalize()
}

// Key renders a stable cache key for the query. Two queries with equal
// filters and position share a key.
func (q Query) Key() string {
	q = q.Normalize()
	var dr string
	if q.DateRange != nil {
		dr = q.DateRange.From.UTC().Format(time.RFC3339) + ".." + q.DateRange.To.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("p=%d&l=%d&q=%s&s=%s&sort=%s&dr=%s",
		q.Page, q.Limit, q.Search, q.Status, q.SortBy, dr)
}

// FilterKey is Key without the page component, identifying the list a
// page belongs to. Invalidation operates on filter keys so that every
// cached page of a mutated list is refreshed.
func (q Query) FilterKey() string {
	return q.WithPage(1).Key()
}

func normalizeStatus(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, AllSentinel) {
		return ""
	}
	return s
}
