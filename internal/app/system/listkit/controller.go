package listkit

import (
	"context"
	"sync"
)

// FetchFunc loads one page of rows for a query. Implementations call
// the upstream API; they must be safe for concurrent use.
type FetchFunc[T any] func(ctx context.Context, q Query) ([]T, Meta, error)

// State is the snapshot a list screen renders from.
//
// IsLoading is true only before the first completed fetch for the
// query's key (show a skeleton). IsFetching is true whenever a fetch
// is in flight, including background refreshes (show stale rows with a
// busy indicator, and disable pagination controls). Err carries the
// last fetch failure without clearing previously loaded rows.
type State[T any] struct {
	Items      []T
	Meta       Meta
	IsLoading  bool
	IsFetching bool
	Err        error
}

// flight is one issued fetch. Waiters coalescing onto an in-flight
// fetch block on done instead of issuing a duplicate request.
type flight struct {
	seq  uint64
	done chan struct{}
}

type entry[T any] struct {
	filterKey string
	items     []T
	meta      Meta
	loaded    bool
	stale     bool
	err       error
	lastSeq   uint64 // newest sequence issued for this key
	inflight  *flight
}

// Controller is the paginated data controller behind a list screen.
// It owns a per-query-key cache of fetched pages and is the only
// writer to it; dialogs and other mutators request invalidation
// instead of touching cached rows.
//
// Ordering guarantee: every issued fetch carries a sequence number and
// only the newest issued request for a key may apply its result, so a
// superseded request resolving late can never overwrite newer rows
// (last-request-wins). Superseded requests are not cancelled; their
// results are simply discarded.
type Controller[T any] struct {
	mu      sync.Mutex
	fetch   FetchFunc[T]
	seq     uint64
	cache   map[string]*entry[T]
	lastQ   Query
	hasLast bool
	refresh *Debouncer[Query]
}

// NewController builds a controller around a fetch function.
func NewController[T any](fetch FetchFunc[T]) *Controller[T] {
	c := &Controller[T]{
		fetch: fetch,
		cache: make(map[string]*entry[T]),
	}
	c.refresh = NewDebouncer(Window(), func(q Query) {
		c.load(context.Background(), q, true)
	})
	return c
}

// Load returns the state for q, fetching if the key has never loaded
// or has been invalidated. A call that finds an identical fetch in
// flight waits for it rather than issuing a duplicate request.
func (c *Controller[T]) Load(ctx context.Context, q Query) State[T] {
	return c.load(ctx, q, false)
}

// Refetch forces a new fetch for q regardless of cache state. It is
// the sole recovery action after a failed fetch; the controller never
// retries on its own.
func (c *Controller[T]) Refetch(ctx context.Context, q Query) State[T] {
	return c.load(ctx, q, true)
}

// Invalidate marks every cached page of the given filter key stale, so
// the next Load fetches fresh rows. Mutation success paths call this
// through their screen's refetch callback.
func (c *Controller[T]) Invalidate(filterKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.cache {
		if e.filterKey == filterKey {
			e.stale = true
		}
	}
}

// InvalidateAll marks every cached page stale regardless of filter.
// Create and delete paths use this because they change row membership
// across every filter variant.
func (c *Controller[T]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.cache {
		e.stale = true
	}
}

// RefetchSoon schedules one background refetch of the most recently
// loaded query after the current burst of calls settles. Mutation
// success paths pair it with InvalidateAll so a run of rapid
// mutations costs a single upstream fetch instead of one each; the
// warmed cache then serves the next render.
func (c *Controller[T]) RefetchSoon() {
	c.mu.Lock()
	q, ok := c.lastQ, c.hasLast
	c.mu.Unlock()
	if !ok {
		return
	}
	c.refresh.Trigger(q)
}

// Peek returns the cached state for q without fetching.
func (c *Controller[T]) Peek(q Query) State[T] {
	q = q.Normalize()
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.cache[q.Key()]
	if !ok {
		return State[T]{IsLoading: true}
	}
	return snapshot(e)
}

func (c *Controller[T]) load(ctx context.Context, q Query, force bool) State[T] {
	q = q.Normalize()
	key := q.Key()

	c.mu.Lock()
	c.lastQ = q
	c.hasLast = true
	e, ok := c.cache[key]
	if !ok {
		e = &entry[T]{filterKey: q.FilterKey()}
		c.cache[key] = e
	}

	if !force {
		if e.loaded && !e.stale && e.inflight == nil {
			st := snapshot(e)
			c.mu.Unlock()
			return st
		}
		if e.inflight != nil {
			fl := e.inflight
			c.mu.Unlock()
			<-fl.done
			c.mu.Lock()
			st := snapshot(e)
			c.mu.Unlock()
			return st
		}
	}

	c.seq++
	fl := &flight{seq: c.seq, done: make(chan struct{})}
	e.lastSeq = fl.seq
	e.inflight = fl
	c.mu.Unlock()

	items, meta, err := c.fetch(ctx, q)

	c.mu.Lock()
	if e.inflight == fl {
		e.inflight = nil
	}
	if fl.seq == e.lastSeq {
		if err != nil {
			// Stale-while-error: keep the previous rows visible.
			e.err = err
		} else {
			e.items = items
			e.meta = meta.Reconcile()
			e.loaded = true
			e.stale = false
			e.err = nil
		}
	}
	st := snapshot(e)
	c.mu.Unlock()
	close(fl.done)
	return st
}

func snapshot[T any](e *entry[T]) State[T] {
	return State[T]{
		Items:      e.items,
		Meta:       e.meta,
		IsLoading:  !e.loaded,
		IsFetching: e.inflight != nil,
		Err:        e.err,
	}
}
