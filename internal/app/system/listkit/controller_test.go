package listkit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type row struct {
	ID    string
	Title string
}

func metaFor(q Query, total int64) Meta {
	return ComputeMeta(q.Page, q.Limit, total)
}

func TestController_LoadCachesByKey(t *testing.T) {
	var calls int32
	fetch := func(ctx context.Context, q Query) ([]row, Meta, error) {
		atomic.AddInt32(&calls, 1)
		return []row{{ID: "1", Title: "a"}}, metaFor(q, 1), nil
	}
	c := NewController(fetch)
	q := NewQuery("", "")

	st := c.Load(context.Background(), q)
	if st.Err != nil || len(st.Items) != 1 {
		t.Fatalf("first load: %+v", st)
	}
	c.Load(context.Background(), q)
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("fetch called %d times for one key, want 1", n)
	}

	// A different page is a different key and triggers exactly one fetch.
	c.Load(context.Background(), q.WithPage(2))
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("fetch called %d times after page change, want 2", n)
	}
}

func TestController_CoalescesConcurrentLoads(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context, q Query) ([]row, Meta, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []row{{ID: "1"}}, metaFor(q, 1), nil
	}
	c := NewController(fetch)
	q := NewQuery("", "")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Load(context.Background(), q)
		}()
	}
	// Let the goroutines reach the controller before releasing the fetch.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("fetch called %d times for concurrent identical loads, want 1", n)
	}
}

func TestController_LastRequestWins(t *testing.T) {
	var call int32
	blockFirst := make(chan struct{})
	firstEntered := make(chan struct{})
	fetch := func(ctx context.Context, q Query) ([]row, Meta, error) {
		n := atomic.AddInt32(&call, 1)
		if n == 1 {
			close(firstEntered)
			<-blockFirst
			return []row{{ID: "old"}}, metaFor(q, 1), nil
		}
		return []row{{ID: "new"}}, metaFor(q, 1), nil
	}
	c := NewController(fetch)
	q := NewQuery("", "")

	done := make(chan struct{})
	go func() {
		c.Load(context.Background(), q)
		close(done)
	}()
	<-firstEntered

	// A forced refetch supersedes the in-flight request.
	st := c.Refetch(context.Background(), q)
	if len(st.Items) != 1 || st.Items[0].ID != "new" {
		t.Fatalf("refetch state: %+v", st)
	}

	// Now let the superseded request resolve late; its result must be
	// discarded, not applied over the newer rows.
	close(blockFirst)
	<-done

	st = c.Peek(q)
	if len(st.Items) != 1 || st.Items[0].ID != "new" {
		t.Errorf("stale result overwrote newer rows: %+v", st.Items)
	}
}

func TestController_StaleWhileError(t *testing.T) {
	var fail atomic.Bool
	fetch := func(ctx context.Context, q Query) ([]row, Meta, error) {
		if fail.Load() {
			return nil, Meta{}, errors.New("upstream unavailable")
		}
		return []row{{ID: "1", Title: "kept"}}, metaFor(q, 1), nil
	}
	c := NewController(fetch)
	q := NewQuery("", "")

	if st := c.Load(context.Background(), q); st.Err != nil {
		t.Fatalf("seed load failed: %v", st.Err)
	}

	fail.Store(true)
	st := c.Refetch(context.Background(), q)
	if st.Err == nil {
		t.Fatal("expected error state")
	}
	if len(st.Items) != 1 || st.Items[0].Title != "kept" {
		t.Errorf("previously loaded rows were cleared on error: %+v", st.Items)
	}
	if st.IsLoading {
		t.Error("IsLoading true for a key that already loaded once")
	}

	// Refetch is the recovery path; no automatic retry happens.
	fail.Store(false)
	st = c.Refetch(context.Background(), q)
	if st.Err != nil {
		t.Errorf("error not cleared after successful refetch: %v", st.Err)
	}
}

func TestController_MutationBurstRefetchesOnce(t *testing.T) {
	ConfigureWindow(25 * time.Millisecond)
	defer ConfigureWindow(DefaultDebounce)

	var calls int32
	fetch := func(ctx context.Context, q Query) ([]row, Meta, error) {
		atomic.AddInt32(&calls, 1)
		return []row{{ID: "1"}}, metaFor(q, 1), nil
	}
	c := NewController(fetch)
	q := NewQuery("", "")

	c.Load(context.Background(), q)

	// A run of rapid mutations invalidates and asks for a refresh each
	// time; the refreshes coalesce into one background fetch.
	for i := 0; i < 5; i++ {
		c.InvalidateAll()
		c.RefetchSoon()
	}
	time.Sleep(150 * time.Millisecond)

	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("fetch called %d times for a mutation burst, want 2", n)
	}

	// The background refetch warmed the cache, so the next render is a
	// cache hit.
	c.Load(context.Background(), q)
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("fetch called %d times after warmed load, want 2", n)
	}
}

func TestController_RefetchSoonBeforeAnyLoadIsNoop(t *testing.T) {
	ConfigureWindow(10 * time.Millisecond)
	defer ConfigureWindow(DefaultDebounce)

	var calls int32
	c := NewController(func(ctx context.Context, q Query) ([]row, Meta, error) {
		atomic.AddInt32(&calls, 1)
		return nil, metaFor(q, 0), nil
	})

	c.RefetchSoon()
	time.Sleep(60 * time.Millisecond)

	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("fetch called %d times with nothing loaded, want 0", n)
	}
}

func TestController_RetryClearsPersistedError(t *testing.T) {
	var calls int32
	var fail atomic.Bool
	fetch := func(ctx context.Context, q Query) ([]row, Meta, error) {
		atomic.AddInt32(&calls, 1)
		if fail.Load() {
			return nil, Meta{}, errors.New("boom")
		}
		return []row{{ID: "1", Title: "kept"}}, metaFor(q, 1), nil
	}
	c := NewController(fetch)
	q := NewQuery("", "")

	if st := c.Load(context.Background(), q); st.Err != nil {
		t.Fatalf("seed load failed: %v", st.Err)
	}

	fail.Store(true)
	if st := c.Refetch(context.Background(), q); st.Err == nil {
		t.Fatal("expected error state after failed refetch")
	}

	// Plain loads keep serving the stale rows and the error; they do
	// not retry on their own.
	st := c.Load(context.Background(), q)
	if st.Err == nil {
		t.Error("error dropped by a cache-hit load")
	}
	if len(st.Items) != 1 || st.Items[0].Title != "kept" {
		t.Errorf("stale rows lost: %+v", st.Items)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("fetch called %d times, want 2 (cache-hit load must not fetch)", n)
	}

	// The Retry control forces a refetch, which recovers the key.
	fail.Store(false)
	st = c.Refetch(context.Background(), q)
	if st.Err != nil {
		t.Errorf("error survived successful retry: %v", st.Err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("fetch called %d times, want 3", n)
	}
	if st = c.Load(context.Background(), q); st.Err != nil {
		t.Errorf("recovered key still reports error on load: %v", st.Err)
	}
}

func TestController_InvalidateForcesFetch(t *testing.T) {
	var calls int32
	fetch := func(ctx context.Context, q Query) ([]row, Meta, error) {
		atomic.AddInt32(&calls, 1)
		return nil, metaFor(q, 0), nil
	}
	c := NewController(fetch)
	q := NewQuery("", "active")

	c.Load(context.Background(), q)
	c.Load(context.Background(), q.WithPage(2))
	c.Invalidate(q.FilterKey())
	c.Load(context.Background(), q)
	c.Load(context.Background(), q.WithPage(2))

	if n := atomic.LoadInt32(&calls); n != 4 {
		t.Errorf("fetch called %d times, want 4 (both pages refetched after invalidation)", n)
	}
}

func TestController_TwelveItemsSinglePage(t *testing.T) {
	fetch := func(ctx context.Context, q Query) ([]row, Meta, error) {
		items := make([]row, 12)
		return items, Meta{Page: 1, Limit: 20, Total: 12, TotalPages: 1}, nil
	}
	c := NewController(fetch)

	st := c.Load(context.Background(), Query{Page: 1, Limit: 20})
	if st.Meta.HasNext() {
		t.Error("Next enabled with 12 items on a 20-item page")
	}
	if st.Meta.HasPrev() {
		t.Error("Previous enabled on page 1")
	}
}
