package listkit

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period a burst of edits must satisfy
// before a filter change is emitted.
const DefaultDebounce = 500 * time.Millisecond

var configuredWindow = DefaultDebounce

// ConfigureWindow sets the app-wide filter debounce window. Bootstrap
// calls this once from config; list screens read it back through
// Window when rendering their filter controls.
func ConfigureWindow(d time.Duration) {
	if d > 0 {
		configuredWindow = d
	}
}

// Window returns the configured filter debounce window.
func Window() time.Duration { return configuredWindow }

// Debouncer coalesces a burst of Trigger calls into a single emission
// carrying the last value, fired after a quiet period with no further
// triggers. Screens use one for filter propagation and one for
// coalescing refetch requests after rapid mutations.
type Debouncer[T any] struct {
	mu      sync.Mutex
	window  time.Duration
	emit    func(T)
	timer   *time.Timer
	gen     uint64 // bumped on every Trigger; stale timers must not emit
	pending T
	has     bool
	stopped bool
}

// NewDebouncer builds a debouncer with the given quiet period. A
// non-positive window falls back to DefaultDebounce.
func NewDebouncer[T any](window time.Duration, emit func(T)) *Debouncer[T] {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer[T]{window: window, emit: emit}
}

// Trigger records v as the pending value and restarts the quiet
// period. Exactly one emission results from any settled burst, and it
// carries the value of the last Trigger in the burst.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = v
	d.has = true
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// Flush emits any pending value immediately. Useful in tests and on
// screen teardown.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	v, ok := d.pending, d.has
	d.has = false
	d.mu.Unlock()
	if ok {
		d.emit(v)
	}
}

// Stop cancels any pending emission and ignores further triggers.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.has = false
}

// fire runs when a scheduled quiet period elapses. A Trigger racing a
// just-expired timer restarts the quiet period under a new generation,
// so a timer whose generation is stale must not emit: the pending
// value it would carry belongs to the newer schedule.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.has || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.has = false
	d.timer = nil
	d.mu.Unlock()
	d.emit(v)
}
