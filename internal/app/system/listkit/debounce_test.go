package listkit

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncer_BurstEmitsOnceWithLastValue(t *testing.T) {
	var mu sync.Mutex
	var got []string
	d := NewDebouncer(30*time.Millisecond, func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	defer d.Stop()

	d.Trigger("p")
	d.Trigger("pl")
	d.Trigger("plu")
	d.Trigger("plumbing")

	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("emitted %d times for one burst, want 1 (%v)", len(got), got)
	}
	if got[0] != "plumbing" {
		t.Errorf("emitted %q, want last value %q", got[0], "plumbing")
	}
}

func TestDebouncer_SeparateBurstsEmitSeparately(t *testing.T) {
	var mu sync.Mutex
	var got []string
	d := NewDebouncer(20*time.Millisecond, func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	defer d.Stop()

	d.Trigger("first")
	time.Sleep(80 * time.Millisecond)
	d.Trigger("second")
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("got %v, want [first second]", got)
	}
}

func TestDebouncer_FlushEmitsImmediately(t *testing.T) {
	var got string
	d := NewDebouncer(time.Hour, func(v string) { got = v })
	defer d.Stop()

	d.Trigger("pending")
	d.Flush()
	if got != "pending" {
		t.Errorf("flush emitted %q, want %q", got, "pending")
	}

	// Nothing pending: flush is a no-op.
	got = ""
	d.Flush()
	if got != "" {
		t.Errorf("empty flush emitted %q", got)
	}
}

func TestConfigureWindow(t *testing.T) {
	defer ConfigureWindow(DefaultDebounce)

	if Window() != DefaultDebounce {
		t.Errorf("default window is %v, want %v", Window(), DefaultDebounce)
	}

	ConfigureWindow(250 * time.Millisecond)
	if Window() != 250*time.Millisecond {
		t.Errorf("configured window is %v, want 250ms", Window())
	}

	// Non-positive values are ignored.
	ConfigureWindow(0)
	if Window() != 250*time.Millisecond {
		t.Errorf("zero window accepted, got %v", Window())
	}
}

func TestDebouncer_SupersededTimerDoesNotEmit(t *testing.T) {
	var mu sync.Mutex
	var got []string
	d := NewDebouncer(time.Hour, func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	defer d.Stop()

	// Simulate a timer that expired just as a new Trigger restarted the
	// quiet period: the expired timer carries the old generation and
	// must not emit the newer pending value.
	d.Trigger("first")
	stale := d.gen
	d.Trigger("second")
	d.fire(stale)

	mu.Lock()
	if len(got) != 0 {
		mu.Unlock()
		t.Fatalf("stale timer emitted %v", got)
	}
	mu.Unlock()

	// The current generation still emits normally.
	d.fire(d.gen)
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("got %v, want [second]", got)
	}
}

func TestDebouncer_StopSuppressesPending(t *testing.T) {
	fired := make(chan struct{}, 1)
	d := NewDebouncer(10*time.Millisecond, func(string) { fired <- struct{}{} })

	d.Trigger("x")
	d.Stop()

	select {
	case <-fired:
		t.Error("debouncer fired after Stop")
	case <-time.After(60 * time.Millisecond):
	}
}
