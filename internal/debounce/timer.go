package debounce

import (
	"sync"
	"time"
)

// Timer is a re-armable, cancellable scheduled callback.
// The zero value is ready to use.
type Timer struct {
	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	running    int
}

// New creates an idle timer.
func New() *Timer {
	return &Timer{}
}

// Schedule arms fn to run after delay, replacing any callback that has not
// started yet.
func (t *Timer) Schedule(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}

	t.generation++
	gen := t.generation
	t.timer = time.AfterFunc(delay, func() {
		t.fire(gen, fn)
	})
}

// Stop cancels the pending callback. It reports whether one was pending.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer == nil {
		return false
	}
	t.timer.Stop()
	t.timer = nil
	t.generation++
	return true
}

// Pending reports whether a callback is armed and has not started.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Busy reports whether a callback is armed or still running.
func (t *Timer) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil || t.running > 0
}

// fire runs fn unless it was superseded after the timer expired.
func (t *Timer) fire(gen uint64, fn func()) {
	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.running++
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running--
		t.mu.Unlock()
	}()

	// Trigger callback (outside lock)
	fn()
}
