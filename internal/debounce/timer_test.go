package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	delay   = 20 * time.Millisecond
	timeout = time.Second
	tick    = 2 * time.Millisecond
)

func TestTimer_CollapsesBurst(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []int
	)
	timer := New()

	for i := 1; i <= 5; i++ {
		timer.Schedule(delay, func() {
			mu.Lock()
			calls = append(calls, i)
			mu.Unlock()
		})
		time.Sleep(delay / 4)
	}
	assert.True(t, timer.Pending())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 1
	}, timeout, tick)

	// Nothing else should trickle in.
	time.Sleep(3 * delay)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, calls)
	assert.False(t, timer.Pending())
}

func TestTimer_Stop(t *testing.T) {
	var fired atomic.Bool
	timer := New()

	assert.False(t, timer.Stop(), "nothing pending on a fresh timer")

	timer.Schedule(delay, func() { fired.Store(true) })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Pending())

	assert.Never(t, fired.Load, 3*delay, tick)
}

func TestTimer_RunningCallbackIsNotInterrupted(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	timer := New()
	timer.Schedule(0, func() {
		close(started)
		<-release
		finished.Store(true)
	})

	<-started
	assert.False(t, timer.Pending())
	assert.True(t, timer.Busy())
	assert.False(t, timer.Stop(), "a running callback is no longer pending")

	close(release)
	assert.Eventually(t, finished.Load, timeout, tick)
	assert.Eventually(t, func() bool { return !timer.Busy() }, timeout, tick)
}

func TestTimer_StaleFireIsIgnored(t *testing.T) {
	var calls atomic.Int32
	timer := New()

	timer.Schedule(time.Hour, func() {})
	timer.Schedule(time.Hour, func() {})
	defer timer.Stop()

	// An expiry from the first generation lost the race with the second.
	timer.fire(1, func() { calls.Add(100) })
	assert.Zero(t, calls.Load())
	assert.True(t, timer.Pending())

	timer.fire(2, func() {
		calls.Add(1)
		assert.True(t, timer.Busy(), "busy while the callback runs")
	})
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, timer.Pending())
	assert.False(t, timer.Busy())
}
