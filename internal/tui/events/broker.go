package events

import (
	"sync"
)

// DefaultBufferSize is the per-subscriber channel buffer.
const DefaultBufferSize = 16

// Broker fans published values out to channel subscribers.
//
// Publish never blocks: a subscriber whose buffer is full misses the value.
// That suits UI state, where a later snapshot supersedes an earlier one.
type Broker[T any] struct {
	subscribers []chan T
	mu          sync.RWMutex
	bufferSize  int
}

// NewBroker creates a new broker. Sizes below 1 are raised to 1.
func NewBroker[T any](bufferSize int) *Broker[T] {
	return &Broker[T]{
		bufferSize: max(bufferSize, 1),
	}
}

// Subscribe creates a new subscription channel.
func (b *Broker[T]) Subscribe() <-chan T {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan T, b.bufferSize)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Unsubscribe removes and closes a subscription
func (b *Broker[T]) Unsubscribe(target <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, ch := range b.subscribers {
		if ch == target {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

// Publish sends value to all subscribers
func (b *Broker[T]) Publish(value T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- value:
		default:
			// Channel full, skip this value
		}
	}
}

// Len returns the number of subscribers.
func (b *Broker[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Clear closes and removes all subscriptions
func (b *Broker[T]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
}
