// Package csync provides thread-safe concurrent data structures.
//
// The map here is guarded by a read-write mutex so that readers (snapshot
// delivery) never block each other while writers (subscribe and unsubscribe)
// get exclusive access.
//
// Example usage:
//
//	listeners := csync.NewMap[uint64, func(int)]()
//	listeners.Set(1, func(v int) { fmt.Println(v) })
//	if l, ok := listeners.Get(1); ok {
//		l(42)
//	}
//
// All operations are safe to call concurrently from multiple goroutines.
package csync
