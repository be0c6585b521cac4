package state

// Observable holds a single state value and notifies listeners when a new
// value is published.
type Observable[S any] interface {
	// Value returns the current state.
	Value() S

	// Update atomically transforms the current state. When fn reports
	// changed, its result becomes the current state and is published to
	// listeners. Update returns the state current after the call.
	//
	// fn runs while the container is locked and must not call back into it.
	Update(fn func(current S) (next S, changed bool)) S

	// OnChange registers a listener for published states and returns a
	// function that removes it.
	OnChange(listener func(S)) (unsubscribe func())
}

var _ Observable[int] = (*Store[int])(nil)
