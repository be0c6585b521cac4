package field

import "context"

// Validator checks a value synchronously. It returns nil when the value is
// valid. Validators must be pure and fast.
type Validator[T, E any] func(value T) *E

// AsyncValidator checks a value that may need slow or I/O-bound work.
// It returns nil when the value is valid.
//
// ctx is the controller's lifetime context. It is cancelled by
// Controller.Close, never by newer input.
type AsyncValidator[T, E any] func(ctx context.Context, value T) *E

// Invalid returns a pointer to e, for use as a validator result.
func Invalid[E any](e E) *E {
	return &e
}
