package field

import (
	"context"
	"log/slog"
	"time"

	"github.com/billie-coop/fieldstate/internal/debounce"
	"github.com/billie-coop/fieldstate/internal/logger"
	"github.com/billie-coop/fieldstate/internal/state"
	"github.com/google/uuid"
)

// DefaultDebounce is the quiet period before an async validation runs.
const DefaultDebounce = 300 * time.Millisecond

// Controller manages the state of one form field.
//
// Its methods are safe to call from multiple goroutines; snapshots are
// published in call order for synchronous operations. The async validation
// result is published from a background goroutine and may land before or
// after operations issued after it was scheduled.
type Controller[T, E any] struct {
	id     string
	obs    state.Observable[State[T, E]]
	logger *slog.Logger

	validator      Validator[T, E]
	asyncValidator AsyncValidator[T, E]
	debounce       time.Duration

	timer *debounce.Timer

	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Controller.
type Option[T, E any] func(*Controller[T, E])

// WithValidator sets the synchronous validator. Without one every value is valid.
func WithValidator[T, E any](v Validator[T, E]) Option[T, E] {
	return func(c *Controller[T, E]) {
		c.validator = v
	}
}

// WithAsyncValidator sets the debounced asynchronous validator.
func WithAsyncValidator[T, E any](v AsyncValidator[T, E]) Option[T, E] {
	return func(c *Controller[T, E]) {
		c.asyncValidator = v
	}
}

// WithDebounce sets the async validation quiet period. Negative durations
// are treated as zero.
func WithDebounce[T, E any](d time.Duration) Option[T, E] {
	return func(c *Controller[T, E]) {
		c.debounce = max(d, 0)
	}
}

// WithObservable publishes snapshots through a host-supplied container
// instead of a private state.Store. The initial snapshot is published into it.
func WithObservable[T, E any](obs state.Observable[State[T, E]]) Option[T, E] {
	return func(c *Controller[T, E]) {
		c.obs = obs
	}
}

// WithLogger sets the logger for transition and validation diagnostics.
func WithLogger[T, E any](logger *slog.Logger) Option[T, E] {
	return func(c *Controller[T, E]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a controller holding initial with no error and all flags off.
func New[T, E any](initial T, opts ...Option[T, E]) *Controller[T, E] {
	return Resume(NewState[T, E](initial), opts...)
}

// Resume creates a controller whose initial snapshot is snapshot, such as a
// draft restored from a persistent store.
func Resume[T, E any](snapshot State[T, E], opts ...Option[T, E]) *Controller[T, E] {
	c := &Controller[T, E]{
		id:       uuid.NewString(),
		debounce: DefaultDebounce,
		timer:    debounce.New(),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.logger = c.logger.With(slog.String("field", c.id))

	if c.obs == nil {
		c.obs = state.NewStore(snapshot)
	} else {
		c.obs.Update(func(State[T, E]) (State[T, E], bool) { return snapshot, true })
	}

	return c
}

// ID returns the controller's unique identifier.
func (c *Controller[T, E]) ID() string { return c.id }

// State returns the current snapshot.
func (c *Controller[T, E]) State() State[T, E] { return c.obs.Value() }

// Observable returns the container snapshots are published through.
func (c *Controller[T, E]) Observable() state.Observable[State[T, E]] { return c.obs }

// OnChange subscribes to published snapshots.
func (c *Controller[T, E]) OnChange(listener func(State[T, E])) (unsubscribe func()) {
	return c.obs.OnChange(listener)
}

// SetValue sets the field value unless the field is read-only.
//
// With autovalidate on, the synchronous validator decides the new error;
// otherwise the previous error is kept. A configured async validator is
// (re)scheduled for value.
func (c *Controller[T, E]) SetValue(value T) {
	c.setValue(value, false)
}

// ForceSetValue sets the field value even when the field is read-only.
func (c *Controller[T, E]) ForceSetValue(value T) {
	c.setValue(value, true)
}

func (c *Controller[T, E]) setValue(value T, force bool) {
	applied := false
	c.obs.Update(func(cur State[T, E]) (State[T, E], bool) {
		if cur.readOnly && !force {
			return cur, false
		}
		applied = true

		// Armed before the snapshot is published so listeners already see
		// Validating() == true.
		if c.asyncValidator != nil && c.ctx.Err() == nil {
			c.timer.Schedule(c.debounce, func() { c.runAsync(value) })
		}

		next := cur.withValue(value)
		if cur.autovalidate {
			next = next.withError(c.runValidator(value))
		}
		return next, true
	})

	if !applied {
		c.logger.Debug("ignoring value change on read-only field")
	}
}

// ValueSetter returns SetValue as a function, or nil when the field is
// read-only.
func (c *Controller[T, E]) ValueSetter() func(T) {
	if c.obs.Value().readOnly {
		return nil
	}
	return c.SetValue
}

// SetError sets the field error without running any validator.
func (c *Controller[T, E]) SetError(err E) {
	c.publish(func(s State[T, E]) State[T, E] { return s.withError(&err) })
}

// ClearErrors removes the field error.
func (c *Controller[T, E]) ClearErrors() {
	c.publish(func(s State[T, E]) State[T, E] { return s.withError(nil) })
}

// Validate runs the synchronous validator against the current value and
// publishes its error, if any. A passing validator leaves any existing error
// in place. Validate reports whether the resulting state has no error.
func (c *Controller[T, E]) Validate() bool {
	next := c.obs.Update(func(cur State[T, E]) (State[T, E], bool) {
		err := c.runValidator(cur.value)
		if err == nil {
			return cur, false
		}
		return cur.withError(err), true
	})
	return next.IsValid()
}

// SetAutovalidate turns validation on value change on or off.
func (c *Controller[T, E]) SetAutovalidate(on bool) {
	c.publish(func(s State[T, E]) State[T, E] { return s.withAutovalidate(on) })
}

// SetEditedManually stores the manual edit flag.
func (c *Controller[T, E]) SetEditedManually(on bool) {
	c.publish(func(s State[T, E]) State[T, E] { return s.withEditedManually(on) })
}

// MarkReadOnly blocks value changes that are not forced.
func (c *Controller[T, E]) MarkReadOnly() {
	c.publish(func(s State[T, E]) State[T, E] { return s.withReadOnly(true) })
}

// UnmarkReadOnly allows value changes again.
func (c *Controller[T, E]) UnmarkReadOnly() {
	c.publish(func(s State[T, E]) State[T, E] { return s.withReadOnly(false) })
}

// Validating reports whether an async validation is scheduled, running, or
// about to publish its result.
func (c *Controller[T, E]) Validating() bool {
	return c.timer.Busy()
}

// Close cancels any scheduled async validation and the context passed to
// the async validator. Results of validations still running are dropped.
// The field keeps its last state and remains usable synchronously.
func (c *Controller[T, E]) Close() {
	c.timer.Stop()
	c.cancel()
	c.logger.Debug("field closed")
}

func (c *Controller[T, E]) publish(transform func(State[T, E]) State[T, E]) {
	c.obs.Update(func(cur State[T, E]) (State[T, E], bool) {
		return transform(cur), true
	})
}

func (c *Controller[T, E]) runValidator(value T) *E {
	if c.validator == nil {
		return nil
	}
	return c.validator(value)
}

// runAsync runs on the debounce goroutine.
func (c *Controller[T, E]) runAsync(value T) {
	if c.ctx.Err() != nil {
		return
	}

	result, ok := c.callAsync(value)
	if !ok {
		return
	}
	if c.ctx.Err() != nil {
		c.logger.Debug("dropping async validation result, field closed")
		return
	}

	// The error lands on whatever state is current now, not necessarily the
	// one holding value.
	c.publish(func(s State[T, E]) State[T, E] { return s.withError(result) })
	c.logger.Debug("async validation applied", slog.Bool("valid", result == nil))
}

func (c *Controller[T, E]) callAsync(value T) (result *E, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("async validator panicked", slog.Any("panic", r))
			result, ok = nil, false
		}
	}()

	return c.asyncValidator(c.ctx, value), true
}
