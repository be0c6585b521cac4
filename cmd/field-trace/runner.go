package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/billie-coop/fieldstate/internal/field"
)

// settlePoll is how often Run checks for a pending async validation at the
// end of a script.
const settlePoll = 5 * time.Millisecond

// Emission is one output line.
type Emission struct {
	Seq   int                         `json:"seq"`
	State field.State[string, string] `json:"state"`
}

// Runner drives a string field with a script and writes every snapshot as
// a JSON line.
type Runner struct {
	ctrl   *field.Controller[string, string]
	logger *slog.Logger

	mu  sync.Mutex
	enc *json.Encoder
	seq int
	err error
}

func nonEmpty(v string) *string {
	if v == "" {
		return field.Invalid("required")
	}
	return nil
}

func rejectTaken(_ context.Context, v string) *string {
	if v == "taken" {
		return field.Invalid("already taken")
	}
	return nil
}

// NewRunner creates a runner whose field rejects empty values synchronously
// and the value "taken" asynchronously.
func NewRunner(out io.Writer, debounce time.Duration, logger *slog.Logger) *Runner {
	r := &Runner{
		enc:    json.NewEncoder(out),
		logger: logger,
	}
	r.ctrl = field.New[string, string]("",
		field.WithValidator[string, string](nonEmpty),
		field.WithAsyncValidator[string, string](rejectTaken),
		field.WithDebounce[string, string](debounce),
		field.WithLogger[string, string](logger),
	)
	r.ctrl.OnChange(r.emit)
	return r
}

func (r *Runner) emit(s field.State[string, string]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	if err := r.enc.Encode(Emission{Seq: r.seq, State: s}); err != nil && r.err == nil {
		r.err = fmt.Errorf("write snapshot: %w", err)
	}
}

// Run applies steps in order, then waits for a pending async validation so
// its snapshot is printed too. The field is closed on return.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	defer r.ctrl.Close()

	for _, step := range steps {
		if err := r.apply(ctx, step); err != nil {
			return err
		}
	}

	for r.ctrl.Validating() {
		if err := sleep(ctx, settlePoll); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Runner) apply(ctx context.Context, step Step) error {
	c := r.ctrl
	r.logger.Debug("step", slog.Int("line", step.Line), slog.String("op", string(step.Op)))

	switch step.Op {
	case OpSet:
		c.SetValue(step.Arg)
	case OpForce:
		c.ForceSetValue(step.Arg)
	case OpValidate:
		valid := c.Validate()
		r.logger.Info("validate", slog.Int("line", step.Line), slog.Bool("valid", valid))
	case OpAutovalidate:
		c.SetAutovalidate(step.On)
	case OpReadOnly:
		if step.On {
			c.MarkReadOnly()
		} else {
			c.UnmarkReadOnly()
		}
	case OpClear:
		c.ClearErrors()
	case OpError:
		c.SetError(step.Arg)
	case OpEdited:
		c.SetEditedManually(step.On)
	case OpWait:
		return sleep(ctx, step.Wait)
	default:
		return fmt.Errorf("line %d: %w: %q", step.Line, ErrUnknownCommand, step.Op)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
