package signup

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/billie-coop/fieldstate/internal/field"
	"github.com/billie-coop/fieldstate/internal/logger"
	"golang.org/x/sync/singleflight"
)

// Checker simulates a remote username availability lookup. Concurrent checks
// for the same name share one lookup.
type Checker struct {
	group   singleflight.Group
	taken   map[string]struct{}
	latency time.Duration
	lookups atomic.Int64
	logger  *slog.Logger
}

// NewChecker creates a checker that answers after latency and treats taken
// names (case-insensitive) as unavailable.
func NewChecker(latency time.Duration, taken ...string) *Checker {
	c := &Checker{
		taken:   make(map[string]struct{}, len(taken)),
		latency: latency,
		logger:  logger.Discard(),
	}
	for _, name := range taken {
		c.taken[strings.ToLower(name)] = struct{}{}
	}
	return c
}

// SetLogger sets the logger for lookups.
func (c *Checker) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Lookups returns how many lookups actually ran.
func (c *Checker) Lookups() int64 {
	return c.lookups.Load()
}

// Check is a field.AsyncValidator. A cancelled context yields no error.
func (c *Checker) Check(ctx context.Context, name string) *string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		c.lookups.Add(1)
		time.Sleep(c.latency)
		_, taken := c.taken[key]
		return taken, nil
	})

	select {
	case <-ctx.Done():
		return nil
	case res := <-ch:
		c.logger.Debug("availability lookup",
			slog.String("name", key),
			slog.Bool("taken", res.Val.(bool)),
			slog.Bool("shared", res.Shared),
		)
		if res.Val.(bool) {
			return field.Invalid("already taken")
		}
		return nil
	}
}

var _ field.AsyncValidator[string, string] = (*Checker)(nil).Check
