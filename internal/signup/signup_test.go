package signup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	validate := Username(3)

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "required"},
		{in: "  ", want: "required"},
		{in: "ab", want: "at least 3 characters"},
		{in: "a b", want: `' ' is not allowed`},
		{in: "zoë", want: ""},
		{in: "ada_l-1", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := validate(tt.in)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestAge(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "required"},
		{in: "abc", want: "must be a whole number"},
		{in: "-1", want: "must not be negative"},
		{in: "151", want: "must be at most 150"},
		{in: " 42 ", want: ""},
		{in: "0", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Age(tt.in)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestChecker_Check(t *testing.T) {
	c := NewChecker(0, "Admin", "root")
	ctx := context.Background()

	got := c.Check(ctx, "admin")
	require.NotNil(t, got)
	assert.Equal(t, "already taken", *got)

	assert.Nil(t, c.Check(ctx, "ada"))
	assert.Nil(t, c.Check(ctx, ""), "blank names are not looked up")
	assert.EqualValues(t, 2, c.Lookups())
}

func TestChecker_SharesConcurrentLookups(t *testing.T) {
	c := NewChecker(50*time.Millisecond, "root")

	var wg sync.WaitGroup
	results := make([]*string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.Check(context.Background(), "ROOT")
		}()
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
	}
	assert.Less(t, c.Lookups(), int64(len(results)))
}

func TestChecker_CancelledContext(t *testing.T) {
	c := NewChecker(time.Second, "root")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Nil(t, c.Check(ctx, "root"))
}
