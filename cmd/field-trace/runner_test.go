package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/billie-coop/fieldstate/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Value          string  `json:"value"`
	Error          *string `json:"error"`
	Autovalidate   bool    `json:"autovalidate"`
	ReadOnly       bool    `json:"read_only"`
	EditedManually bool    `json:"edited_manually"`
}

type line struct {
	Seq   int      `json:"seq"`
	State snapshot `json:"state"`
}

func run(t *testing.T, script string) []line {
	t.Helper()

	steps, err := ParseScript(strings.NewReader(script))
	require.NoError(t, err)

	var out bytes.Buffer
	r := NewRunner(&out, 10*time.Millisecond, logger.Discard())
	require.NoError(t, r.Run(context.Background(), steps))

	var lines []line
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var l line
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &l))
		lines = append(lines, l)
	}
	return lines
}

func TestRunner_AutovalidateAndAsync(t *testing.T) {
	lines := run(t, "autovalidate on\nset\nset taken\n")

	// An extra async snapshot for "" appears only if the steps straddle the
	// debounce window.
	require.GreaterOrEqual(t, len(lines), 4)
	for i, l := range lines {
		assert.Equal(t, i+1, l.Seq)
	}

	assert.True(t, lines[0].State.Autovalidate)

	require.NotNil(t, lines[1].State.Error)
	assert.Equal(t, "required", *lines[1].State.Error)

	assert.Equal(t, "taken", lines[2].State.Value)
	assert.Nil(t, lines[2].State.Error, "sync validator passes")

	last := lines[len(lines)-1]
	require.NotNil(t, last.State.Error)
	assert.Equal(t, "already taken", *last.State.Error)
}

func TestRunner_ReadOnly(t *testing.T) {
	lines := run(t, "readonly on\nset blocked\nforce forced\nreadonly off\nset free\nwait 30ms\n")

	// readonly, force, readonly off, set, async(free), plus async(forced) if
	// it was not superseded in time.
	require.GreaterOrEqual(t, len(lines), 5)
	values := make([]string, 0, len(lines))
	for _, l := range lines {
		values = append(values, l.State.Value)
	}
	assert.NotContains(t, values, "blocked")
	assert.Equal(t, "free", lines[len(lines)-1].State.Value)
}

func TestRunner_ErrorsAndFlags(t *testing.T) {
	lines := run(t, "validate\nerror bad\nclear\nedited on\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "required", *lines[0].State.Error)
	assert.Equal(t, "bad", *lines[1].State.Error)
	assert.Nil(t, lines[2].State.Error)
	assert.True(t, lines[3].State.EditedManually)
}

func TestRunner_ContextCancelled(t *testing.T) {
	steps, err := ParseScript(strings.NewReader("wait 1h"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(&bytes.Buffer{}, 0, logger.Discard())
	require.ErrorIs(t, r.Run(ctx, steps), context.Canceled)
}
