package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	script := `# comment
set ada lovelace
set
force  fixed
validate

autovalidate on
readonly OFF
edited true
error too short
clear
wait 25ms
`
	steps, err := ParseScript(strings.NewReader(script))
	require.NoError(t, err)

	want := []Step{
		{Line: 2, Op: OpSet, Arg: "ada lovelace"},
		{Line: 3, Op: OpSet, Arg: ""},
		{Line: 4, Op: OpForce, Arg: "fixed"},
		{Line: 5, Op: OpValidate},
		{Line: 7, Op: OpAutovalidate, On: true},
		{Line: 8, Op: OpReadOnly, On: false},
		{Line: 9, Op: OpEdited, On: true},
		{Line: 10, Op: OpError, Arg: "too short"},
		{Line: 11, Op: OpClear},
		{Line: 12, Op: OpWait, Wait: 25 * time.Millisecond},
	}
	assert.Equal(t, want, steps)
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
		line    string
	}{
		{name: "unknown command", script: "set a\njump 3", wantErr: ErrUnknownCommand, line: "line 2"},
		{name: "bad switch", script: "readonly maybe", wantErr: ErrBadArgument, line: "line 1"},
		{name: "bad duration", script: "wait soon", wantErr: ErrBadArgument, line: "line 1"},
		{name: "negative duration", script: "wait -1s", wantErr: ErrBadArgument, line: "line 1"},
		{name: "error without message", script: "error", wantErr: ErrBadArgument, line: "line 1"},
		{name: "validate with argument", script: "\nvalidate now", wantErr: ErrBadArgument, line: "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tt.script))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}
