package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Op is a script command.
type Op string

const (
	OpSet          Op = "set"
	OpForce        Op = "force"
	OpValidate     Op = "validate"
	OpAutovalidate Op = "autovalidate"
	OpReadOnly     Op = "readonly"
	OpClear        Op = "clear"
	OpError        Op = "error"
	OpEdited       Op = "edited"
	OpWait         Op = "wait"
)

var (
	// ErrUnknownCommand is returned for lines that do not start with a known Op.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadArgument is returned when a command's argument cannot be parsed.
	ErrBadArgument = errors.New("bad argument")
)

// Step is one parsed script line.
type Step struct {
	Line int
	Op   Op
	Arg  string        // set, force, error
	On   bool          // autovalidate, readonly, edited
	Wait time.Duration // wait
}

// ParseScript reads one command per line. Blank lines and lines starting
// with # are skipped. The argument of set, force and error is the rest of
// the line, so values may contain spaces; "set" alone sets the empty string.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, arg, _ := strings.Cut(line, " ")
		step := Step{Line: lineNo, Op: Op(strings.ToLower(name))}
		arg = strings.TrimSpace(arg)

		switch step.Op {
		case OpSet, OpForce:
			step.Arg = arg
		case OpError:
			if arg == "" {
				return nil, fmt.Errorf("line %d: %w: error needs a message", lineNo, ErrBadArgument)
			}
			step.Arg = arg
		case OpValidate, OpClear:
			if arg != "" {
				return nil, fmt.Errorf("line %d: %w: %s takes no argument", lineNo, ErrBadArgument, step.Op)
			}
		case OpAutovalidate, OpReadOnly, OpEdited:
			on, err := parseSwitch(arg)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			step.On = on
		case OpWait:
			d, err := time.ParseDuration(arg)
			if err != nil || d < 0 {
				return nil, fmt.Errorf("line %d: %w: duration %q", lineNo, ErrBadArgument, arg)
			}
			step.Wait = d
		default:
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrUnknownCommand, name)
		}

		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return steps, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true":
		return true, nil
	case "off", "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: want on or off, got %q", ErrBadArgument, s)
}
