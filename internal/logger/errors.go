package logger

import "errors"

var (
	// ErrInvalidFormat is returned by ParseFormat for unknown format names.
	ErrInvalidFormat = errors.New("invalid log format")

	// ErrInvalidLevel is returned by ParseLevel for unknown level names.
	ErrInvalidLevel = errors.New("invalid log level")
)
