package config

import "errors"

var (
	// ErrInvalidDebounce is returned when the debounce interval is negative.
	ErrInvalidDebounce = errors.New("debounce_ms must not be negative")

	// ErrInvalidValue is returned by Set when a value cannot be parsed for its key.
	ErrInvalidValue = errors.New("invalid config value")

	// ErrUnknownKey is returned by Set for keys the config does not have.
	ErrUnknownKey = errors.New("unknown config key")

	// ErrParsingEnv is returned when environment overrides cannot be parsed.
	ErrParsingEnv = errors.New("failed to parse environment overrides")
)
