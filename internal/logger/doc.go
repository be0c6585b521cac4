// Package logger builds slog loggers from functional options.
//
//	log := logger.New(
//		logger.WithOutput(f),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//	)
//
// The default is JSON at info level on stderr. Discard returns a logger that
// drops everything, used as the zero value by packages with optional logging.
package logger
