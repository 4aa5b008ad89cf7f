// Package logger builds the zap logger shared by the server and the CLI.
//
// Level accepts any zap level name. Debug switches to the development preset,
// which adds ISO8601 timestamps and caller information. Logs default to stderr
// so that validation reports printed on stdout stay machine readable.
//
// WithRayID tags a request logger with the ray id set by middleware/rayid:
//
//	l := logger.WithRayID(log, c)
//	l.Error("Validation failed", zap.Error(err))
package logger
