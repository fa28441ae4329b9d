// Package logging assembles structured slog loggers and formatting helpers used
// across streamgap commands and the API server.
//
// It owns the configurable console/JSON handlers, routes output to stderr and an
// optional rotating log file, and stamps every record with the run identifier of
// the invocation that produced it. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Degraded paths (an upstream fetch that failed, a cache entry that could not be
// decoded) should log through WarnWithContext so every warning carries an
// event type, a hint, and the user-facing impact.
package logging
