// Package logging assembles the structured slog loggers used by crunch2d.
//
// It owns the console and JSON handlers, maps configured level names onto
// slog levels, and provides a component-scoped constructor plus a no-op
// logger for tests and wiring code that must not fail.
package logging
