// Package logging constructs the slog loggers used across subgen.
//
// It supports console (text) and JSON output selected through configuration,
// and provides attr helpers plus component-scoped child loggers so log lines
// carry a consistent shape.
package logging
