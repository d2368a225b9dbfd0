// Package logging builds the slog loggers used across ritualpair.
//
// It provides a console handler for interactive use, a JSON handler for
// machine consumption, typed attribute helpers, and context-derived fields
// so the run identifier and pipeline stage appear on every record without
// each call site threading them through.
package logging
