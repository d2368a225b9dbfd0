// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no ritualpair-specific dependencies and could be
// extracted as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties
//   - Format: container-level metadata including tag values
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result provide duration parsing and creation-time
// extraction from the container tags, tolerating the timezone and
// fractional-second noise different camera vendors append.
package ffprobe
