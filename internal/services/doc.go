// Package services provides shared infrastructure for components that wrap
// external tools (ffprobe, ffmpeg, tesseract): a sentinel error taxonomy
// with stage-aware wrapping, and context annotations that flow run
// identifiers into structured logs.
package services
