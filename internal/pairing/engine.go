package pairing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ritualpair/internal/logging"
	"ritualpair/internal/media"
	"ritualpair/internal/services"
)

// Engine ties a directory scan to one matching strategy and produces a
// numbered pairing result. Each Run is self-contained; nothing carries over
// between invocations.
type Engine struct {
	scanner *media.Scanner
	matcher *Matcher
	logger  *slog.Logger
}

// NewEngine constructs a pairing engine around an existing scanner and
// matcher.
func NewEngine(scanner *media.Scanner, matcher *Matcher, logger *slog.Logger) *Engine {
	return &Engine{
		scanner: scanner,
		matcher: matcher,
		logger:  logging.NewComponentLogger(logger, "pairing"),
	}
}

// Run scans dir, matches photos to videos with the configured strategy, and
// assigns dense sequence numbers. The error is non-nil only when the scan
// itself fails; matching troubles surface as warnings on the result.
func (e *Engine) Run(ctx context.Context, dir string) (*Result, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithDirectory(ctx, dir)

	files, err := e.scanner.Scan(ctx, dir)
	if err != nil {
		marker := services.ErrTransient
		if errors.Is(err, media.ErrDirectoryNotFound) {
			marker = services.ErrNotFound
		}
		return nil, services.Wrap(marker, "pairing", "scan",
			fmt.Sprintf("scan %s", dir), err)
	}
	photos, videos := media.Split(files)

	result := &Result{
		RunID:         runID,
		Strategy:      e.matcher.opts.Strategy,
		PhotosScanned: len(photos),
		VideosScanned: len(videos),
	}
	if len(photos) != len(videos) {
		result.warn(WarnCountMismatch, dir,
			fmt.Sprintf("%d photos vs %d videos", len(photos), len(videos)))
	}

	e.logger.Info("pairing run started",
		logging.String("run_id", runID),
		logging.String("strategy", e.matcher.opts.Strategy.String()),
		logging.Int("photos", len(photos)),
		logging.Int("videos", len(videos)),
	)

	groups := e.matcher.match(ctx, photos, videos, result)
	result.Pairs = assignSequences(groups)

	result.Matched = len(result.Pairs)
	for _, w := range result.Warnings {
		switch w.Kind {
		case WarnUnmatchedPhoto, WarnUnmatchedVideo:
			result.Unmatched++
		case WarnDegraded:
			result.Degraded++
		}
	}

	e.logger.Info("pairing run complete",
		logging.String("run_id", runID),
		logging.Int("pairs", result.Matched),
		logging.Int("unmatched", result.Unmatched),
		logging.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}
