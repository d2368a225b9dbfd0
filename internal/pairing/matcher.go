package pairing

import (
	"context"
	"image"
	"log/slog"
	"time"

	"ritualpair/internal/logging"
	"ritualpair/internal/media"
	"ritualpair/internal/timestamp"
	"ritualpair/internal/vision"
)

// FrameSampler extracts one representative frame from a video, nil when the
// video cannot be decoded. Implemented by vision.Sampler.
type FrameSampler interface {
	SampleFrame(ctx context.Context, videoPath string) image.Image
}

// Options configures a Matcher. Zero values select the documented defaults.
type Options struct {
	Strategy Strategy
	// Tolerance is the time strategy's claim window after each photo.
	Tolerance time.Duration
	// Threshold is the minimum similarity score in image mode.
	Threshold float64
	// AllowMultiVideo enables winner-take-all 1:N assignment in image mode;
	// when false, photos greedily claim at most one video each.
	AllowMultiVideo bool
	// Workers bounds concurrent frame sampling and scoring; 0 means one
	// per CPU.
	Workers int
}

// Matcher applies the selected strategy to a scanned photo/video split.
type Matcher struct {
	opts    Options
	sampler FrameSampler
	score   func(a, b image.Image) float64
	load    func(path string) image.Image
	fsTime  func(path string) (time.Time, error)
	logger  *slog.Logger
}

// MatcherOption overrides matcher collaborators, primarily for tests.
type MatcherOption func(*Matcher)

// WithScorer replaces the similarity function.
func WithScorer(score func(a, b image.Image) float64) MatcherOption {
	return func(m *Matcher) {
		if score != nil {
			m.score = score
		}
	}
}

// WithImageLoader replaces photo loading.
func WithImageLoader(load func(path string) image.Image) MatcherOption {
	return func(m *Matcher) {
		if load != nil {
			m.load = load
		}
	}
}

// WithFilesystemTimer replaces the order strategy's file time lookup.
func WithFilesystemTimer(fsTime func(path string) (time.Time, error)) MatcherOption {
	return func(m *Matcher) {
		if fsTime != nil {
			m.fsTime = fsTime
		}
	}
}

// NewMatcher constructs a matcher. The sampler may be nil for the order and
// time strategies, which never touch pixels.
func NewMatcher(opts Options, sampler FrameSampler, logger *slog.Logger, extra ...MatcherOption) *Matcher {
	if opts.Tolerance <= 0 {
		opts.Tolerance = 60 * time.Second
	}
	if opts.Threshold <= 0 {
		opts.Threshold = 0.1
	}
	m := &Matcher{
		opts:    opts,
		sampler: sampler,
		score:   vision.Similarity,
		load:    vision.LoadImage,
		fsTime:  timestamp.FilesystemTime,
		logger:  logging.NewComponentLogger(logger, "matcher"),
	}
	for _, opt := range extra {
		opt(m)
	}
	return m
}

// Match runs the selected strategy and records its raw associations and
// warnings on the result. Sequence numbers are not assigned here.
func (m *Matcher) match(ctx context.Context, photos, videos []media.File, result *Result) []rawGroup {
	switch m.opts.Strategy {
	case StrategyTime:
		return m.matchByTime(photos, videos, result)
	case StrategyImage:
		return m.matchByImage(ctx, photos, videos, result)
	default:
		return m.matchByOrder(photos, videos, result)
	}
}
