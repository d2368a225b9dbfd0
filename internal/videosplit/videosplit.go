// Package videosplit cuts a video into equal-length segments with ffmpeg,
// re-encoding each segment so the cut points land exactly where requested.
package videosplit

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ritualpair/internal/logging"
	"ritualpair/internal/media/ffprobe"
)

// Minimum and maximum segment counts; anything outside yields no split.
const (
	MinSegments = 2
	MaxSegments = 10
)

// segmentLabels mark segments a through j; MaxSegments keeps us inside it.
const segmentLabels = "abcdefghij"

// Options configures the splitter.
type Options struct {
	FFmpegBinary  string
	FFprobeBinary string
	// SegmentTimeout bounds each per-segment encode.
	SegmentTimeout time.Duration
	ProbeTimeout   time.Duration
}

// Splitter divides videos into equal segments.
type Splitter struct {
	ffmpeg       string
	ffprobe      string
	timeout      time.Duration
	probeTimeout time.Duration
	logger       *slog.Logger
	exec         runExecutor
	duration     func(ctx context.Context, path string) float64
}

// runExecutor abstracts command execution for testability.
type runExecutor interface {
	Run(ctx context.Context, binary string, args []string) error
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if len(detail) > 200 {
			detail = detail[:200]
		}
		if detail != "" {
			return fmt.Errorf("%w: %s", err, detail)
		}
		return err
	}
	return nil
}

// SplitterOption overrides splitter collaborators, primarily for tests.
type SplitterOption func(*Splitter)

// WithRunExecutor injects a custom executor.
func WithRunExecutor(e runExecutor) SplitterOption {
	return func(s *Splitter) {
		if e != nil {
			s.exec = e
		}
	}
}

// WithDuration replaces the ffprobe duration lookup. The function returns
// NaN when the duration is unknown.
func WithDuration(duration func(ctx context.Context, path string) float64) SplitterOption {
	return func(s *Splitter) {
		if duration != nil {
			s.duration = duration
		}
	}
}

// NewSplitter constructs a splitter.
func NewSplitter(opts Options, logger *slog.Logger, extra ...SplitterOption) *Splitter {
	ffmpegBinary := opts.FFmpegBinary
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	ffprobeBinary := opts.FFprobeBinary
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	timeout := opts.SegmentTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	probeTimeout := opts.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = 30 * time.Second
	}
	s := &Splitter{
		ffmpeg:       ffmpegBinary,
		ffprobe:      ffprobeBinary,
		timeout:      timeout,
		probeTimeout: probeTimeout,
		logger:       logging.NewComponentLogger(logger, "videosplit"),
		exec:         commandExecutor{},
	}
	s.duration = s.probeDuration
	for _, opt := range extra {
		opt(s)
	}
	return s
}

// Request describes one split job.
type Request struct {
	Input    string
	OutDir   string
	Segments int
	// BaseName is the output stem; segment i becomes BaseName+label+Ext.
	BaseName string
	Ext      string
	// Compress selects the CRF/preset used for re-encoding; when false the
	// segments are still re-encoded, at near-lossless quality, so cut
	// points stay exact.
	Compress bool
	CRF      int
}

// Split cuts the input into Request.Segments equal pieces. It returns the
// paths of the segments that encoded successfully; an out-of-range segment
// count or unknown duration yields an empty slice.
func (s *Splitter) Split(ctx context.Context, req Request) []string {
	if req.Segments < MinSegments || req.Segments > MaxSegments {
		s.logger.Warn("segment count out of range", logging.Int("segments", req.Segments))
		return nil
	}

	total := s.duration(ctx, req.Input)
	if math.IsNaN(total) || total <= 0 {
		s.logger.Warn("video duration unknown, skipping split", logging.String("input", req.Input))
		return nil
	}

	ext := req.Ext
	if ext == "" {
		ext = ".mp4"
	}
	crf := req.CRF
	preset := "medium"
	bitrate := "128k"
	if !req.Compress {
		crf = 18
		preset = "fast"
		bitrate = "192k"
	} else if crf < 0 || crf > 51 {
		crf = 28
	}

	segmentLength := total / float64(req.Segments)
	var written []string
	for i := 0; i < req.Segments; i++ {
		out := filepath.Join(req.OutDir, req.BaseName+string(segmentLabels[i])+ext)
		start := float64(i) * segmentLength

		runCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.exec.Run(runCtx, s.ffmpeg, []string{
			"-y",
			"-ss", formatSeconds(start),
			"-i", req.Input,
			"-t", formatSeconds(segmentLength),
			"-c:v", "libx264",
			"-crf", strconv.Itoa(crf),
			"-preset", preset,
			"-c:a", "aac", "-b:a", bitrate,
			"-movflags", "+faststart",
			out,
		})
		cancel()
		if err != nil {
			_ = os.Remove(out)
			s.logger.Warn("segment encode failed",
				logging.String("output", out),
				logging.Error(err),
			)
			continue
		}
		written = append(written, out)
	}
	return written
}

func (s *Splitter) probeDuration(ctx context.Context, path string) float64 {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()
	result, err := ffprobe.Inspect(probeCtx, s.ffprobe, path)
	if err != nil {
		return math.NaN()
	}
	return result.DurationSeconds()
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
