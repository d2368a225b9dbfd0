package vision

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"time"

	"ritualpair/internal/logging"
	"ritualpair/internal/media/ffprobe"
)

// SamplerOptions configures frame extraction.
type SamplerOptions struct {
	FFmpegBinary  string
	FFprobeBinary string
	Timeout       time.Duration
	// Position is the relative frame position in (0, 1); 0.5 samples the
	// middle of the video.
	Position float64
}

// Sampler extracts one representative frame per video via ffmpeg.
type Sampler struct {
	ffmpeg   string
	ffprobe  string
	timeout  time.Duration
	position float64
	logger   *slog.Logger
	exec     frameExecutor
}

// frameExecutor abstracts command execution for testability.
type frameExecutor interface {
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

// SamplerOption configures optional sampler behaviour.
type SamplerOption func(*Sampler)

// WithFrameExecutor injects a custom executor (primarily for tests).
func WithFrameExecutor(e frameExecutor) SamplerOption {
	return func(s *Sampler) {
		if e != nil {
			s.exec = e
		}
	}
}

// NewSampler constructs a frame sampler.
func NewSampler(opts SamplerOptions, logger *slog.Logger, extra ...SamplerOption) *Sampler {
	position := opts.Position
	if position <= 0 || position >= 1 {
		position = 0.5
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ffmpegBinary := opts.FFmpegBinary
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	sampler := &Sampler{
		ffmpeg:   ffmpegBinary,
		ffprobe:  opts.FFprobeBinary,
		timeout:  timeout,
		position: position,
		logger:   logging.NewComponentLogger(logger, "sampler"),
		exec:     commandExecutor{},
	}
	for _, opt := range extra {
		opt(sampler)
	}
	return sampler
}

// SampleFrame decodes the frame at the configured relative position of the
// video. Returns nil when the container cannot be opened, the seek fails, or
// decoding fails; sampling never aborts a batch.
func (s *Sampler) SampleFrame(ctx context.Context, videoPath string) image.Image {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	args := []string{"-v", "error", "-hide_banner"}
	if seek, ok := s.seekSeconds(runCtx, videoPath); ok {
		args = append(args, "-ss", strconv.FormatFloat(seek, 'f', 3, 64))
	}
	args = append(args,
		"-i", videoPath,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)

	output, err := s.exec.Output(runCtx, s.ffmpeg, args)
	if err != nil {
		s.logger.Debug("frame extraction failed",
			logging.String("video", videoPath),
			logging.Error(err),
		)
		return nil
	}

	frame, err := png.Decode(bytes.NewReader(output))
	if err != nil {
		s.logger.Debug("frame decode failed",
			logging.String("video", videoPath),
			logging.Error(err),
		)
		return nil
	}
	return frame
}

// seekSeconds probes the container duration and converts the relative frame
// position into a seek offset. A failed probe means no seek: the first frame
// still beats no frame.
func (s *Sampler) seekSeconds(ctx context.Context, videoPath string) (float64, bool) {
	result, err := ffprobe.Inspect(ctx, s.ffprobe, videoPath)
	if err != nil {
		return 0, false
	}
	duration := result.DurationSeconds()
	if math.IsNaN(duration) || duration <= 0 {
		return 0, false
	}
	return math.Floor(duration*s.position*1000) / 1000, true
}
