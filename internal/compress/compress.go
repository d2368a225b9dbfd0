// Package compress re-encodes output media at reduced size while keeping
// resolution: JPEG quality re-encode for photos, H.264 CRF re-encode via
// ffmpeg for videos.
package compress

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ritualpair/internal/logging"
	"ritualpair/internal/services"
	"ritualpair/internal/vision"
)

// Options configures the compressor.
type Options struct {
	FFmpegBinary string
	VideoTimeout time.Duration
}

// Compressor performs photo and video re-encoding. Photo compression runs
// in-process; video compression shells out to ffmpeg.
type Compressor struct {
	ffmpeg  string
	timeout time.Duration
	logger  *slog.Logger
	exec    runExecutor
	load    func(path string) image.Image
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

// CompressorOption overrides compressor collaborators, primarily for tests.
type CompressorOption func(*Compressor)

// WithRunExecutor injects a custom executor.
func WithRunExecutor(e runExecutor) CompressorOption {
	return func(c *Compressor) {
		if e != nil {
			c.exec = e
		}
	}
}

// WithImageLoader replaces photo loading.
func WithImageLoader(load func(path string) image.Image) CompressorOption {
	return func(c *Compressor) {
		if load != nil {
			c.load = load
		}
	}
}

// NewCompressor constructs a compressor.
func NewCompressor(opts Options, logger *slog.Logger, extra ...CompressorOption) *Compressor {
	binary := opts.FFmpegBinary
	if binary == "" {
		binary = "ffmpeg"
	}
	timeout := opts.VideoTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	c := &Compressor{
		ffmpeg:  binary,
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "compress"),
		exec:    commandExecutor{},
		load:    vision.LoadImage,
	}
	for _, opt := range extra {
		opt(c)
	}
	return c
}

// CompressImage re-encodes the photo as a JPEG at the given quality and
// writes it to dst with a .jpg extension, carrying the source's EXIF block
// along when one exists. Returns the path actually written.
func (c *Compressor) CompressImage(src, dst string, quality int) (string, error) {
	if quality < 1 || quality > 100 {
		quality = 75
	}
	out := replaceExt(dst, ".jpg")

	img := c.load(src)
	if img == nil {
		return "", services.Wrap(services.ErrValidation, "compress", "image",
			fmt.Sprintf("decode %s", src), nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", services.Wrap(services.ErrValidation, "compress", "image",
			fmt.Sprintf("encode %s", src), err)
	}

	encoded := buf.Bytes()
	if exifBlock := exifSegment(src); exifBlock != nil {
		encoded = spliceExif(encoded, exifBlock)
	}

	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		return "", services.Wrap(services.ErrTransient, "compress", "image",
			fmt.Sprintf("write %s", out), err)
	}
	return out, nil
}

// CompressVideo re-encodes the video as H.264/AAC MP4 at the given CRF and
// writes it to dst with a .mp4 extension. Returns the path actually written.
func (c *Compressor) CompressVideo(ctx context.Context, src, dst string, crf int, preset string) (string, error) {
	if crf < 0 || crf > 51 {
		crf = 28
	}
	if preset == "" {
		preset = "medium"
	}
	out := replaceExt(dst, ".mp4")

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.exec.Run(runCtx, c.ffmpeg, []string{
		"-y", "-i", src,
		"-c:v", "libx264",
		"-crf", strconv.Itoa(crf),
		"-preset", preset,
		"-c:a", "aac", "-b:a", "128k",
		"-movflags", "+faststart",
		out,
	})
	if err != nil {
		// Partial output is worse than none.
		_ = os.Remove(out)
		marker := services.ErrExternalTool
		if runCtx.Err() == context.DeadlineExceeded {
			marker = services.ErrTimeout
		}
		return "", services.Wrap(marker, "compress", "video",
			fmt.Sprintf("ffmpeg encode %s", src), err)
	}

	c.logger.Debug("video compressed",
		logging.String("src", src),
		logging.String("dst", out),
		logging.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
