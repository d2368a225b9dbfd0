// Package ocr extracts romanized names printed on photos by driving the
// tesseract binary over preprocessed crops of the regions where name plates
// usually sit.
package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"log/slog"
	"os/exec"
	"time"

	"ritualpair/internal/logging"
	"ritualpair/internal/vision"
)

// Options configures the extractor.
type Options struct {
	TesseractBinary string
	Timeout         time.Duration
	// Language is the tesseract language pack, "eng" by default.
	Language string
}

// Extractor wraps tesseract. Extraction never fails hard: any tooling or
// decoding problem yields an empty name and the caller falls back to
// sequence-only naming.
type Extractor struct {
	binary   string
	language string
	timeout  time.Duration
	logger   *slog.Logger
	exec     textExecutor
	load     func(path string) image.Image
}

// textExecutor abstracts command execution for testability.
type textExecutor interface {
	Run(ctx context.Context, binary string, args []string, stdin []byte) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, stdin []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

// ExtractorOption overrides extractor collaborators, primarily for tests.
type ExtractorOption func(*Extractor)

// WithTextExecutor injects a custom executor.
func WithTextExecutor(e textExecutor) ExtractorOption {
	return func(x *Extractor) {
		if e != nil {
			x.exec = e
		}
	}
}

// WithImageLoader replaces photo loading.
func WithImageLoader(load func(path string) image.Image) ExtractorOption {
	return func(x *Extractor) {
		if load != nil {
			x.load = load
		}
	}
}

// NewExtractor constructs an OCR extractor.
func NewExtractor(opts Options, logger *slog.Logger, extra ...ExtractorOption) *Extractor {
	binary := opts.TesseractBinary
	if binary == "" {
		binary = "tesseract"
	}
	language := opts.Language
	if language == "" {
		language = "eng"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	x := &Extractor{
		binary:   binary,
		language: language,
		timeout:  timeout,
		logger:   logging.NewComponentLogger(logger, "ocr"),
		exec:     commandExecutor{},
		load:     vision.LoadImage,
	}
	for _, opt := range extra {
		opt(x)
	}
	return x
}

// nameRegions are the crops tried in order, as fractions of width and
// height. Name plates sit bottom-right on framed photos, so the tight
// bottom-right crop goes first.
var nameRegions = [][4]float64{
	{0.5, 0.65, 1.0, 1.0},
	{0.35, 0.5, 1.0, 1.0},
	{0.2, 0.6, 0.8, 1.0},
}

// psmModes are the tesseract page segmentation modes tried per crop:
// uniform block, sparse text, then full auto.
var psmModes = []string{"6", "11", "3"}

// ExtractName pulls a normalized name from the photo, trying the usual
// plate regions first and the full page as a last resort. Empty string when
// nothing legible is found.
func (x *Extractor) ExtractName(ctx context.Context, photoPath string) string {
	img := x.load(photoPath)
	if img == nil {
		x.logger.Debug("photo not decodable for ocr", logging.String("photo", photoPath))
		return ""
	}

	for _, region := range nameRegions {
		crop := cropFractions(img, region)
		if crop == nil {
			continue
		}
		if name := x.recognize(ctx, crop, psmModes); name != "" {
			return name
		}
	}

	// Full page, auto segmentation only.
	if name := x.recognize(ctx, img, []string{"3"}); name != "" {
		return name
	}
	x.logger.Debug("no name recognized", logging.String("photo", photoPath))
	return ""
}

// recognize preprocesses one image and runs tesseract once per PSM mode,
// returning the first extracted name.
func (x *Extractor) recognize(ctx context.Context, img image.Image, modes []string) string {
	prepared := preprocess(img)
	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		return ""
	}
	encoded := buf.Bytes()

	for _, psm := range modes {
		runCtx, cancel := context.WithTimeout(ctx, x.timeout)
		out, err := x.exec.Run(runCtx, x.binary, []string{
			"stdin", "stdout",
			"-l", x.language,
			"--psm", psm,
			"--oem", "3",
		}, encoded)
		cancel()
		if err != nil {
			x.logger.Debug("tesseract failed", logging.String("psm", psm), logging.Error(err))
			continue
		}
		if name := nameFromText(string(out)); name != "" {
			return name
		}
	}
	return ""
}

// cropFractions cuts out the region given as (left, top, right, bottom)
// fractions of the image bounds. Nil when the region degenerates.
func cropFractions(img image.Image, region [4]float64) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	rect := image.Rect(
		bounds.Min.X+int(float64(width)*region[0]),
		bounds.Min.Y+int(float64(height)*region[1]),
		bounds.Min.X+int(float64(width)*region[2]),
		bounds.Min.Y+int(float64(height)*region[3]),
	)
	if rect.Dx() < 8 || rect.Dy() < 8 {
		return nil
	}
	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if src, ok := img.(subImager); ok {
		return src.SubImage(rect)
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			out.Set(x, y, img.At(rect.Min.X+x, rect.Min.Y+y))
		}
	}
	return out
}
