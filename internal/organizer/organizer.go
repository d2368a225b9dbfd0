// Package organizer renames paired media into the output directory: one
// `NAME_SEQ` photo per group, `NAME_SEQ[sub]` videos, with optional
// compression and per-video splitting. Sources are copied, never moved.
package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"ritualpair/internal/fileutil"
	"ritualpair/internal/logging"
	"ritualpair/internal/pairing"
	"ritualpair/internal/services"
	"ritualpair/internal/videosplit"
)

// lockFileName guards the output directory against concurrent runs.
const lockFileName = ".ritualpair.lock"

// unknownName replaces the OCR name when no plate could be read; the
// sequence keeps such outputs distinct.
const unknownName = "UNKNOWN"

// NameExtractor reads the printed name off a photo. Empty string when
// nothing legible is found. Implemented by ocr.Extractor.
type NameExtractor interface {
	ExtractName(ctx context.Context, photoPath string) string
}

// MediaCompressor re-encodes photos and videos at reduced size.
// Implemented by compress.Compressor.
type MediaCompressor interface {
	CompressImage(src, dst string, quality int) (string, error)
	CompressVideo(ctx context.Context, src, dst string, crf int, preset string) (string, error)
}

// VideoSplitter cuts a video into equal segments. Implemented by
// videosplit.Splitter.
type VideoSplitter interface {
	Split(ctx context.Context, req videosplit.Request) []string
}

// Options configures one organize run.
type Options struct {
	OutputDir string
	// DryRun previews target names without touching the filesystem.
	DryRun bool

	Compress     bool
	ImageQuality int
	VideoCRF     int
	VideoPreset  string

	// SplitSegments cuts every paired video into that many pieces;
	// 0 or 1 disables splitting.
	SplitSegments int

	OverwriteExisting bool
}

// Organizer copies paired files into their final names.
type Organizer struct {
	opts       Options
	ocr        NameExtractor
	compressor MediaCompressor
	splitter   VideoSplitter
	logger     *slog.Logger
}

// NewOrganizer constructs an organizer. The OCR extractor may be nil, in
// which case every group falls back to sequence-only naming. The splitter
// may be nil when Options.SplitSegments is 0 or 1.
func NewOrganizer(opts Options, ocr NameExtractor, compressor MediaCompressor, splitter VideoSplitter, logger *slog.Logger) *Organizer {
	return &Organizer{
		opts:       opts,
		ocr:        ocr,
		compressor: compressor,
		splitter:   splitter,
		logger:     logging.NewComponentLogger(logger, "organizer"),
	}
}

// Organize renames every pair in the result into the output directory and
// returns per-run statistics. Item-level failures are recorded on the stats
// and do not stop the run; only an unusable output directory is fatal.
func (o *Organizer) Organize(ctx context.Context, result *pairing.Result) (*Stats, error) {
	stats := &Stats{}
	groups := result.Groups()
	if len(groups) == 0 {
		return stats, nil
	}

	if !o.opts.DryRun {
		if err := os.MkdirAll(o.opts.OutputDir, 0o755); err != nil {
			return nil, services.Wrap(services.ErrValidation, "organizing", "prepare output",
				fmt.Sprintf("create %s", o.opts.OutputDir), err)
		}
		lock := flock.New(filepath.Join(o.opts.OutputDir, lockFileName))
		locked, err := lock.TryLock()
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "organizing", "lock output",
				o.opts.OutputDir, err)
		}
		if !locked {
			return nil, services.Wrap(services.ErrValidation, "organizing", "lock output",
				fmt.Sprintf("%s is in use by another run", o.opts.OutputDir), nil)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				o.logger.Warn("output lock release failed", logging.Error(err))
			}
		}()
	}

	for _, group := range groups {
		o.organizeGroup(ctx, group, stats)
	}

	o.logger.Info("organize complete",
		logging.String("run_id", result.RunID),
		logging.Int("groups", stats.Groups),
		logging.Int("files", stats.FilesWritten),
		logging.Int("ocr_failed", stats.OCRFailed),
		logging.Int("skipped", stats.Skipped),
		logging.Int("errors", len(stats.Errors)),
		logging.String("bytes_written", stats.HumanBytesWritten()),
	)
	return stats, nil
}

func (o *Organizer) organizeGroup(ctx context.Context, group pairing.Group, stats *Stats) {
	name := ""
	if o.ocr != nil {
		name = o.ocr.ExtractName(ctx, group.Photo.Path)
	}
	if name == "" {
		name = unknownName
		stats.OCRFailed++
		o.logger.Warn("no name recognized, using sequence only",
			logging.String("photo", group.Photo.Path))
	}
	name = fileutil.SanitizeBaseName(name)

	// Photo carries the bare sequence; sub-sequences belong to videos.
	photoTarget := o.targetPath(name, zeroPadLabel(group.Sequence), group.Photo.Path)
	if err := o.placePhoto(ctx, group.Photo.Path, photoTarget, stats); err != nil {
		stats.addError(group.Photo.Path, err)
	}

	for _, pair := range group.Pairs {
		videoTarget := o.targetPath(name, pair.Label(), pair.Video.Path)
		if err := o.placeVideo(ctx, pair.Video.Path, videoTarget, name+"_"+pair.Label(), stats); err != nil {
			stats.addError(pair.Video.Path, err)
		}
	}
	stats.Groups++
}

func (o *Organizer) targetPath(name, label, srcPath string) string {
	ext := strings.ToLower(filepath.Ext(srcPath))
	return filepath.Join(o.opts.OutputDir, name+"_"+label+ext)
}

func (o *Organizer) placePhoto(ctx context.Context, src, dst string, stats *Stats) error {
	_ = ctx
	if o.opts.Compress {
		dst = withExt(dst, ".jpg")
	}
	if o.opts.DryRun {
		o.logger.Info("would write photo", logging.String("src", filepath.Base(src)), logging.String("dst", filepath.Base(dst)))
		return nil
	}
	if o.skipExisting(dst, stats) {
		return nil
	}

	if o.opts.Compress {
		written, err := o.compressor.CompressImage(src, dst, o.opts.ImageQuality)
		if err == nil {
			stats.recordWrite(written)
			return nil
		}
		o.logger.Warn("photo compression failed, copying original",
			logging.String("photo", src), logging.Error(err))
	}
	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		return services.Wrap(services.ErrTransient, "organizing", "copy photo", src, err)
	}
	stats.recordWrite(dst)
	return nil
}

func (o *Organizer) placeVideo(ctx context.Context, src, dst, baseName string, stats *Stats) error {
	if o.opts.Compress {
		dst = withExt(dst, ".mp4")
	}
	if o.opts.DryRun {
		o.logger.Info("would write video", logging.String("src", filepath.Base(src)), logging.String("dst", filepath.Base(dst)))
		return nil
	}

	if o.opts.SplitSegments > 1 && o.splitter != nil {
		ext := ".mp4"
		if !o.opts.Compress {
			ext = strings.ToLower(filepath.Ext(src))
		}
		written := o.splitter.Split(ctx, videosplit.Request{
			Input:    src,
			OutDir:   o.opts.OutputDir,
			Segments: o.opts.SplitSegments,
			BaseName: baseName,
			Ext:      ext,
			Compress: o.opts.Compress,
			CRF:      o.opts.VideoCRF,
		})
		if len(written) == 0 {
			return services.Wrap(services.ErrExternalTool, "organizing", "split video", src, nil)
		}
		for _, path := range written {
			stats.recordWrite(path)
		}
		stats.SegmentsWritten += len(written)
		return nil
	}

	if o.skipExisting(dst, stats) {
		return nil
	}
	if o.opts.Compress {
		written, err := o.compressor.CompressVideo(ctx, src, dst, o.opts.VideoCRF, o.opts.VideoPreset)
		if err == nil {
			stats.recordWrite(written)
			return nil
		}
		o.logger.Warn("video compression failed, copying original",
			logging.String("video", src), logging.Error(err))
	}
	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		return services.Wrap(services.ErrTransient, "organizing", "copy video", src, err)
	}
	stats.recordWrite(dst)
	return nil
}

func (o *Organizer) skipExisting(dst string, stats *Stats) bool {
	if o.opts.OverwriteExisting {
		return false
	}
	if _, err := os.Stat(dst); err == nil {
		stats.Skipped++
		o.logger.Info("target exists, skipping", logging.String("dst", filepath.Base(dst)))
		return true
	}
	return false
}

func zeroPadLabel(sequence int) string {
	return fmt.Sprintf("%03d", sequence)
}

func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
