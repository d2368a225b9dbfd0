package timestamp

import (
	"context"
	"log/slog"
	"time"

	"ritualpair/internal/logging"
	"ritualpair/internal/media"
	"ritualpair/internal/media/ffprobe"
)

// Options configures a Resolver.
type Options struct {
	FFprobeBinary string
	ProbeTimeout  time.Duration
}

// Resolver implements media.TimeResolver with per-path memoization.
type Resolver struct {
	cache   *Cache
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewResolver constructs a resolver backed by the given cache. The cache may
// be shared across invocations or scoped to one run; the resolver never
// creates an implicit global one.
func NewResolver(cache *Cache, opts Options, logger *slog.Logger) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	timeout := opts.ProbeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{
		cache:   cache,
		binary:  opts.FFprobeBinary,
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "timestamp"),
	}
}

// Resolve returns the authoritative creation instant for path with its
// provenance tag. Resolution never fails: any metadata problem degrades to
// filesystem time, which always exists.
func (r *Resolver) Resolve(ctx context.Context, path string, kind media.Kind) (time.Time, media.TimeSource) {
	if cached, ok := r.cache.get(path); ok {
		return cached.at, cached.source
	}

	var resolved entry
	switch kind {
	case media.KindVideo:
		if at, ok := r.containerTime(ctx, path); ok {
			resolved = entry{at: at, source: media.SourceContainer}
		}
	default:
		if at, ok := exifTime(path); ok {
			resolved = entry{at: at, source: media.SourceEmbedded}
		}
	}

	if resolved.source == "" {
		at, err := FilesystemTime(path)
		if err != nil {
			// Even stat can fail on a racing delete; record the zero
			// instant rather than dropping the file.
			r.logger.Warn("filesystem time unavailable",
				logging.String("path", path),
				logging.Error(err),
			)
		}
		resolved = entry{at: at, source: media.SourceFilesystem}
	}

	r.cache.put(path, resolved)
	return resolved.at, resolved.source
}

func (r *Resolver) containerTime(ctx context.Context, path string) (time.Time, bool) {
	probeCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := ffprobe.Inspect(probeCtx, r.binary, path)
	if err != nil {
		r.logger.Debug("container metadata unavailable",
			logging.String("path", path),
			logging.Error(err),
		)
		return time.Time{}, false
	}
	return result.CreationTime()
}
