package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"ritualpair/internal/logging"
)

// ErrDirectoryNotFound indicates the scan target does not exist.
var ErrDirectoryNotFound = errors.New("directory not found")

// TimeResolver derives the authoritative creation instant for one file.
// Implemented by internal/timestamp.
type TimeResolver interface {
	Resolve(ctx context.Context, path string, kind Kind) (time.Time, TimeSource)
}

// Scanner enumerates a directory into typed, timestamped media records.
type Scanner struct {
	resolver TimeResolver
	logger   *slog.Logger
}

// NewScanner constructs a scanner using the provided timestamp resolver.
func NewScanner(resolver TimeResolver, logger *slog.Logger) *Scanner {
	return &Scanner{
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan reads the direct entries of dir and returns the supported media files
// sorted ascending by resolved creation time. Enumeration order breaks ties,
// so repeated scans of an unchanged directory yield identical output.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	files := make([]File, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		kind, ok := KindForPath(path)
		if !ok {
			skipped++
			continue
		}
		createdAt, source := s.resolver.Resolve(ctx, path, kind)
		files = append(files, File{
			Path:       path,
			Kind:       kind,
			CreatedAt:  createdAt,
			TimeSource: source,
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].CreatedAt.Before(files[j].CreatedAt)
	})

	s.logger.Debug("scan complete",
		logging.String("dir", dir),
		logging.Int("files", len(files)),
		logging.Int("skipped", skipped),
	)
	return files, nil
}

// Split partitions scanned files into photos and videos, preserving order.
func Split(files []File) (photos, videos []File) {
	for _, f := range files {
		if f.IsVideo() {
			videos = append(videos, f)
		} else {
			photos = append(photos, f)
		}
	}
	return photos, videos
}
