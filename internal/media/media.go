package media

import (
	"path/filepath"
	"strings"
	"time"
)

// Kind distinguishes the two media types the pairing engine understands.
type Kind int

const (
	KindPhoto Kind = iota
	KindVideo
)

func (k Kind) String() string {
	if k == KindVideo {
		return "video"
	}
	return "photo"
}

// TimeSource records where a file's authoritative timestamp came from. It is
// informational provenance only and is never recomputed after scanning.
type TimeSource string

const (
	SourceEmbedded   TimeSource = "embedded-metadata"
	SourceContainer  TimeSource = "container-metadata"
	SourceFilesystem TimeSource = "filesystem"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".heic": {},
	".heif": {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {},
	".mov": {},
	".m4v": {},
	".avi": {},
}

// KindForPath classifies a path by extension. The second return value is
// false for unsupported extensions.
func KindForPath(path string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := imageExtensions[ext]; ok {
		return KindPhoto, true
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo, true
	}
	return KindPhoto, false
}

// File is one physical media file. Immutable after construction; re-scanning
// the same path produces a new independent record.
type File struct {
	Path       string
	Kind       Kind
	CreatedAt  time.Time
	TimeSource TimeSource
}

// Name returns the base name of the file.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// IsVideo reports whether the file is a video.
func (f File) IsVideo() bool {
	return f.Kind == KindVideo
}
