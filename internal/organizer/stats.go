package organizer

import (
	"os"

	"github.com/dustin/go-humanize"
)

// ItemError couples a source path with the failure it hit.
type ItemError struct {
	Path string
	Err  error
}

// Stats summarizes one organize run.
type Stats struct {
	Groups          int
	FilesWritten    int
	SegmentsWritten int
	OCRFailed       int
	Skipped         int
	BytesWritten    int64
	Errors          []ItemError
}

func (s *Stats) addError(path string, err error) {
	s.Errors = append(s.Errors, ItemError{Path: path, Err: err})
}

func (s *Stats) recordWrite(path string) {
	s.FilesWritten++
	if info, err := os.Stat(path); err == nil {
		s.BytesWritten += info.Size()
	}
}

// HumanBytesWritten renders the total output size for logs and summaries.
func (s *Stats) HumanBytesWritten() string {
	return humanize.Bytes(uint64(s.BytesWritten))
}
