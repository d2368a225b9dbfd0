package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// creationTimeKeys lists the container tag keys checked for a recording
// timestamp, in priority order. QuickTime files written by Apple devices use
// the vendor-prefixed key.
var creationTimeKeys = []string{
	"creation_time",
	"com.apple.quicktime.creationdate",
}

var creationTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Duration  string `json:"duration"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	NBFrames  string `json:"nb_frames"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string            `json:"filename"`
	NBStreams  int               `json:"nb_streams"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	FormatName string            `json:"format_name"`
	Tags       map[string]string `json:"tags"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// CreationTime extracts the container-level recording timestamp, checking
// vendor key variants in priority order. The second return value is false
// when no tag holds a parseable time.
func (r Result) CreationTime() (time.Time, bool) {
	for _, key := range creationTimeKeys {
		raw, ok := r.Format.Tags[key]
		if !ok {
			continue
		}
		if ts, ok := ParseCreationTime(raw); ok {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ParseCreationTime parses a container timestamp value, discarding trailing
// fractional seconds and timezone designators before matching the known
// layouts.
func ParseCreationTime(value string) (time.Time, bool) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return time.Time{}, false
	}
	if i := strings.IndexAny(clean, ".+"); i >= 0 {
		clean = clean[:i]
	}
	clean = strings.TrimSuffix(clean, "Z")
	for _, layout := range creationTimeLayouts {
		if ts, err := time.ParseInLocation(layout, clean, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// VideoStreamCount returns the number of video streams discovered.
func (r Result) VideoStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			count++
		}
	}
	return count
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// TotalFrames returns the frame count of the first video stream, or 0 when
// the container does not report one.
func (r Result) TotalFrames() int64 {
	for _, stream := range r.Streams {
		if !strings.EqualFold(stream.CodecType, "video") {
			continue
		}
		if frames, err := strconv.ParseInt(strings.TrimSpace(stream.NBFrames), 10, 64); err == nil && frames > 0 {
			return frames
		}
	}
	return 0
}

func parseFloat(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	if parsed < 0 {
		return 0
	}
	return parsed
}
