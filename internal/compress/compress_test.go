package compress

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ritualpair/internal/logging"
	"ritualpair/internal/services"
	"ritualpair/internal/testsupport"
)

func TestCompressImageFromJPEGSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	testsupport.WriteJPEG(t, src, 64, 48)

	c := NewCompressor(Options{}, logging.NewNop())
	out, err := c.CompressImage(src, filepath.Join(dir, "NAME_001.heic"), 70)
	if err != nil {
		t.Fatalf("CompressImage: %v", err)
	}
	if !strings.HasSuffix(out, "NAME_001.jpg") {
		t.Errorf("output path = %s, want .jpg extension", out)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) < 4 || data[0] != 0xff || data[1] != 0xd8 {
		t.Error("output is not a JPEG")
	}
}

func TestCompressImageUnreadableSource(t *testing.T) {
	dir := t.TempDir()
	c := NewCompressor(Options{}, logging.NewNop())
	_, err := c.CompressImage(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "out.jpg"), 70)
	if err == nil {
		t.Fatal("expected error for unreadable source")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("error = %v, want validation classification", err)
	}
}

type fakeRunner struct {
	err   error
	calls [][]string
}

func (f *fakeRunner) Run(_ context.Context, binary string, args []string) error {
	f.calls = append(f.calls, append([]string{binary}, args...))
	return f.err
}

func TestCompressVideoCommand(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeRunner{}
	c := NewCompressor(Options{FFmpegBinary: "ffmpeg"}, logging.NewNop(), WithRunExecutor(fake))

	out, err := c.CompressVideo(context.Background(),
		filepath.Join(dir, "v.mov"), filepath.Join(dir, "NAME_001.mov"), 28, "medium")
	if err != nil {
		t.Fatalf("CompressVideo: %v", err)
	}
	if !strings.HasSuffix(out, "NAME_001.mp4") {
		t.Errorf("output = %s, want .mp4 extension", out)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("executor calls = %d, want 1", len(fake.calls))
	}
	cmd := strings.Join(fake.calls[0], " ")
	for _, want := range []string{"libx264", "-crf 28", "-preset medium", "+faststart", "-b:a 128k"} {
		if !strings.Contains(cmd, want) {
			t.Errorf("command missing %q: %s", want, cmd)
		}
	}
}

func TestCompressVideoFailure(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeRunner{err: errors.New("encoder blew up")}
	c := NewCompressor(Options{}, logging.NewNop(), WithRunExecutor(fake))

	_, err := c.CompressVideo(context.Background(),
		filepath.Join(dir, "v.mp4"), filepath.Join(dir, "out.mp4"), 28, "medium")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Errorf("error = %v, want external tool classification", err)
	}
	if services.IsFatal(err) {
		t.Error("tool failure should not be fatal")
	}
}

func TestExifSegmentRoundTrip(t *testing.T) {
	// A minimal JPEG: SOI, APP1 Exif segment, EOI.
	payload := append([]byte("Exif\x00\x00"), []byte("IIdata")...)
	segment := []byte{0xff, 0xe1, byte((len(payload) + 2) >> 8), byte(len(payload) + 2)}
	segment = append(segment, payload...)
	file := append([]byte{0xff, 0xd8}, segment...)
	file = append(file, 0xff, 0xd9)

	dir := t.TempDir()
	path := filepath.Join(dir, "tagged.jpg")
	if err := os.WriteFile(path, file, 0o644); err != nil {
		t.Fatal(err)
	}

	got := exifSegment(path)
	if got == nil {
		t.Fatal("exifSegment returned nil")
	}
	if string(got) != string(segment) {
		t.Errorf("segment mismatch: %x vs %x", got, segment)
	}

	plain := []byte{0xff, 0xd8, 0xff, 0xd9}
	spliced := spliceExif(plain, got)
	if len(spliced) != len(plain)+len(segment) {
		t.Errorf("spliced length = %d, want %d", len(spliced), len(plain)+len(segment))
	}
	if spliced[2] != 0xff || spliced[3] != 0xe1 {
		t.Error("APP1 not placed directly after SOI")
	}
}

func TestExifSegmentAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.jpg")
	testsupport.WriteJPEG(t, path, 16, 16)

	if got := exifSegment(path); got != nil {
		t.Errorf("exifSegment = %x, want nil for stdlib-encoded JPEG", got)
	}
}
