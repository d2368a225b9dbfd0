package videosplit

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"ritualpair/internal/logging"
)

type fakeRunner struct {
	failOn map[string]bool
	calls  [][]string
}

func (f *fakeRunner) Run(_ context.Context, binary string, args []string) error {
	f.calls = append(f.calls, append([]string{binary}, args...))
	for _, arg := range args {
		if f.failOn[filepath.Base(arg)] {
			return errors.New("encode failed")
		}
	}
	return nil
}

func fixedDuration(seconds float64) func(context.Context, string) float64 {
	return func(context.Context, string) float64 { return seconds }
}

func newTestSplitter(t *testing.T, runner *fakeRunner, duration float64) *Splitter {
	t.Helper()
	return NewSplitter(Options{}, logging.NewNop(),
		WithRunExecutor(runner),
		WithDuration(fixedDuration(duration)),
	)
}

func TestSplitProducesLabeledSegments(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSplitter(t, runner, 90)
	dir := t.TempDir()

	out := s.Split(context.Background(), Request{
		Input:    "/in/v.mp4",
		OutDir:   dir,
		Segments: 3,
		BaseName: "NAME_001",
		Ext:      ".mp4",
	})

	if len(out) != 3 {
		t.Fatalf("segments = %d, want 3", len(out))
	}
	for i, label := range []string{"a", "b", "c"} {
		want := "NAME_001" + label + ".mp4"
		if filepath.Base(out[i]) != want {
			t.Errorf("segment %d = %s, want %s", i, filepath.Base(out[i]), want)
		}
	}
	// Each segment covers a third of the 90s input.
	first := strings.Join(runner.calls[0], " ")
	if !strings.Contains(first, "-ss 0.000") || !strings.Contains(first, "-t 30.000") {
		t.Errorf("first segment command = %s", first)
	}
	second := strings.Join(runner.calls[1], " ")
	if !strings.Contains(second, "-ss 30.000") {
		t.Errorf("second segment command = %s", second)
	}
}

func TestSplitUncompressedUsesHighQuality(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSplitter(t, runner, 60)

	s.Split(context.Background(), Request{
		Input: "/in/v.mp4", OutDir: t.TempDir(), Segments: 2, BaseName: "x", Compress: false,
	})

	cmd := strings.Join(runner.calls[0], " ")
	if !strings.Contains(cmd, "-crf 18") || !strings.Contains(cmd, "-preset fast") {
		t.Errorf("uncompressed split should encode near-lossless: %s", cmd)
	}
}

func TestSplitCompressedUsesRequestedCRF(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSplitter(t, runner, 60)

	s.Split(context.Background(), Request{
		Input: "/in/v.mp4", OutDir: t.TempDir(), Segments: 2, BaseName: "x",
		Compress: true, CRF: 32,
	})

	cmd := strings.Join(runner.calls[0], " ")
	if !strings.Contains(cmd, "-crf 32") || !strings.Contains(cmd, "-preset medium") {
		t.Errorf("compressed split command = %s", cmd)
	}
}

func TestSplitRejectsSegmentCountOutOfRange(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSplitter(t, runner, 60)

	for _, n := range []int{0, 1, 11} {
		if got := s.Split(context.Background(), Request{
			Input: "/in/v.mp4", OutDir: t.TempDir(), Segments: n, BaseName: "x",
		}); got != nil {
			t.Errorf("Split with %d segments = %v, want nil", n, got)
		}
	}
	if len(runner.calls) != 0 {
		t.Errorf("executor ran %d times, want 0", len(runner.calls))
	}
}

func TestSplitUnknownDuration(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestSplitter(t, runner, math.NaN())

	got := s.Split(context.Background(), Request{
		Input: "/in/v.mp4", OutDir: t.TempDir(), Segments: 2, BaseName: "x",
	})
	if got != nil {
		t.Errorf("Split = %v, want nil for unknown duration", got)
	}
}

func TestSplitSkipsFailedSegment(t *testing.T) {
	runner := &fakeRunner{failOn: map[string]bool{"xb.mp4": true}}
	s := newTestSplitter(t, runner, 60)

	got := s.Split(context.Background(), Request{
		Input: "/in/v.mp4", OutDir: t.TempDir(), Segments: 3, BaseName: "x",
	})
	if len(got) != 2 {
		t.Fatalf("segments = %d, want 2 surviving", len(got))
	}
	for _, path := range got {
		if filepath.Base(path) == "xb.mp4" {
			t.Error("failed segment reported as written")
		}
	}
}
