package vision

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"ritualpair/internal/logging"
)

type fakeExecutor struct {
	calls  [][]string
	output []byte
	err    error
}

func (f *fakeExecutor) Output(_ context.Context, binary string, args []string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{binary}, args...))
	return f.output, f.err
}

func encodedPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestSampleFrameDecodesOutput(t *testing.T) {
	exec := &fakeExecutor{output: encodedPNG(t)}
	sampler := NewSampler(SamplerOptions{
		FFmpegBinary:  "ffmpeg",
		FFprobeBinary: "ritualpair-test-no-such-ffprobe",
	}, logging.NewNop(), WithFrameExecutor(exec))

	frame := sampler.SampleFrame(context.Background(), "/in/clip.mp4")
	if frame == nil {
		t.Fatal("expected decoded frame")
	}
	if len(exec.calls) != 1 {
		t.Fatalf("expected one ffmpeg invocation, got %d", len(exec.calls))
	}
	args := exec.calls[0]
	if args[0] != "ffmpeg" {
		t.Fatalf("unexpected binary: %s", args[0])
	}
	// Probe fails (missing binary), so no seek argument is injected.
	for _, arg := range args {
		if arg == "-ss" {
			t.Fatal("expected no seek when duration is unknown")
		}
	}
}

func TestSampleFrameExecFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("boom")}
	sampler := NewSampler(SamplerOptions{FFprobeBinary: "missing"}, logging.NewNop(), WithFrameExecutor(exec))
	if frame := sampler.SampleFrame(context.Background(), "/in/clip.mp4"); frame != nil {
		t.Fatal("expected nil frame on executor failure")
	}
}

func TestSampleFrameGarbageOutput(t *testing.T) {
	exec := &fakeExecutor{output: []byte("not a png")}
	sampler := NewSampler(SamplerOptions{FFprobeBinary: "missing"}, logging.NewNop(), WithFrameExecutor(exec))
	if frame := sampler.SampleFrame(context.Background(), "/in/clip.mp4"); frame != nil {
		t.Fatal("expected nil frame on undecodable output")
	}
}

func TestNewSamplerNormalizesPosition(t *testing.T) {
	sampler := NewSampler(SamplerOptions{Position: 1.5}, logging.NewNop())
	if sampler.position != 0.5 {
		t.Fatalf("expected default position, got %v", sampler.position)
	}
	sampler = NewSampler(SamplerOptions{Position: 0.25}, logging.NewNop())
	if sampler.position != 0.25 {
		t.Fatalf("expected configured position, got %v", sampler.position)
	}
}
