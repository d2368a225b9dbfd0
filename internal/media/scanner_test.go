package media_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ritualpair/internal/logging"
	"ritualpair/internal/media"
	"ritualpair/internal/testsupport"
)

// stubResolver assigns deterministic timestamps from a table, falling back
// to a fixed instant so every file resolves.
type stubResolver struct {
	times map[string]time.Time
}

func (r stubResolver) Resolve(_ context.Context, path string, _ media.Kind) (time.Time, media.TimeSource) {
	if ts, ok := r.times[filepath.Base(path)]; ok {
		return ts, media.SourceEmbedded
	}
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), media.SourceFilesystem
}

func TestScanClassifiesAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.mp4", "notes.txt", "c.MOV", "d.png"} {
		testsupport.WriteFile(t, filepath.Join(dir, name), 1)
	}
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	resolver := stubResolver{times: map[string]time.Time{
		"b.jpg": base.Add(3 * time.Minute),
		"a.mp4": base.Add(1 * time.Minute),
		"c.MOV": base.Add(2 * time.Minute),
		"d.png": base,
	}}

	scanner := media.NewScanner(resolver, logging.NewNop())
	files, err := scanner.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("expected 4 media files, got %d", len(files))
	}
	wantOrder := []string{"d.png", "a.mp4", "c.MOV", "b.jpg"}
	for i, want := range wantOrder {
		if files[i].Name() != want {
			t.Fatalf("position %d: got %s want %s", i, files[i].Name(), want)
		}
	}
	if files[0].Kind != media.KindPhoto || files[1].Kind != media.KindVideo {
		t.Fatal("unexpected classification")
	}
}

func TestScanMissingDirectory(t *testing.T) {
	scanner := media.NewScanner(stubResolver{}, logging.NewNop())
	_, err := scanner.Scan(context.Background(), filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, media.ErrDirectoryNotFound) {
		t.Fatalf("expected ErrDirectoryNotFound, got %v", err)
	}
}

func TestScanSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "nested", "x.jpg"), 1)
	testsupport.WriteFile(t, filepath.Join(dir, "top.jpg"), 1)

	scanner := media.NewScanner(stubResolver{}, logging.NewNop())
	files, err := scanner.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 1 || files[0].Name() != "top.jpg" {
		t.Fatalf("expected only top.jpg, got %v", files)
	}
}

func TestScanFallbackTimestampNeverDropsFiles(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "nometa.jpg"), 1)

	scanner := media.NewScanner(stubResolver{}, logging.NewNop())
	files, err := scanner.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected file to survive with fallback time, got %d", len(files))
	}
	if files[0].TimeSource != media.SourceFilesystem {
		t.Fatalf("unexpected time source: %s", files[0].TimeSource)
	}
	if files[0].CreatedAt.IsZero() {
		t.Fatal("expected non-zero timestamp")
	}
}

func TestKindForPath(t *testing.T) {
	for _, path := range []string{"x.jpg", "x.JPEG", "x.png", "x.heic", "x.heif"} {
		if kind, ok := media.KindForPath(path); !ok || kind != media.KindPhoto {
			t.Errorf("expected %s to be a photo", path)
		}
	}
	for _, path := range []string{"x.mp4", "x.MOV", "x.m4v", "x.avi"} {
		if kind, ok := media.KindForPath(path); !ok || kind != media.KindVideo {
			t.Errorf("expected %s to be a video", path)
		}
	}
	for _, path := range []string{"x.txt", "x.gif", "x"} {
		if _, ok := media.KindForPath(path); ok {
			t.Errorf("expected %s to be unsupported", path)
		}
	}
}

func TestSplit(t *testing.T) {
	files := []media.File{
		{Path: "a.jpg", Kind: media.KindPhoto},
		{Path: "b.mp4", Kind: media.KindVideo},
		{Path: "c.jpg", Kind: media.KindPhoto},
	}
	photos, videos := media.Split(files)
	if len(photos) != 2 || len(videos) != 1 {
		t.Fatalf("unexpected split: %d photos %d videos", len(photos), len(videos))
	}
	if !strings.HasSuffix(videos[0].Path, "b.mp4") {
		t.Fatalf("unexpected video: %s", videos[0].Path)
	}
}
