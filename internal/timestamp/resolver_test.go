package timestamp_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ritualpair/internal/logging"
	"ritualpair/internal/media"
	"ritualpair/internal/testsupport"
	"ritualpair/internal/timestamp"
)

func newResolver(cache *timestamp.Cache) *timestamp.Resolver {
	// A nonexistent ffprobe binary forces the filesystem fallback for
	// videos, keeping tests hermetic.
	return timestamp.NewResolver(cache, timestamp.Options{
		FFprobeBinary: "ritualpair-test-no-such-ffprobe",
		ProbeTimeout:  time.Second,
	}, logging.NewNop())
}

func TestResolvePhotoWithoutEXIFFallsBackToFilesystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.jpg")
	testsupport.WriteJPEG(t, path, 8, 8)

	resolver := newResolver(timestamp.NewCache())
	at, source := resolver.Resolve(context.Background(), path, media.KindPhoto)
	if source != media.SourceFilesystem {
		t.Fatalf("expected filesystem source, got %s", source)
	}
	if at.IsZero() {
		t.Fatal("expected non-zero timestamp")
	}
}

func TestResolveVideoWithoutProbeFallsBackToFilesystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	testsupport.WriteFile(t, path, 64)

	resolver := newResolver(timestamp.NewCache())
	at, source := resolver.Resolve(context.Background(), path, media.KindVideo)
	if source != media.SourceFilesystem {
		t.Fatalf("expected filesystem source, got %s", source)
	}
	if at.IsZero() {
		t.Fatal("expected non-zero timestamp")
	}
}

func TestResolveMemoizesPerPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	testsupport.WriteFile(t, path, 64)

	cache := timestamp.NewCache()
	resolver := newResolver(cache)
	first, _ := resolver.Resolve(context.Background(), path, media.KindVideo)
	if cache.Len() != 1 {
		t.Fatalf("expected 1 cached entry, got %d", cache.Len())
	}
	second, _ := resolver.Resolve(context.Background(), path, media.KindVideo)
	if !first.Equal(second) {
		t.Fatalf("memoized result changed: %v vs %v", first, second)
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	testsupport.WriteFile(t, path, 64)

	cache := timestamp.NewCache()
	resolver := newResolver(cache)
	resolver.Resolve(context.Background(), path, media.KindVideo)
	if cache.Len() != 1 {
		t.Fatalf("expected cached entry, got %d", cache.Len())
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache after Clear, got %d", cache.Len())
	}
	// Resolution still works after clearing.
	if at, _ := resolver.Resolve(context.Background(), path, media.KindVideo); at.IsZero() {
		t.Fatal("expected resolution after clear")
	}
}

func TestResolveMissingFileStillReturns(t *testing.T) {
	resolver := newResolver(timestamp.NewCache())
	at, source := resolver.Resolve(context.Background(), filepath.Join(t.TempDir(), "ghost.jpg"), media.KindPhoto)
	if source != media.SourceFilesystem {
		t.Fatalf("expected filesystem source tag, got %s", source)
	}
	if !at.IsZero() {
		t.Fatalf("expected zero instant for unstattable file, got %v", at)
	}
}

func TestFilesystemTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.bin")
	testsupport.WriteFile(t, path, 1)
	at, err := timestamp.FilesystemTime(path)
	if err != nil {
		t.Fatalf("FilesystemTime: %v", err)
	}
	if time.Since(at) > time.Hour {
		t.Fatalf("implausible filesystem time: %v", at)
	}
}

func TestConcurrentResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	testsupport.WriteFile(t, path, 64)

	cache := timestamp.NewCache()
	resolver := newResolver(cache)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			resolver.Resolve(context.Background(), path, media.KindVideo)
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	if cache.Len() != 1 {
		t.Fatalf("expected a single cache entry, got %d", cache.Len())
	}
}
