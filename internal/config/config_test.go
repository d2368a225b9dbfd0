package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ritualpair/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Pairing.Mode != "time" {
		t.Fatalf("unexpected default mode: %q", cfg.Pairing.Mode)
	}
	if cfg.Pairing.ToleranceSeconds != 60 {
		t.Fatalf("unexpected default tolerance: %d", cfg.Pairing.ToleranceSeconds)
	}
	if cfg.Pairing.SimilarityThreshold != 0.1 {
		t.Fatalf("unexpected default threshold: %v", cfg.Pairing.SimilarityThreshold)
	}
	if !cfg.Pairing.AllowMultiVideo {
		t.Fatal("expected multi-video pairing enabled by default")
	}
	if cfg.Tools.FFprobe != "ffprobe" || cfg.Tools.FFmpeg != "ffmpeg" {
		t.Fatalf("unexpected tool defaults: %q %q", cfg.Tools.FFprobe, cfg.Tools.FFmpeg)
	}
	if cfg.Output.ImageQuality != 75 || cfg.Output.VideoCRF != 28 {
		t.Fatalf("unexpected output defaults: %d %d", cfg.Output.ImageQuality, cfg.Output.VideoCRF)
	}
}

func TestLoadExplicitFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := strings.Join([]string{
		"[pairing]",
		`mode = "image"`,
		"tolerance_seconds = 90",
		"similarity_threshold = 0.25",
		"allow_multi_video = false",
		"",
		"[logging]",
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit file to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Pairing.Mode != "image" {
		t.Fatalf("unexpected mode: %q", cfg.Pairing.Mode)
	}
	if cfg.Pairing.ToleranceSeconds != 90 {
		t.Fatalf("unexpected tolerance: %d", cfg.Pairing.ToleranceSeconds)
	}
	if cfg.Pairing.AllowMultiVideo {
		t.Fatal("expected multi-video disabled")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected level: %q", cfg.Logging.Level)
	}
	// Unset sections keep their defaults.
	if cfg.Output.VideoPreset != "medium" {
		t.Fatalf("unexpected preset: %q", cfg.Output.VideoPreset)
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[pairing]\nmode = \"random\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown pairing mode")
	}
}

func TestValidateOutputBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Output.SplitSegments = 11
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for split_segments > 10")
	}
	cfg = config.Default()
	cfg.Output.SplitSegments = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for split_segments = 1")
	}
	cfg = config.Default()
	cfg.Output.SplitSegments = 4
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSampleConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if *cfg != config.Default() {
		t.Fatalf("sample config should equal defaults, got %+v", cfg)
	}
}
