package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Tools contains paths and timeouts for the external binaries ritualpair
// shells out to.
type Tools struct {
	FFprobe                string `toml:"ffprobe"`
	FFmpeg                 string `toml:"ffmpeg"`
	Tesseract              string `toml:"tesseract"`
	ProbeTimeoutSeconds    int    `toml:"probe_timeout_seconds"`
	SampleTimeoutSeconds   int    `toml:"sample_timeout_seconds"`
	CompressTimeoutSeconds int    `toml:"compress_timeout_seconds"`
	SplitTimeoutSeconds    int    `toml:"split_timeout_seconds"`
	OCRTimeoutSeconds      int    `toml:"ocr_timeout_seconds"`
}

// Pairing contains defaults for the pairing engine.
type Pairing struct {
	Mode                string  `toml:"mode"`
	ToleranceSeconds    int     `toml:"tolerance_seconds"`
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	AllowMultiVideo     bool    `toml:"allow_multi_video"`
	FramePosition       float64 `toml:"frame_position"`
	ScoreWorkers        int     `toml:"score_workers"`
}

// OCR contains name extraction settings.
type OCR struct {
	Enabled  bool   `toml:"enabled"`
	Language string `toml:"language"`
}

// Output contains settings for the rename/copy stage.
type Output struct {
	Compress          bool   `toml:"compress"`
	ImageQuality      int    `toml:"image_quality"`
	VideoCRF          int    `toml:"video_crf"`
	VideoPreset       string `toml:"video_preset"`
	OverwriteExisting bool   `toml:"overwrite_existing"`
	SplitSegments     int    `toml:"split_segments"`
}

// Logging contains log output settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration document.
type Config struct {
	Tools   Tools   `toml:"tools"`
	Pairing Pairing `toml:"pairing"`
	OCR     OCR     `toml:"ocr"`
	Output  Output  `toml:"output"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the expanded default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/ritualpair/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ritualpair.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// WriteSample writes the embedded sample configuration to the given path.
func WriteSample(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(expanded); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Sample returns the embedded sample configuration text.
func Sample() string {
	return sampleConfig
}

// ExpandPath resolves a leading tilde and returns the cleaned absolute path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
