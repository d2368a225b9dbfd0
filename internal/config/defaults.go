package config

const (
	defaultFFprobeBinary          = "ffprobe"
	defaultFFmpegBinary           = "ffmpeg"
	defaultTesseractBinary        = "tesseract"
	defaultProbeTimeoutSeconds    = 10
	defaultSampleTimeoutSeconds   = 30
	defaultCompressTimeoutSeconds = 300
	defaultSplitTimeoutSeconds    = 600
	defaultOCRTimeoutSeconds      = 30
	defaultPairingMode            = "time"
	defaultToleranceSeconds       = 60
	defaultSimilarityThreshold    = 0.1
	defaultFramePosition          = 0.5
	defaultOCRLanguage            = "eng"
	defaultImageQuality           = 75
	defaultVideoCRF               = 28
	defaultVideoPreset            = "medium"
	defaultLogLevel               = "info"
	defaultLogFormat              = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFprobe:                defaultFFprobeBinary,
			FFmpeg:                 defaultFFmpegBinary,
			Tesseract:              defaultTesseractBinary,
			ProbeTimeoutSeconds:    defaultProbeTimeoutSeconds,
			SampleTimeoutSeconds:   defaultSampleTimeoutSeconds,
			CompressTimeoutSeconds: defaultCompressTimeoutSeconds,
			SplitTimeoutSeconds:    defaultSplitTimeoutSeconds,
			OCRTimeoutSeconds:      defaultOCRTimeoutSeconds,
		},
		Pairing: Pairing{
			Mode:                defaultPairingMode,
			ToleranceSeconds:    defaultToleranceSeconds,
			SimilarityThreshold: defaultSimilarityThreshold,
			AllowMultiVideo:     true,
			FramePosition:       defaultFramePosition,
		},
		OCR: OCR{
			Enabled:  true,
			Language: defaultOCRLanguage,
		},
		Output: Output{
			ImageQuality: defaultImageQuality,
			VideoCRF:     defaultVideoCRF,
			VideoPreset:  defaultVideoPreset,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
