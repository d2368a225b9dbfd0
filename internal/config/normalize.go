package config

import "strings"

func (c *Config) normalize() {
	c.normalizeTools()
	c.normalizePairing()
	c.normalizeOCR()
	c.normalizeOutput()
	c.normalizeLogging()
}

func (c *Config) normalizeTools() {
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Tools.Tesseract) == "" {
		c.Tools.Tesseract = defaultTesseractBinary
	}
	if c.Tools.ProbeTimeoutSeconds <= 0 {
		c.Tools.ProbeTimeoutSeconds = defaultProbeTimeoutSeconds
	}
	if c.Tools.SampleTimeoutSeconds <= 0 {
		c.Tools.SampleTimeoutSeconds = defaultSampleTimeoutSeconds
	}
	if c.Tools.CompressTimeoutSeconds <= 0 {
		c.Tools.CompressTimeoutSeconds = defaultCompressTimeoutSeconds
	}
	if c.Tools.SplitTimeoutSeconds <= 0 {
		c.Tools.SplitTimeoutSeconds = defaultSplitTimeoutSeconds
	}
	if c.Tools.OCRTimeoutSeconds <= 0 {
		c.Tools.OCRTimeoutSeconds = defaultOCRTimeoutSeconds
	}
}

func (c *Config) normalizePairing() {
	c.Pairing.Mode = strings.ToLower(strings.TrimSpace(c.Pairing.Mode))
	if c.Pairing.Mode == "" {
		c.Pairing.Mode = defaultPairingMode
	}
	if c.Pairing.ToleranceSeconds <= 0 {
		c.Pairing.ToleranceSeconds = defaultToleranceSeconds
	}
	if c.Pairing.SimilarityThreshold <= 0 {
		c.Pairing.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.Pairing.FramePosition <= 0 || c.Pairing.FramePosition >= 1 {
		c.Pairing.FramePosition = defaultFramePosition
	}
	if c.Pairing.ScoreWorkers < 0 {
		c.Pairing.ScoreWorkers = 0
	}
}

func (c *Config) normalizeOCR() {
	c.OCR.Language = strings.TrimSpace(c.OCR.Language)
	if c.OCR.Language == "" {
		c.OCR.Language = defaultOCRLanguage
	}
}

func (c *Config) normalizeOutput() {
	if c.Output.ImageQuality <= 0 {
		c.Output.ImageQuality = defaultImageQuality
	}
	if c.Output.VideoCRF <= 0 {
		c.Output.VideoCRF = defaultVideoCRF
	}
	c.Output.VideoPreset = strings.TrimSpace(c.Output.VideoPreset)
	if c.Output.VideoPreset == "" {
		c.Output.VideoPreset = defaultVideoPreset
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
