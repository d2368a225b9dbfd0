package config

import "fmt"

var validModes = map[string]struct{}{
	"order": {},
	"time":  {},
	"image": {},
}

var validPresets = map[string]struct{}{
	"ultrafast": {},
	"superfast": {},
	"veryfast":  {},
	"faster":    {},
	"fast":      {},
	"medium":    {},
	"slow":      {},
	"slower":    {},
	"veryslow":  {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePairing(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePairing() error {
	if _, ok := validModes[c.Pairing.Mode]; !ok {
		return fmt.Errorf("pairing.mode must be one of order, time, image; got %q", c.Pairing.Mode)
	}
	if c.Pairing.SimilarityThreshold > 1 {
		return fmt.Errorf("pairing.similarity_threshold must be at most 1.0; got %v", c.Pairing.SimilarityThreshold)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.ImageQuality < 1 || c.Output.ImageQuality > 100 {
		return fmt.Errorf("output.image_quality must be in [1,100]; got %d", c.Output.ImageQuality)
	}
	if c.Output.VideoCRF < 0 || c.Output.VideoCRF > 51 {
		return fmt.Errorf("output.video_crf must be in [0,51]; got %d", c.Output.VideoCRF)
	}
	if _, ok := validPresets[c.Output.VideoPreset]; !ok {
		return fmt.Errorf("output.video_preset %q is not a known x264 preset", c.Output.VideoPreset)
	}
	if c.Output.SplitSegments != 0 && (c.Output.SplitSegments < 2 || c.Output.SplitSegments > 10) {
		return fmt.Errorf("output.split_segments must be 0 or in [2,10]; got %d", c.Output.SplitSegments)
	}
	return nil
}
