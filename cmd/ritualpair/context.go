package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"ritualpair/internal/config"
	"ritualpair/internal/logging"
	"ritualpair/internal/media"
	"ritualpair/internal/pairing"
	"ritualpair/internal/timestamp"
	"ritualpair/internal/vision"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || cfg == nil {
			c.logger = logging.NewNop()
			return
		}
		level := cfg.Logging.Level
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = strings.TrimSpace(*c.logLevelFlag)
		}
		logger, err := logging.New(logging.Options{
			Level:  level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// newScanner wires a fresh timestamp resolver and scanner. Each command
// invocation gets its own cache; nothing persists between runs.
func (c *commandContext) newScanner(cfg *config.Config) *media.Scanner {
	logger := c.ensureLogger()
	resolver := timestamp.NewResolver(timestamp.NewCache(), timestamp.Options{
		FFprobeBinary: cfg.Tools.FFprobe,
		ProbeTimeout:  secondsOrDefault(cfg.Tools.ProbeTimeoutSeconds, 30*time.Second),
	}, logger)
	return media.NewScanner(resolver, logger)
}

// pairingFlags are the engine knobs shared by the pair and process commands.
type pairingFlags struct {
	mode       string
	tolerance  int
	threshold  float64
	multiVideo bool
	workers    int
	position   float64
}

func (f *pairingFlags) register(cmd *cobra.Command) {
	defaults := config.Default().Pairing
	cmd.Flags().StringVarP(&f.mode, "mode", "m", defaults.Mode, "Pairing mode: order, time, or image")
	cmd.Flags().IntVarP(&f.tolerance, "tolerance", "t", defaults.ToleranceSeconds, "Time mode claim window in seconds")
	cmd.Flags().Float64Var(&f.threshold, "threshold", defaults.SimilarityThreshold, "Image mode minimum similarity score")
	cmd.Flags().BoolVar(&f.multiVideo, "multi-video", defaults.AllowMultiVideo, "Image mode: allow one photo to win several videos")
	cmd.Flags().IntVar(&f.workers, "workers", defaults.ScoreWorkers, "Image mode worker count (0 = one per CPU)")
	cmd.Flags().Float64Var(&f.position, "frame-position", defaults.FramePosition, "Relative frame position sampled from each video (0-1)")
}

// applyConfig backfills flag values the user did not set from the loaded
// configuration, so explicit flags always win over the config file.
func (f *pairingFlags) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if cfg == nil {
		return
	}
	flags := cmd.Flags()
	if !flags.Changed("mode") {
		f.mode = cfg.Pairing.Mode
	}
	if !flags.Changed("tolerance") {
		f.tolerance = cfg.Pairing.ToleranceSeconds
	}
	if !flags.Changed("threshold") {
		f.threshold = cfg.Pairing.SimilarityThreshold
	}
	if !flags.Changed("multi-video") {
		f.multiVideo = cfg.Pairing.AllowMultiVideo
	}
	if !flags.Changed("workers") {
		f.workers = cfg.Pairing.ScoreWorkers
	}
	if !flags.Changed("frame-position") {
		f.position = cfg.Pairing.FramePosition
	}
}

// newEngine assembles the pairing engine from flags and config.
func (c *commandContext) newEngine(cfg *config.Config, flags *pairingFlags) (*pairing.Engine, error) {
	strategy, err := pairing.ParseStrategy(flags.mode)
	if err != nil {
		return nil, err
	}
	logger := c.ensureLogger()

	var sampler pairing.FrameSampler
	if strategy == pairing.StrategyImage {
		sampler = vision.NewSampler(vision.SamplerOptions{
			FFmpegBinary:  cfg.Tools.FFmpeg,
			FFprobeBinary: cfg.Tools.FFprobe,
			Timeout:       secondsOrDefault(cfg.Tools.SampleTimeoutSeconds, 30*time.Second),
			Position:      flags.position,
		}, logger)
	}

	matcher := pairing.NewMatcher(pairing.Options{
		Strategy:        strategy,
		Tolerance:       time.Duration(flags.tolerance) * time.Second,
		Threshold:       flags.threshold,
		AllowMultiVideo: flags.multiVideo,
		Workers:         flags.workers,
	}, sampler, logger)

	return pairing.NewEngine(c.newScanner(cfg), matcher, logger), nil
}

func secondsOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
