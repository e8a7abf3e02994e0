// Package config loads reelcut settings from an optional YAML file
// with REELCUT_* environment variable overrides.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reelcut/reelcut/internal/domain/timecode"
)

const (
	DefaultOutDir   = "highlight_reels"
	DefaultDuration = "60"
	DefaultLogLevel = "info"

	EnvOutDir          = "REELCUT_OUT_DIR"
	EnvWorkers         = "REELCUT_WORKERS"
	EnvDefaultDuration = "REELCUT_DEFAULT_DURATION"
	EnvBestEffort      = "REELCUT_BEST_EFFORT"
	EnvFFmpeg          = "REELCUT_FFMPEG"
	EnvFFprobe         = "REELCUT_FFPROBE"
	EnvLogLevel        = "REELCUT_LOG_LEVEL"
	EnvLogJSON         = "REELCUT_LOG_JSON"
)

type Config struct {
	// OutDir receives the finished reel.
	OutDir string `yaml:"out_dir"`

	// Workers caps concurrent segment cuts. Zero means one worker per
	// CPU core.
	Workers int `yaml:"workers"`

	// DefaultDuration is applied to outline segments that omit one.
	// Accepts the same forms as outline durations: "90", "01:30",
	// "2m30s", "1.5 minutes".
	DefaultDuration string `yaml:"default_duration"`

	// BestEffort keeps going when a segment fails to cut instead of
	// aborting the run.
	BestEffort bool `yaml:"best_effort"`

	FFmpegPath  string `yaml:"ffmpeg"`
	FFprobePath string `yaml:"ffprobe"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

func Default() Config {
	return Config{
		OutDir:          DefaultOutDir,
		DefaultDuration: DefaultDuration,
		LogLevel:        DefaultLogLevel,
	}
}

// Load builds the effective configuration: defaults, then the YAML
// file at path (when given), then environment overrides. The result is
// validated before being returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		// Reject unknown keys so a typo fails loudly instead of being
		// silently ignored.
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvOutDir); v != "" {
		c.OutDir = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvDefaultDuration); v != "" {
		c.DefaultDuration = v
	}
	if v := os.Getenv(EnvBestEffort); v != "" {
		c.BestEffort = isTrue(v)
	}
	if v := os.Getenv(EnvFFmpeg); v != "" {
		c.FFmpegPath = v
	}
	if v := os.Getenv(EnvFFprobe); v != "" {
		c.FFprobePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogJSON); v != "" {
		c.LogJSON = isTrue(v)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	validLevels := map[string]bool{
		"debug":   true,
		"info":    true,
		"warn":    true,
		"warning": true,
		"error":   true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	if _, err := c.Span(); err != nil {
		return err
	}
	return nil
}

// Span parses DefaultDuration into seconds.
func (c Config) Span() (timecode.Seconds, error) {
	if c.DefaultDuration == "" {
		return 0, nil
	}
	s, err := timecode.ParseSpan(c.DefaultDuration)
	if err != nil {
		return 0, fmt.Errorf("invalid default duration %q: %w", c.DefaultDuration, err)
	}
	return s, nil
}

func isTrue(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}
