// Package config handles rig simulation settings and scene descriptions.
package config

import (
	"fmt"
)

// Config holds all simulator settings.
type Config struct {
	Playback PlaybackConfig `yaml:"playback"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PlaybackConfig controls the tick loop and animator.
type PlaybackConfig struct {
	Speed      float32 `yaml:"speed"`       // negative plays backwards
	Looping    bool    `yaml:"looping"`
	TickRate   int     `yaml:"tick_rate"`   // ticks per simulated second
	Frames     int     `yaml:"frames"`      // ticks to run; 0 runs one clip length
	DriveJoint string  `yaml:"drive_joint"` // joint receiving the clip pose
	Concurrent bool    `yaml:"concurrent"`  // solve independent roots in parallel
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the demo humanoid and clip.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			Speed:      1,
			Looping:    true,
			TickRate:   60,
			Frames:     0,
			DriveJoint: "Hips",
		},
		Scene: DefaultScene(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that the loaders cannot express through types.
func (c *Config) Validate() error {
	if c.Playback.TickRate <= 0 {
		return fmt.Errorf("playback.tick_rate must be positive, got %d", c.Playback.TickRate)
	}
	if c.Playback.Frames < 0 {
		return fmt.Errorf("playback.frames must not be negative, got %d", c.Playback.Frames)
	}
	if c.Playback.DriveJoint == "" {
		return fmt.Errorf("playback.drive_joint is required")
	}
	return nil
}

// TickDelta returns the fixed tick length in seconds.
func (p PlaybackConfig) TickDelta() float32 {
	return 1 / float32(p.TickRate)
}

// FrameCount returns the number of ticks to run for a clip of the given length.
func (p PlaybackConfig) FrameCount(duration float32) int {
	if p.Frames > 0 {
		return p.Frames
	}
	return int(duration*float32(p.TickRate)) + 1
}
