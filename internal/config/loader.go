package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadHamster loads the game configuration.
// Search order: customPath -> ~/.hamster/configs/hamster.yaml -> ./configs/hamster.yaml -> embedded default
func LoadHamster(customPath string) (HamsterConfig, error) {
	// Start from defaults so a partial file only overrides what it names.
	cfg := DefaultHamsterConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("hamster.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "hamster.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultHamsterYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultHamsterConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads and validates a config file, reporting false on any failure
// so the caller can fall through to the next location.
func tryLoad(path string) (HamsterConfig, bool) {
	cfg := DefaultHamsterConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hamster", "configs", filename)
}

// Validate checks the values the simulation divides by or compares against.
func (c HamsterConfig) Validate() error {
	var errs []error
	if c.Race.StepsPerLoop <= 0 {
		errs = append(errs, errors.New("race.steps_per_loop must be positive"))
	}
	if c.Race.CountdownSeconds < 0 {
		errs = append(errs, errors.New("race.countdown_seconds must not be negative"))
	}
	if c.Race.DurationSeconds <= 0 {
		errs = append(errs, errors.New("race.duration_seconds must be positive"))
	}
	if c.Actor.LeftWall >= c.Actor.RightWall {
		errs = append(errs, errors.New("actor.left_wall must be less than actor.right_wall"))
	}
	if c.Actor.WheelZoneMin > c.Actor.WheelZoneMax {
		errs = append(errs, errors.New("actor.wheel_zone_min must not exceed actor.wheel_zone_max"))
	}
	if c.Effects.Dust.LiveTime <= 0 || c.Effects.SleepZ.LiveTime <= 0 {
		errs = append(errs, errors.New("effects live_time must be positive"))
	}
	if c.Achievements.DisplaySeconds <= 0 {
		errs = append(errs, errors.New("achievements.display_seconds must be positive"))
	}
	if c.Stats.PollIntervalTicks <= 0 {
		errs = append(errs, errors.New("stats.poll_interval_ticks must be positive"))
	}
	return errors.Join(errs...)
}
