package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var embedded HamsterConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &embedded); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if embedded != DefaultHamsterConfig() {
		t.Errorf("embedded yaml drifted from DefaultHamsterConfig():\n%+v\n%+v", embedded, DefaultHamsterConfig())
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultHamsterConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadHamsterCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hamster.yaml")
	data := []byte("race:\n  duration_seconds: 30\nachievements:\n  fast_run_loops: 450\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadHamster(path)
	if err != nil {
		t.Fatalf("LoadHamster() error = %v", err)
	}
	if cfg.Race.DurationSeconds != 30 {
		t.Errorf("DurationSeconds = %d, expected 30", cfg.Race.DurationSeconds)
	}
	if cfg.Achievements.FastRunLoops != 450 {
		t.Errorf("FastRunLoops = %d, expected 450", cfg.Achievements.FastRunLoops)
	}
	// Untouched fields keep their defaults
	if cfg.Race.StepsPerLoop != 5 {
		t.Errorf("StepsPerLoop = %d, expected default 5", cfg.Race.StepsPerLoop)
	}
}

func TestLoadHamsterCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		create  bool
	}{
		{"missing file", "", false},
		{"bad yaml", "race: [", true},
		{"invalid values", "race:\n  steps_per_loop: 0\n", true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if tt.create {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			if _, err := LoadHamster(path); err == nil {
				t.Errorf("case %d: expected error", i)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultHamsterConfig()
	cfg.Actor.LeftWall = 2000
	cfg.Stats.PollIntervalTicks = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"left_wall", "poll_interval_ticks"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q should mention %q", msg, want)
		}
	}
}
