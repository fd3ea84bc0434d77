// Package config provides YAML-based game configuration loading for the
// hamster game. Every gameplay constant that is not part of the fixed world
// layout lives here so it can be tuned without a rebuild.
package config

// HamsterConfig contains all tunable configuration for the game.
type HamsterConfig struct {
	Actor        ActorConfig        `yaml:"actor"`
	Race         RaceConfig         `yaml:"race"`
	Effects      EffectsConfig      `yaml:"effects"`
	Achievements AchievementsConfig `yaml:"achievements"`
	Stats        StatsConfig        `yaml:"stats"`
	Audio        AudioConfig        `yaml:"audio"`
}

// ActorConfig defines the hamster's movement constants in world units.
type ActorConfig struct {
	StartX         float64 `yaml:"start_x"`
	StartY         float64 `yaml:"start_y"`
	GroundY        float64 `yaml:"ground_y"`         // Height the exit walk converges toward
	ExitStep       float64 `yaml:"exit_step"`        // X distance per step while leaving the house
	ExitThresholdX float64 `yaml:"exit_threshold_x"` // Crossing this x switches to walking
	WalkStep       float64 `yaml:"walk_step"`
	LeftWall       float64 `yaml:"left_wall"`
	RightWall      float64 `yaml:"right_wall"`
	WheelZoneMin   float64 `yaml:"wheel_zone_min"` // Horizontal capture zone for climbing
	WheelZoneMax   float64 `yaml:"wheel_zone_max"`
	ClimbEntryX    float64 `yaml:"climb_entry_x"`
	ClimbY         float64 `yaml:"climb_y"`
	ClimbExitX     float64 `yaml:"climb_exit_x"`
	WheelBaseX     float64 `yaml:"wheel_base_x"`
	WheelBaseY     float64 `yaml:"wheel_base_y"`

	StepIdleSeconds  float64 `yaml:"step_idle_seconds"`  // Stepping/climbing frame reverts to standing
	SleepIdleSeconds float64 `yaml:"sleep_idle_seconds"` // Standing this long falls asleep
	SleepZInterval   float64 `yaml:"sleep_z_interval"`   // Seconds between Z glyphs while asleep
}

// RaceConfig defines the countdown and race clock.
type RaceConfig struct {
	CountdownSeconds int     `yaml:"countdown_seconds"`
	DurationSeconds  int     `yaml:"duration_seconds"`
	StepsPerLoop     int     `yaml:"steps_per_loop"`
	TitleFadeSeconds float64 `yaml:"title_fade_seconds"`
}

// EffectsConfig defines the ephemeral effect parameters.
type EffectsConfig struct {
	Dust   EffectParams `yaml:"dust"`
	SleepZ EffectParams `yaml:"sleep_z"`
}

// EffectParams defines lifetime and the velocity range of one effect kind.
type EffectParams struct {
	LiveTime float64 `yaml:"live_time"`
	VelMinX  float64 `yaml:"vel_min_x"`
	VelMaxX  float64 `yaml:"vel_max_x"`
	VelMinY  float64 `yaml:"vel_min_y"`
	VelMaxY  float64 `yaml:"vel_max_y"`
	Wobble   float64 `yaml:"wobble"` // Horizontal sine amplitude (render only)
	Variants int     `yaml:"variants"`
}

// AchievementsConfig defines unlock thresholds and banner timing.
type AchievementsConfig struct {
	FastRunLoops      int     `yaml:"fast_run_loops"`
	LongDistanceLoops int     `yaml:"long_distance_loops"`
	DisplaySeconds    float64 `yaml:"display_seconds"`
}

// StatsConfig defines how the stats service is polled.
type StatsConfig struct {
	AppID             uint64 `yaml:"app_id"`
	PollIntervalTicks int    `yaml:"poll_interval_ticks"`
}

// AudioConfig defines the procedural audio output.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Gain in beep's exponential scale (0 = unchanged)
}
