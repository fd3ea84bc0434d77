package config

import (
	_ "embed"
)

//go:embed defaults/hamster.yaml
var defaultHamsterYAML []byte

// DefaultHamsterConfig returns the default game configuration.
func DefaultHamsterConfig() HamsterConfig {
	return HamsterConfig{
		Actor: ActorConfig{
			StartX:           320,
			StartY:           450,
			GroundY:          474,
			ExitStep:         24,
			ExitThresholdX:   520,
			WalkStep:         16,
			LeftWall:         500,
			RightWall:        1180,
			WheelZoneMin:     840,
			WheelZoneMax:     960,
			ClimbEntryX:      900,
			ClimbY:           420,
			ClimbExitX:       880,
			WheelBaseX:       900,
			WheelBaseY:       330,
			StepIdleSeconds:  1.2,
			SleepIdleSeconds: 15,
			SleepZInterval:   1.5,
		},
		Race: RaceConfig{
			CountdownSeconds: 3,
			DurationSeconds:  60,
			StepsPerLoop:     5,
			TitleFadeSeconds: 2.5,
		},
		Effects: EffectsConfig{
			Dust: EffectParams{
				LiveTime: 0.6,
				VelMinX:  -90,
				VelMaxX:  -30,
				VelMinY:  -25,
				VelMaxY:  10,
				Variants: 3,
			},
			SleepZ: EffectParams{
				LiveTime: 3,
				VelMinX:  4,
				VelMaxX:  12,
				VelMinY:  -40,
				VelMaxY:  -25,
				Wobble:   12,
				Variants: 2,
			},
		},
		Achievements: AchievementsConfig{
			FastRunLoops:      405,
			LongDistanceLoops: 3300,
			DisplaySeconds:    5,
		},
		Stats: StatsConfig{
			AppID:             1583410,
			PollIntervalTicks: 10,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  -1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultHamsterYAML
}
