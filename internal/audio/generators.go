package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Note frequencies used by the music generators (Hz).
var (
	// C major pentatonic, two octaves
	menuScale = []float64{261.63, 293.66, 329.63, 392.00, 440.00, 523.25, 587.33, 659.25}
	// Bass line for the race: A, A, F, G
	wheelBass = []float64{110.00, 110.00, 87.31, 98.00}
)

// MenuGenerator plays a slow, soft pentatonic arpeggio.
type MenuGenerator struct {
	sr      beep.SampleRate
	pos     int
	noteLen int
}

// NewMenuGenerator creates the menu music generator.
func NewMenuGenerator(sr beep.SampleRate) *MenuGenerator {
	return &MenuGenerator{
		sr:      sr,
		noteLen: sr.N(time.Millisecond * 375), // 160 BPM eighth notes
	}
}

func (g *MenuGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	// Up and back down the scale
	pattern := []int{0, 2, 4, 5, 7, 5, 4, 2}
	for i := range samples {
		note := (g.pos / g.noteLen) % len(pattern)
		notePos := g.pos % g.noteLen
		t := float64(notePos) / float64(g.sr)
		freq := menuScale[pattern[note]]

		// Plucked envelope: quick attack, exponential decay
		attack := math.Min(float64(notePos)/float64(g.sr.N(time.Millisecond*10)), 1)
		env := attack * math.Exp(-4*float64(notePos)/float64(g.noteLen))

		sample := 0.12 * env * (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*2*t))
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *MenuGenerator) Err() error {
	return nil
}

// WheelGenerator plays a driving kick and bass pattern for the race.
type WheelGenerator struct {
	sr      beep.SampleRate
	pos     int
	beatLen int
}

// NewWheelGenerator creates the race music generator.
func NewWheelGenerator(sr beep.SampleRate) *WheelGenerator {
	return &WheelGenerator{
		sr:      sr,
		beatLen: sr.N(time.Millisecond * 400), // 150 BPM
	}
}

func (g *WheelGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := g.sr.N(time.Millisecond * 90)
	for i := range samples {
		beat := g.pos / g.beatLen
		beatPos := g.pos % g.beatLen
		t := float64(beatPos) / float64(g.sr)

		kick := 0.0
		if beatPos < kickLen {
			kickEnv := 1 - float64(beatPos)/float64(kickLen)
			kickFreq := 55 * (1 + 2*kickEnv)
			kick = 0.35 * kickEnv * math.Sin(2*math.Pi*kickFreq*t)
		}

		bassFreq := wheelBass[(beat/2)%len(wheelBass)]
		bassEnv := math.Exp(-3 * float64(beatPos) / float64(g.beatLen))
		bass := 0.15 * bassEnv * math.Sin(2*math.Pi*bassFreq*t)

		sample := kick + bass
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *WheelGenerator) Err() error {
	return nil
}

// StepGenerator is a short, soft click of filtered noise.
type StepGenerator struct {
	sr    beep.SampleRate
	pos   int
	seed  uint32
	last  float64
	total int
}

// NewStepGenerator creates a step sound lasting d.
func NewStepGenerator(sr beep.SampleRate, d time.Duration, seed uint32) *StepGenerator {
	if seed == 0 {
		seed = 1
	}
	return &StepGenerator{sr: sr, seed: seed, total: sr.N(d)}
}

func (g *StepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		// xorshift noise through a one-pole low-pass
		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1
		g.last += 0.25 * (noise - g.last)

		env := 1 - float64(g.pos)/float64(g.total)
		sample := 0.3 * env * env * g.last
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *StepGenerator) Err() error {
	return nil
}

// ToneGenerator is a sine beep with a short fade at both ends.
type ToneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	total int
}

// NewToneGenerator creates a tone of the given frequency and length.
func NewToneGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, total: sr.N(d)}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	fade := g.sr.N(time.Millisecond * 8)
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		env := 1.0
		if g.pos < fade {
			env = float64(g.pos) / float64(fade)
		} else if rem := g.total - g.pos; rem < fade {
			env = float64(rem) / float64(fade)
		}
		sample := 0.2 * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
