package effect

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-hamster/internal/config"
	"github.com/vovakirdan/tui-hamster/internal/core"
)

func testParams() config.EffectParams {
	return config.DefaultHamsterConfig().Effects.Dust
}

func TestSpawnStartsAlive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := testParams()
	e := Spawn(KindDust, core.V(100, 200), p, rng)

	if !e.Alive() || e.Age != 0 || e.Opacity != 255 {
		t.Errorf("fresh effect = %+v", e)
	}
	if e.Vel.X < p.VelMinX || e.Vel.X > p.VelMaxX {
		t.Errorf("Vel.X = %f outside [%f, %f]", e.Vel.X, p.VelMinX, p.VelMaxX)
	}
	if e.Vel.Y < p.VelMinY || e.Vel.Y > p.VelMaxY {
		t.Errorf("Vel.Y = %f outside [%f, %f]", e.Vel.Y, p.VelMinY, p.VelMaxY)
	}
}

func TestAliveFlipsExactlyOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := Spawn(KindSleepZ, core.V(0, 0), config.DefaultHamsterConfig().Effects.SleepZ, rng)

	dt := 1.0 / 60.0
	transitions := 0
	prev := e.Alive()
	for i := 0; i < 600; i++ {
		e.Tick(dt)
		if e.Alive() != prev {
			if !prev {
				t.Fatal("effect came back to life")
			}
			transitions++
		}
		prev = e.Alive()
		if e.Age > e.LiveTime+dt+1e-9 {
			t.Fatalf("age %f overshot live time %f by more than one tick", e.Age, e.LiveTime)
		}
		if e.Alive() != (e.Age < e.LiveTime) {
			t.Fatalf("alive=%v but age=%f limit=%f", e.Alive(), e.Age, e.LiveTime)
		}
	}
	if transitions != 1 {
		t.Errorf("alive changed %d times, expected 1", transitions)
	}
}

func TestOpacityNonIncreasingAndBounded(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"frame", 1.0 / 60.0},
		{"slow frame", 0.25},
		{"huge step", 10},
		{"negative dt clamps", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Spawn(KindDust, core.V(0, 0), testParams(), rand.New(rand.NewSource(3)))
			last := e.Opacity
			for i := 0; i < 100 && e.Alive(); i++ {
				e.Tick(tt.dt)
				if e.Opacity > last {
					t.Fatalf("opacity rose from %d to %d", last, e.Opacity)
				}
				last = e.Opacity
			}
		})
	}
}

func TestTickIntegratesVelocity(t *testing.T) {
	e := Spawn(KindDust, core.V(10, 10), config.EffectParams{
		LiveTime: 2, VelMinX: 5, VelMaxX: 5, VelMinY: -4, VelMaxY: -4,
	}, rand.New(rand.NewSource(1)))

	e.Tick(0.5)
	if e.Pos.X != 12.5 || e.Pos.Y != 8 {
		t.Errorf("Pos = %+v, expected (12.5, 8)", e.Pos)
	}

	// Dead effects stop moving
	e.Tick(5)
	pos := e.Pos
	e.Tick(1)
	if e.Pos != pos {
		t.Error("dead effect kept integrating")
	}
}

func TestWobbleOnlyAffectsRender(t *testing.T) {
	e := Spawn(KindSleepZ, core.V(100, 100), config.EffectParams{
		LiveTime: 4, Wobble: 10,
	}, rand.New(rand.NewSource(1)))
	e.Tick(0.5)

	if e.Pos.X != 100 {
		t.Errorf("Pos.X = %f, wobble leaked into simulation", e.Pos.X)
	}
	if e.RenderPos().X == e.Pos.X {
		t.Error("RenderPos should apply wobble")
	}
}

func TestPoolEmptiesAfterLiveTime(t *testing.T) {
	p := NewPool()
	p.Tick(0.1) // empty pool is fine
	p.Add(Spawn(KindDust, core.V(0, 0), config.EffectParams{LiveTime: 1}, rand.New(rand.NewSource(1))))

	dt := 0.3
	for elapsed := 0.0; elapsed <= 1.0; elapsed += dt {
		p.Tick(dt)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d after live time elapsed, expected 0", p.Len())
	}
}

func TestPoolStableRemoval(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewPool()
	released := 0
	p.OnRelease = func(Effect) { released++ }

	// Alternate short and long lived effects, tagging by Variant
	for i := 0; i < 6; i++ {
		lt := 0.1
		if i%2 == 1 {
			lt = 5
		}
		e := Spawn(KindDust, core.V(0, 0), config.EffectParams{LiveTime: lt}, rng)
		e.Variant = i
		p.Add(e)
	}

	p.Tick(0.2)

	if p.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", p.Len())
	}
	if released != 3 {
		t.Errorf("released %d, expected 3", released)
	}
	for i, e := range p.Effects() {
		if e.Variant != 2*i+1 {
			t.Errorf("effect %d has variant %d, order not preserved", i, e.Variant)
		}
		if !e.Alive() {
			t.Error("dead effect survived compaction")
		}
	}

	p.Clear()
	if p.Len() != 0 || released != 6 {
		t.Errorf("Clear(): Len=%d released=%d", p.Len(), released)
	}
}

func TestPoolRenderDrawsInOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := core.NewScreen(80, 24)
	p := NewPool()

	first := Spawn(KindDust, core.V(640, 360), config.EffectParams{LiveTime: 1}, rng)
	second := Spawn(KindSleepZ, core.V(640, 360), config.EffectParams{LiveTime: 1}, rng)
	second.Variant = 0
	p.Add(first)
	p.Add(second)
	p.Render(s)

	x, y := core.WorldToCell(core.V(640, 360), 80, 24)
	if got := s.Get(x, y); got != 'Z' {
		t.Errorf("cell = %q, later effect should draw on top", got)
	}
}
