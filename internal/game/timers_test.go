package game

import "testing"

func TestCountdownSequence(t *testing.T) {
	var c Countdown
	c.Start(3)

	want := []string{"3", "2", "1", "GO!"}
	var got []string
	got = append(got, c.Text())
	gone := 0
	for i := 0; i < 8; i++ {
		ticked, g := c.Update(0.5)
		if g {
			gone++
		}
		if ticked {
			got = append(got, c.Text())
		}
	}

	if len(got) != len(want) {
		t.Fatalf("sequence = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d = %q, expected %q", i, got[i], want[i])
		}
	}
	if gone != 1 {
		t.Errorf("GO reported %d times, expected once", gone)
	}
	if c.Running() {
		t.Error("countdown should finish one second after GO")
	}
}

func TestCountdownLargeStepStillReportsGo(t *testing.T) {
	var c Countdown
	c.Start(3)
	if _, gone := c.Update(10); !gone {
		t.Error("skipping past the end should still report GO")
	}
}

func TestCountdownOpacityFades(t *testing.T) {
	var c Countdown
	c.Start(3)
	if c.Opacity() != 255 {
		t.Errorf("Opacity() = %d at start, expected 255", c.Opacity())
	}
	c.Update(0.5)
	if op := c.Opacity(); op < 120 || op > 135 {
		t.Errorf("Opacity() = %d half way, expected about 128", op)
	}
}

func TestRaceClock(t *testing.T) {
	tests := []struct {
		elapsed float64
		text    string
		expired bool
	}{
		{0, "01:00", false},
		{0.2, "01:00", false},
		{1, "00:59", false},
		{59.5, "00:01", false},
		{60, "00:00", true},
	}

	for _, tt := range tests {
		var r RaceClock
		r.Start(60)
		expired := r.Update(tt.elapsed)
		if tt.elapsed == 0 {
			expired = false
		}
		if r.Text() != tt.text {
			t.Errorf("after %.1fs Text() = %q, expected %q", tt.elapsed, r.Text(), tt.text)
		}
		if expired != tt.expired {
			t.Errorf("after %.1fs expired = %v, expected %v", tt.elapsed, expired, tt.expired)
		}
	}
}

func TestRaceClockExpiresOnce(t *testing.T) {
	var r RaceClock
	r.Start(1)
	if !r.Update(2) {
		t.Fatal("clock should expire")
	}
	if r.Update(1) || r.Running() {
		t.Error("clock should stay stopped")
	}
}
