package input

import "testing"

func TestToggleHeldKeyFlipsOnce(t *testing.T) {
	var tg Toggle
	flips := 0
	for _, pressed := range []bool{true, true, true} {
		if tg.Update(pressed) {
			flips++
		}
	}
	if flips != 1 {
		t.Errorf("held key flipped %d times, want 1", flips)
	}
	if !tg.On() {
		t.Error("toggle should be on after one flip")
	}
}

func TestTogglePressReleaseSequence(t *testing.T) {
	var tg Toggle
	flips := 0
	for _, pressed := range []bool{true, false, true, false} {
		if tg.Update(pressed) {
			flips++
		}
	}
	if flips != 2 {
		t.Errorf("two presses flipped %d times, want 2", flips)
	}
	if tg.On() {
		t.Error("toggle should be back off after two flips")
	}
}

func TestToggleReleaseOnlyNeverFlips(t *testing.T) {
	var tg Toggle
	for i := 0; i < 5; i++ {
		if tg.Update(false) {
			t.Fatal("released key must not flip")
		}
	}
	if tg.On() {
		t.Error("toggle should stay off")
	}
}

func TestToggleSet(t *testing.T) {
	var tg Toggle
	tg.Set(true)
	if !tg.On() {
		t.Error("Set(true) should turn the toggle on")
	}
	tg.Update(true)
	if tg.On() {
		t.Error("a press after Set(true) should turn it off")
	}
}

func TestMouseTrackerFirstSampleHasNoOffset(t *testing.T) {
	m := NewMouseTracker(400, 300)

	dx, dy := m.Offsets(10, 20)
	if dx != 0 || dy != 0 {
		t.Errorf("first offsets = (%v, %v), want (0, 0)", dx, dy)
	}

	dx, dy = m.Offsets(15, 10)
	if dx != 5 || dy != 10 {
		t.Errorf("offsets = (%v, %v), want (5, 10)", dx, dy)
	}
}

func TestMouseTrackerReset(t *testing.T) {
	m := NewMouseTracker(0, 0)
	m.Offsets(100, 100)
	m.Reset()

	dx, dy := m.Offsets(500, 500)
	if dx != 0 || dy != 0 {
		t.Errorf("offsets after reset = (%v, %v), want (0, 0)", dx, dy)
	}
}

func TestActionString(t *testing.T) {
	if ToggleFlashlight.String() != "toggle_flashlight" {
		t.Errorf("unexpected name %q", ToggleFlashlight.String())
	}
	if Action(99).String() != "unknown" {
		t.Error("out of range actions should be unknown")
	}
}
