package core

import "testing"

func TestConvertConcrete(t *testing.T) {
	tm := DefaultTiming()

	// A half-scale delta at scale 1: 128 ticks / 64 steps = 2 ticks/step.
	plan := tm.Convert(64, 1.0)
	if plan.Idle {
		t.Fatal("non-zero delta must not produce an idle plan")
	}
	if plan.Steps != 64 {
		t.Errorf("steps: got %d, want 64", plan.Steps)
	}
	if plan.Dir != DirPositive {
		t.Errorf("dir: got %d, want positive", plan.Dir)
	}
	if plan.Interval != 2 {
		t.Errorf("interval: got %d, want 2", plan.Interval)
	}
}

func TestConvertNegativeDelta(t *testing.T) {
	tm := DefaultTiming()
	plan := tm.Convert(-10, 1.0)
	if plan.Steps != 10 {
		t.Errorf("steps: got %d, want 10", plan.Steps)
	}
	if plan.Dir != DirNegative {
		t.Errorf("dir: got %d, want negative", plan.Dir)
	}
}

func TestConvertZeroDeltaIdles(t *testing.T) {
	tm := DefaultTiming()
	plan := tm.Convert(0, 1.0)
	if !plan.Idle {
		t.Fatal("zero delta must produce an idle plan")
	}
	if plan.Interval != tm.IdleTicks {
		t.Errorf("idle interval: got %d, want %d", plan.Interval, tm.IdleTicks)
	}
}

func TestConvertRounding(t *testing.T) {
	tm := DefaultTiming()
	// 128/3 = 42.67 rounds up; 128/5 = 25.6 rounds up; 128/48 = 2.67.
	testCases := []struct {
		delta int32
		want  uint32
	}{
		{3, 43},
		{5, 26},
		{48, 3},
		{128, 1},
	}
	for _, tc := range testCases {
		if got := tm.Convert(tc.delta, 1.0).Interval; got != tc.want {
			t.Errorf("delta %d: interval %d, want %d", tc.delta, got, tc.want)
		}
	}
}

func TestConvertScaleDoubling(t *testing.T) {
	tm := DefaultTiming()
	for _, delta := range []int32{1, 7, 32, 64} {
		base := tm.Convert(delta, 1.0).Interval
		doubled := tm.Convert(delta, 2.0).Interval
		if doubled != base*2 {
			t.Errorf("delta %d: scale 2 interval %d, want %d", delta, doubled, base*2)
		}
	}
}

func TestConvertMinimumClamp(t *testing.T) {
	tm := DefaultTiming()
	// A tiny scale would compute a sub-tick interval; it must clamp.
	for _, delta := range []int32{64, 127, -127} {
		plan := tm.Convert(delta, 0.001)
		if plan.Interval < tm.TicksPerStep {
			t.Errorf("delta %d: interval %d below minimum %d", delta, plan.Interval, tm.TicksPerStep)
		}
	}
	// Full-scale delta at scale 1 sits exactly on the minimum.
	if got := tm.Convert(127, 1.0).Interval; got != 1 {
		t.Errorf("full-scale interval: got %d, want 1", got)
	}
}
