package core

import "math"

// Delta-to-timing conversion
// Converts one motion report delta into (step count, direction, step
// interval). HID-style sources report ~100 times per second with deltas
// bounded to roughly +/-127, so a full-scale delta has ~10ms to play out.
// Splitting those 10ms into 128 slots gives an 80us tick grid, which is
// comfortably above the minimum interrupt period of the MCUs we target.

// Timing holds the tick-grid parameters for step pacing.
// The defaults reproduce the hand-tuned feel of the original adapter
// hardware; they are parameters rather than hard invariants.
type Timing struct {
	// TicksPerStep is the minimum fireable interval, in ticks.
	TicksPerStep uint32

	// MaxTicks is the tick budget spread across a full-scale delta.
	MaxTicks uint32

	// IdleTicks is the reload used while an axis has no pending motion.
	// Large, so an idle axis wakes rarely instead of never (keeping the
	// timer armed avoids a start/stop race when motion resumes).
	IdleTicks uint32
}

// TickHz is the default timer grid: one tick every 80us.
const TickHz = 12500

// DefaultTiming returns the timing parameters used by the stock targets.
func DefaultTiming() Timing {
	return Timing{
		TicksPerStep: 1,
		MaxTicks:     128,
		IdleTicks:    TickHz * 60,
	}
}

// StepPlan is the result of converting one axis delta.
type StepPlan struct {
	Steps    uint32    // steps to emit; unused when Idle
	Dir      Direction // direction of the burst; unused when Idle
	Interval uint32    // timer reload in ticks
	Idle     bool      // true when delta was zero: reprogram only
}

// Convert maps a signed motion delta and the current scale factor to a
// step plan. Larger deltas get shorter intervals (more encoder steps must
// fit in the same report period); the scale factor multiplies the interval,
// so bigger scale means slower perceived movement. A zero delta produces
// an idle plan that only slows the timer down; remaining steps and phase
// are left untouched by design.
func (tm Timing) Convert(delta int32, scale float32) StepPlan {
	if delta == 0 {
		return StepPlan{Interval: tm.IdleTicks, Idle: true}
	}

	abs := delta
	dir := DirPositive
	if delta < 0 {
		abs = -delta
		dir = DirNegative
	}

	// interval = round(MaxTicks / |delta| * scale), clamped so a huge
	// delta can never program a sub-minimum interval.
	interval := float64(tm.MaxTicks) / float64(abs) * float64(scale)
	min := float64(tm.TicksPerStep)
	if interval < min {
		interval = min
	}

	return StepPlan{
		Steps:    uint32(abs),
		Dir:      dir,
		Interval: uint32(math.Round(interval)),
	}
}
