package core

// Per-axis quadrature state
// One instance per (port, axis). All instances are allocated at Init for
// the full MaxPorts range and torn down together at Shutdown.

const (
	// MaxPorts is the number of emulated mouse ports. Each port is one
	// horizontal plus one vertical axis, so MaxPorts*AxesPerPort hardware
	// timers are required.
	MaxPorts = 2

	// AxesPerPort: horizontal and vertical
	AxesPerPort = 2

	axisH = 0
	axisV = 1
)

// axisState is owned by exactly two parties: its stepper goroutine
// (phase, pin writes, step consumption) and the Update path (steps/dir
// rewrite plus timer reprogram). steps and dir are atomics because the
// two sides deliberately run unsynchronized: a stepper observing a stale
// field for one step interval costs a single-step timing artifact, never
// a broken phase sequence, since only the stepper touches phase.
type axisState struct {
	steps uint32 // remaining steps, atomic
	dir   uint32 // Direction, atomic
	phase uint8  // current quadrature phase, stepper-owned

	pins  PinPair // assigned at Configure, immutable afterwards
	timer TimerID // bound at Init, immutable afterwards

	// wake is the single-slot pending-wake channel between the timer
	// interrupt and the stepper. Capacity 1 with a non-blocking send:
	// signals that arrive while one is pending coalesce, which is safe
	// because the stepper checks current steps rather than counting
	// wakes.
	wake chan struct{}
}

// portState groups the two axes of one emulated mouse plus the running
// flag that keeps Start/Pause idempotent at the peripheral level.
type portState struct {
	axes    [AxesPerPort]axisState
	running bool
}

// timerFor returns the fixed timer identity for a (port, axis) slot.
func timerFor(port, axis int) TimerID {
	return TimerID(port*AxesPerPort + axis)
}
