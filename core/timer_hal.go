package core

// TimerID identifies one hardware countdown timer. Timers are bound 1:1
// to axes at Init and never reassigned.
type TimerID uint8

// TimerHandler is invoked from interrupt context when a countdown timer
// reaches zero. The handler does nothing beyond signaling a stepper, and
// the driver must not add work of its own around it.
type TimerHandler func()

// TimerDriver is the abstract countdown-timer interface that core code
// uses. Platform-specific implementations map TimerIDs onto hardware
// timers configured for auto-reload with interrupt-on-zero.
type TimerDriver interface {
	// Init prepares the timer block. affinity is a hint naming the CPU
	// core that should service the timer interrupts; drivers on
	// single-core runtimes may ignore it.
	Init(affinity int) error

	// Configure binds a handler to a timer. The timer is left paused;
	// a misconfigured timer cannot meet the pacing contract, so errors
	// here are fatal to initialization.
	Configure(id TimerID, handler TimerHandler) error

	// SetReload programs both the current countdown and the auto-reload
	// value, in ticks, taking effect immediately rather than at the next
	// expiry. Called from the update path while the timer may be running.
	SetReload(id TimerID, ticks uint32)

	// Start resumes counting. Safe to call on a running timer.
	Start(id TimerID)

	// Pause stops counting without losing configuration. Safe to call on
	// a paused timer.
	Pause(id TimerID)

	// Release detaches the handler and disables the timer. Used only
	// during shutdown.
	Release(id TimerID)
}
