package core

import "sync/atomic"

// Interrupt-to-stepper handoff
// The timer interrupt must not touch pins or axis state itself: one
// non-blocking send and out. Each axis has its own stepper goroutine
// that applies exactly one phase transition per wake.

// signal is the interrupt-side half of the handoff. The wake channel has
// capacity 1 and the send never blocks: a signal arriving while one is
// already pending is coalesced away. That loss is intentional, since the
// stepper checks the current step count rather than counting wakes.
func (ax *axisState) signal() {
	select {
	case ax.wake <- struct{}{}:
	default:
		// Wake already pending; coalesce.
	}
}

// stepperLoop runs outside interrupt context, one goroutine per axis,
// from Init until Shutdown.
func (c *Controller) stepperLoop(ax *axisState) {
	for {
		select {
		case <-c.quit:
			return
		case <-ax.wake:
			c.step(ax)
		}
	}
}

// step applies one quadrature transition: consume a step if any remain,
// advance the phase along the current direction, and drive both output
// lines. With the count at zero it does nothing, so an idling timer can
// keep firing harmlessly.
func (c *Controller) step(ax *axisState) {
	if atomic.LoadUint32(&ax.steps) == 0 {
		return
	}
	atomic.AddUint32(&ax.steps, ^uint32(0)) // decrement

	ax.phase = advancePhase(ax.phase, Direction(atomic.LoadUint32(&ax.dir)))

	a, b, ok := phaseLevels(ax.phase)
	if !ok {
		// Unreachable under the modular arithmetic in advancePhase.
		// Mask with both lines low: this path is too close to the
		// interrupt pipeline to do anything but log and carry on.
		DebugAsync("quad: invalid phase " + itoa(int(ax.phase)))
		a, b = false, false
	}
	c.pins.WritePair(ax.pins, a, b)
}
