//go:build rp2040

package main

import (
	"device/rp"
	"errors"
	"runtime/interrupt"

	"quadmouse/core"
)

// RP2040 timer driver
// The RP2040 has one free-running 1MHz 64-bit timer with four alarm
// comparators and one interrupt line per alarm. The core wants countdown
// timers with auto-reload, so each alarm is re-armed from its own
// interrupt handler: the countdown is ALARMx - TIMERAWL.
//
// Four alarms, four axes (2 ports x 2 axes) - exactly enough.

// tickMicros converts core ticks (the 80us pacing grid) to hardware
// microseconds.
const tickMicros = 80

const numAlarms = 4

type alarmState struct {
	handler  core.TimerHandler
	reloadUS uint32
	armed    bool
}

// RPTimerDriver implements core.TimerDriver over the RP2040 alarm block.
type RPTimerDriver struct {
	alarms [numAlarms]alarmState
}

// timerDriver is the instance the static interrupt handlers dispatch to.
// interrupt.New requires compile-time handler references, so the driver
// cannot be fully instance-scoped.
var timerDriver *RPTimerDriver

// NewRPTimerDriver creates the alarm-backed timer driver.
func NewRPTimerDriver() *RPTimerDriver {
	return &RPTimerDriver{}
}

// Init claims the four alarm interrupts. affinity is accepted for API
// compatibility; TinyGo services interrupts on the boot core, so there
// is nothing to route.
func (d *RPTimerDriver) Init(affinity int) error {
	if timerDriver != nil && timerDriver != d {
		return errors.New("rp2040: timer alarms already claimed")
	}
	timerDriver = d

	interrupt.New(rp.IRQ_TIMER_IRQ_0, timerISR0).Enable()
	interrupt.New(rp.IRQ_TIMER_IRQ_1, timerISR1).Enable()
	interrupt.New(rp.IRQ_TIMER_IRQ_2, timerISR2).Enable()
	interrupt.New(rp.IRQ_TIMER_IRQ_3, timerISR3).Enable()
	return nil
}

// Configure binds a handler to one alarm. The alarm stays disarmed until
// Start.
func (d *RPTimerDriver) Configure(id core.TimerID, handler core.TimerHandler) error {
	if int(id) >= numAlarms {
		return errors.New("rp2040: no alarm for timer " + string('0'+byte(id)))
	}
	d.alarms[id].handler = handler
	rp.TIMER.INTE.SetBits(1 << id)
	return nil
}

// SetReload reprograms the countdown immediately: the pending alarm is
// moved to now+ticks rather than waiting for the old deadline.
func (d *RPTimerDriver) SetReload(id core.TimerID, ticks uint32) {
	if int(id) >= numAlarms {
		return
	}
	us := ticks * tickMicros

	state := interrupt.Disable()
	a := &d.alarms[id]
	a.reloadUS = us
	if a.armed {
		disarm(int(id))
		arm(int(id), us)
	}
	interrupt.Restore(state)
}

func (d *RPTimerDriver) Start(id core.TimerID) {
	if int(id) >= numAlarms {
		return
	}
	state := interrupt.Disable()
	a := &d.alarms[id]
	if !a.armed {
		a.armed = true
		arm(int(id), a.reloadUS)
	}
	interrupt.Restore(state)
}

func (d *RPTimerDriver) Pause(id core.TimerID) {
	if int(id) >= numAlarms {
		return
	}
	state := interrupt.Disable()
	a := &d.alarms[id]
	if a.armed {
		a.armed = false
		disarm(int(id))
	}
	interrupt.Restore(state)
}

func (d *RPTimerDriver) Release(id core.TimerID) {
	if int(id) >= numAlarms {
		return
	}
	state := interrupt.Disable()
	a := &d.alarms[id]
	if a.armed {
		a.armed = false
		disarm(int(id))
	}
	rp.TIMER.INTE.ClearBits(1 << id)
	a.handler = nil
	interrupt.Restore(state)
}

// arm schedules alarm i to fire us microseconds from now. A zero or tiny
// interval still lands one tick in the future so the write can't race
// the counter.
func arm(i int, us uint32) {
	if us == 0 {
		us = 1
	}
	deadline := rp.TIMER.TIMERAWL.Get() + us
	switch i {
	case 0:
		rp.TIMER.ALARM0.Set(deadline)
	case 1:
		rp.TIMER.ALARM1.Set(deadline)
	case 2:
		rp.TIMER.ALARM2.Set(deadline)
	case 3:
		rp.TIMER.ALARM3.Set(deadline)
	}
}

// disarm cancels a pending alarm. Writing the bit to ARMED clears it.
func disarm(i int) {
	rp.TIMER.ARMED.Set(1 << i)
	rp.TIMER.INTR.Set(1 << i)
}

// service runs in interrupt context: clear the interrupt, re-arm for the
// auto-reload contract, and signal the stepper. Nothing else.
func (d *RPTimerDriver) service(i int) {
	rp.TIMER.INTR.Set(1 << i)
	a := &d.alarms[i]
	if a.armed {
		arm(i, a.reloadUS)
	}
	if a.handler != nil {
		a.handler()
	}
}

func timerISR0(interrupt.Interrupt) { timerDriver.service(0) }
func timerISR1(interrupt.Interrupt) { timerDriver.service(1) }
func timerISR2(interrupt.Interrupt) { timerDriver.service(2) }
func timerISR3(interrupt.Interrupt) { timerDriver.service(3) }
