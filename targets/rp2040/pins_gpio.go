//go:build rp2040

package main

import (
	"machine"

	"quadmouse/core"
)

// RPPinDriver drives quadrature pairs with plain GPIO writes.
//
// The two writes are sequential, so the pair briefly reads as a state
// that belongs to neither the old nor the new phase. The window is well
// under a microsecond, far below what a mouse port samples, but builds
// that care can use the PIO driver, which updates both lines in one
// PIO clock.
type RPPinDriver struct{}

// NewRPPinDriver creates the GPIO-based pair driver.
func NewRPPinDriver() *RPPinDriver {
	return &RPPinDriver{}
}

// ConfigurePair claims both pins as outputs, driven low (phase 0).
func (d *RPPinDriver) ConfigurePair(p core.PinPair) error {
	for _, pin := range []core.Pin{p.A, p.B} {
		mp := machine.Pin(pin)
		mp.Configure(machine.PinConfig{Mode: machine.PinOutput})
		mp.Low()
	}
	return nil
}

// WritePair sets both output levels.
func (d *RPPinDriver) WritePair(p core.PinPair, a, b bool) {
	machine.Pin(p.A).Set(a)
	machine.Pin(p.B).Set(b)
}
