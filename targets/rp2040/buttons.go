//go:build rp2040

package main

import (
	"machine"

	"quadmouse/protocol"
)

// ButtonOutputs drives the button lines of one port. Retro hosts read
// the lines active-low: pressed pulls the line to ground.
type ButtonOutputs struct {
	left  machine.Pin
	right machine.Pin
	swap  bool
}

// NewButtonOutputs configures both lines and releases them.
func NewButtonOutputs(left, right machine.Pin, swap bool) *ButtonOutputs {
	left.Configure(machine.PinConfig{Mode: machine.PinOutput})
	right.Configure(machine.PinConfig{Mode: machine.PinOutput})
	left.High()
	right.High()
	return &ButtonOutputs{left: left, right: right, swap: swap}
}

// Apply mirrors the report's button bits onto the output pins.
func (b *ButtonOutputs) Apply(buttons uint8) {
	leftDown := buttons&protocol.ButtonLeft != 0
	rightDown := buttons&protocol.ButtonRight != 0
	if b.swap {
		leftDown, rightDown = rightDown, leftDown
	}
	// active-low
	b.left.Set(!leftDown)
	b.right.Set(!rightDown)
}
