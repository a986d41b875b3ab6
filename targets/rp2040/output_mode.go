//go:build rp2040

package main

import (
	"quadmouse/core"
	"quadmouse/targets/pio"
)

// OutputMode selects how quadrature pairs are driven.
type OutputMode uint8

const (
	// OutputGPIO writes both lines with two sequential GPIO stores.
	OutputGPIO OutputMode = iota
	// OutputPIO pushes the pair through a PIO state machine so both
	// lines change in the same clock. Requires consecutive pins.
	OutputPIO
)

// GetOutputMode returns the pin backend for this build.
// Default: GPIO. Switch to OutputPIO when the board wiring uses
// consecutive pin pairs and glitch-free edges matter.
func GetOutputMode() OutputMode {
	return OutputGPIO
}

// newOutputDriver builds the pin backend for the selected mode.
func newOutputDriver(mode OutputMode) core.PinDriver {
	if mode == OutputPIO {
		return pio.NewPairDriver()
	}
	return NewRPPinDriver()
}
