//go:build rp2040

package main

import (
	"image/color"

	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// StatusLED drives a single WS2812 pixel: dim green when idle, brighter
// blue while reports are flowing. Boards without the pixel can leave it
// unconfigured; methods on the zero value are no-ops.
type StatusLED struct {
	dev    ws2812.Device
	active bool
	ok     bool
}

var (
	ledIdle   = color.RGBA{G: 8}
	ledActive = color.RGBA{B: 32}
	ledError  = color.RGBA{R: 32}
)

// NewStatusLED configures the pixel data pin.
func NewStatusLED(pin machine.Pin) *StatusLED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	l := &StatusLED{dev: ws2812.NewWS2812(pin), ok: true}
	l.write(ledIdle)
	return l
}

// Activity marks report traffic; Idle returns to the resting color.
func (l *StatusLED) Activity() {
	if !l.ok || l.active {
		return
	}
	l.active = true
	l.write(ledActive)
}

func (l *StatusLED) Idle() {
	if !l.ok || !l.active {
		return
	}
	l.active = false
	l.write(ledIdle)
}

// Error latches the fault color until Idle is called.
func (l *StatusLED) Error() {
	if !l.ok {
		return
	}
	l.active = false
	l.write(ledError)
}

func (l *StatusLED) write(c color.RGBA) {
	l.dev.WriteColors([]color.RGBA{c})
}
