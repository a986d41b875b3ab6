//go:build rp2040

package main

// Quadrature output sweep - cycles through edge rates on one pin pair.
// Watch A/B on an oscilloscope: both lines must change in the same
// instant (PIO backend) and the pair must walk the Gray sequence
// 00 10 11 01 without skips at every rate.

import (
	"time"

	"machine"

	"quadmouse/core"
	"quadmouse/targets/pio"
)

const (
	pinA = machine.GPIO2
	pinB = machine.GPIO3
)

// graySequence is the phase walk in the positive direction.
var graySequence = [4][2]bool{
	{false, false},
	{true, false},
	{true, true},
	{false, true},
}

var sweepRates = []struct {
	interval time.Duration
	name     string
}{
	{10 * time.Millisecond, "slow (100 edges/s)"},
	{1 * time.Millisecond, "medium (1k edges/s)"},
	{160 * time.Microsecond, "fast (6.25k edges/s, full-speed mouse)"},
	{80 * time.Microsecond, "limit (12.5k edges/s, one tick per step)"},
}

func main() {
	time.Sleep(2 * time.Second) // let the serial console attach
	println("quadsweep: pair", uint(pinA), "/", uint(pinB))

	drv := pio.NewPairDriver()
	pair := core.PinPair{A: core.Pin(pinA), B: core.Pin(pinB)}
	if err := drv.ConfigurePair(pair); err != nil {
		println("quadsweep: configure:", err.Error())
		return
	}

	phase := 0
	for {
		for _, rate := range sweepRates {
			println("quadsweep:", rate.name)
			end := time.Now().Add(3 * time.Second)
			for time.Now().Before(end) {
				phase = (phase + 1) % len(graySequence)
				levels := graySequence[phase]
				drv.WritePair(pair, levels[0], levels[1])
				time.Sleep(rate.interval)
			}
		}
		// Reverse for one pass so both directions get checked.
		println("quadsweep: reverse, medium rate")
		end := time.Now().Add(3 * time.Second)
		for time.Now().Before(end) {
			phase = (phase + len(graySequence) - 1) % len(graySequence)
			levels := graySequence[phase]
			drv.WritePair(pair, levels[0], levels[1])
			time.Sleep(time.Millisecond)
		}
	}
}
