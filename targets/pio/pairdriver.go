//go:build rp2040

// Package pio drives quadrature pin pairs through RP2040 PIO state
// machines.
package pio

// PIO pair driver
// A two-instruction PIO program per axis: pull a word, put its low two
// bits on the pins. Both quadrature lines change in the same PIO clock,
// so the pair never shows a transient state between A and B updates the
// way sequential GPIO writes do.

import (
	"errors"

	"machine"

	"quadmouse/core"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// buildPairProgram creates the pair-output PIO program using AssemblerV0
//
//	.wrap_target
//	pull block      ; wait for a new phase word
//	out pins, 2     ; drive both lines at once
//	.wrap
func buildPairProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		asm.Pull(false, true).Encode(),
		asm.Out(rp2pio.OutDestPins, 2).Encode(),
	}
}

const pairPIOOrigin = 0

// PairDriver implements core.PinDriver with one PIO state machine per
// axis. Four axes fit exactly into PIO0's four state machines.
type PairDriver struct {
	pio    *rp2pio.PIO
	offset uint8
	loaded bool
	nextSM uint8
	sms    map[core.Pin]rp2pio.StateMachine // keyed by the pair's A pin
}

// NewPairDriver creates a pair driver on PIO0.
func NewPairDriver() *PairDriver {
	return &PairDriver{
		pio: rp2pio.PIO0,
		sms: make(map[core.Pin]rp2pio.StateMachine),
	}
}

// ConfigurePair claims a state machine for the pair. PIO "out pins"
// drives consecutive pins, so B must be A+1 on this backend.
func (d *PairDriver) ConfigurePair(p core.PinPair) error {
	if p.B != p.A+1 {
		return errors.New("pio: pair pins must be consecutive (B = A+1)")
	}
	if _, ok := d.sms[p.A]; ok {
		return nil // already configured
	}
	if d.nextSM >= 4 {
		return errors.New("pio: no free state machine for pair")
	}

	if !d.loaded {
		offset, err := d.pio.AddProgram(buildPairProgram(), pairPIOOrigin)
		if err != nil {
			return err
		}
		d.offset = offset
		d.loaded = true
	}

	pinA := machine.Pin(p.A)
	pinB := machine.Pin(p.B)
	pinA.Configure(machine.PinConfig{Mode: d.pio.PinMode()})
	pinB.Configure(machine.PinConfig{Mode: d.pio.PinMode()})

	sm := d.pio.StateMachine(d.nextSM)
	sm.TryClaim()

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(pinA, 2)
	// Shift right, no autopull: the program pulls explicitly.
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(d.offset+1, d.offset)
	cfg.SetClkDivIntFrac(1, 0)

	sm.Init(d.offset, cfg)
	sm.SetPindirsConsecutive(pinA, 2, true)
	sm.SetPinsConsecutive(pinA, 2, false)
	sm.SetEnabled(true)

	d.sms[p.A] = sm
	d.nextSM++
	return nil
}

// WritePair pushes the new phase word. The FIFO is four deep and drains
// within two PIO clocks, so the wait below never triggers in practice.
func (d *PairDriver) WritePair(p core.PinPair, a, b bool) {
	sm, ok := d.sms[p.A]
	if !ok {
		return
	}
	var word uint32
	if a {
		word |= 1
	}
	if b {
		word |= 2
	}
	for sm.IsTxFIFOFull() {
		// Busy wait - should be very brief
	}
	sm.TxPut(word)
}
