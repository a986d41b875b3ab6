//go:build rp2040

package main

import (
	"machine"
	"time"

	"quadmouse/config"
	"quadmouse/core"
	"quadmouse/property"
	"quadmouse/protocol"
)

// boardJSON can be edited to rewire the adapter without touching code.
// An empty object falls back to the stock two-port pin map.
const boardJSON = `{}`

// statusLEDPin is the WS2812 data pin. Set to machine.NoPin on boards
// without the pixel.
const statusLEDPin = machine.GPIO16

// idleAfter is how long after the last report the LED returns to idle.
const idleAfter = 500 * time.Millisecond

var (
	reportsReceived uint32
	reportErrors    uint32
)

func main() {
	// Disable the watchdog on boot to clear any previous state.
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	core.SetDebugWriter(func(s string) { println(s) })
	core.SetDebugEnabled(true)
	core.InitAsyncDebug()

	board, err := config.Load([]byte(boardJSON))
	if err != nil {
		core.DebugPrintln("config: " + err.Error() + ", using defaults")
		board = config.DefaultBoard()
	}

	uart := machine.UART0
	err = uart.Configure(machine.UARTConfig{
		BaudRate: board.UARTBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	if err != nil {
		core.DebugPrintln("uart: " + err.Error())
		return
	}

	// Settings live in the first erase block of the flash data area
	// machine.Flash exposes after the firmware image.
	store := property.NewFlashStore(machine.Flash)
	registry := property.NewRegistry(store, property.Defaults())

	if name, _ := registry.String(property.KeyDeviceName); name != "" {
		core.DebugPrintln("boot: " + name)
	}
	registry.ListAll(core.DebugPrintln)

	timers := NewRPTimerDriver()
	pins := newOutputDriver(GetOutputMode())

	ctrl := core.NewController(timers, pins, property.NewScaleStore(registry))
	if err := ctrl.Init(0); err != nil {
		core.DebugPrintln("quad: init: " + err.Error())
		return
	}
	if _, ok := registry.Float(property.KeyScale); !ok && board.Scale != 1.0 {
		ctrl.SetScale(board.Scale)
	}

	swap, _ := registry.U8(property.KeyButtonSwap)

	buttons := make([]*ButtonOutputs, 0, len(board.Ports))
	for i, p := range board.Ports {
		if i >= core.MaxPorts {
			break
		}
		ctrl.Configure(i,
			core.PinPair{A: core.Pin(p.H.A), B: core.Pin(p.H.B)},
			core.PinPair{A: core.Pin(p.V.A), B: core.Pin(p.V.B)})
		ctrl.Start(i)
		buttons = append(buttons, NewButtonOutputs(
			machine.Pin(p.ButtonLeft), machine.Pin(p.ButtonRight), swap != 0))
	}

	led := NewStatusLED(statusLEDPin)

	stream := protocol.NewStream(func(r protocol.Report) {
		port := int(r.Port)
		if port >= len(buttons) {
			reportErrors++
			return
		}
		ctrl.Update(port, int32(r.DX), int32(r.DY))
		buttons[port].Apply(r.Buttons)
		reportsReceived++
		led.Activity()
	})

	var (
		buf      [32]byte
		lastSeen = time.Now()
	)
	for {
		n := 0
		for uart.Buffered() > 0 && n < len(buf) {
			b, err := uart.ReadByte()
			if err != nil {
				break
			}
			buf[n] = b
			n++
		}
		if n > 0 {
			stream.Feed(buf[:n])
			lastSeen = time.Now()
		} else {
			if time.Since(lastSeen) > idleAfter {
				led.Idle()
			}
			// Yield to the stepper goroutines.
			time.Sleep(100 * time.Microsecond)
		}
	}
}
