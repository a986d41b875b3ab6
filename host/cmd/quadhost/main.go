// quadhost streams motion reports to a quadrature mouse adapter over a
// serial port. It is the host-side test harness: reports normally come
// from the adapter's own HID source, but for bring-up and scale tuning
// it is much easier to generate them from a PC.
//
// Two input modes:
//   - default: read "dx dy [buttons]" lines from stdin
//   - -demo:   send a circular motion pattern at the HID report rate
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"quadmouse/host/serial"
	"quadmouse/protocol"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud   = flag.Int("baud", 115200, "Baud rate of the adapter's report UART")
	port   = flag.Int("port", 0, "Adapter mouse port index")
	demo   = flag.Bool("demo", false, "Send a circular demo pattern instead of reading stdin")
	rate   = flag.Int("rate", 100, "Demo reports per second")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	conn, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	if *demo {
		if err := runDemo(conn); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runStdin(conn); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runStdin reads "dx dy [buttons]" lines and sends one report per line.
func runStdin(conn serial.Port) error {
	fmt.Println("Enter reports as: dx dy [buttons] (Ctrl-D to exit)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			fmt.Println("need at least: dx dy")
			continue
		}
		dx, err1 := parseDelta(fields[0])
		dy, err2 := parseDelta(fields[1])
		if err1 != nil || err2 != nil {
			fmt.Println("deltas must be integers in [-128, 127]")
			continue
		}
		var buttons uint8
		if len(fields) >= 3 {
			b, err := strconv.ParseUint(fields[2], 0, 8)
			if err != nil {
				fmt.Println("buttons must fit a byte")
				continue
			}
			buttons = uint8(b)
		}

		if err := send(conn, protocol.Report{
			Port:    uint8(*port),
			DX:      dx,
			DY:      dy,
			Buttons: buttons,
		}); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// runDemo sends a circle: the pointer on the driven machine should trace
// a smooth loop if the timers, steppers, and wiring are all correct.
func runDemo(conn serial.Port) error {
	fmt.Printf("Sending circular motion to port %d at %d reports/s (Ctrl-C to stop)\n", *port, *rate)

	interval := time.Second / time.Duration(*rate)
	const radius = 40.0
	angle := 0.0

	for {
		dx := int8(math.Round(radius * math.Cos(angle) / 10))
		dy := int8(math.Round(radius * math.Sin(angle) / 10))
		if err := send(conn, protocol.Report{Port: uint8(*port), DX: dx, DY: dy}); err != nil {
			return err
		}
		angle += 0.05
		time.Sleep(interval)
	}
}

func send(conn serial.Port, r protocol.Report) error {
	frame := protocol.AppendFrame(nil, r)
	if _, err := conn.Write(frame); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return conn.Flush()
}

func parseDelta(s string) (int8, error) {
	v, err := strconv.ParseInt(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return int8(v), nil
}
