// Package config parses the JSON board description: which GPIO pins each
// emulated mouse port drives, and how reports arrive.
package config

import "encoding/json"

// PinPair names the two quadrature output pins of one axis.
type PinPair struct {
	A uint32 `json:"a"`
	B uint32 `json:"b"`
}

// Port describes one emulated mouse port.
type Port struct {
	H           PinPair `json:"h"`
	V           PinPair `json:"v"`
	ButtonLeft  uint32  `json:"button_left"`
	ButtonRight uint32  `json:"button_right"`
}

// Board is the top-level board configuration.
type Board struct {
	// UARTBaud is the report ingestion baud rate.
	UARTBaud uint32 `json:"uart_baud"`

	// Scale is the movement scale used when no persisted value exists.
	Scale float32 `json:"scale"`

	// Ports lists the wired mouse ports, index = port number.
	Ports []Port `json:"ports"`
}

// Load parses a JSON board configuration and applies defaults for
// missing fields.
func Load(jsonData []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(jsonData, &b); err != nil {
		return nil, err
	}
	applyDefaults(&b)
	return &b, nil
}

// applyDefaults fills in missing configuration values
func applyDefaults(b *Board) {
	if b.UARTBaud == 0 {
		b.UARTBaud = 115200
	}
	if b.Scale == 0 {
		b.Scale = 1.0
	}
	if len(b.Ports) == 0 {
		b.Ports = DefaultBoard().Ports
	}
}

// DefaultBoard returns the pin map of the stock adapter board: two DE-9
// mouse ports wired to consecutive GPIO pairs.
func DefaultBoard() *Board {
	return &Board{
		UARTBaud: 115200,
		Scale:    1.0,
		Ports: []Port{
			{
				H:           PinPair{A: 2, B: 3},
				V:           PinPair{A: 4, B: 5},
				ButtonLeft:  10,
				ButtonRight: 11,
			},
			{
				H:           PinPair{A: 6, B: 7},
				V:           PinPair{A: 8, B: 9},
				ButtonLeft:  12,
				ButtonRight: 13,
			},
		},
	}
}
