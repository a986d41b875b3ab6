package core

// Pin identifies a hardware GPIO pin number
type Pin uint32

// PinPair is the two digital outputs driven for one axis. A is the line
// that leads in the positive direction.
type PinPair struct {
	A Pin
	B Pin
}

// PinDriver is the abstract output interface that core code uses.
// Platform-specific implementations handle actual hardware control.
//
// The unit of output is the pair, not the single pin: a quadrature phase
// transition changes at most one line, but writing A and B through two
// separate pin operations opens a window where the pair reads as a state
// that is not the old phase nor the new one. Backends that can update both
// lines in one operation (PIO) should do so; GPIO backends write A then B.
type PinDriver interface {
	// ConfigurePair claims both pins as digital outputs, driven low.
	// Called once per axis at port configuration time.
	ConfigurePair(p PinPair) error

	// WritePair sets both output levels. Called from stepper context on
	// every phase transition; must not block.
	WritePair(p PinPair, a, b bool)
}
