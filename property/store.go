// Package property implements the persistent settings layer: a small
// typed property registry over a key-value store with explicit commit,
// the shape MCU settings partitions actually provide.
package property

// Store is a persistent key-value store. Values are 32-bit words or
// short strings; anything else (floats, booleans) is bit-packed into a
// word by the registry.
//
// Get reports absence via its bool; Set and Commit report failure via
// error. Callers treat any failure as "absent/unusable" and fall back to
// defaults rather than inspecting store-specific error values.
type Store interface {
	// GetU32 reads a stored word.
	GetU32(key string) (uint32, bool)

	// SetU32 stages a word for storage. Durability is only promised
	// after Commit.
	SetU32(key string, value uint32) error

	// GetString reads a stored string.
	GetString(key string) (string, bool)

	// SetString stages a string for storage.
	SetString(key string, value string) error

	// Commit flushes staged values to the backing medium.
	Commit() error
}
