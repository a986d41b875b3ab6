package property

import (
	"math"
	"strconv"
)

// Type identifies the declared type of a property.
type Type uint8

const (
	TypeU8 Type = iota
	TypeU32
	TypeFloat
	TypeString
)

// Value is the union of property values. Only the field matching the
// property's Type is meaningful.
type Value struct {
	U8  uint8
	U32 uint32
	F32 float32
	Str string
}

// Property declares one tunable: its namespaced key, type, and the
// default used whenever the store has no usable value.
type Property struct {
	Key     string
	Type    Type
	Default Value
}

// Well-known property keys.
const (
	// KeyScale is the mouse movement scale factor. Bigger means slower.
	KeyScale = "quad.scale"

	// KeyButtonSwap swaps the left/right button outputs when nonzero.
	KeyButtonSwap = "quad.btnswap"

	// KeyDeviceName is the adapter's name, printed in the boot banner.
	KeyDeviceName = "quad.name"
)

// Defaults returns the firmware's property table.
func Defaults() []Property {
	return []Property{
		{Key: KeyScale, Type: TypeFloat, Default: Value{F32: 1.0}},
		{Key: KeyButtonSwap, Type: TypeU8, Default: Value{U8: 0}},
		{Key: KeyDeviceName, Type: TypeString, Default: Value{Str: "quadmouse"}},
	}
}

// Registry resolves typed properties against a backing store, falling
// back to the declared defaults when the store has no usable value.
type Registry struct {
	store Store
	props []Property
}

// NewRegistry creates a registry over store with the given property table.
func NewRegistry(store Store, props []Property) *Registry {
	return &Registry{store: store, props: props}
}

func (r *Registry) lookup(key string) *Property {
	for i := range r.props {
		if r.props[i].Key == key {
			return &r.props[i]
		}
	}
	return nil
}

// Float returns a float property. The bool reports whether the value came
// from the store (as opposed to the declared default). Floats are stored
// bit-reinterpreted as u32 because the store has no native float type.
func (r *Registry) Float(key string) (float32, bool) {
	p := r.lookup(key)
	if p == nil || p.Type != TypeFloat {
		return 0, false
	}
	if bits, ok := r.store.GetU32(key); ok {
		v := math.Float32frombits(bits)
		// A corrupted word can decode to NaN; treat it as unusable.
		if v == v {
			return v, true
		}
	}
	return p.Default.F32, false
}

// SetFloat stages and commits a float property.
func (r *Registry) SetFloat(key string, v float32) error {
	if err := r.store.SetU32(key, math.Float32bits(v)); err != nil {
		return err
	}
	return r.store.Commit()
}

// U8 returns a u8 property, stored in the low byte of a word.
func (r *Registry) U8(key string) (uint8, bool) {
	p := r.lookup(key)
	if p == nil || p.Type != TypeU8 {
		return 0, false
	}
	if w, ok := r.store.GetU32(key); ok {
		return uint8(w), true
	}
	return p.Default.U8, false
}

// SetU8 stages and commits a u8 property.
func (r *Registry) SetU8(key string, v uint8) error {
	if err := r.store.SetU32(key, uint32(v)); err != nil {
		return err
	}
	return r.store.Commit()
}

// U32 returns a u32 property.
func (r *Registry) U32(key string) (uint32, bool) {
	p := r.lookup(key)
	if p == nil || p.Type != TypeU32 {
		return 0, false
	}
	if w, ok := r.store.GetU32(key); ok {
		return w, true
	}
	return p.Default.U32, false
}

// SetU32 stages and commits a u32 property.
func (r *Registry) SetU32(key string, v uint32) error {
	if err := r.store.SetU32(key, v); err != nil {
		return err
	}
	return r.store.Commit()
}

// String returns a string property.
func (r *Registry) String(key string) (string, bool) {
	p := r.lookup(key)
	if p == nil || p.Type != TypeString {
		return "", false
	}
	if s, ok := r.store.GetString(key); ok {
		return s, true
	}
	return p.Default.Str, false
}

// SetString stages and commits a string property.
func (r *Registry) SetString(key string, v string) error {
	if err := r.store.SetString(key, v); err != nil {
		return err
	}
	return r.store.Commit()
}

// ListAll emits one "key = value" line per declared property through
// print, resolving each value the same way the typed getters do.
// Debug/diagnostic aid; typically fed to the debug writer at boot.
func (r *Registry) ListAll(print func(line string)) {
	for i := range r.props {
		p := &r.props[i]
		switch p.Type {
		case TypeU8:
			v, _ := r.U8(p.Key)
			print(p.Key + " = " + strconv.Itoa(int(v)))
		case TypeU32:
			v, _ := r.U32(p.Key)
			print(p.Key + " = " + strconv.FormatUint(uint64(v), 10) +
				" (0x" + strconv.FormatUint(uint64(v), 16) + ")")
		case TypeFloat:
			v, _ := r.Float(p.Key)
			print(p.Key + " = " + strconv.FormatFloat(float64(v), 'g', -1, 32))
		case TypeString:
			v, _ := r.String(p.Key)
			if v == "" {
				print(p.Key + " = <empty>")
			} else {
				print(p.Key + " = '" + v + "'")
			}
		default:
			print(p.Key + " = <unsupported type>")
		}
	}
}
