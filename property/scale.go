package property

// ScaleStore adapts the property registry to the quadrature core's scale
// persistence boundary (core.ScaleStore). The core never sees property
// keys or store errors, only "usable or not".
type ScaleStore struct {
	reg *Registry
}

// NewScaleStore wraps a registry for use by the quadrature controller.
func NewScaleStore(reg *Registry) *ScaleStore {
	return &ScaleStore{reg: reg}
}

// LoadScale returns the persisted scale factor. A value that is absent,
// corrupted, or non-positive is reported as unusable; the core applies
// its own default.
func (s *ScaleStore) LoadScale() (float32, bool) {
	v, fromStore := s.reg.Float(KeyScale)
	if !fromStore || v <= 0 {
		return 0, false
	}
	return v, true
}

// SaveScale persists a new scale factor.
func (s *ScaleStore) SaveScale(scale float32) error {
	return s.reg.SetFloat(KeyScale, scale)
}
