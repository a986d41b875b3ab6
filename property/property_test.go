package property

import (
	"errors"
	"testing"
)

// failStore wraps a MemStore, forcing errors for failure-path tests.
type failStore struct {
	*MemStore
	setErr    error
	commitErr error
}

func (f *failStore) SetU32(key string, value uint32) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemStore.SetU32(key, value)
}

func (f *failStore) Commit() error {
	if f.commitErr != nil {
		return f.commitErr
	}
	return f.MemStore.Commit()
}

func TestRegistryDefaults(t *testing.T) {
	reg := NewRegistry(NewMemStore(), Defaults())

	v, fromStore := reg.Float(KeyScale)
	if fromStore {
		t.Error("empty store: value must come from the default")
	}
	if v != 1.0 {
		t.Errorf("default scale: got %v, want 1.0", v)
	}

	b, fromStore := reg.U8(KeyButtonSwap)
	if fromStore || b != 0 {
		t.Errorf("default btnswap: got %d (fromStore=%v), want 0 from default", b, fromStore)
	}
}

func TestRegistryFloatRoundTrip(t *testing.T) {
	reg := NewRegistry(NewMemStore(), Defaults())

	for _, want := range []float32{0.25, 1.0, 2.5, 10.0} {
		if err := reg.SetFloat(KeyScale, want); err != nil {
			t.Fatalf("SetFloat(%v): %v", want, err)
		}
		got, fromStore := reg.Float(KeyScale)
		if !fromStore {
			t.Fatalf("SetFloat(%v): value not read back from store", want)
		}
		if got != want {
			t.Errorf("float round trip: got %v, want %v", got, want)
		}
	}
}

func TestRegistryUnknownKey(t *testing.T) {
	reg := NewRegistry(NewMemStore(), Defaults())
	if _, ok := reg.Float("quad.nope"); ok {
		t.Error("unknown key must not resolve")
	}
	// Type mismatch: KeyButtonSwap is declared u8.
	if _, ok := reg.Float(KeyButtonSwap); ok {
		t.Error("type mismatch must not resolve")
	}
}

func TestRegistryRejectsNaN(t *testing.T) {
	store := NewMemStore()
	reg := NewRegistry(store, Defaults())
	// A corrupted word that decodes to NaN falls back to the default.
	if err := store.SetU32(KeyScale, 0x7FC00001); err != nil {
		t.Fatal(err)
	}
	v, fromStore := reg.Float(KeyScale)
	if fromStore {
		t.Error("NaN bits must be treated as unusable")
	}
	if v != 1.0 {
		t.Errorf("fallback: got %v, want default 1.0", v)
	}
}

func TestScaleStoreRoundTrip(t *testing.T) {
	reg := NewRegistry(NewMemStore(), Defaults())
	s := NewScaleStore(reg)

	if _, ok := s.LoadScale(); ok {
		t.Error("empty store: LoadScale must report unusable")
	}
	if err := s.SaveScale(3.5); err != nil {
		t.Fatalf("SaveScale: %v", err)
	}
	v, ok := s.LoadScale()
	if !ok || v != 3.5 {
		t.Errorf("LoadScale after save: got %v (ok=%v), want 3.5", v, ok)
	}
}

func TestScaleStoreRejectsNonPositive(t *testing.T) {
	reg := NewRegistry(NewMemStore(), Defaults())
	s := NewScaleStore(reg)

	// A zero or negative persisted scale would stall or invert motion;
	// it is reported unusable instead.
	for _, bad := range []float32{0, -1.5} {
		if err := reg.SetFloat(KeyScale, bad); err != nil {
			t.Fatal(err)
		}
		if _, ok := s.LoadScale(); ok {
			t.Errorf("scale %v must be reported unusable", bad)
		}
	}
}

func TestScaleStoreSurfacesPersistError(t *testing.T) {
	fs := &failStore{MemStore: NewMemStore(), commitErr: errors.New("write failed")}
	s := NewScaleStore(NewRegistry(fs, Defaults()))
	if err := s.SaveScale(2.0); err == nil {
		t.Error("commit failure must surface as an error")
	}
}

func TestRegistryStringDefaultAndRoundTrip(t *testing.T) {
	reg := NewRegistry(NewMemStore(), Defaults())

	name, fromStore := reg.String(KeyDeviceName)
	if fromStore || name != "quadmouse" {
		t.Errorf("default name: got %q (fromStore=%v), want \"quadmouse\" from default", name, fromStore)
	}

	if err := reg.SetString(KeyDeviceName, "desk-amiga"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	name, fromStore = reg.String(KeyDeviceName)
	if !fromStore || name != "desk-amiga" {
		t.Errorf("string round trip: got %q (fromStore=%v)", name, fromStore)
	}

	// Type mismatch: KeyScale is declared float.
	if _, ok := reg.String(KeyScale); ok {
		t.Error("type mismatch must not resolve")
	}
}

func TestRegistryListAll(t *testing.T) {
	reg := NewRegistry(NewMemStore(), Defaults())
	if err := reg.SetFloat(KeyScale, 2.5); err != nil {
		t.Fatal(err)
	}
	if err := reg.SetU8(KeyButtonSwap, 1); err != nil {
		t.Fatal(err)
	}

	var lines []string
	reg.ListAll(func(line string) { lines = append(lines, line) })

	if len(lines) != len(Defaults()) {
		t.Fatalf("lines: got %d, want one per property (%d)", len(lines), len(Defaults()))
	}
	want := []string{
		KeyScale + " = 2.5",
		KeyButtonSwap + " = 1",
		KeyDeviceName + " = 'quadmouse'",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: got %q, want %q", i, lines[i], w)
		}
	}
}
