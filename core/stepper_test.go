package core

import (
	"sync/atomic"
	"testing"
)

// bareAxis builds an axis wired to a controller whose stepper goroutines
// are not running, so step() can be driven synchronously.
func bareAxis(fp *fakePins) (*Controller, *axisState) {
	c := NewController(newFakeTimers(), fp, nil)
	ax := &c.ports[0].axes[axisH]
	ax.wake = make(chan struct{}, 1)
	ax.pins = PinPair{A: 2, B: 3}
	return c, ax
}

func TestSignalCoalesces(t *testing.T) {
	_, ax := bareAxis(newFakePins())

	// Multiple signals before the stepper consumes any must collapse
	// into a single pending wake.
	ax.signal()
	ax.signal()
	ax.signal()
	if got := len(ax.wake); got != 1 {
		t.Fatalf("pending wakes: got %d, want 1", got)
	}
}

func TestStepConsumesCountAndWalksPhases(t *testing.T) {
	fp := newFakePins()
	c, ax := bareAxis(fp)

	atomic.StoreUint32(&ax.steps, 3)
	atomic.StoreUint32(&ax.dir, uint32(DirPositive))

	wantPhases := []uint8{1, 2, 3}
	for i, want := range wantPhases {
		c.step(ax)
		if ax.phase != want {
			t.Fatalf("step %d: phase %d, want %d", i+1, ax.phase, want)
		}
		a, b, _ := phaseLevels(want)
		last := fp.writes[len(fp.writes)-1]
		if last.a != a || last.b != b {
			t.Fatalf("step %d: wrote (%v,%v), want (%v,%v)", i+1, last.a, last.b, a, b)
		}
	}
	if got := atomic.LoadUint32(&ax.steps); got != 0 {
		t.Errorf("steps after burst: got %d, want 0", got)
	}
}

func TestStepAtZeroIsNoOp(t *testing.T) {
	fp := newFakePins()
	c, ax := bareAxis(fp)

	ax.phase = 2
	c.step(ax)
	c.step(ax)

	if ax.phase != 2 {
		t.Errorf("phase changed with zero steps remaining: %d", ax.phase)
	}
	if fp.writeCount() != 0 {
		t.Errorf("pins written with zero steps remaining: %d writes", fp.writeCount())
	}
}

func TestPhaseContinuesAcrossBursts(t *testing.T) {
	fp := newFakePins()
	c, ax := bareAxis(fp)

	// First burst ends at phase 2.
	atomic.StoreUint32(&ax.steps, 2)
	atomic.StoreUint32(&ax.dir, uint32(DirPositive))
	c.step(ax)
	c.step(ax)
	if ax.phase != 2 {
		t.Fatalf("phase after first burst: got %d, want 2", ax.phase)
	}

	// A new burst picks up from phase 2, not from a reset.
	atomic.StoreUint32(&ax.steps, 1)
	c.step(ax)
	if ax.phase != 3 {
		t.Errorf("phase after second burst: got %d, want 3", ax.phase)
	}
}

func TestStepReverseDirection(t *testing.T) {
	fp := newFakePins()
	c, ax := bareAxis(fp)

	atomic.StoreUint32(&ax.steps, 2)
	atomic.StoreUint32(&ax.dir, uint32(DirNegative))

	c.step(ax)
	if ax.phase != 3 {
		t.Fatalf("reverse step: phase %d, want 3", ax.phase)
	}
	c.step(ax)
	if ax.phase != 2 {
		t.Fatalf("reverse step: phase %d, want 2", ax.phase)
	}
}
