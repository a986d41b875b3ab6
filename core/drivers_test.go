package core

import (
	"errors"
	"sync"
)

// Fake drivers for host-side tests. They record every peripheral call so
// tests can assert that the controller never issues redundant ones.

type fakeTimers struct {
	mu         sync.Mutex
	affinity   int
	initErr    error
	cfgErr     error
	cfgErrByID map[TimerID]error

	handlers map[TimerID]TimerHandler
	reloads  map[TimerID][]uint32
	starts   map[TimerID]int
	pauses   map[TimerID]int
	released map[TimerID]bool
}

func newFakeTimers() *fakeTimers {
	return &fakeTimers{
		affinity:   -1,
		cfgErrByID: make(map[TimerID]error),
		handlers:   make(map[TimerID]TimerHandler),
		reloads:    make(map[TimerID][]uint32),
		starts:     make(map[TimerID]int),
		pauses:     make(map[TimerID]int),
		released:   make(map[TimerID]bool),
	}
}

func (f *fakeTimers) Init(affinity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.affinity = affinity
	return f.initErr
}

func (f *fakeTimers) Configure(id TimerID, handler TimerHandler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cfgErr != nil {
		return f.cfgErr
	}
	if err := f.cfgErrByID[id]; err != nil {
		return err
	}
	f.handlers[id] = handler
	return nil
}

func (f *fakeTimers) SetReload(id TimerID, ticks uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads[id] = append(f.reloads[id], ticks)
}

func (f *fakeTimers) Start(id TimerID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts[id]++
}

func (f *fakeTimers) Pause(id TimerID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses[id]++
}

func (f *fakeTimers) Release(id TimerID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released[id] = true
}

// fire simulates one countdown expiry for a timer.
func (f *fakeTimers) fire(id TimerID) {
	f.mu.Lock()
	h := f.handlers[id]
	f.mu.Unlock()
	if h != nil {
		h()
	}
}

func (f *fakeTimers) lastReload(id TimerID) (uint32, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rs := f.reloads[id]
	if len(rs) == 0 {
		return 0, false
	}
	return rs[len(rs)-1], true
}

type pairWrite struct {
	pins PinPair
	a, b bool
}

type fakePins struct {
	mu         sync.Mutex
	cfgErr     error
	cfgErrByA  map[Pin]error // keyed by the pair's A pin
	configured []PinPair
	levels     map[Pin]bool
	writes     []pairWrite
}

func newFakePins() *fakePins {
	return &fakePins{
		cfgErrByA: make(map[Pin]error),
		levels:    make(map[Pin]bool),
	}
}

func (f *fakePins) ConfigurePair(p PinPair) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cfgErr != nil {
		return f.cfgErr
	}
	if err := f.cfgErrByA[p.A]; err != nil {
		return err
	}
	f.configured = append(f.configured, p)
	f.levels[p.A] = false
	f.levels[p.B] = false
	return nil
}

func (f *fakePins) WritePair(p PinPair, a, b bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels[p.A] = a
	f.levels[p.B] = b
	f.writes = append(f.writes, pairWrite{pins: p, a: a, b: b})
}

func (f *fakePins) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

type fakeScaleStore struct {
	scale   float32
	present bool
	saveErr error
	saved   []float32
}

func (f *fakeScaleStore) LoadScale() (float32, bool) {
	return f.scale, f.present
}

func (f *fakeScaleStore) SaveScale(scale float32) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, scale)
	f.scale = scale
	f.present = true
	return nil
}

var errFakeDriver = errors.New("fake driver error")
