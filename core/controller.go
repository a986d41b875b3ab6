package core

import (
	"errors"
	"math"
	"sync/atomic"
)

// DefaultScale is used when the settings store has no usable value.
const DefaultScale float32 = 1.0

// ScaleStore persists the movement scale factor across reboots. Core code
// only distinguishes "present and usable" from "absent or unusable"; the
// store's own error codes stay behind this boundary.
type ScaleStore interface {
	// LoadScale returns the persisted scale and whether it was usable.
	LoadScale() (float32, bool)

	// SaveScale persists a new scale value.
	SaveScale(scale float32) error
}

// Controller owns the quadrature state for all emulated mouse ports: the
// per-axis registry, the stepper goroutines, and the timer and pin drivers.
// It is the only entry point; there is no package-level instance.
type Controller struct {
	timers TimerDriver
	pins   PinDriver
	store  ScaleStore // may be nil (scale stays at DefaultScale)
	timing Timing

	// Movement scale factor, stored as IEEE-754 bits so the update path
	// can read it atomically. Bigger means slower movement.
	scaleBits uint32

	ports [MaxPorts]portState
	quit  chan struct{}

	initialized bool
	stopped     bool
}

// NewController creates a controller using the default timing grid.
// store may be nil when no persistence is available.
func NewController(timers TimerDriver, pins PinDriver, store ScaleStore) *Controller {
	return &Controller{
		timers: timers,
		pins:   pins,
		store:  store,
		timing: DefaultTiming(),
	}
}

// SetTiming overrides the tick-grid parameters. Must be called before Init.
func (c *Controller) SetTiming(tm Timing) {
	c.timing = tm
}

// Init configures one countdown timer per axis, starts the stepper
// goroutines, and loads the persisted scale factor. affinity is forwarded
// to the timer driver as an interrupt-routing hint.
//
// Timer configuration errors are fatal: a misprogrammed timer cannot meet
// the pacing contract, so the error is returned and the controller is left
// unusable.
func (c *Controller) Init(affinity int) error {
	if c.initialized {
		return errors.New("quad: already initialized")
	}
	if c.stopped {
		return errors.New("quad: controller was shut down")
	}

	if err := c.timers.Init(affinity); err != nil {
		return err
	}

	scale := DefaultScale
	if c.store != nil {
		if v, ok := c.store.LoadScale(); ok {
			scale = v
		}
	}
	atomic.StoreUint32(&c.scaleBits, math.Float32bits(scale))

	c.quit = make(chan struct{})

	// Bind every timer before starting any stepper goroutine, so a
	// failure partway through leaves nothing running: already-bound
	// timers are released and Init can be retried.
	for p := 0; p < MaxPorts; p++ {
		port := &c.ports[p]
		port.running = false
		for j := 0; j < AxesPerPort; j++ {
			ax := &port.axes[j]
			ax.timer = timerFor(p, j)
			ax.wake = make(chan struct{}, 1)

			if err := c.timers.Configure(ax.timer, ax.signal); err != nil {
				for id := TimerID(0); id < ax.timer; id++ {
					c.timers.Release(id)
				}
				return errors.New("quad: timer " + itoa(int(ax.timer)) + " config failed: " + err.Error())
			}
			// Park the timer on the idle interval until motion arrives.
			c.timers.SetReload(ax.timer, c.timing.IdleTicks)
		}
	}

	for p := 0; p < MaxPorts; p++ {
		for j := 0; j < AxesPerPort; j++ {
			go c.stepperLoop(&c.ports[p].axes[j])
		}
	}

	c.initialized = true
	return nil
}

// Configure binds the output pin pairs for one port's horizontal and
// vertical axes. Must be called before Start. An invalid port index is a
// logged no-op, never a fault.
func (c *Controller) Configure(port int, h, v PinPair) {
	if !c.validPort("configure", port) {
		return
	}
	// Each pair is recorded the moment the driver accepts it, so the
	// port's view always matches what is claimed at the driver. A retry
	// after a partial failure re-runs ConfigurePair on the already
	// claimed pair, which backends tolerate.
	if err := c.pins.ConfigurePair(h); err != nil {
		DebugPrintln("quad: configure port " + itoa(port) + " H pins: " + err.Error())
		return
	}
	c.ports[port].axes[axisH].pins = h
	if err := c.pins.ConfigurePair(v); err != nil {
		DebugPrintln("quad: configure port " + itoa(port) + " V pins: " + err.Error())
		return
	}
	c.ports[port].axes[axisV].pins = v
}

// Start enables both axis timers for a port. Idempotent: calls while
// already running are no-ops, tracked via the running flag so the timer
// peripheral never sees redundant enables.
func (c *Controller) Start(port int) {
	if !c.validPort("start", port) {
		return
	}
	p := &c.ports[port]
	if p.running {
		return
	}
	for j := 0; j < AxesPerPort; j++ {
		c.timers.Start(p.axes[j].timer)
	}
	p.running = true
}

// Pause disables both axis timers for a port. Idempotent. A stepper woken
// just before the pause takes effect still completes its single step.
func (c *Controller) Pause(port int) {
	if !c.validPort("pause", port) {
		return
	}
	p := &c.ports[port]
	if !p.running {
		return
	}
	for j := 0; j < AxesPerPort; j++ {
		c.timers.Pause(p.axes[j].timer)
	}
	p.running = false
}

// Update is the ingestion entry point, called once per received motion
// report. dx feeds the horizontal axis; dy is negated into the vertical
// axis to match the orientation convention of the driven device. An
// invalid port index is a logged no-op.
func (c *Controller) Update(port int, dx, dy int32) {
	if !c.validPort("update", port) {
		return
	}
	p := &c.ports[port]
	c.updateAxis(&p.axes[axisH], dx)
	c.updateAxis(&p.axes[axisV], -dy)
}

// updateAxis converts one delta and reprograms the axis timer. The phase
// is deliberately untouched here; only the stepper advances it.
func (c *Controller) updateAxis(ax *axisState, delta int32) {
	plan := c.timing.Convert(delta, c.Scale())
	if !plan.Idle {
		// Direction before count: a stepper firing between the two
		// stores pairs a fresh field with a stale one for at most one
		// step interval, which shifts timing by a step but cannot
		// corrupt the phase sequence.
		atomic.StoreUint32(&ax.dir, uint32(plan.Dir))
		atomic.StoreUint32(&ax.steps, plan.Steps)
	}
	c.timers.SetReload(ax.timer, plan.Interval)
}

// Scale returns the current movement scale factor.
func (c *Controller) Scale() float32 {
	return math.Float32frombits(atomic.LoadUint32(&c.scaleBits))
}

// SetScale updates the in-memory scale factor immediately and then tries
// to persist it. A persistence failure is logged but does not roll back
// the in-memory value: the runtime behavior change stands either way.
func (c *Controller) SetScale(scale float32) {
	atomic.StoreUint32(&c.scaleBits, math.Float32bits(scale))
	if c.store == nil {
		return
	}
	if err := c.store.SaveScale(scale); err != nil {
		DebugPrintln("quad: scale factor not persisted: " + err.Error())
	}
}

// Shutdown releases every axis timer and stops the stepper goroutines.
// Irreversible for the lifetime of the controller; a fresh controller and
// Init are required to resume.
func (c *Controller) Shutdown() {
	if !c.initialized || c.stopped {
		return
	}
	for p := 0; p < MaxPorts; p++ {
		port := &c.ports[p]
		for j := 0; j < AxesPerPort; j++ {
			c.timers.Release(port.axes[j].timer)
		}
		port.running = false
	}
	// Timers are quiet now; release the steppers.
	close(c.quit)
	c.stopped = true
}

func (c *Controller) validPort(op string, port int) bool {
	if port < 0 || port >= MaxPorts {
		DebugPrintln("quad: " + op + ": invalid port " + itoa(port))
		return false
	}
	return true
}
