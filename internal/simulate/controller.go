// Package simulate advances a configured technique model on an
// explicit tick, appending one point per tick to the series store.
// The tick source lives outside the package: a timer, a test harness
// or an event loop calls Tick, so the simulation stays decoupled from
// any rendering host.
package simulate

import (
	"errors"
	"math"
	"math/rand"

	"github.com/echem-lab/echemsim/internal/model"
	"github.com/echem-lab/echemsim/internal/series"
	"github.com/echem-lab/echemsim/internal/technique"
)

// State is the controller lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Controller owns the series for writes and advances a progress
// counter in [0,1] on each tick. All methods are called from a single
// logical thread of control; readers access the series through copy
// snapshots.
type Controller struct {
	reg   *technique.Registry
	seed  int64
	speed float64

	desc        technique.Descriptor
	params      technique.Params
	mdl         model.Model
	cfg         RunConfig
	fingerprint string

	ser      *series.Series
	rng      *rand.Rand
	progress float64
	state    State
}

func New(reg *technique.Registry, seed int64) *Controller {
	return &Controller{
		reg:   reg,
		seed:  seed,
		speed: 1,
		ser:   series.New(),
	}
}

// SetSpeed adjusts the simulated-time multiplier applied per tick.
// Values <= 0 are ignored.
func (c *Controller) SetSpeed(speed float64) {
	if speed > 0 {
		c.speed = speed
	}
}

// Configure validates the parameter set for a technique and selects
// its model. When the technique or a shape-affecting parameter differs
// from the previous configuration the series is cleared: the next
// Start begins a new run.
func (c *Controller) Configure(id string, p technique.Params) error {
	desc, err := c.reg.Get(id)
	if err != nil {
		return err
	}
	resolved, err := desc.Validate(p)
	if err != nil {
		return err
	}
	mdl, err := model.ForDescriptor(desc)
	if err != nil {
		return err
	}

	fp := shapeFingerprint(desc, resolved)
	if fp != c.fingerprint {
		c.ser.Reset()
		c.progress = 0
	}

	c.desc = desc
	c.params = resolved
	c.mdl = mdl
	c.fingerprint = fp
	c.state = Idle
	return nil
}

// Start derives the run configuration and transitions to Running. A
// paused run with an unchanged configuration resumes from its current
// progress; otherwise the run starts fresh with a newly seeded rng.
func (c *Controller) Start() error {
	if c.mdl == nil {
		return errors.New("no technique configured")
	}
	if c.state == Running {
		return errors.New("simulation already running")
	}

	cfg, err := Derive(c.desc, c.params)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.progress == 0 || c.progress >= 1 || c.state == Completed {
		c.ser.Reset()
		c.progress = 0
		c.rng = rand.New(rand.NewSource(c.seed))
	}
	c.state = Running
	return nil
}

// Tick advances progress by one update interval of simulated time and
// appends the resulting point. It reports true once the run completes;
// the caller then stops its tick source. A point that comes back
// non-finite is dropped for that tick rather than surfacing as a
// broken sample.
func (c *Controller) Tick() bool {
	if c.state != Running {
		return c.state == Completed
	}

	increment := c.speed * c.cfg.UpdateInterval.Seconds() / c.cfg.TotalTime
	c.progress += increment

	done := false
	if c.progress >= 1 {
		c.progress = 1
		done = true
	}

	elapsed := c.progress * c.cfg.TotalTime
	pt := c.mdl.Point(c.progress, elapsed, c.params, c.rng)
	if finite(pt) {
		c.ser.Append(pt)
	}

	if done {
		c.state = Completed
	}
	return done
}

// Run starts the simulation and ticks it to completion without
// real-time pacing.
func (c *Controller) Run() error {
	if err := c.Start(); err != nil {
		return err
	}
	for !c.Tick() {
	}
	return nil
}

// Stop pauses a running simulation, keeping the series so the run can
// resume with an identical configuration.
func (c *Controller) Stop() {
	if c.state == Running {
		c.state = Idle
	}
}

// Reset clears the series and zeroes progress unconditionally.
func (c *Controller) Reset() {
	c.ser.Reset()
	c.progress = 0
	c.state = Idle
}

func (c *Controller) State() State                    { return c.state }
func (c *Controller) Seed() int64                     { return c.seed }
func (c *Controller) Progress() float64               { return c.progress }
func (c *Controller) Config() RunConfig               { return c.cfg }
func (c *Controller) Series() *series.Series          { return c.ser }
func (c *Controller) Descriptor() technique.Descriptor { return c.desc }

// Params returns a copy of the resolved parameter set of the current
// configuration.
func (c *Controller) Params() technique.Params {
	return c.params.Clone()
}

func finite(p series.Point) bool {
	for _, v := range [...]float64{p.X, p.Y, p.Z, p.Phase, p.Time} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
