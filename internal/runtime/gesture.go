package runtime

import (
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/longboard/internal/logging"
	"github.com/aretw0/longboard/pkg/domain"
)

// Params are the document settings a sample is applied with.
type Params struct {
	Roles              domain.Roles
	Scales             map[string]float64
	AllowExtrapolation bool
}

// Clipper clamps a location into the declared axis ranges.
type Clipper interface {
	Clip(domain.Location) (domain.Location, error)
}

// Controller turns a stream of pointer samples into movement through the
// design space. It is idle until Begin and returns to idle at End. It is not
// safe for concurrent use.
type Controller struct {
	clipper     Clipper
	sensitivity float64
	damping     float64
	logger      *slog.Logger

	drag dragSession
}

// dragSession is the transient state of one gesture. It is never persisted.
type dragSession struct {
	active      bool
	working     domain.Location
	hasBaseline bool
	lastPos     domain.Position
	lastTime    time.Duration
	progress    domain.Position
	applied     int
}

// Option configures a Controller.
type Option func(*Controller)

// WithSensitivity sets the constant k in delta = velocity × axisScale × k.
func WithSensitivity(k float64) Option {
	return func(c *Controller) {
		if k > 0 {
			c.sensitivity = k
		}
	}
}

// WithPrecisionDamping sets the factor applied to velocities under ModPrecision.
func WithPrecisionDamping(f float64) Option {
	return func(c *Controller) {
		if f > 0 {
			c.damping = f
		}
	}
}

// WithLogger sets the logger used for dropped samples.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates an idle controller clipping through clipper.
func NewController(clipper Clipper, opts ...Option) *Controller {
	c := &Controller{
		clipper:     clipper,
		sensitivity: domain.DefaultSensitivity,
		damping:     domain.DefaultPrecisionDamping,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configure replaces the sensitivity and damping, e.g. after a live settings
// change. Non-positive values keep the current setting.
func (c *Controller) Configure(sensitivity, damping float64) {
	WithSensitivity(sensitivity)(c)
	WithPrecisionDamping(damping)(c)
}

// Sensitivity returns the constant k.
func (c *Controller) Sensitivity() float64 { return c.sensitivity }

// Dragging reports whether a gesture is in progress.
func (c *Controller) Dragging() bool { return c.drag.active }

// Working returns a copy of the in-progress location, or nil when idle.
func (c *Controller) Working() domain.Location {
	if !c.drag.active {
		return nil
	}
	return c.drag.working.Clone()
}

// Progress returns the cumulative pointer travel of the applied samples.
func (c *Controller) Progress() domain.Position { return c.drag.progress }

// Begin starts a gesture from a deep copy of start.
func (c *Controller) Begin(start domain.Location) error {
	if c.drag.active {
		return domain.ErrGestureActive
	}
	c.drag = dragSession{active: true, working: start.Clone()}
	return nil
}

// Sample applies one pointer event and returns the working location.
//
// The first sample after Begin only records the baseline position and time,
// since velocity needs two samples. Samples whose elapsed time is not
// positive become the new baseline but move nothing. changed reports whether
// the sample moved the working location.
func (c *Controller) Sample(s domain.Sample, p Params) (loc domain.Location, changed bool, err error) {
	d := &c.drag
	if !d.active {
		return nil, false, domain.ErrNoGesture
	}
	if !d.hasBaseline {
		d.hasBaseline = true
		d.lastPos, d.lastTime = s.Position, s.Timestamp
		return d.working.Clone(), false, nil
	}

	progress := s.Position.Sub(d.lastPos)
	elapsed := s.Timestamp - d.lastTime
	d.lastPos, d.lastTime = s.Position, s.Timestamp
	if elapsed <= 0 {
		c.logger.Debug("dropping sample", "elapsed", elapsed)
		return d.working.Clone(), false, nil
	}

	secs := elapsed.Seconds()
	vx, vy := progress.X/secs, progress.Y/secs
	if s.Modifiers.Has(domain.ModConstrain) {
		if math.Abs(vx) >= math.Abs(vy) {
			vy = 0
		} else {
			vx = 0
		}
	}
	if s.Modifiers.Has(domain.ModPrecision) {
		vx *= c.damping
		vy *= c.damping
	}

	next := d.working.Clone()
	for _, name := range next.Names() {
		var v float64
		switch p.Roles.Role(name) {
		case domain.RoleHorizontal:
			v = vx
		case domain.RoleVertical:
			v = vy
		default:
			continue
		}
		cur := next[name]
		next[name] = cur.WithScalar(cur.Scalar() + v*p.Scales[name]*c.sensitivity)
	}

	if !p.AllowExtrapolation && c.clipper != nil {
		next, err = c.clipper.Clip(next)
		if err != nil {
			return nil, false, err
		}
	}

	d.working = next
	d.progress = d.progress.Add(progress)
	d.applied++
	return next.Clone(), true, nil
}

// End finishes the gesture. With commit it returns the final working
// location; without it the gesture is discarded and nil is returned. The
// controller is idle afterwards either way.
func (c *Controller) End(commit bool) (domain.Location, error) {
	if !c.drag.active {
		return nil, domain.ErrNoGesture
	}
	working := c.drag.working
	c.drag = dragSession{}
	if !commit {
		return nil, nil
	}
	return working, nil
}

// Snapshot captures the gesture state so a failed update can be undone.
type Snapshot struct {
	drag dragSession
}

// Snapshot returns the current gesture state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{drag: c.drag}
	s.drag.working = c.drag.working.Clone()
	return s
}

// Restore rolls the controller back to s.
func (c *Controller) Restore(s Snapshot) {
	c.drag = s.drag
	c.drag.working = s.drag.working.Clone()
}
