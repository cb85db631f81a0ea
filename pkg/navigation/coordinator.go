package navigation

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/aretw0/longboard/internal/logging"
	"github.com/aretw0/longboard/internal/runtime"
	"github.com/aretw0/longboard/pkg/designspace"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/geometry"
	"github.com/aretw0/longboard/pkg/ports"
	"github.com/google/uuid"
)

// Coordinator is the navigation session of one document. It is not safe for
// concurrent use; session.Manager serialises callers per document.
type Coordinator struct {
	doc      ports.Document
	gen      ports.Generator
	sink     ports.FrameSink
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	settings domain.Settings
	space    *designspace.Space
	ctrl     *runtime.Controller
	rng      *rand.Rand
	now      func() time.Time
	beams    []geometry.Beam

	glyph string

	// set while the coordinator itself writes the preview location
	writing atomic.Bool

	// gesture state, reset at every begin and end
	gestureID string
	roles     domain.Roles
	baseline  *geometry.Stats
	received  int
	applied   int
	dropped   int
}

var _ ports.Listener = (*Coordinator)(nil)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithFrameSink sets where frames are presented.
func WithFrameSink(sink ports.FrameSink) Option {
	return func(c *Coordinator) {
		c.sink = sink
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Coordinator) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithSettings sets the initial settings.
func WithSettings(s domain.Settings) Option {
	return func(c *Coordinator) {
		c.settings = s.Normalize()
	}
}

// WithRand sets the generator used by RandomPreview.
func WithRand(rng *rand.Rand) Option {
	return func(c *Coordinator) {
		c.rng = rng
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// WithGlyph sets the glyph shown initially.
func WithGlyph(name string) Option {
	return func(c *Coordinator) {
		c.glyph = name
	}
}

// WithBeams sets the measurement beams evaluated on every frame.
func WithBeams(beams ...geometry.Beam) Option {
	return func(c *Coordinator) {
		c.beams = append([]geometry.Beam(nil), beams...)
	}
}

// NewCoordinator creates the navigation session of doc.
func NewCoordinator(doc ports.Document, gen ports.Generator, opts ...Option) *Coordinator {
	c := &Coordinator{
		doc:      doc,
		gen:      gen,
		logger:   logging.NewNop(),
		settings: domain.DefaultSettings(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := uint64(c.now().UnixNano())
		c.rng = designspace.NewRand(seed)
	}
	c.space = designspace.New(doc.Axes(), designspace.WithUnknownAxisPolicy(c.settings.UnknownAxes))
	c.ctrl = runtime.NewController(spaceClipper{c},
		runtime.WithSensitivity(c.settings.Sensitivity),
		runtime.WithPrecisionDamping(c.settings.PrecisionDamping),
		runtime.WithLogger(c.logger),
	)
	c.seedRoles()
	return c
}

// spaceClipper clips through the space of the current settings.
type spaceClipper struct{ c *Coordinator }

func (s spaceClipper) Clip(loc domain.Location) (domain.Location, error) {
	return s.c.space.Clip(loc)
}

// Document returns the navigated document.
func (c *Coordinator) Document() ports.Document { return c.doc }

// Space returns the axis algebra of the document.
func (c *Coordinator) Space() *designspace.Space { return c.space }

// Settings returns the active settings.
func (c *Coordinator) Settings() domain.Settings { return c.settings }

// Dragging reports whether a gesture is in progress.
func (c *Coordinator) Dragging() bool { return c.ctrl.Dragging() }

// Glyph returns the glyph being previewed.
func (c *Coordinator) Glyph() string { return c.glyph }

// SetGlyph changes the glyph being previewed, as when the host's editor
// switches glyphs.
func (c *Coordinator) SetGlyph(name string) { c.glyph = name }

// SetBeams sets the measurement beams evaluated on every frame.
func (c *Coordinator) SetBeams(beams ...geometry.Beam) {
	c.beams = append(c.beams[:0], beams...)
}

// OnSettingsChanged applies a live settings change. A gesture in progress
// keeps its roles but picks up the new constants on its next sample.
func (c *Coordinator) OnSettingsChanged(s domain.Settings) {
	c.settings = s.Normalize()
	c.space = designspace.New(c.doc.Axes(), designspace.WithUnknownAxisPolicy(c.settings.UnknownAxes))
	c.ctrl.Configure(c.settings.Sensitivity, c.settings.PrecisionDamping)
	c.logger.Debug("settings changed",
		"document_id", c.doc.ID(),
		"allow_extrapolation", c.settings.AllowExtrapolation,
		"sensitivity", c.ctrl.Sensitivity(),
		"unknown_axes", c.settings.UnknownAxes,
	)
}

// OnGestureBegin starts a drag from the current preview location. An empty
// glyph keeps the current one.
func (c *Coordinator) OnGestureBegin(ctx context.Context, glyph string) error {
	if glyph != "" {
		c.glyph = glyph
	}
	if err := c.ctrl.Begin(c.space.Complete(c.doc.PreviewLocation())); err != nil {
		return err
	}
	c.gestureID = uuid.NewString()
	c.roles = c.Roles()
	c.baseline = nil
	c.received, c.applied, c.dropped = 0, 0, 0

	c.logger.Debug("gesture begin",
		"document_id", c.doc.ID(),
		"gesture_id", c.gestureID,
		"glyph", c.glyph,
		"bound_axes", len(c.roles.Active()),
	)
	if c.hooks.OnGestureBegin != nil {
		c.hooks.OnGestureBegin(ctx, c.gestureEvent(domain.EventGestureBegin, c.ctrl.Working()))
	}
	return nil
}

// OnGestureSample applies one pointer sample. It returns nil without error
// when the sample only set the velocity baseline or was dropped. When the
// update fails the drag session is rolled back to its state before the sample.
func (c *Coordinator) OnGestureSample(ctx context.Context, s domain.Sample) (*ports.Frame, error) {
	snap := c.ctrl.Snapshot()
	loc, changed, err := c.ctrl.Sample(s, runtime.Params{
		Roles:              c.roles,
		Scales:             c.space.Scales(),
		AllowExtrapolation: c.settings.AllowExtrapolation,
	})
	if err != nil {
		c.ctrl.Restore(snap)
		return nil, err
	}
	c.received++
	if !changed {
		if c.received > 1 {
			c.dropped++
			if c.hooks.OnSample != nil {
				evt := c.gestureEvent(domain.EventSample, c.ctrl.Working())
				evt.Dropped = true
				c.hooks.OnSample(ctx, evt)
			}
		}
		return nil, nil
	}

	frame, err := c.render(ctx, loc)
	if err != nil {
		c.ctrl.Restore(snap)
		return nil, err
	}
	if c.baseline == nil {
		stats := frame.Stats
		c.baseline = &stats
	}
	delta := geometry.Compare(*c.baseline, frame.Stats)
	frame.Delta = &delta
	frame.StatsText = delta.String()
	c.applied++

	c.present(ctx, frame)
	if c.hooks.OnSample != nil {
		evt := c.gestureEvent(domain.EventSample, loc)
		evt.Dropped = false
		c.hooks.OnSample(ctx, evt)
	}
	return frame, nil
}

// OnGestureEnd finishes the drag. Only a committing end writes the working
// location to the document.
func (c *Coordinator) OnGestureEnd(ctx context.Context, commit bool) error {
	travel := c.ctrl.Progress()
	final, err := c.ctrl.End(commit)
	if err != nil {
		return err
	}
	if commit {
		c.writePreview(final)
	}

	evt := c.gestureEvent(domain.EventGestureEnd, final)
	evt.Committed = commit
	evt.Travel = &travel
	c.logger.Debug("gesture end",
		"document_id", c.doc.ID(),
		"gesture_id", c.gestureID,
		"committed", commit,
		"samples", c.applied,
		"travel_x", travel.X,
		"travel_y", travel.Y,
	)
	c.gestureID = ""
	c.baseline = nil
	c.roles = nil
	if c.hooks.OnGestureEnd != nil {
		c.hooks.OnGestureEnd(ctx, evt)
	}
	return nil
}

// OnDocumentLocationChanged renders the new preview location after another
// party changed it. It is ignored while dragging or when no glyph is selected.
func (c *Coordinator) OnDocumentLocationChanged(ctx context.Context) (*ports.Frame, error) {
	if c.ctrl.Dragging() || c.glyph == "" {
		return nil, nil
	}
	return c.Render(ctx)
}

// WritingPreview reports whether the coordinator is itself writing the
// document's preview location. Document observers use it to tell their own
// echo from a change made by another party.
func (c *Coordinator) WritingPreview() bool { return c.writing.Load() }

func (c *Coordinator) writePreview(loc domain.Location) {
	c.writing.Store(true)
	defer c.writing.Store(false)
	c.doc.SetPreviewLocation(loc)
}

func (c *Coordinator) gestureEvent(t domain.EventType, loc domain.Location) *domain.GestureEvent {
	return &domain.GestureEvent{
		EventBase: domain.EventBase{
			Timestamp:  c.now(),
			Type:       t,
			DocumentID: c.doc.ID(),
		},
		GestureID: c.gestureID,
		Location:  loc,
		Dropped:   c.dropped > 0,
		Samples:   c.applied,
	}
}

// State returns the persistable navigation state.
func (c *Coordinator) State() *domain.DocumentState {
	return &domain.DocumentState{
		DocumentID: c.doc.ID(),
		Preview:    c.doc.PreviewLocation(),
		Roles:      c.Roles(),
		UpdatedAt:  c.now().UTC(),
	}
}

// Restore applies persisted state to the document.
func (c *Coordinator) Restore(s *domain.DocumentState) error {
	if c.ctrl.Dragging() {
		return domain.ErrGestureActive
	}
	if len(s.Preview) > 0 {
		c.writePreview(s.Preview)
	}
	if len(s.Roles) > 0 {
		c.storeRoles(s.Roles)
	}
	return nil
}
