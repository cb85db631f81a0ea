package navigation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/geometry"
	"github.com/aretw0/longboard/pkg/ports"
)

var errNoOutline = errors.New("generator returned no outline")

// Render builds and presents the frame of the current preview location.
func (c *Coordinator) Render(ctx context.Context) (*ports.Frame, error) {
	frame, err := c.render(ctx, c.doc.PreviewLocation())
	if err != nil {
		return nil, err
	}
	c.present(ctx, frame)
	return frame, nil
}

// render asks the generator for the current glyph at loc and analyses it.
// Failures are reported as *domain.UnreachableError.
func (c *Coordinator) render(ctx context.Context, loc domain.Location) (*ports.Frame, error) {
	start := c.now()
	continuous, discrete := c.space.Split(c.space.Complete(loc))

	outline, err := c.gen.MakeGlyph(ctx, c.glyph, continuous, discrete)
	if err == nil && outline == nil {
		err = errNoOutline
	}
	if err != nil {
		uerr := &domain.UnreachableError{Glyph: c.glyph, Location: loc.Clone(), Cause: err}
		c.logger.Warn("update failed",
			"document_id", c.doc.ID(),
			"glyph", c.glyph,
			"location", loc.String(),
			"err", err,
		)
		if c.hooks.OnUpdateFailed != nil {
			c.hooks.OnUpdateFailed(ctx, c.updateEvent(loc, start, uerr, 0))
		}
		return nil, uerr
	}

	stats := geometry.Measure(outline)
	frame := &ports.Frame{
		DocumentID: c.doc.ID(),
		GestureID:  c.gestureID,
		Glyph:      c.glyph,
		Location:   loc.Clone(),
		Path:       geometry.SVGPath(outline),
		Kinks:      geometry.FindKinks(outline, c.settings.KinkPrecision),
		Stats:      stats,
		StatsText:  stats.String(),
	}

	extrapolated := c.space.ExtrapolatedAxes(loc)
	frame.IsExtrapolating = len(extrapolated) > 0
	for _, name := range extrapolated {
		a, _ := c.space.Axis(name)
		frame.Warnings = append(frame.Warnings, fmt.Sprintf("%s %s is outside [%g, %g]", name, loc[name], a.Minimum, a.Maximum))
	}
	for _, b := range c.beams {
		frame.Measurements = append(frame.Measurements, b.Measure(outline)...)
	}
	if c.settings.ShowPoints {
		points := geometry.Collect(outline, geometry.Vec{})
		frame.Points = &points
		frame.Vectors = c.sourceVectors(ctx, points, continuous, discrete)
	}

	if c.hooks.OnUpdate != nil {
		c.hooks.OnUpdate(ctx, c.updateEvent(loc, start, nil, len(frame.Kinks)))
	}
	return frame, nil
}

// sourceVectors links the points of the rendered glyph to the same glyph in
// every other source of the discrete bucket being shown.
func (c *Coordinator) sourceVectors(ctx context.Context, points geometry.Collection, continuous, discrete domain.Location) []geometry.Vector {
	var out []geometry.Vector
	for _, src := range c.doc.Sources() {
		srcContinuous, srcDiscrete := c.space.Split(c.space.Complete(src.Location))
		if !srcDiscrete.Equal(discrete) || srcContinuous.Equal(continuous) {
			continue
		}
		o, err := c.gen.MakeGlyph(ctx, c.glyph, srcContinuous, srcDiscrete)
		if err != nil || o == nil {
			c.logger.Debug("source glyph unavailable", "document_id", c.doc.ID(), "source", src.Name, "glyph", c.glyph, "err", err)
			continue
		}
		out = append(out, geometry.Vectors(points, geometry.Collect(o, geometry.Vec{}))...)
	}
	return out
}

func (c *Coordinator) present(ctx context.Context, frame *ports.Frame) {
	if c.sink != nil {
		c.sink.Present(ctx, *frame)
	}
}

func (c *Coordinator) updateEvent(loc domain.Location, start time.Time, err error, kinks int) *domain.UpdateEvent {
	t := domain.EventSample
	if err != nil {
		t = domain.EventUpdateFailed
	}
	return &domain.UpdateEvent{
		EventBase: domain.EventBase{
			Timestamp:  c.now(),
			Type:       t,
			DocumentID: c.doc.ID(),
		},
		Glyph:    c.glyph,
		Location: loc.Clone(),
		Duration: c.now().Sub(start),
		Err:      err,
		Kinks:    kinks,
	}
}
