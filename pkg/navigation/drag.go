package navigation

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/ports"
)

// Drag runs a whole gesture over samples, as a host replaying recorded
// pointer input would. A failing sample cancels the gesture. It returns the
// last frame and the number of samples that produced one.
func (c *Coordinator) Drag(ctx context.Context, glyph string, samples []domain.Sample, commit bool) (*ports.Frame, int, error) {
	if err := c.OnGestureBegin(ctx, glyph); err != nil {
		return nil, 0, err
	}
	var last *ports.Frame
	applied := 0
	for _, s := range samples {
		if err := ctx.Err(); err != nil {
			return last, applied, errors.Join(err, c.OnGestureEnd(ctx, false))
		}
		frame, err := c.OnGestureSample(ctx, s)
		if err != nil {
			return last, applied, errors.Join(err, c.OnGestureEnd(ctx, false))
		}
		if frame != nil {
			last = frame
			applied++
		}
	}
	return last, applied, c.OnGestureEnd(ctx, commit)
}

// LinearSamples spreads a (dx, dy) pointer travel evenly over steps moves
// after a baseline sample at the origin.
func LinearSamples(dx, dy float64, steps int, duration time.Duration, mods domain.Modifier) []domain.Sample {
	steps = max(steps, 1)
	samples := make([]domain.Sample, 0, steps+1)
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		samples = append(samples, domain.Sample{
			Position:  domain.Position{X: dx * f, Y: dy * f},
			Timestamp: time.Duration(f * float64(duration)),
			Modifiers: mods,
		})
	}
	return samples
}
