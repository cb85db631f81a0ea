package memory

import (
	"context"
	"fmt"
	"math"

	"github.com/aretw0/longboard/pkg/designspace"
	"github.com/aretw0/longboard/pkg/domain"
)

// GeneratorFunc adapts a function to ports.Generator.
type GeneratorFunc func(ctx context.Context, name string, continuous, discrete domain.Location) (*domain.Outline, error)

func (fn GeneratorFunc) MakeGlyph(ctx context.Context, name string, continuous, discrete domain.Location) (*domain.Outline, error) {
	return fn(ctx, name, continuous, discrete)
}

// NearestSource is a fixture generator: it returns the glyph of the source
// closest to the requested location within the same discrete bucket. It
// does not interpolate.
type NearestSource struct {
	space   *designspace.Space
	sources []domain.Source
}

// NewNearestSource creates the fixture over the given sources.
func NewNearestSource(space *designspace.Space, sources []domain.Source) *NearestSource {
	return &NearestSource{space: space, sources: sources}
}

func (g *NearestSource) MakeGlyph(ctx context.Context, name string, continuous, discrete domain.Location) (*domain.Outline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want := g.space.Complete(discrete.Merge(continuous))
	_, wantDiscrete := g.space.Split(want)

	var best *domain.Outline
	bestDist := math.Inf(1)
	bucket := false
	for _, src := range g.sources {
		loc := g.space.Complete(src.Location)
		cont, disc := g.space.Split(loc)
		if !disc.Equal(wantDiscrete) {
			continue
		}
		bucket = true
		glyph, ok := src.Glyphs[name]
		if !ok || glyph == nil {
			continue
		}
		if d := g.distance(want, cont); d < bestDist {
			best, bestDist = glyph, d
		}
	}
	switch {
	case !bucket:
		return nil, fmt.Errorf("no source in discrete bucket %s", wantDiscrete)
	case best == nil:
		return nil, fmt.Errorf("glyph %q not found in bucket %s", name, wantDiscrete)
	}
	out := best.Translate(0, 0)
	out.Name = name
	return out, nil
}

func (g *NearestSource) distance(a, b domain.Location) float64 {
	var sum float64
	for _, ax := range g.space.Axes() {
		span := ax.Maximum - ax.Minimum
		if ax.IsDiscrete() || span == 0 {
			continue
		}
		d := (a[ax.Name].Scalar() - b[ax.Name].Scalar()) / span
		sum += d * d
	}
	return sum
}
