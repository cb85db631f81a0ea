package ports

import (
	"context"

	"github.com/aretw0/longboard/pkg/domain"
)

// Generator builds glyph outlines. It is called with the continuous part of
// a location resolved against its discrete bucket, and may fail for
// malformed or unreachable locations.
type Generator interface {
	MakeGlyph(ctx context.Context, name string, continuous, discrete domain.Location) (*domain.Outline, error)
}
