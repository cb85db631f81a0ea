package geometry_test

import (
	"math"
	"testing"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outlineOf(points ...domain.Point) *domain.Outline {
	return &domain.Outline{Contours: []domain.Contour{{Points: points}}}
}

func TestFindKinks(t *testing.T) {
	t.Run("Colinear tangents", func(t *testing.T) {
		o := outlineOf(domain.On(0, 0), domain.Off(50, 0), domain.SmoothOn(100, 0), domain.Off(150, 0), domain.On(200, 100))
		assert.Empty(t, geometry.FindKinks(o, geometry.DefaultKinkPrecision))
	})

	t.Run("Right angle", func(t *testing.T) {
		o := outlineOf(domain.On(0, 0), domain.Off(50, 0), domain.SmoothOn(100, 0), domain.Off(100, 50), domain.On(100, 100))
		kinks := geometry.FindKinks(o, geometry.DefaultKinkPrecision)
		require.Len(t, kinks, 1)
		k := kinks[0]
		assert.Equal(t, 0, k.Contour)
		assert.Equal(t, domain.Off(50, 0), k.Previous)
		assert.Equal(t, domain.SmoothOn(100, 0), k.Point)
		assert.Equal(t, domain.Off(100, 50), k.Next)
		assert.InDelta(t, 100, k.Severity, 1e-9)
	})

	t.Run("Corner points are not checked", func(t *testing.T) {
		o := outlineOf(domain.On(0, 0), domain.Off(50, 0), domain.On(100, 0), domain.Off(100, 50), domain.On(100, 100))
		assert.Empty(t, geometry.FindKinks(o, 3))
	})

	t.Run("Needs off-curve neighbours on both sides", func(t *testing.T) {
		o := outlineOf(domain.On(0, 0), domain.SmoothOn(100, 0), domain.Off(100, 50), domain.On(100, 100))
		assert.Empty(t, geometry.FindKinks(o, 3))
	})

	t.Run("Zero-length tangent", func(t *testing.T) {
		o := outlineOf(domain.On(0, 0), domain.Off(100, 0), domain.SmoothOn(100, 0), domain.Off(100, 50), domain.On(100, 100))
		assert.Empty(t, geometry.FindKinks(o, 3))
	})

	t.Run("Rounding precision", func(t *testing.T) {
		theta := math.Acos(0.9996)
		next := domain.Off(100+50*math.Cos(theta), 50*math.Sin(theta))
		o := outlineOf(domain.On(0, 0), domain.Off(50, 0), domain.SmoothOn(100, 0), next, domain.On(200, 100))

		assert.Empty(t, geometry.FindKinks(o, 3), "0.9996 rounds to 1.000")
		kinks := geometry.FindKinks(o, 4)
		require.Len(t, kinks, 1)
		assert.InDelta(t, 0.04, kinks[0].Severity, 1e-6)
	})

	t.Run("Contour index", func(t *testing.T) {
		o := &domain.Outline{Contours: []domain.Contour{
			{Points: []domain.Point{domain.On(0, 0), domain.On(10, 0), domain.On(10, 10)}},
			{Points: []domain.Point{domain.On(0, 0), domain.Off(50, 0), domain.SmoothOn(100, 0), domain.Off(100, 50), domain.On(100, 100)}},
		}}
		kinks := geometry.FindKinks(o, -1)
		require.Len(t, kinks, 1)
		assert.Equal(t, 1, kinks[0].Contour)
	})
}
