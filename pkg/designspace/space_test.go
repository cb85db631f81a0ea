package designspace_test

import (
	"testing"

	"github.com/aretw0/longboard/pkg/designspace"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAxes() []domain.Axis {
	return []domain.Axis{
		{Name: "weight", Kind: domain.Continuous, Minimum: 0, Default: 400, Maximum: 1000},
		{Name: "width", Kind: domain.Continuous, Minimum: 50, Default: 100, Maximum: 200},
		{Name: "italic", Kind: domain.Discrete, Default: 0, Values: []float64{0, 1}},
	}
}

func TestSpace_Split(t *testing.T) {
	space := designspace.New(testAxes())
	loc := domain.LocationFromScalars(map[string]float64{"weight": 500, "italic": 1, "mystery": 3})

	continuous, discrete := space.Split(loc)
	assert.Equal(t, domain.Location{"weight": domain.Scalar(500)}, continuous)
	assert.Equal(t, domain.Location{"italic": domain.Scalar(1)}, discrete)
	assert.NotContains(t, continuous, "width", "absent axes are not defaulted")

	for name := range loc {
		if _, ok := space.Axis(name); !ok {
			continue
		}
		_, inC := continuous[name]
		_, inD := discrete[name]
		assert.True(t, inC != inD, "axis %s must land in exactly one part", name)
	}
}

func TestAxisExtremes(t *testing.T) {
	axes := testAxes()
	lo, def, hi := designspace.AxisExtremes(axes[0])
	assert.Equal(t, []float64{0, 400, 1000}, []float64{lo, def, hi})

	lo, def, hi = designspace.AxisExtremes(axes[2])
	assert.Equal(t, []float64{0, 0, 0}, []float64{lo, def, hi}, "discrete axes are degenerate")
}

func TestSpace_Clip(t *testing.T) {
	space := designspace.New(testAxes())

	cases := []struct {
		name string
		in   domain.Location
		want domain.Location
	}{
		{"inside untouched", domain.Location{"weight": domain.Scalar(250)}, domain.Location{"weight": domain.Scalar(250)}},
		{"above maximum", domain.Location{"weight": domain.Scalar(1200)}, domain.Location{"weight": domain.Scalar(1000)}},
		{"below minimum", domain.Location{"width": domain.Scalar(10)}, domain.Location{"width": domain.Scalar(50)}},
		{"anisotropic clamped per element", domain.Location{"weight": domain.Anisotropic(-10, 1100)}, domain.Location{"weight": domain.Anisotropic(0, 1000)}},
		{"discrete passes through", domain.Location{"italic": domain.Scalar(7)}, domain.Location{"italic": domain.Scalar(7)}},
		{"unknown passes through", domain.Location{"grade": domain.Scalar(-500)}, domain.Location{"grade": domain.Scalar(-500)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := space.Clip(tc.in)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %v", got)

			again, err := space.Clip(got)
			require.NoError(t, err)
			assert.True(t, got.Equal(again), "clip must be idempotent")
			assert.False(t, space.IsExtrapolated(got))
		})
	}
}

func TestSpace_ClipRejectPolicy(t *testing.T) {
	space := designspace.New(testAxes(), designspace.WithUnknownAxisPolicy(domain.UnknownAxisReject))

	_, err := space.Clip(domain.Location{"grade": domain.Scalar(1)})
	assert.ErrorIs(t, err, domain.ErrUnknownAxis)

	got, err := space.Clip(domain.Location{"weight": domain.Scalar(2000)})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got["weight"].Scalar())
}

func TestSpace_IsExtrapolated(t *testing.T) {
	space := designspace.New(testAxes())
	assert.False(t, space.IsExtrapolated(domain.Location{"weight": domain.Scalar(1000)}), "bounds are inclusive")
	assert.True(t, space.IsExtrapolated(domain.Location{"weight": domain.Scalar(1000.01)}))
	assert.True(t, space.IsExtrapolated(domain.Location{"weight": domain.Anisotropic(500, -1)}))
	assert.False(t, space.IsExtrapolated(domain.Location{"italic": domain.Scalar(5)}))
	assert.False(t, space.IsExtrapolated(domain.Location{"grade": domain.Scalar(5000)}))
	assert.Equal(t, []string{"weight", "width"}, space.ExtrapolatedAxes(domain.LocationFromScalars(map[string]float64{
		"weight": -1, "width": 300, "italic": 4,
	})))
}

func TestSpace_Default(t *testing.T) {
	space := designspace.New(testAxes())

	def := space.Default(nil)
	assert.True(t, domain.LocationFromScalars(map[string]float64{"weight": 400, "width": 100, "italic": 0}).Equal(def))

	keep := space.Default(domain.Location{"italic": domain.Scalar(1)})
	assert.Equal(t, 1.0, keep["italic"].Scalar())
	assert.Equal(t, 400.0, keep["weight"].Scalar())

	completed := space.Complete(domain.Location{"weight": domain.Scalar(700)})
	assert.Equal(t, 700.0, completed["weight"].Scalar())
	assert.Equal(t, 100.0, completed["width"].Scalar())
}

func TestSpace_Random(t *testing.T) {
	space := designspace.New([]domain.Axis{
		{Name: "weight", Kind: domain.Continuous, Minimum: 0, Default: 50, Maximum: 100},
		{Name: "italic", Kind: domain.Discrete, Values: []float64{0, 1}},
	})
	rng := designspace.NewRand(42)

	t.Run("No margin stays in range", func(t *testing.T) {
		for range 1000 {
			loc := space.Random(rng, 0)
			w := loc["weight"].Scalar()
			assert.GreaterOrEqual(t, w, 0.0)
			assert.LessOrEqual(t, w, 100.0)
			assert.Contains(t, []float64{0, 1}, loc["italic"].Scalar())
		}
	})

	t.Run("Margin widens range", func(t *testing.T) {
		outside := false
		for range 1000 {
			w := space.Random(rng, 0.1)["weight"].Scalar()
			assert.GreaterOrEqual(t, w, -10.0)
			assert.LessOrEqual(t, w, 110.0)
			if w < 0 || w > 100 {
				outside = true
			}
		}
		assert.True(t, outside, "a 10% margin should extrapolate at least once in 1000 draws")
	})

	t.Run("Seed is reproducible", func(t *testing.T) {
		a := space.Random(designspace.NewRand(7), 0)
		b := space.Random(designspace.NewRand(7), 0)
		assert.True(t, a.Equal(b))
	})
}

func TestAxisScale(t *testing.T) {
	axes := testAxes()
	assert.Equal(t, 1000.0, designspace.AxisScale(axes[0]))

	mapped := domain.Axis{Name: "weight", Minimum: 100, Default: 400, Maximum: 900, Map: [][2]float64{{100, 20}, {900, 220}}}
	assert.InDelta(t, 200.0, designspace.AxisScale(mapped), 1e-9)

	scales := designspace.New(axes).Scales()
	assert.NotContains(t, scales, "italic")
	assert.Equal(t, 150.0, scales["width"])
}
