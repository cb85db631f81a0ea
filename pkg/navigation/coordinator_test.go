package navigation_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/longboard/pkg/adapters/memory"
	"github.com/aretw0/longboard/pkg/designspace"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/geometry"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/aretw0/longboard/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weightAxes() []domain.Axis {
	return []domain.Axis{
		{Name: "weight", Kind: domain.Continuous, Minimum: 0, Default: 400, Maximum: 1000},
		{Name: "italic", Kind: domain.Discrete, Default: 0, Values: []float64{0, 1}},
	}
}

// squareGenerator draws a box as wide as the weight value and fails beyond limit.
func squareGenerator(limit float64) memory.GeneratorFunc {
	return func(ctx context.Context, name string, continuous, discrete domain.Location) (*domain.Outline, error) {
		w := continuous["weight"].Scalar()
		if w > limit {
			return nil, fmt.Errorf("no master beyond %g", limit)
		}
		return &domain.Outline{Name: name, Width: w + 100, Contours: []domain.Contour{{Points: []domain.Point{
			domain.On(50, 0), domain.On(50+w, 0), domain.On(50+w, 100), domain.On(50, 100),
		}}}}, nil
	}
}

type recorder struct {
	frames []ports.Frame
}

func (r *recorder) Present(_ context.Context, f ports.Frame) { r.frames = append(r.frames, f) }

func sampleAt(x, y, seconds float64) domain.Sample {
	return domain.Sample{
		Position:  domain.Position{X: x, Y: y},
		Timestamp: time.Duration(seconds * float64(time.Second)),
	}
}

func newCoordinator(t *testing.T, settings domain.Settings, limit float64, opts ...navigation.Option) (*navigation.Coordinator, *memory.Document, *recorder) {
	t.Helper()
	doc := memory.NewDocument("doc", weightAxes())
	rec := &recorder{}
	opts = append([]navigation.Option{
		navigation.WithSettings(settings),
		navigation.WithFrameSink(rec),
		navigation.WithGlyph("I"),
		navigation.WithRand(designspace.NewRand(1)),
	}, opts...)
	return navigation.NewCoordinator(doc, squareGenerator(limit), opts...), doc, rec
}

func noExtrapolation() domain.Settings {
	s := domain.DefaultSettings()
	s.AllowExtrapolation = false
	return s
}

func TestCoordinator_CommitGesture(t *testing.T) {
	ctx := context.Background()
	c, doc, rec := newCoordinator(t, noExtrapolation(), 2000)

	require.NoError(t, c.OnGestureBegin(ctx, ""))

	frame, err := c.OnGestureSample(ctx, sampleAt(0, 0, 0))
	require.NoError(t, err)
	assert.Nil(t, frame, "first sample only sets the baseline")

	frame, err = c.OnGestureSample(ctx, sampleAt(50, 0, 0.5))
	require.NoError(t, err)
	require.NotNil(t, frame)
	working := frame.Location["weight"].Scalar()
	assert.InDelta(t, 405, working, 1e-9)
	assert.LessOrEqual(t, working, 1000.0)
	assert.False(t, frame.IsExtrapolating)
	assert.NotEmpty(t, frame.GestureID)
	require.NotNil(t, frame.Delta)
	assert.Zero(t, frame.Delta.AreaPercent, "the first applied sample is the baseline")

	assert.Equal(t, 400.0, doc.PreviewLocation()["weight"].Scalar(), "not committed while dragging")

	require.NoError(t, c.OnGestureEnd(ctx, true))
	assert.Equal(t, working, doc.PreviewLocation()["weight"].Scalar())
	assert.False(t, c.Dragging())
	assert.Len(t, rec.frames, 1)
}

func TestCoordinator_ClampsWithoutExtrapolation(t *testing.T) {
	ctx := context.Background()
	c, doc, _ := newCoordinator(t, noExtrapolation(), 2000)

	require.NoError(t, c.OnGestureBegin(ctx, ""))
	c.OnGestureSample(ctx, sampleAt(0, 0, 0))
	frame, err := c.OnGestureSample(ctx, sampleAt(1e6, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1000.0, frame.Location["weight"].Scalar())
	require.NoError(t, c.OnGestureEnd(ctx, true))
	assert.Equal(t, 1000.0, doc.PreviewLocation()["weight"].Scalar())
}

func TestCoordinator_SettingsChanged(t *testing.T) {
	ctx := context.Background()
	c, doc, _ := newCoordinator(t, noExtrapolation(), 2000)

	s := domain.DefaultSettings()
	s.AllowExtrapolation = true
	s.Sensitivity = 0.0001
	c.OnSettingsChanged(s)
	assert.Equal(t, 0.0001, c.Settings().Sensitivity)

	require.NoError(t, c.OnGestureBegin(ctx, ""))
	c.OnGestureSample(ctx, sampleAt(0, 0, 0))
	frame, err := c.OnGestureSample(ctx, sampleAt(10000, 0, 1))
	require.NoError(t, err)
	assert.InDelta(t, 1400, frame.Location["weight"].Scalar(), 1e-9)
	assert.True(t, frame.IsExtrapolating)
	require.NoError(t, c.OnGestureEnd(ctx, true))
	assert.InDelta(t, 1400, doc.PreviewLocation()["weight"].Scalar(), 1e-9)
}

func TestCoordinator_CancelGesture(t *testing.T) {
	ctx := context.Background()
	c, doc, _ := newCoordinator(t, noExtrapolation(), 2000)

	require.NoError(t, c.OnGestureBegin(ctx, ""))
	c.OnGestureSample(ctx, sampleAt(0, 0, 0))
	frame, err := c.OnGestureSample(ctx, sampleAt(10000, 0, 1))
	require.NoError(t, err)
	assert.InDelta(t, 900, frame.Location["weight"].Scalar(), 1e-9)

	require.NoError(t, c.OnGestureEnd(ctx, false))
	assert.Equal(t, 400.0, doc.PreviewLocation()["weight"].Scalar())
}

func TestCoordinator_UnreachableRollsBack(t *testing.T) {
	ctx := context.Background()
	var failures int
	hooks := domain.LifecycleHooks{
		OnUpdateFailed: func(_ context.Context, e *domain.UpdateEvent) {
			failures++
			assert.ErrorIs(t, e.Err, domain.ErrUnreachableLocation)
		},
	}
	c, doc, _ := newCoordinator(t, domain.DefaultSettings(), 600, navigation.WithLifecycleHooks(hooks))

	require.NoError(t, c.OnGestureBegin(ctx, ""))
	c.OnGestureSample(ctx, sampleAt(0, 0, 0))

	_, err := c.OnGestureSample(ctx, sampleAt(10000, 0, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnreachableLocation)
	var uerr *domain.UnreachableError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "I", uerr.Glyph)
	assert.Equal(t, 1, failures)

	assert.True(t, c.Dragging(), "a failed update does not end the gesture")
	assert.Equal(t, 400.0, doc.PreviewLocation()["weight"].Scalar())

	// The baseline is back at (0, 0)@0, so a small move applies from 400.
	frame, err := c.OnGestureSample(ctx, sampleAt(100, 0, 1))
	require.NoError(t, err)
	assert.InDelta(t, 405, frame.Location["weight"].Scalar(), 1e-9)
}

func TestCoordinator_ExtrapolationWarnings(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newCoordinator(t, domain.DefaultSettings(), 5000)

	require.NoError(t, c.OnGestureBegin(ctx, ""))
	c.OnGestureSample(ctx, sampleAt(0, 0, 0))
	frame, err := c.OnGestureSample(ctx, sampleAt(10000, 0, 1))
	require.NoError(t, err)
	assert.False(t, frame.IsExtrapolating)

	frame, err = c.OnGestureSample(ctx, sampleAt(20000, 0, 2))
	require.NoError(t, err)
	assert.InDelta(t, 1400, frame.Location["weight"].Scalar(), 1e-9)
	assert.True(t, frame.IsExtrapolating)
	require.Len(t, frame.Warnings, 1)
	assert.Contains(t, frame.Warnings[0], "weight")
	assert.Greater(t, frame.Delta.AreaPercent, 0.0)
}

func TestCoordinator_GestureLifecycleErrors(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newCoordinator(t, domain.DefaultSettings(), 2000)

	_, err := c.OnGestureSample(ctx, sampleAt(0, 0, 0))
	assert.ErrorIs(t, err, domain.ErrNoGesture)
	assert.ErrorIs(t, c.OnGestureEnd(ctx, true), domain.ErrNoGesture)

	require.NoError(t, c.OnGestureBegin(ctx, ""))
	assert.ErrorIs(t, c.OnGestureBegin(ctx, ""), domain.ErrGestureActive)

	_, err = c.ResetPreview(ctx)
	assert.ErrorIs(t, err, domain.ErrGestureActive)
	_, err = c.AddInstance(ctx)
	assert.ErrorIs(t, err, domain.ErrGestureActive)
	assert.ErrorIs(t, c.SetRoles(nil), domain.ErrGestureActive)

	frame, err := c.OnDocumentLocationChanged(ctx)
	assert.NoError(t, err)
	assert.Nil(t, frame, "external changes are not rendered mid-drag")
}

func TestCoordinator_Hooks(t *testing.T) {
	ctx := context.Background()
	var events []domain.EventType
	record := func(_ context.Context, e *domain.GestureEvent) { events = append(events, e.Type) }
	var ends []*domain.GestureEvent
	hooks := domain.LifecycleHooks{
		OnGestureBegin: record,
		OnSample:       record,
		OnGestureEnd: func(ctx context.Context, e *domain.GestureEvent) {
			record(ctx, e)
			ends = append(ends, e)
		},
		OnPreviewSet: record,
	}
	c, _, _ := newCoordinator(t, domain.DefaultSettings(), 2000, navigation.WithLifecycleHooks(hooks))

	require.NoError(t, c.OnGestureBegin(ctx, ""))
	c.OnGestureSample(ctx, sampleAt(0, 0, 0))
	c.OnGestureSample(ctx, sampleAt(10, 0, 1))
	c.OnGestureSample(ctx, sampleAt(20, 0, 1))
	require.NoError(t, c.OnGestureEnd(ctx, true))
	_, err := c.ResetPreview(ctx)
	require.NoError(t, err)

	assert.Equal(t, []domain.EventType{
		domain.EventGestureBegin, domain.EventSample, domain.EventSample, domain.EventGestureEnd, domain.EventPreviewSet,
	}, events, "the dropped sample is reported too")
	require.Len(t, ends, 1)
	assert.True(t, ends[0].Committed)
	assert.Equal(t, 1, ends[0].Samples)
	assert.True(t, ends[0].Dropped)
	require.NotNil(t, ends[0].Travel)
	assert.Equal(t, domain.Position{X: 10}, *ends[0].Travel, "only applied samples count as travel")
}

func TestCoordinator_ResetKeepsDiscrete(t *testing.T) {
	ctx := context.Background()
	c, doc, _ := newCoordinator(t, domain.DefaultSettings(), 2000)
	doc.SetPreviewLocation(domain.LocationFromScalars(map[string]float64{"weight": 700, "italic": 1}))

	frame, err := c.ResetPreview(ctx)
	require.NoError(t, err)
	require.NotNil(t, frame)
	assert.True(t, domain.LocationFromScalars(map[string]float64{"weight": 400, "italic": 1}).Equal(doc.PreviewLocation()))
}

func TestCoordinator_ExplicitActions(t *testing.T) {
	ctx := context.Background()

	t.Run("SetAxisValue", func(t *testing.T) {
		c, doc, _ := newCoordinator(t, domain.DefaultSettings(), 2000)
		_, err := c.SetAxisValue(ctx, "weight", 650)
		require.NoError(t, err)
		assert.Equal(t, 650.0, doc.PreviewLocation()["weight"].Scalar())

		_, err = c.SetAxisValue(ctx, "grade", 1)
		assert.ErrorIs(t, err, domain.ErrUnknownAxis)
	})

	t.Run("Failed render leaves preview", func(t *testing.T) {
		c, doc, _ := newCoordinator(t, domain.DefaultSettings(), 600)
		_, err := c.SetAxisValue(ctx, "weight", 900)
		assert.ErrorIs(t, err, domain.ErrUnreachableLocation)
		assert.Equal(t, 400.0, doc.PreviewLocation()["weight"].Scalar())
	})

	t.Run("RandomPreview", func(t *testing.T) {
		c, doc, _ := newCoordinator(t, domain.DefaultSettings(), 2000)
		for range 50 {
			_, err := c.RandomPreview(ctx, 0)
			require.NoError(t, err)
			w := doc.PreviewLocation()["weight"].Scalar()
			assert.GreaterOrEqual(t, w, 0.0)
			assert.LessOrEqual(t, w, 1000.0)
		}
	})

	t.Run("JumpTo", func(t *testing.T) {
		doc := memory.NewDocument("doc", weightAxes(),
			memory.WithSources(domain.Source{Name: "Bold", Location: domain.LocationFromScalars(map[string]float64{"weight": 1000})}),
			memory.WithInstances(domain.Instance{FamilyName: "Sans", StyleName: "Medium", Location: domain.LocationFromScalars(map[string]float64{"weight": 500})}),
		)
		c := navigation.NewCoordinator(doc, squareGenerator(2000))

		names := []string{}
		for _, il := range c.InterestingLocations() {
			names = append(names, il.Name)
		}
		assert.Equal(t, []string{"Bold", "Sans Medium"}, names)

		frame, err := c.JumpTo(ctx, "Sans Medium")
		require.NoError(t, err)
		assert.Nil(t, frame, "no glyph selected, nothing to render")
		assert.Equal(t, 500.0, doc.PreviewLocation()["weight"].Scalar())

		_, err = c.JumpTo(ctx, "Black")
		assert.ErrorIs(t, err, domain.ErrUnknownLocationName)
	})

	t.Run("AddInstance", func(t *testing.T) {
		c, doc, _ := newCoordinator(t, domain.DefaultSettings(), 2000)
		inst, err := c.AddInstance(ctx)
		require.NoError(t, err)
		assert.Equal(t, doc.PreviewLocation().String(), inst.StyleName)

		_, err = c.AddInstance(ctx)
		assert.ErrorIs(t, err, domain.ErrDuplicateInstance)
		assert.Len(t, doc.Instances(), 1, "duplicates do not mutate the document")
	})
}

func TestCoordinator_NoLeakAcrossDocuments(t *testing.T) {
	ctx := context.Background()
	a, docA, _ := newCoordinator(t, domain.DefaultSettings(), 2000)
	b, docB, _ := newCoordinator(t, domain.DefaultSettings(), 2000)

	require.NoError(t, a.SetRole("weight", domain.RoleVertical))
	assert.Equal(t, domain.RoleVertical, a.Roles().Role("weight"))
	assert.Equal(t, domain.RoleHorizontal, b.Roles().Role("weight"))

	require.NoError(t, a.OnGestureBegin(ctx, ""))
	assert.False(t, b.Dragging())
	a.OnGestureSample(ctx, sampleAt(0, 0, 0))
	a.OnGestureSample(ctx, sampleAt(0, 100, 1))
	require.NoError(t, a.OnGestureEnd(ctx, true))

	assert.InDelta(t, 405, docA.PreviewLocation()["weight"].Scalar(), 1e-9)
	assert.Equal(t, 400.0, docB.PreviewLocation()["weight"].Scalar())
}

func TestCoordinator_Beams(t *testing.T) {
	beam := geometry.Beam{Start: geometry.Vec{X: 0, Y: 50}, End: geometry.Vec{X: 1000, Y: 50}}
	c, _, _ := newCoordinator(t, domain.DefaultSettings(), 2000, navigation.WithBeams(beam))

	frame, err := c.Render(context.Background())
	require.NoError(t, err)
	require.Len(t, frame.Measurements, 1)
	assert.InDelta(t, 400.0, frame.Measurements[0].Distance, 1e-9)

	c.SetBeams()
	frame, err = c.Render(context.Background())
	require.NoError(t, err)
	assert.Empty(t, frame.Measurements)
}

func TestCoordinator_SettingsChangeReachesClipping(t *testing.T) {
	ctx := context.Background()
	c, doc, _ := newCoordinator(t, noExtrapolation(), 2000)
	doc.SetPreviewLocation(domain.LocationFromScalars(map[string]float64{"weight": 400, "italic": 0, "opsz": 12}))

	s := noExtrapolation()
	s.UnknownAxes = domain.UnknownAxisReject
	c.OnSettingsChanged(s)

	require.NoError(t, c.OnGestureBegin(ctx, ""))
	c.OnGestureSample(ctx, sampleAt(0, 0, 0))
	_, err := c.OnGestureSample(ctx, sampleAt(100, 0, 1))
	assert.ErrorIs(t, err, domain.ErrUnknownAxis)
}

func TestCoordinator_DocumentLocationChanged(t *testing.T) {
	ctx := context.Background()
	c, doc, rec := newCoordinator(t, domain.DefaultSettings(), 2000)

	doc.SetPreviewLocation(domain.LocationFromScalars(map[string]float64{"weight": 700, "italic": 0}))
	frame, err := c.OnDocumentLocationChanged(ctx)
	require.NoError(t, err)
	require.NotNil(t, frame)
	assert.Equal(t, 700.0, frame.Location["weight"].Scalar())
	assert.Len(t, rec.frames, 1)

	require.NoError(t, c.OnGestureBegin(ctx, ""))
	frame, err = c.OnDocumentLocationChanged(ctx)
	require.NoError(t, err)
	assert.Nil(t, frame, "ignored while dragging")
	require.NoError(t, c.OnGestureEnd(ctx, false))

	c.SetGlyph("")
	frame, err = c.OnDocumentLocationChanged(ctx)
	require.NoError(t, err)
	assert.Nil(t, frame, "nothing to draw without a glyph")
}

func TestCoordinator_WritingPreview(t *testing.T) {
	ctx := context.Background()
	c, doc, _ := newCoordinator(t, domain.DefaultSettings(), 2000)

	var during []bool
	doc.OnPreviewChanged(func(domain.Location) { during = append(during, c.WritingPreview()) })

	_, err := c.SetAxisValue(ctx, "weight", 500)
	require.NoError(t, err)
	doc.SetPreviewLocation(domain.LocationFromScalars(map[string]float64{"weight": 600}))

	assert.Equal(t, []bool{true, false}, during)
	assert.False(t, c.WritingPreview())
}

func TestCoordinator_ShowPoints(t *testing.T) {
	ctx := context.Background()
	doc := memory.NewDocument("doc", weightAxes(), memory.WithSources(
		domain.Source{Name: "Light", Location: domain.LocationFromScalars(map[string]float64{"weight": 0, "italic": 0})},
		domain.Source{Name: "Black", Location: domain.LocationFromScalars(map[string]float64{"weight": 1000, "italic": 0})},
		domain.Source{Name: "Italic", Location: domain.LocationFromScalars(map[string]float64{"weight": 0, "italic": 1})},
	))
	s := domain.DefaultSettings()
	s.ShowPoints = true
	c := navigation.NewCoordinator(doc, squareGenerator(2000), navigation.WithSettings(s), navigation.WithGlyph("I"))

	frame, err := c.Render(ctx)
	require.NoError(t, err)
	require.NotNil(t, frame.Points)
	assert.Len(t, frame.Points.OnCurves, 4)
	require.Len(t, frame.Vectors, 8, "one vector per point to each upright source")
	assert.Equal(t, geometry.Vector{From: geometry.Vec{X: 450}, To: geometry.Vec{X: 50}, OnCurve: true}, frame.Vectors[1])
	assert.Equal(t, geometry.Vector{From: geometry.Vec{X: 450}, To: geometry.Vec{X: 1050}, OnCurve: true}, frame.Vectors[5])

	s.ShowPoints = false
	c.OnSettingsChanged(s)
	frame, err = c.Render(ctx)
	require.NoError(t, err)
	assert.Nil(t, frame.Points)
	assert.Empty(t, frame.Vectors)
}
