package designspace

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/aretw0/longboard/pkg/domain"
)

// Space is the axis algebra of one document. It is immutable once built.
type Space struct {
	axes   []domain.Axis
	index  map[string]int
	policy domain.UnknownAxisPolicy
}

// Option configures a Space.
type Option func(*Space)

// WithUnknownAxisPolicy sets how location entries naming undeclared axes are treated.
func WithUnknownAxisPolicy(p domain.UnknownAxisPolicy) Option {
	return func(s *Space) {
		if p != "" {
			s.policy = p
		}
	}
}

// New builds a Space over the given axes. Later axes with a duplicate name are ignored.
func New(axes []domain.Axis, opts ...Option) *Space {
	s := &Space{
		index:  make(map[string]int, len(axes)),
		policy: domain.UnknownAxisPassThrough,
	}
	for _, a := range axes {
		if _, dup := s.index[a.Name]; dup {
			continue
		}
		s.index[a.Name] = len(s.axes)
		s.axes = append(s.axes, a)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Axes returns the declared axes in document order.
func (s *Space) Axes() []domain.Axis {
	out := make([]domain.Axis, len(s.axes))
	copy(out, s.axes)
	return out
}

// Axis looks an axis up by name.
func (s *Space) Axis(name string) (domain.Axis, bool) {
	i, ok := s.index[name]
	if !ok {
		return domain.Axis{}, false
	}
	return s.axes[i], true
}

// ContinuousAxisNames returns the continuous axis names in document order.
func (s *Space) ContinuousAxisNames() []string {
	var names []string
	for _, a := range s.axes {
		if !a.IsDiscrete() {
			names = append(names, a.Name)
		}
	}
	return names
}

// Policy returns the unknown-axis policy.
func (s *Space) Policy() domain.UnknownAxisPolicy { return s.policy }

// Split partitions a location into its continuous and discrete parts.
// Axes absent from loc are absent from both parts, and names not declared by
// the space land in neither.
func (s *Space) Split(loc domain.Location) (continuous, discrete domain.Location) {
	continuous = make(domain.Location)
	discrete = make(domain.Location)
	for name, v := range loc {
		a, ok := s.Axis(name)
		if !ok {
			continue
		}
		if a.IsDiscrete() {
			discrete[name] = v
		} else {
			continuous[name] = v
		}
	}
	return continuous, discrete
}

// AxisExtremes returns (minimum, default, maximum). Discrete axes never
// extrapolate and report the degenerate triple (default, default, default).
func AxisExtremes(a domain.Axis) (minimum, def, maximum float64) {
	if a.IsDiscrete() {
		return a.Default, a.Default, a.Default
	}
	return a.Minimum, a.Default, a.Maximum
}

// AxisScale is the span of the axis after mapping. It normalises pointer
// velocity so a fixed drag covers a comparable fraction of every axis.
func AxisScale(a domain.Axis) float64 {
	return a.MapForward(a.Maximum) - a.MapForward(a.Minimum)
}

// Scales returns AxisScale for every continuous axis.
func (s *Space) Scales() map[string]float64 {
	scales := make(map[string]float64, len(s.axes))
	for _, a := range s.axes {
		if !a.IsDiscrete() {
			scales[a.Name] = AxisScale(a)
		}
	}
	return scales
}

// Check returns an error wrapping domain.ErrUnknownAxis for undeclared axis
// names when the space rejects unknown axes. Pass-through spaces never fail.
func (s *Space) Check(loc domain.Location) error {
	if s.policy != domain.UnknownAxisReject {
		return nil
	}
	var unknown []string
	for name := range loc {
		if _, ok := s.index[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w: %v", domain.ErrUnknownAxis, unknown)
}

// Clip clamps every continuous value of loc into [minimum, maximum].
// Anisotropic pairs are clamped element-wise. Discrete values and undeclared
// axes pass through unchanged. Clip is idempotent.
func (s *Space) Clip(loc domain.Location) (domain.Location, error) {
	if err := s.Check(loc); err != nil {
		return nil, err
	}
	out := make(domain.Location, len(loc))
	for name, v := range loc {
		a, ok := s.Axis(name)
		if !ok || a.IsDiscrete() {
			out[name] = v
			continue
		}
		lo, hi := a.Minimum, a.Maximum
		if lo > hi {
			lo, hi = hi, lo
		}
		out[name] = v.Map(func(f float64) float64 { return clamp(f, lo, hi) })
	}
	return out, nil
}

// IsExtrapolated reports whether any continuous value lies strictly outside its range.
func (s *Space) IsExtrapolated(loc domain.Location) bool {
	return len(s.ExtrapolatedAxes(loc)) > 0
}

// ExtrapolatedAxes lists, sorted, the continuous axes of loc lying outside their range.
func (s *Space) ExtrapolatedAxes(loc domain.Location) []string {
	var names []string
	for name, v := range loc {
		a, ok := s.Axis(name)
		if !ok || a.IsDiscrete() {
			continue
		}
		x, y := v.Pair()
		if outside(x, a) || outside(y, a) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Default returns every continuous axis at its default. Discrete axes take
// their value from discrete when present there, otherwise their own default.
func (s *Space) Default(discrete domain.Location) domain.Location {
	loc := make(domain.Location, len(s.axes))
	for _, a := range s.axes {
		if a.IsDiscrete() {
			if v, ok := discrete[a.Name]; ok {
				loc[a.Name] = v
				continue
			}
		}
		loc[a.Name] = domain.Scalar(a.Default)
	}
	return loc
}

// Complete fills the axes missing from loc with their defaults.
func (s *Space) Complete(loc domain.Location) domain.Location {
	_, discrete := s.Split(loc)
	return s.Default(discrete).Merge(loc)
}

// Random samples every continuous axis uniformly in
// [minimum - margin*span, maximum + margin*span] and picks a uniform value for
// every discrete axis. A zero margin stays within the declared ranges.
func (s *Space) Random(rng *rand.Rand, margin float64) domain.Location {
	if margin < 0 {
		margin = 0
	}
	loc := make(domain.Location, len(s.axes))
	for _, a := range s.axes {
		if a.IsDiscrete() {
			if len(a.Values) == 0 {
				loc[a.Name] = domain.Scalar(a.Default)
				continue
			}
			loc[a.Name] = domain.Scalar(a.Values[rng.IntN(len(a.Values))])
			continue
		}
		lo, hi := a.Minimum, a.Maximum
		span := hi - lo
		lo -= margin * span
		hi += margin * span
		loc[a.Name] = domain.Scalar(lo + rng.Float64()*(hi-lo))
	}
	return loc
}

// NewRand returns a reproducible generator for Random.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func outside(v float64, a domain.Axis) bool {
	lo, hi := a.Minimum, a.Maximum
	if lo > hi {
		lo, hi = hi, lo
	}
	return v < lo || v > hi
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
