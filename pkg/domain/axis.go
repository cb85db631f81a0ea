package domain

import "sort"

// AxisKind separates interpolating axes from axes that select among fixed values.
type AxisKind string

const (
	Continuous AxisKind = "continuous"
	Discrete   AxisKind = "discrete"
)

// Axis is one dimension of a design space.
type Axis struct {
	Name    string   `json:"name" yaml:"name" mapstructure:"name"`
	Tag     string   `json:"tag,omitempty" yaml:"tag" mapstructure:"tag"`
	Kind    AxisKind `json:"kind" yaml:"kind" mapstructure:"kind"`
	Minimum float64  `json:"minimum" yaml:"minimum" mapstructure:"minimum"`
	Default float64  `json:"default" yaml:"default" mapstructure:"default"`
	Maximum float64  `json:"maximum" yaml:"maximum" mapstructure:"maximum"`

	// Values lists the selectable values of a discrete axis.
	Values []float64 `json:"values,omitempty" yaml:"values" mapstructure:"values"`

	// Map is a piecewise-linear mapping of (input, output) pairs applied by MapForward.
	Map [][2]float64 `json:"map,omitempty" yaml:"map" mapstructure:"map"`
}

// IsDiscrete reports whether the axis takes one of a finite set of values.
func (a Axis) IsDiscrete() bool {
	return a.Kind == Discrete || (a.Kind == "" && len(a.Values) > 0)
}

// MapForward maps a value through the axis map. Without a map it is the identity.
// Values outside the outermost pairs are extrapolated from the nearest segment.
func (a Axis) MapForward(v float64) float64 {
	if len(a.Map) == 0 {
		return v
	}
	pts := make([][2]float64, len(a.Map))
	copy(pts, a.Map)
	sort.Slice(pts, func(i, j int) bool { return pts[i][0] < pts[j][0] })
	if len(pts) == 1 {
		return v - pts[0][0] + pts[0][1]
	}

	lo, hi := pts[0], pts[1]
	for i := 1; i < len(pts); i++ {
		lo, hi = pts[i-1], pts[i]
		if v <= hi[0] {
			break
		}
	}
	span := hi[0] - lo[0]
	if span == 0 {
		return lo[1]
	}
	t := (v - lo[0]) / span
	return lo[1] + t*(hi[1]-lo[1])
}
