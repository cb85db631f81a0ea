package geometry

import "github.com/aretw0/longboard/pkg/domain"

// Collection lists the points of an outline the way they are drawn as
// markers: on-curve points, cubic control points, and the index of each
// contour's first point in the pen stream.
type Collection struct {
	OnCurves    []Vec `json:"on_curves"`
	OffCurves   []Vec `json:"off_curves"`
	StartPoints []int `json:"start_points"`
}

// Collect walks o as a pen would, shifting every point by offset. Quadratic
// curves are raised to cubics, and the implied closing line of a contour is
// not repeated.
func Collect(o *domain.Outline, offset Vec) Collection {
	var c Collection
	idx := 0
	for _, segs := range OutlineSegments(o) {
		if len(segs) == 0 {
			continue
		}
		start := segs[0].Start()
		c.OnCurves = append(c.OnCurves, start.Add(offset))
		c.StartPoints = append(c.StartPoints, idx)
		idx++
		for i, s := range segs {
			last := i == len(segs)-1
			if s.Kind == LineKind {
				if last && s.End() == start {
					continue
				}
				c.OnCurves = append(c.OnCurves, s.End().Add(offset))
				idx++
				continue
			}
			cb := s.asCubic()
			c.OffCurves = append(c.OffCurves, cb.P[1].Add(offset), cb.P[2].Add(offset))
			c.OnCurves = append(c.OnCurves, cb.P[3].Add(offset))
			idx += 3
		}
	}
	return c
}

// Vector joins a point of one outline to the matching point of another.
type Vector struct {
	From    Vec  `json:"from"`
	To      Vec  `json:"to"`
	OnCurve bool `json:"on_curve"`
}

// Vectors pairs the points of from and to in pen order, on-curve points
// first. Points without a partner in the shorter collection are skipped.
func Vectors(from, to Collection) []Vector {
	var out []Vector
	for i := range min(len(from.OnCurves), len(to.OnCurves)) {
		out = append(out, Vector{From: from.OnCurves[i], To: to.OnCurves[i], OnCurve: true})
	}
	for i := range min(len(from.OffCurves), len(to.OffCurves)) {
		out = append(out, Vector{From: from.OffCurves[i], To: to.OffCurves[i]})
	}
	return out
}
