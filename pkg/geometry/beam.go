package geometry

import (
	"math"
	"slices"

	"github.com/aretw0/longboard/pkg/domain"
)

// flattenSteps is the number of chords each curve is split into when
// intersecting it with a beam.
const flattenSteps = 32

// Beam is a measuring line dropped across an outline.
type Beam struct {
	Start Vec `json:"start"`
	End   Vec `json:"end"`
}

// Span is the distance between two consecutive beam intersections.
type Span struct {
	From     Vec     `json:"from"`
	To       Vec     `json:"to"`
	Distance float64 `json:"distance"`
}

// Intersections returns the points where the beam crosses o, ordered from
// the beam's start.
func (b Beam) Intersections(o *domain.Outline) []Vec {
	dir := b.End.Sub(b.Start)
	if dir.Len() == 0 {
		return nil
	}

	type hit struct {
		t float64
		p Vec
	}
	var hits []hit
	for _, segs := range OutlineSegments(o) {
		for _, s := range segs {
			pts := s.Flatten(flattenSteps)
			for i := 1; i < len(pts); i++ {
				t, u, ok := intersect(b.Start, dir, pts[i-1], pts[i].Sub(pts[i-1]))
				// Chord ends start the next chord of the closed contour.
				if !ok || u == 1 {
					continue
				}
				hits = append(hits, hit{t: t, p: b.Start.Add(dir.Scale(t))})
			}
		}
	}
	slices.SortFunc(hits, func(a, c hit) int {
		switch {
		case a.t < c.t:
			return -1
		case a.t > c.t:
			return 1
		}
		return 0
	})

	out := make([]Vec, 0, len(hits))
	for _, h := range hits {
		if n := len(out); n > 0 && out[n-1].Sub(h.p).Len() < 1e-9 {
			continue
		}
		out = append(out, h.p)
	}
	return out
}

// Measure returns the spans between consecutive intersections of the beam with o.
func (b Beam) Measure(o *domain.Outline) []Span {
	pts := b.Intersections(o)
	if len(pts) < 2 {
		return nil
	}
	spans := make([]Span, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		spans = append(spans, Span{From: pts[i-1], To: pts[i], Distance: pts[i].Sub(pts[i-1]).Len()})
	}
	return spans
}

// intersect solves p + t*r = q + u*s for t, u in [0, 1].
func intersect(p, r, q, s Vec) (t, u float64, ok bool) {
	denom := r.Cross(s)
	if math.Abs(denom) < 1e-12 {
		return 0, 0, false
	}
	qp := q.Sub(p)
	t = qp.Cross(s) / denom
	u = qp.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, 0, false
	}
	return t, u, true
}
