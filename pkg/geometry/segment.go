package geometry

import (
	"math"

	"github.com/aretw0/longboard/pkg/domain"
)

// Vec is a point or direction in glyph units.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec) Lerp(o Vec, t float64) Vec { return v.Add(o.Sub(v).Scale(t)) }

// Unit returns v scaled to length one. It reports false for a zero vector.
func (v Vec) Unit() (Vec, bool) {
	l := v.Len()
	if l == 0 {
		return Vec{}, false
	}
	return v.Scale(1 / l), true
}

func vecOf(p domain.Point) Vec { return Vec{p.X, p.Y} }

// Rect is an axis-aligned bounding box.
type Rect struct {
	XMin, YMin, XMax, YMax float64
}

func rectAt(v Vec) Rect { return Rect{v.X, v.Y, v.X, v.Y} }

func (r Rect) add(v Vec) Rect {
	return Rect{min(r.XMin, v.X), min(r.YMin, v.Y), max(r.XMax, v.X), max(r.YMax, v.Y)}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{min(r.XMin, o.XMin), min(r.YMin, o.YMin), max(r.XMax, o.XMax), max(r.YMax, o.YMax)}
}

// Width is XMax - XMin.
func (r Rect) Width() float64 { return r.XMax - r.XMin }

// Height is YMax - YMin.
func (r Rect) Height() float64 { return r.YMax - r.YMin }

type SegmentKind uint8

const (
	LineKind SegmentKind = iota + 1
	QuadKind
	CubicKind
)

// Segment is one piece of a contour. P[0] is the start point; the end point
// is P[1], P[2] or P[3] depending on Kind.
type Segment struct {
	Kind SegmentKind
	P    [4]Vec
}

func line(p0, p1 Vec) Segment { return Segment{Kind: LineKind, P: [4]Vec{p0, p1}} }
func quad(p0, p1, p2 Vec) Segment { return Segment{Kind: QuadKind, P: [4]Vec{p0, p1, p2}} }
func cubic(p0, p1, p2, p3 Vec) Segment { return Segment{Kind: CubicKind, P: [4]Vec{p0, p1, p2, p3}} }

// Start returns the first point of the segment.
func (s Segment) Start() Vec { return s.P[0] }

// End returns the last point of the segment.
func (s Segment) End() Vec {
	switch s.Kind {
	case QuadKind:
		return s.P[2]
	case CubicKind:
		return s.P[3]
	default:
		return s.P[1]
	}
}

// Eval returns the point at parameter t in [0, 1].
func (s Segment) Eval(t float64) Vec {
	mt := 1 - t
	switch s.Kind {
	case QuadKind:
		return s.P[0].Scale(mt * mt).Add(s.P[1].Scale(2 * mt * t)).Add(s.P[2].Scale(t * t))
	case CubicKind:
		return s.P[0].Scale(mt * mt * mt).
			Add(s.P[1].Scale(3 * mt * mt * t)).
			Add(s.P[2].Scale(3 * mt * t * t)).
			Add(s.P[3].Scale(t * t * t))
	default:
		return s.P[0].Lerp(s.P[1], t)
	}
}

// SignedArea is the signed area enclosed by the segment and the two rays
// from the origin to its end points. Summed over a closed contour it gives
// the contour's area, positive for counter-clockwise winding.
func (s Segment) SignedArea() float64 {
	p0, p1, p2, p3 := s.P[0], s.P[1], s.P[2], s.P[3]
	switch s.Kind {
	case QuadKind:
		return (p0.X*(2*p1.Y+p2.Y) + 2*p1.X*(p2.Y-p0.Y) - p2.X*(p0.Y+2*p1.Y)) / 6
	case CubicKind:
		return (p0.X*(6*p1.Y+3*p2.Y+p3.Y) +
			3*(p1.X*(-2*p0.Y+p2.Y+p3.Y)-p2.X*(p0.Y+p1.Y-2*p3.Y)) -
			p3.X*(p0.Y+3*p1.Y+6*p2.Y)) / 20
	default:
		return p0.Cross(p1) / 2
	}
}

// Extrema returns the parameters in (0, 1) where the segment's x or y
// derivative vanishes.
func (s Segment) Extrema() []float64 {
	var ts []float64
	keep := func(roots ...float64) {
		for _, t := range roots {
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	switch s.Kind {
	case QuadKind:
		for _, c := range [2]func(Vec) float64{vx, vy} {
			p0, p1, p2 := c(s.P[0]), c(s.P[1]), c(s.P[2])
			if d := p0 - 2*p1 + p2; d != 0 {
				keep((p0 - p1) / d)
			}
		}
	case CubicKind:
		for _, c := range [2]func(Vec) float64{vx, vy} {
			d0 := c(s.P[1]) - c(s.P[0])
			d1 := c(s.P[2]) - c(s.P[1])
			d2 := c(s.P[3]) - c(s.P[2])
			keep(solveQuadratic(d0-2*d1+d2, 2*(d1-d0), d0)...)
		}
	}
	return ts
}

// Bounds returns the exact bounding box of the segment.
func (s Segment) Bounds() Rect {
	r := rectAt(s.Start()).add(s.End())
	for _, t := range s.Extrema() {
		r = r.add(s.Eval(t))
	}
	return r
}

// Flatten approximates the segment by a polyline of n pieces. Lines are
// returned as their two end points regardless of n.
func (s Segment) Flatten(n int) []Vec {
	if s.Kind == LineKind || n < 1 {
		return []Vec{s.P[0], s.End()}
	}
	pts := make([]Vec, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, s.Eval(float64(i)/float64(n)))
	}
	return pts
}

// asCubic returns the segment's control points raised to a cubic.
func (s Segment) asCubic() Segment {
	switch s.Kind {
	case LineKind:
		return cubic(s.P[0], s.P[0], s.P[1], s.P[1])
	case QuadKind:
		c1 := s.P[0].Lerp(s.P[1], 2.0/3)
		c2 := s.P[2].Lerp(s.P[1], 2.0/3)
		return cubic(s.P[0], c1, c2, s.P[2])
	}
	return s
}

func vx(v Vec) float64 { return v.X }
func vy(v Vec) float64 { return v.Y }

func solveQuadratic(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// Segments decomposes a closed contour into segments. Runs of one or two
// off-curve points between on-curve points make a quadratic or cubic curve;
// longer runs are read as a quadratic spline with implied on-curve points at
// the midpoints, as are contours without any on-curve point. Single-point
// contours (anchors) yield no segments.
func Segments(c domain.Contour) []Segment {
	pts := c.Points
	n := len(pts)
	if n < 2 {
		return nil
	}

	start := -1
	for i, p := range pts {
		if p.OnCurve {
			start = i
			break
		}
	}

	if start < 0 {
		offs := make([]Vec, n)
		for i, p := range pts {
			offs[i] = vecOf(p)
		}
		implied := offs[n-1].Lerp(offs[0], 0.5)
		return appendQuadSpline(nil, implied, offs, implied)
	}

	var segs []Segment
	cur := vecOf(pts[start])
	var offs []Vec
	for i := 1; i <= n; i++ {
		p := pts[(start+i)%n]
		if !p.OnCurve {
			offs = append(offs, vecOf(p))
			continue
		}
		next := vecOf(p)
		segs = appendRun(segs, cur, offs, next)
		cur, offs = next, offs[:0]
	}
	return segs
}

func appendRun(segs []Segment, from Vec, offs []Vec, to Vec) []Segment {
	switch len(offs) {
	case 0:
		return append(segs, line(from, to))
	case 1:
		return append(segs, quad(from, offs[0], to))
	case 2:
		return append(segs, cubic(from, offs[0], offs[1], to))
	}
	return appendQuadSpline(segs, from, offs, to)
}

func appendQuadSpline(segs []Segment, from Vec, offs []Vec, to Vec) []Segment {
	cur := from
	for k := 0; k < len(offs)-1; k++ {
		mid := offs[k].Lerp(offs[k+1], 0.5)
		segs = append(segs, quad(cur, offs[k], mid))
		cur = mid
	}
	return append(segs, quad(cur, offs[len(offs)-1], to))
}

// OutlineSegments decomposes every contour of o.
func OutlineSegments(o *domain.Outline) [][]Segment {
	if o == nil {
		return nil
	}
	out := make([][]Segment, 0, len(o.Contours))
	for _, c := range o.Contours {
		out = append(out, Segments(c))
	}
	return out
}

// Bounds returns the exact bounding box of the outline. It reports false
// when the outline has no drawable contour.
func Bounds(o *domain.Outline) (Rect, bool) {
	var r Rect
	found := false
	for _, segs := range OutlineSegments(o) {
		for _, s := range segs {
			b := s.Bounds()
			if !found {
				r, found = b, true
				continue
			}
			r = r.Union(b)
		}
	}
	return r, found
}

// SignedArea sums the signed area of every contour of o.
func SignedArea(o *domain.Outline) float64 {
	var sum float64
	for _, segs := range OutlineSegments(o) {
		for _, s := range segs {
			sum += s.SignedArea()
		}
	}
	return sum
}
