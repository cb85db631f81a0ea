package geometry

import (
	"math"

	"github.com/aretw0/longboard/pkg/domain"
)

// DefaultKinkPrecision is the number of decimals the tangent dot product is
// rounded to before comparing it with 1.
const DefaultKinkPrecision = domain.DefaultKinkPrecision

// Kink is a smooth point whose incoming and outgoing tangents disagree.
type Kink struct {
	Contour  int          `json:"contour"`
	Previous domain.Point `json:"previous"`
	Point    domain.Point `json:"point"`
	Next     domain.Point `json:"next"`
	// Severity is (1 - cos θ) * 100: 0 for parallel tangents, 100 for a right angle.
	Severity float64 `json:"severity"`
}

// FindKinks reports the smooth on-curve points sitting between two curves
// (off-curve neighbours on both sides) whose tangents are not parallel once
// their dot product is rounded to precision decimals. A negative precision
// selects DefaultKinkPrecision. Points with a zero-length tangent are skipped.
func FindKinks(o *domain.Outline, precision int) []Kink {
	if o == nil {
		return nil
	}
	if precision < 0 {
		precision = DefaultKinkPrecision
	}
	scale := math.Pow(10, float64(precision))

	var kinks []Kink
	for ci, c := range o.Contours {
		n := len(c.Points)
		if n < 3 {
			continue
		}
		for i, pt := range c.Points {
			if !pt.OnCurve || !pt.Smooth {
				continue
			}
			prev := c.Points[(i-1+n)%n]
			next := c.Points[(i+1)%n]
			if prev.OnCurve || next.OnCurve {
				continue
			}
			in, ok := vecOf(pt).Sub(vecOf(prev)).Unit()
			if !ok {
				continue
			}
			out, ok := vecOf(next).Sub(vecOf(pt)).Unit()
			if !ok {
				continue
			}
			dot := in.Dot(out)
			if math.Round(dot*scale)/scale >= 1 {
				continue
			}
			kinks = append(kinks, Kink{
				Contour:  ci,
				Previous: prev,
				Point:    pt,
				Next:     next,
				Severity: (1 - dot) * 100,
			})
		}
	}
	return kinks
}
