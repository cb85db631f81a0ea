package geometry

import (
	"fmt"
	"math"

	"github.com/aretw0/longboard/pkg/domain"
)

// Stats are the shape statistics of one outline snapshot. Outlines are
// expected to be free of self-intersections and overlaps.
type Stats struct {
	Width       float64 `json:"width"`
	LeftMargin  float64 `json:"left_margin"`
	RightMargin float64 `json:"right_margin"`
	Area        float64 `json:"area"`
	// Empty is set when the outline has no drawable contour; margins are then zero.
	Empty bool `json:"empty,omitempty"`
}

// Measure computes the statistics of o from its exact curve bounds and area.
func Measure(o *domain.Outline) Stats {
	if o == nil {
		return Stats{Empty: true}
	}
	s := Stats{Width: o.Width}
	bounds, ok := Bounds(o)
	if !ok {
		s.Empty = true
		return s
	}
	s.LeftMargin = bounds.XMin
	s.RightMargin = o.Width - bounds.XMax
	s.Area = math.Abs(SignedArea(o))
	return s
}

// Sub subtracts o from s field by field.
func (s Stats) Sub(o Stats) Stats {
	return Stats{
		Width:       s.Width - o.Width,
		LeftMargin:  s.LeftMargin - o.LeftMargin,
		RightMargin: s.RightMargin - o.RightMargin,
		Area:        s.Area - o.Area,
		Empty:       s.Empty || o.Empty,
	}
}

func (s Stats) String() string {
	if s.Empty {
		return fmt.Sprintf("width %.2f (empty)", s.Width)
	}
	return fmt.Sprintf("width %.2f  left %.2f  right %.2f  area %.0f", s.Width, s.LeftMargin, s.RightMargin, s.Area)
}

// Delta is the change between the snapshot taken at the start of a gesture
// and the current one.
type Delta struct {
	From Stats `json:"from"`
	To   Stats `json:"to"`
	Diff Stats `json:"diff"`
	// AreaPercent is the relative area change; zero when From has no area.
	AreaPercent float64 `json:"area_percent"`
}

// Compare diffs two snapshots.
func Compare(from, to Stats) Delta {
	d := Delta{From: from, To: to, Diff: to.Sub(from)}
	if from.Area != 0 {
		d.AreaPercent = d.Diff.Area / from.Area * 100
	}
	return d
}

func (d Delta) String() string {
	return fmt.Sprintf("%s\nΔ width %+.2f  left %+.2f  right %+.2f  area %+.2f%%",
		d.To, d.Diff.Width, d.Diff.LeftMargin, d.Diff.RightMargin, d.AreaPercent)
}
