package domain

// Point is an outline point. Off-curve points are Bézier control points.
type Point struct {
	X       float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y       float64 `json:"y" yaml:"y" mapstructure:"y"`
	OnCurve bool    `json:"on_curve" yaml:"on_curve" mapstructure:"on_curve"`
	Smooth  bool    `json:"smooth,omitempty" yaml:"smooth" mapstructure:"smooth"`
}

// On returns an on-curve corner point.
func On(x, y float64) Point { return Point{X: x, Y: y, OnCurve: true} }

// SmoothOn returns an on-curve point marked smooth.
func SmoothOn(x, y float64) Point { return Point{X: x, Y: y, OnCurve: true, Smooth: true} }

// Off returns an off-curve control point.
func Off(x, y float64) Point { return Point{X: x, Y: y} }

// Contour is a closed, cyclic sequence of points.
type Contour struct {
	Points []Point `json:"points" yaml:"points" mapstructure:"points"`
}

// Outline is a glyph instance produced at one location.
type Outline struct {
	Name     string    `json:"name" yaml:"name" mapstructure:"name"`
	Width    float64   `json:"width" yaml:"width" mapstructure:"width"`
	Contours []Contour `json:"contours" yaml:"contours" mapstructure:"contours"`
}

// PointCount returns the number of points over all contours.
func (o *Outline) PointCount() int {
	n := 0
	for _, c := range o.Contours {
		n += len(c.Points)
	}
	return n
}

// Translate returns a copy moved by (dx, dy); the advance width is unchanged.
func (o *Outline) Translate(dx, dy float64) *Outline {
	out := &Outline{Name: o.Name, Width: o.Width, Contours: make([]Contour, len(o.Contours))}
	for i, c := range o.Contours {
		pts := make([]Point, len(c.Points))
		for j, p := range c.Points {
			p.X += dx
			p.Y += dy
			pts[j] = p
		}
		out.Contours[i] = Contour{Points: pts}
	}
	return out
}
