package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Location assigns values to axes by name. Axes missing from a Location are
// at their default. Treat Locations as immutable: every operation that
// changes one returns a copy.
type Location map[string]Value

// LocationFromScalars builds a Location of scalar values.
func LocationFromScalars(values map[string]float64) Location {
	loc := make(Location, len(values))
	for name, v := range values {
		loc[name] = Scalar(v)
	}
	return loc
}

// Clone returns an independent copy. Clone of nil is an empty Location.
func (l Location) Clone() Location {
	out := make(Location, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Equal reports exact mapping equality.
func (l Location) Equal(o Location) bool {
	if len(l) != len(o) {
		return false
	}
	for k, v := range l {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Merge returns a copy of l overwritten by every entry of o.
func (l Location) Merge(o Location) Location {
	out := l.Clone()
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Names returns the axis names in sorted order.
func (l Location) Names() []string {
	names := make([]string, 0, len(l))
	for k := range l {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Scalar returns the scalar of the named axis.
func (l Location) Scalar(name string) (float64, bool) {
	v, ok := l[name]
	if !ok {
		return 0, false
	}
	return v.Scalar(), true
}

// String renders the location as sorted name_value pairs joined by "_",
// e.g. "weight_400.00_width_100.00". It doubles as a generated style name.
func (l Location) String() string {
	parts := make([]string, 0, len(l))
	for _, name := range l.Names() {
		v := l[name]
		if v.IsAnisotropic() {
			x, y := v.Pair()
			parts = append(parts, fmt.Sprintf("%s_%3.2f-%3.2f", name, x, y))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s_%3.2f", name, v.Scalar()))
	}
	return strings.Join(parts, "_")
}
