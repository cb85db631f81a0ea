package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/longboard/pkg/domain"
)

// ErrNoHorizontalAxis is returned when no axis is bound to horizontal drags.
var ErrNoHorizontalAxis = errors.New("no axis has the horizontal role")

// Overlay marks the current preview location on the chart.
type Overlay struct {
	Preview domain.Location
}

// GenerateQuadrant plots the interesting locations of a design space as a
// Mermaid quadrantChart. The x axis is the first axis bound to horizontal
// drags and the y axis the first bound to vertical drags; with no vertical
// axis every point sits on the middle line. Coordinates are normalised to the
// axis range and clamped to it, so extrapolated locations sit on the border.
func GenerateQuadrant(title string, axes []domain.Axis, roles domain.Roles, points []domain.InterestingLocation, overlay *Overlay) (string, error) {
	var hAxis, vAxis *domain.Axis
	for _, ra := range roles {
		for i := range axes {
			if axes[i].Name != ra.Axis {
				continue
			}
			switch {
			case ra.Role == domain.RoleHorizontal && hAxis == nil:
				hAxis = &axes[i]
			case ra.Role == domain.RoleVertical && vAxis == nil:
				vAxis = &axes[i]
			}
		}
	}
	if hAxis == nil {
		return "", ErrNoHorizontalAxis
	}

	var sb strings.Builder
	sb.WriteString("quadrantChart\n")
	if title != "" {
		fmt.Fprintf(&sb, "    title %s\n", sanitizeLabel(title))
	}
	fmt.Fprintf(&sb, "    x-axis \"%s %g\" --> \"%s %g\"\n", hAxis.Name, hAxis.Minimum, hAxis.Name, hAxis.Maximum)
	if vAxis != nil {
		fmt.Fprintf(&sb, "    y-axis \"%s %g\" --> \"%s %g\"\n", vAxis.Name, vAxis.Minimum, vAxis.Name, vAxis.Maximum)
	}

	for _, p := range points {
		x, y := position(p.Location, hAxis, vAxis)
		class := "source"
		if p.Kind == domain.InterestingInstance {
			class = "instance"
		}
		fmt.Fprintf(&sb, "    %s:::%s: [%.3f, %.3f]\n", sanitizeLabel(p.Name), class, x, y)
	}

	if overlay != nil && overlay.Preview != nil {
		x, y := position(overlay.Preview, hAxis, vAxis)
		fmt.Fprintf(&sb, "    Preview:::current: [%.3f, %.3f]\n", x, y)
	}

	sb.WriteString("    classDef source color: #01579b, radius: 6\n")
	sb.WriteString("    classDef instance color: #7cb342, radius: 5\n")
	sb.WriteString("    classDef current color: #fbc02d, radius: 10, stroke-color: #000, stroke-width: 2px\n")
	return sb.String(), nil
}

func position(loc domain.Location, h, v *domain.Axis) (float64, float64) {
	x := normalise(loc, h)
	y := 0.5
	if v != nil {
		y = normalise(loc, v)
	}
	return x, y
}

func normalise(loc domain.Location, a *domain.Axis) float64 {
	val := a.Default
	if vv, ok := loc[a.Name]; ok {
		val = vv.Scalar()
	}
	span := a.Maximum - a.Minimum
	if span <= 0 {
		return 0.5
	}
	t := (val - a.Minimum) / span
	return min(max(t, 0), 1)
}

// sanitizeLabel strips characters the quadrantChart grammar treats as syntax.
func sanitizeLabel(s string) string {
	r := strings.NewReplacer(":", " ", "[", "(", "]", ")", "\"", "'", "\n", " ")
	return strings.TrimSpace(r.Replace(s))
}
