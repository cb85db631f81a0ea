// Package report renders documents and frames as markdown.
package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/longboard/pkg/designspace"
	"github.com/aretw0/longboard/pkg/domain"
	"github.com/aretw0/longboard/pkg/navigation"
	"github.com/aretw0/longboard/pkg/ports"
)

// Document describes the design space, role table and quick-jump list of
// the coordinator's document.
func Document(c *navigation.Coordinator) string {
	var sb strings.Builder
	doc := c.Document()

	fmt.Fprintf(&sb, "# %s\n\n", doc.ID())
	fmt.Fprintf(&sb, "Preview: `%s`\n\n", displayLocation(doc.PreviewLocation()))
	if c.Space().IsExtrapolated(doc.PreviewLocation()) {
		sb.WriteString("> The preview location is extrapolated.\n\n")
	}

	sb.WriteString("## Axes\n\n")
	sb.WriteString("| Axis | Kind | Minimum | Default | Maximum | Role | Value |\n")
	sb.WriteString("|---|---|---|---|---|---|---|\n")
	roles := map[string]navigation.RoleRow{}
	for _, row := range c.RoleTable() {
		roles[row.Axis] = row
	}
	for _, a := range c.Space().Axes() {
		lo, def, hi := designspace.AxisExtremes(a)
		row, ok := roles[a.Name]
		role, value := "-", "-"
		if ok {
			role = string(row.Role)
			if row.Value != nil {
				value = row.Value.String()
				if row.Extrapolated {
					value += " ⚠"
				}
			}
		} else if v, ok := doc.PreviewLocation()[a.Name]; ok {
			value = v.String()
		}
		fmt.Fprintf(&sb, "| %s | %s | %g | %g | %g | %s | %s |\n", a.Name, a.Kind, lo, def, hi, role, value)
	}

	if locs := c.InterestingLocations(); len(locs) > 0 {
		sb.WriteString("\n## Interesting locations\n\n")
		sb.WriteString("| Name | Kind | Location |\n|---|---|---|\n")
		for _, l := range locs {
			fmt.Fprintf(&sb, "| %s | %s | `%s` |\n", l.Name, l.Kind, displayLocation(l.Location))
		}
	}

	fmt.Fprintf(&sb, "\nPreview file: `%s`\n", c.PreviewFilename())
	return sb.String()
}

// Frame describes one rendered frame: statistics, warnings, kinks and beam
// measurements.
func Frame(f *ports.Frame) string {
	var sb strings.Builder
	glyph := f.Glyph
	if glyph == "" {
		glyph = "(no glyph)"
	}
	fmt.Fprintf(&sb, "## %s at `%s`\n\n", glyph, displayLocation(f.Location))

	sb.WriteString("```\n")
	sb.WriteString(f.StatsText)
	sb.WriteString("\n```\n")

	if len(f.Warnings) > 0 {
		sb.WriteString("\n**Extrapolating**\n\n")
		for _, w := range f.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}

	if len(f.Kinks) > 0 {
		sb.WriteString("\n### Kinks\n\n| Contour | Point | Severity |\n|---|---|---|\n")
		for _, k := range f.Kinks {
			fmt.Fprintf(&sb, "| %d | (%g, %g) | %.2f |\n", k.Contour, k.Point.X, k.Point.Y, k.Severity)
		}
	} else {
		sb.WriteString("\nNo kinks.\n")
	}

	if len(f.Measurements) > 0 {
		sb.WriteString("\n### Measurements\n\n| From | To | Distance |\n|---|---|---|\n")
		for _, m := range f.Measurements {
			fmt.Fprintf(&sb, "| (%.1f, %.1f) | (%.1f, %.1f) | %.2f |\n", m.From.X, m.From.Y, m.To.X, m.To.Y, m.Distance)
		}
	}
	return sb.String()
}

func displayLocation(loc domain.Location) string {
	if len(loc) == 0 {
		return "(default)"
	}
	return loc.String()
}
