package geometry

import (
	"strconv"
	"strings"

	"github.com/aretw0/longboard/pkg/domain"
)

// SVGPath renders o as SVG path data, one closed subpath per contour.
func SVGPath(o *domain.Outline) string {
	var b strings.Builder
	for _, segs := range OutlineSegments(o) {
		if len(segs) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("M")
		writeVec(&b, segs[0].Start())
		for i, s := range segs {
			switch s.Kind {
			case LineKind:
				if i == len(segs)-1 && s.End() == segs[0].Start() {
					continue
				}
				b.WriteString(" L")
				writeVec(&b, s.P[1])
			case QuadKind:
				b.WriteString(" Q")
				writeVec(&b, s.P[1])
				b.WriteByte(' ')
				writeVec(&b, s.P[2])
			case CubicKind:
				b.WriteString(" C")
				writeVec(&b, s.P[1])
				b.WriteByte(' ')
				writeVec(&b, s.P[2])
				b.WriteByte(' ')
				writeVec(&b, s.P[3])
			}
		}
		b.WriteString(" Z")
	}
	return b.String()
}

func writeVec(b *strings.Builder, v Vec) {
	b.WriteString(strconv.FormatFloat(v.X, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(v.Y, 'f', -1, 64))
}
