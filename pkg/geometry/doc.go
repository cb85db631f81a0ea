// Package geometry analyses glyph outlines produced at a design-space location.
//
// It decomposes point contours into line, quadratic and cubic segments and
// derives from them the signals shown while navigating: kinks at points the
// author marked smooth, shape statistics (width, side margins, area) and
// their change over a gesture, measurement beams and SVG path data for the
// host's drawing layer.
package geometry
