/*
Package designspace implements the axis and location algebra of a document.

A Space wraps the declared axes and answers every question the navigation
engine asks about locations:

  - Split: separate continuous and discrete parts.
  - Clip and IsExtrapolated: range checks for continuous axes.
  - Default and Random: generate locations.
  - AxisScale: normalise pointer velocity per axis.

Entries naming axes the space does not declare pass through unchanged unless
the space is built with WithUnknownAxisPolicy(domain.UnknownAxisReject).

The package also derives the quick-jump list of interesting locations and
reads YAML designspace files.
*/
package designspace
