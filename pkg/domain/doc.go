/*
Package domain contains the core data model of the navigation engine.

It defines axes, locations, axis roles, outlines and the persisted navigation
state of a document. The package is kept free of I/O and persistence.

# Key Entities

  - Axis: a continuous or discrete dimension of a design space.
  - Value: a tagged scalar or anisotropic pair.
  - Location: an assignment of Values to axis names; absent axes are at default.
  - Roles: the per-document table binding axes to horizontal or vertical drags.
  - Outline: the glyph instance built at a location, as contours of points.
*/
package domain
