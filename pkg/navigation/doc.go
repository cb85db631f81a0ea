/*
Package navigation coordinates one document's trip through its design space.

A Coordinator owns the gesture controller of a document and wires it to the
document, the instance generator and the host's drawing layer. It implements
ports.Listener for the host's gesture and document notifications, and offers
the explicit user actions of the navigation panel: reset, random, table edits,
quick jumps, adding an instance and editing the role table.

Every update follows the same path: the candidate location is split into its
continuous and discrete parts, the generator builds the glyph, the outline is
analysed (kinks, shape statistics, beams) and a ports.Frame is presented. A
generator failure leaves the preview location and the drag session exactly as
they were.
*/
package navigation
