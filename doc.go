/*
Package longboard is an interactive design-space navigation engine for variable font editors.

A designer drags the pointer over a glyph and the engine moves the preview location through the
font's design space: horizontal and vertical pointer velocity are mapped onto axes, scaled by each
axis range, and the glyph is regenerated and measured at every step. Releasing commits the new
location; cancelling leaves the document untouched.

# Concept

The engine never draws and never interpolates. The host editor provides the document (axes,
sources, instances, preview location) and a glyph generator through the interfaces in pkg/ports.
The engine answers every applied sample with a Frame: the outline as an SVG path, its width,
margins and area, the change since the drag started, kinks where smooth curves break, beam
measurements and extrapolation warnings.

# Key Features

  - Velocity-scaled dragging with constrain and precision modifiers.
  - Per-axis drag roles (horizontal, vertical, ignore) persisted with the document.
  - Explicit navigation: reset, random jump, jump to a source or instance, set one axis.
  - Failed generations roll the drag back to the last good location.
  - Navigation state persisted in memory, on disk or in Redis, with per-document locking.
  - HTTP, Server-Sent Events and Model Context Protocol front ends.

# Usage

	cfg, err := config.Load("longboard.yaml")
	if err != nil {
		log.Fatal(err)
	}
	engine, err := longboard.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	coord, err := engine.OpenPath(ctx, "Sans.designspace.yaml", "a")
	if err != nil {
		log.Fatal(err)
	}
	frame, err := coord.Render(ctx)

Long-running hosts go through engine.Manager(), which serialises access per document and saves
the navigation state after every change:

	err = engine.Manager().Update(ctx, "Sans", func(ctx context.Context, c *navigation.Coordinator) error {
		_, err := c.JumpTo(ctx, "Bold")
		return err
	})

See cmd/longboard for the command line tool.
*/
package longboard
