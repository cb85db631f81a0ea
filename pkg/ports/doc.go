/*
Package ports defines the boundary contracts of the navigation engine.

These interfaces keep the core host-agnostic: the host application (or one of
the adapters in this module) owns the real document, the instance generator,
the pointer stream and the drawing layer, and talks to the engine only
through them.

# Key Interfaces

  - Document: the shared document holding axes, sources, instances, the
    preview location and role preferences.
  - Generator: builds a glyph outline at a location. Treated as fallible.
  - Listener: gesture and document notifications delivered by the host.
  - FrameSink: receives one Frame per applied update for presentation.
  - StateStore: persists each document's navigation state.
  - DistributedLocker: coordinates access to a document across replicas.
*/
package ports
