/*
Package http exposes document navigation over a JSON API built on chi.

Every route under /documents/{documentID} goes through the session manager,
so requests for one document are serialised while different documents
proceed in parallel. Mutating routes persist the navigation state, and
subscribers of /documents/{documentID}/events receive "frame" and "preview"
server-sent events.
*/
package http
