// Package meta models configuration units: named, annotated descriptors of
// configuration sources, together with the session-scoped Source that
// resolves names to units.
//
// A unit's metadata can come from two backings. Go code registers a
// Registration (descriptor plus loadable artifacts such as selector
// constructors), in which case the unit is "live" and its method set is
// stored in a name-keyed map with no meaningful order. Alternatively a unit
// is declared in a manifest file, in which case the descriptor carries the
// authoritative declaration order of its methods. A unit may be declared
// both ways; the Source prefers the live backing for resolution and keeps
// the manifest order available for callers that need determinism.
//
// Names with the "core." prefix are reserved for the engine itself. They
// must resolve through the live registry; a reserved name without a
// registration is a hard error, never a structural fallback.
//
// A Source is session-scoped state and is not safe for concurrent use.
package meta
