// Package resolve is the configuration resolution engine. It turns a
// batch of candidate units into a closed, deduplicated set of
// model.ConfigClass records before anything is instantiated.
//
// Each candidate is processed by a fixed-order pipeline: nested member
// units, property sources, component scans, imports, file imports, bean
// methods, interface default methods and finally the superclass chain.
// Imports come in three kinds. A Selector computes targets immediately, a
// DeferredSelector is buffered until every eagerly reachable unit has
// been parsed and then drained through its Group, and a Registrar is
// bound to the record for the later registration stage. Anything else
// reached through core.import is simply parsed as another candidate.
//
// Cycles are caught by the import stack: a unit re-entered while already
// being expanded, with a who-imported-whom chain leading back to itself,
// aborts the session with a CircularImportError. Units reached twice via
// independent paths are merged instead, keeping both provenance records.
//
// A Parser is a single session: single-threaded, owning its stack,
// buffers and record map exclusively. Run concurrent resolutions with
// separate Parsers.
package resolve
