// Package manifest loads HCL unit declarations into meta descriptors.
//
// A manifest file holds top-level `unit` and `annotation` blocks. Inside a
// unit, `annotate` blocks attach directives, `method` blocks declare
// factory methods in an order the engine treats as authoritative, and
// nested `unit` blocks declare member units whose names are qualified by
// the enclosing unit.
package manifest
