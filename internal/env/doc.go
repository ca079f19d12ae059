// Package env provides the mutable environment the resolution engine
// registers property sources into: an ordered chain of named sources,
// composite merging for re-registered names, and ${...} placeholder
// resolution with optional defaults.
//
// Precedence is positional. The chain is searched front to back, so a
// source at a lower index shadows everything behind it. The engine's
// registration rules (newest sources inserted ahead of previously added
// ones, composites that consult the newest member first) hang off these
// primitives.
package env
