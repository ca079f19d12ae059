package resolve

import (
	"fmt"
	"strings"
)

// CircularImportError reports an import chain that closed back on itself.
type CircularImportError struct {
	// Offender is the unit whose re-expansion closed the cycle.
	Offender string
	// Chain holds the unit names on the active import chain, outermost
	// first.
	Chain []string
}

func (e *CircularImportError) Error() string {
	return fmt.Sprintf("circular import detected: unit %q is already present in the current import chain [%s]",
		e.Offender, strings.Join(e.Chain, " -> "))
}

// GroupContractError reports a deferred-import group whose Entries call
// returned nil instead of a slice.
type GroupContractError struct {
	Group string
}

func (e *GroupContractError) Error() string {
	return fmt.Sprintf("deferred import group %s returned a nil entry collection", e.Group)
}

// ParseError wraps a failure with the root candidate whose parse raised
// it.
type ParseError struct {
	Unit string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse configuration unit %q: %v", e.Unit, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
