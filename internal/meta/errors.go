package meta

import "fmt"

// NotFoundError reports a unit name that no backing declares. Reserved is
// set when the name lives in the engine's namespace, where a structural
// fallback is never allowed.
type NotFoundError struct {
	Name     string
	Reserved bool
}

func (e *NotFoundError) Error() string {
	if e.Reserved {
		return fmt.Sprintf("reserved unit %q has no live registration", e.Name)
	}
	return fmt.Sprintf("configuration unit %q is not declared by any source", e.Name)
}
