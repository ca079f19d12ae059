package env

import "fmt"

// UnresolvedPlaceholderError reports a ${...} reference that no property
// source could satisfy and that carried no default.
type UnresolvedPlaceholderError struct {
	Placeholder string
	Text        string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("could not resolve placeholder %q in value %q", e.Placeholder, e.Text)
}
