package env

import "fmt"

// Environment is the property facade handed to the resolution engine: the
// source chain plus placeholder resolution over it.
type Environment struct {
	chain *Chain
}

// New creates an Environment with an empty chain.
func New() *Environment {
	return &Environment{chain: NewChain()}
}

// NewStandard creates an Environment whose chain starts with the OS
// environment source.
func NewStandard() *Environment {
	e := New()
	e.chain.AddLast(NewOSSource())
	return e
}

// Chain returns the mutable source chain.
func (e *Environment) Chain() *Chain { return e.chain }

// Property looks a key up across the chain.
func (e *Environment) Property(key string) (any, bool) {
	return e.chain.Lookup(key)
}

// PropertyString looks a key up and renders it as a string.
func (e *Environment) PropertyString(key string) (string, bool) {
	v, ok := e.chain.Lookup(key)
	if !ok {
		return "", false
	}
	return stringify(v), true
}

// ResolvePlaceholders substitutes ${...} references in text, leaving
// unresolvable ones in place.
func (e *Environment) ResolvePlaceholders(text string) string {
	r := resolver{lookup: e.PropertyString, strict: false}
	resolved, err := r.resolve(text)
	if err != nil {
		// Lenient mode only errs on malformed input it cannot recover;
		// fall back to the original text.
		return text
	}
	return resolved
}

// ResolveRequired substitutes ${...} references in text and fails on any
// reference without a value or default.
func (e *Environment) ResolveRequired(text string) (string, error) {
	r := resolver{lookup: e.PropertyString, strict: true}
	return r.resolve(text)
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
