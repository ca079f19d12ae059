package env

import "fmt"

// Chain is the ordered collection of property sources backing an
// Environment. Index zero has the highest precedence.
type Chain struct {
	sources []Source
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

func (c *Chain) indexOf(name string) int {
	for i, s := range c.sources {
		if s.Name() == name {
			return i
		}
	}
	return -1
}

func (c *Chain) removeIfPresent(name string) {
	if idx := c.indexOf(name); idx >= 0 {
		c.sources = append(c.sources[:idx], c.sources[idx+1:]...)
	}
}

// AddFirst inserts a source at the highest-precedence position, removing
// any previous source of the same name first.
func (c *Chain) AddFirst(s Source) {
	c.removeIfPresent(s.Name())
	c.sources = append([]Source{s}, c.sources...)
}

// AddLast appends a source at the lowest-precedence position, removing any
// previous source of the same name first.
func (c *Chain) AddLast(s Source) {
	c.removeIfPresent(s.Name())
	c.sources = append(c.sources, s)
}

// AddBefore inserts a source immediately ahead of the named anchor, i.e. at
// a higher precedence than the anchor.
func (c *Chain) AddBefore(anchorName string, s Source) error {
	if anchorName == s.Name() {
		return fmt.Errorf("property source %q cannot be added relative to itself", anchorName)
	}
	c.removeIfPresent(s.Name())
	idx := c.indexOf(anchorName)
	if idx < 0 {
		return fmt.Errorf("property source %q does not exist in the chain", anchorName)
	}
	c.sources = append(c.sources[:idx], append([]Source{s}, c.sources[idx:]...)...)
	return nil
}

// Replace swaps the named source for another, keeping its position.
func (c *Chain) Replace(name string, s Source) error {
	idx := c.indexOf(name)
	if idx < 0 {
		return fmt.Errorf("property source %q does not exist in the chain", name)
	}
	c.sources[idx] = s
	return nil
}

// Remove deletes the named source and returns it, or nil when absent.
func (c *Chain) Remove(name string) Source {
	idx := c.indexOf(name)
	if idx < 0 {
		return nil
	}
	s := c.sources[idx]
	c.sources = append(c.sources[:idx], c.sources[idx+1:]...)
	return s
}

// Get returns the named source.
func (c *Chain) Get(name string) (Source, bool) {
	if idx := c.indexOf(name); idx >= 0 {
		return c.sources[idx], true
	}
	return nil, false
}

// Contains reports whether the named source is in the chain.
func (c *Chain) Contains(name string) bool {
	return c.indexOf(name) >= 0
}

// PrecedenceOf returns the position of the named source, or -1. Lower is
// stronger.
func (c *Chain) PrecedenceOf(name string) int {
	return c.indexOf(name)
}

// Names lists the chain's source names in precedence order.
func (c *Chain) Names() []string {
	out := make([]string, len(c.sources))
	for i, s := range c.sources {
		out[i] = s.Name()
	}
	return out
}

// Len returns the number of sources.
func (c *Chain) Len() int { return len(c.sources) }

// Sources returns the chain's sources in precedence order.
func (c *Chain) Sources() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// Lookup searches the chain front to back for a key.
func (c *Chain) Lookup(key string) (any, bool) {
	for _, s := range c.sources {
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return nil, false
}
