package env

import (
	"fmt"
	"os"
	"strings"
)

// Source is one named provider of property values.
type Source interface {
	Name() string
	Lookup(key string) (any, bool)
}

// Nested is implemented by sources that can expose their values as a
// nested map, which is what Environment.Snapshot merges.
type Nested interface {
	NestedValues() map[string]any
}

// MapSource holds properties parsed from a document. The constructor takes
// the nested form and flattens map and list structure into dotted keys, so
// "server: {port: 8080}" is visible as "server.port".
type MapSource struct {
	name   string
	flat   map[string]any
	nested map[string]any
}

// NewMapSource creates a map-backed source from nested values.
func NewMapSource(name string, values map[string]any) *MapSource {
	flat := make(map[string]any)
	for key, val := range values {
		flattenValue(key, val, flat)
	}
	return &MapSource{name: name, flat: flat, nested: values}
}

func flattenValue(prefix string, val any, out map[string]any) {
	switch v := val.(type) {
	case map[string]any:
		for key, inner := range v {
			flattenValue(prefix+"."+key, inner, out)
		}
	case []any:
		for i, inner := range v {
			flattenValue(fmt.Sprintf("%s[%d]", prefix, i), inner, out)
		}
	default:
		out[prefix] = v
	}
}

// Name implements Source.
func (s *MapSource) Name() string { return s.name }

// Lookup implements Source.
func (s *MapSource) Lookup(key string) (any, bool) {
	v, ok := s.flat[key]
	return v, ok
}

// NestedValues implements Nested.
func (s *MapSource) NestedValues() map[string]any { return s.nested }

// OSSource exposes the process environment as a property source. Dotted
// keys are also tried in SCREAMING_SNAKE form, so "server.port" finds
// SERVER_PORT.
type OSSource struct{}

var osKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// NewOSSource creates an OS environment source.
func NewOSSource() *OSSource { return &OSSource{} }

// Name implements Source.
func (s *OSSource) Name() string { return "os-environment" }

// Lookup implements Source.
func (s *OSSource) Lookup(key string) (any, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	if v, ok := os.LookupEnv(strings.ToUpper(osKeyReplacer.Replace(key))); ok {
		return v, true
	}
	return nil, false
}

// Composite is a named source aggregating others. Lookups consult members
// front to back, so the member at index zero wins.
type Composite struct {
	name    string
	sources []Source
}

// NewComposite creates a composite over the given members, highest
// precedence first.
func NewComposite(name string, sources ...Source) *Composite {
	return &Composite{name: name, sources: sources}
}

// Name implements Source.
func (c *Composite) Name() string { return c.name }

// Lookup implements Source.
func (c *Composite) Lookup(key string) (any, bool) {
	for _, s := range c.sources {
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return nil, false
}

// AddFirst prepends a member, giving it the highest precedence within the
// composite.
func (c *Composite) AddFirst(s Source) {
	c.sources = append([]Source{s}, c.sources...)
}

// Sources returns the members, highest precedence first.
func (c *Composite) Sources() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}
