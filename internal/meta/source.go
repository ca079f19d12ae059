package meta

import (
	"fmt"
	"sort"
)

// Source resolves unit names to Units for one resolution session. It holds
// the live registrations contributed by Go modules, the structural
// descriptors contributed by manifests, and a per-name cache so that every
// lookup of a name yields the same Unit instance.
type Source struct {
	registered map[string]*Registration
	declared   map[string]*Descriptor
	groups     map[string]func() any
	units      map[string]*Unit
}

// NewSource creates a Source pre-populated with the engine's built-in
// annotation units.
func NewSource() *Source {
	s := &Source{
		registered: make(map[string]*Registration),
		declared:   make(map[string]*Descriptor),
		groups:     make(map[string]func() any),
		units:      make(map[string]*Unit),
	}
	for _, reg := range builtinRegistrations() {
		s.register(reg)
	}
	return s
}

// UnitFor resolves a name to a Unit, preferring the live backing when both
// exist. Reserved names resolve only through the live registry. Unknown
// names yield a NotFoundError.
func (s *Source) UnitFor(name string) (*Unit, error) {
	if u, ok := s.units[name]; ok {
		return u, nil
	}
	live := s.registered[name]
	var desc *Descriptor
	switch {
	case live != nil:
		desc = live.Desc
	case IsReserved(name):
		return nil, &NotFoundError{Name: name, Reserved: true}
	default:
		desc = s.declared[name]
	}
	if desc == nil {
		return nil, &NotFoundError{Name: name}
	}
	u := &Unit{name: name, desc: desc, src: s, live: live}
	s.units[name] = u
	return u, nil
}

// Declared reports whether a manifest declares the unit. Live-only units
// are library building blocks reached through imports, not user
// declarations.
func (s *Source) Declared(name string) bool {
	_, ok := s.declared[name]
	return ok
}

// DeclaredOrder returns the manifest-declared method order for a unit, or
// nil when no manifest declares it. This is the authoritative ordering
// source for live units, whose own method sets are unordered.
func (s *Source) DeclaredOrder(name string) []string {
	if d, ok := s.declared[name]; ok {
		return d.DeclaredMethods
	}
	return nil
}

// Names returns every known unit name, sorted. This is the universe the
// default scanner walks.
func (s *Source) Names() []string {
	seen := make(map[string]struct{}, len(s.registered)+len(s.declared))
	for name := range s.registered {
		seen[name] = struct{}{}
	}
	for name := range s.declared {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupFactory returns the registered deferred-import group factory for a
// name.
func (s *Source) GroupFactory(name string) (func() any, bool) {
	f, ok := s.groups[name]
	return f, ok
}

// AddDescriptor records a manifest-declared descriptor, indexing nested
// members recursively. Declaring the same name twice is a configuration
// error.
func (s *Source) AddDescriptor(d *Descriptor) error {
	if _, exists := s.declared[d.Name]; exists {
		return fmt.Errorf("configuration unit %q is declared more than once", d.Name)
	}
	s.declared[d.Name] = d
	for _, m := range d.Members {
		if err := s.AddDescriptor(m); err != nil {
			return err
		}
	}
	return nil
}

// Annotated reports whether the unit carries the target annotation directly
// or through meta-annotations. Unresolvable annotation types are skipped.
func (s *Source) Annotated(u *Unit, target string) bool {
	visited := map[string]struct{}{u.Name(): {}}
	return s.annotated(u.Annotations(), target, visited)
}

func (s *Source) annotated(anns []Annotation, target string, visited map[string]struct{}) bool {
	for _, a := range anns {
		if a.Type == target {
			return true
		}
	}
	for _, a := range anns {
		if _, seen := visited[a.Type]; seen {
			continue
		}
		visited[a.Type] = struct{}{}
		annUnit, err := s.UnitFor(a.Type)
		if err != nil {
			continue
		}
		if s.annotated(annUnit.Annotations(), target, visited) {
			return true
		}
	}
	return false
}

func (s *Source) assignable(u *Unit, target string, visited map[string]struct{}) bool {
	if _, seen := visited[u.Name()]; seen {
		return false
	}
	visited[u.Name()] = struct{}{}
	related := append([]string{}, u.InterfaceNames()...)
	if u.SuperName() != "" {
		related = append(related, u.SuperName())
	}
	for _, name := range related {
		if name == target {
			return true
		}
		next, err := s.UnitFor(name)
		if err != nil {
			continue
		}
		if s.assignable(next, target, visited) {
			return true
		}
	}
	return false
}
