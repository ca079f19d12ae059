package meta

import "fmt"

// Unit is one resolvable configuration source unit. Units are created and
// cached by a Source; two lookups of the same name within a session return
// the same instance. Identity is the fully-qualified name regardless of
// which backing supplied the metadata.
type Unit struct {
	name string
	desc *Descriptor
	src  *Source
	live *Registration
}

// Name returns the unit's fully-qualified name.
func (u *Unit) Name() string { return u.name }

// Live reports whether the unit is backed by a Go registration. Method
// order of a live unit is not meaningful; see Source.DeclaredOrder.
func (u *Unit) Live() bool { return u.live != nil }

// Kind returns the declared kind of the unit.
func (u *Unit) Kind() Kind { return u.desc.Kind }

// SourceRef returns the provenance string of the backing descriptor.
func (u *Unit) SourceRef() string { return u.desc.Source }

// Annotations returns the unit's annotations in declaration order.
func (u *Unit) Annotations() []Annotation { return u.desc.Annotations }

// Annotation returns the first annotation of the given type.
func (u *Unit) Annotation(typ string) (Annotation, bool) {
	for _, a := range u.desc.Annotations {
		if a.Type == typ {
			return a, true
		}
	}
	return Annotation{}, false
}

// AnnotationsOf returns every annotation of the given type, preserving
// declaration order. Directives such as core.propertysource repeat.
func (u *Unit) AnnotationsOf(typ string) []Annotation {
	var out []Annotation
	for _, a := range u.desc.Annotations {
		if a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

// Methods returns the unit's factory method descriptors. For manifest-backed
// units the slice follows declaration order; for live units it follows map
// iteration order and callers needing determinism must consult
// Source.DeclaredOrder.
func (u *Unit) Methods() []MethodSpec {
	if u.desc.DeclaredMethods != nil {
		out := make([]MethodSpec, 0, len(u.desc.DeclaredMethods))
		for _, name := range u.desc.DeclaredMethods {
			if m, ok := u.desc.Methods[name]; ok {
				out = append(out, m)
			}
		}
		return out
	}
	out := make([]MethodSpec, 0, len(u.desc.Methods))
	for _, m := range u.desc.Methods {
		out = append(out, m)
	}
	return out
}

// Members resolves the unit's nested units.
func (u *Unit) Members() ([]*Unit, error) {
	out := make([]*Unit, 0, len(u.desc.Members))
	for _, m := range u.desc.Members {
		member, err := u.src.UnitFor(m.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, member)
	}
	return out, nil
}

// SuperName returns the declared parent unit name, or "".
func (u *Unit) SuperName() string { return u.desc.Extends }

// InterfaceNames returns the declared contract unit names.
func (u *Unit) InterfaceNames() []string { return u.desc.Implements }

// AssignableTo reports whether the unit declares target anywhere along its
// implements or extends chains. The walk is structural and tolerates
// unresolvable names.
func (u *Unit) AssignableTo(target string) bool {
	if u.name == target {
		return true
	}
	visited := map[string]struct{}{}
	return u.src.assignable(u, target, visited)
}

// Load instantiates the unit's registered Go artifact. Units without a live
// backing (or with a metadata-only registration) fail, and callers fall
// back to treating the unit structurally.
func (u *Unit) Load() (any, error) {
	if u.live == nil || u.live.New == nil {
		return nil, fmt.Errorf("configuration unit %q has no loadable artifact", u.name)
	}
	return u.live.New(), nil
}

// Equal reports name equality, the unit identity rule.
func (u *Unit) Equal(other *Unit) bool {
	return other != nil && u.name == other.name
}

func (u *Unit) String() string { return u.name }
