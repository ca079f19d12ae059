// Package defs holds the definition registry that the resolution engine
// hands results to. The engine itself only reads and attaches; actually
// turning records into live objects is a later phase.
package defs

// Roles classify why a definition exists.
const (
	// RoleApplication marks definitions that are part of the user's
	// declared configuration.
	RoleApplication = "application"
	// RoleInfrastructure marks definitions contributed by registrars and
	// other machinery rather than user declarations.
	RoleInfrastructure = "infrastructure"
)

// Definition is the format-agnostic record of one discovered bean source.
type Definition struct {
	UnitName string
	Role     string
	Source   string
}

// Holder pairs a definition with the registration name a scanner chose for
// it.
type Holder struct {
	Name string
	Def  *Definition
}

// Registry is an insertion-ordered collection of named definitions.
type Registry struct {
	names []string
	defs  map[string]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register stores a definition under a name. Re-registering a name replaces
// the definition but keeps its original position.
func (r *Registry) Register(name string, def *Definition) {
	if _, exists := r.defs[name]; !exists {
		r.names = append(r.names, name)
	}
	r.defs[name] = def
}

// Contains reports whether a name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Get returns the definition for a name.
func (r *Registry) Get(name string) (*Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int { return len(r.defs) }
