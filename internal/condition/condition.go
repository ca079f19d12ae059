// Package condition decides whether annotated units take part in
// resolution. The engine consults an Evaluator at two points: once before a
// unit is parsed and once before registration-phase work such as component
// scanning. Predicate implementations stay outside the engine; this package
// supplies the contract, a name-keyed predicate registry, and the default
// evaluator that reads core.conditional annotations.
package condition

import (
	"fmt"

	"github.com/vk/confgraph/internal/defs"
	"github.com/vk/confgraph/internal/env"
	"github.com/vk/confgraph/internal/meta"
)

// Phase tells a predicate which stage of processing is asking.
type Phase int

const (
	// PhaseParse gates whether a unit's metadata is parsed at all.
	PhaseParse Phase = iota
	// PhaseRegister gates registration-time work for a parsed unit.
	PhaseRegister
)

func (p Phase) String() string {
	if p == PhaseRegister {
		return "register"
	}
	return "parse"
}

// Context carries the collaborators a predicate may consult.
type Context struct {
	Environment *env.Environment
	Registry    *defs.Registry
	Source      *meta.Source
}

// Func is one named condition predicate. Returning false vetoes the unit.
type Func func(cc *Context) bool

// Evaluator is the engine's view of conditional inclusion.
type Evaluator interface {
	ShouldSkip(u *meta.Unit, phase Phase) bool
}

type entry struct {
	fn    Func
	phase *Phase
}

// Registry maps condition names to predicates. Predicates may be bound to
// a single phase; unbound ones are consulted in every phase.
type Registry struct {
	conditions map[string]entry
}

// NewRegistry creates an empty condition registry.
func NewRegistry() *Registry {
	return &Registry{conditions: make(map[string]entry)}
}

// Register binds a predicate evaluated in every phase. Registering a name
// twice is a programmer error.
func (r *Registry) Register(name string, fn Func) {
	r.add(name, entry{fn: fn})
}

// RegisterPhased binds a predicate evaluated only in the given phase.
func (r *Registry) RegisterPhased(name string, phase Phase, fn Func) {
	r.add(name, entry{fn: fn, phase: &phase})
}

func (r *Registry) add(name string, e entry) {
	if name == "" || e.fn == nil {
		panic("condition: registration requires a name and a predicate")
	}
	if _, exists := r.conditions[name]; exists {
		panic(fmt.Sprintf("condition %q already registered", name))
	}
	r.conditions[name] = e
}

// DefaultEvaluator reads core.conditional annotations and applies the
// registered predicates.
type DefaultEvaluator struct {
	conditions *Registry
	cc         *Context
}

// NewEvaluator creates the default evaluator. A nil registry behaves as an
// empty one.
func NewEvaluator(conditions *Registry, cc *Context) *DefaultEvaluator {
	if conditions == nil {
		conditions = NewRegistry()
	}
	return &DefaultEvaluator{conditions: conditions, cc: cc}
}

// ShouldSkip implements Evaluator. A unit is skipped as soon as any
// predicate relevant to the phase returns false. Referencing a condition
// that was never registered is a programmer error.
func (e *DefaultEvaluator) ShouldSkip(u *meta.Unit, phase Phase) bool {
	for _, ann := range u.AnnotationsOf(meta.AnnotationConditional) {
		for _, name := range ann.StringList("on") {
			ent, ok := e.conditions.conditions[name]
			if !ok {
				panic(fmt.Sprintf("unit %q references unregistered condition %q", u.Name(), name))
			}
			if ent.phase != nil && *ent.phase != phase {
				continue
			}
			if !ent.fn(e.cc) {
				return true
			}
		}
	}
	return false
}
