package meta

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Module is the interface in-repo Go modules implement to contribute their
// units to a Source.
type Module interface {
	Register(src *Source)
}

// Registration binds a descriptor to its compiled Go parts. New constructs
// the unit's artifact (a selector, registrar, or plain configuration
// struct); Type optionally records the artifact's reflect type for
// diagnostics. Either may be nil for metadata-only registrations.
type Registration struct {
	Desc *Descriptor
	New  func() any
	Type reflect.Type
}

// Register adds a live unit registration. Registering the same name twice
// is a programmer error.
func (s *Source) Register(reg *Registration) {
	if reg == nil || reg.Desc == nil || reg.Desc.Name == "" {
		panic("meta: registration requires a named descriptor")
	}
	if _, exists := s.registered[reg.Desc.Name]; exists {
		panic(fmt.Sprintf("configuration unit %q already registered", reg.Desc.Name))
	}
	s.register(reg)
}

func (s *Source) register(reg *Registration) {
	slog.Debug("Registering configuration unit.", "name", reg.Desc.Name)
	if reg.Desc.Source == "" {
		reg.Desc.Source = "go:registration"
	}
	s.registered[reg.Desc.Name] = reg
	for _, m := range reg.Desc.Members {
		s.register(&Registration{Desc: m})
	}
}

// RegisterGroup adds a deferred-import group factory under a name that
// deferred selectors reference. Registering the same name twice is a
// programmer error.
func (s *Source) RegisterGroup(name string, factory func() any) {
	if name == "" || factory == nil {
		panic("meta: group registration requires a name and a factory")
	}
	if _, exists := s.groups[name]; exists {
		panic(fmt.Sprintf("deferred import group %q already registered", name))
	}
	slog.Debug("Registering deferred import group.", "name", name)
	s.groups[name] = factory
}

// builtinRegistrations describes the core.* annotation units. They carry no
// loadable artifacts; their metadata is what matters, most notably that
// core.configuration is itself annotated with core.component.
func builtinRegistrations() []*Registration {
	ann := func(name string, anns ...Annotation) *Registration {
		return &Registration{Desc: &Descriptor{
			Name:        name,
			Kind:        KindAnnotation,
			Annotations: anns,
			Source:      "go:builtin",
		}}
	}
	return []*Registration{
		ann(AnnotationComponent),
		ann(AnnotationConfiguration, NewAnnotation(AnnotationComponent)),
		ann(AnnotationImport),
		ann(AnnotationImportFiles),
		ann(AnnotationPropertySource),
		ann(AnnotationScan),
		ann(AnnotationOrder),
		ann(AnnotationConditional),
	}
}
