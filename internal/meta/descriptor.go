package meta

// Kind distinguishes ordinary configuration units from annotation
// declarations. The distinction is informational; both resolve through the
// same Source.
type Kind int

const (
	KindUnit Kind = iota
	KindAnnotation
)

func (k Kind) String() string {
	if k == KindAnnotation {
		return "annotation"
	}
	return "unit"
}

// MethodSpec describes one factory method declared by a unit.
type MethodSpec struct {
	Name     string
	Returns  string
	Abstract bool
}

// Descriptor is the backing-agnostic description of a configuration unit.
//
// Methods is keyed by method name. DeclaredMethods, when non-nil, records
// the order in which the methods were declared; manifest-backed descriptors
// always carry it, Go-registered ones never do.
type Descriptor struct {
	Name            string
	Kind            Kind
	Annotations     []Annotation
	Methods         map[string]MethodSpec
	DeclaredMethods []string
	Members         []*Descriptor
	Extends         string
	Implements      []string

	// Source records where the descriptor came from: a manifest file path
	// or a registration label. Informational only.
	Source string
}
