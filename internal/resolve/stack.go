package resolve

import (
	"strings"

	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/model"
)

// ImportRegistry records who imported whom across a whole session. Unlike
// the import stack it is never unwound, so it can answer provenance
// queries after resolution for dependency-edge wiring.
type ImportRegistry struct {
	imports map[string][]*meta.Unit
}

func newImportRegistry() *ImportRegistry {
	return &ImportRegistry{imports: make(map[string][]*meta.Unit)}
}

func (r *ImportRegistry) registerImport(importer *meta.Unit, imported string) {
	r.imports[imported] = append(r.imports[imported], importer)
}

// Importer returns the metadata of the unit that most recently imported
// the named unit, or nil when it was never imported.
func (r *ImportRegistry) Importer(imported string) *meta.Unit {
	units := r.imports[imported]
	if len(units) == 0 {
		return nil
	}
	return units[len(units)-1]
}

// ImportingFor returns every unit that imported the named unit, in
// registration order.
func (r *ImportRegistry) ImportingFor(imported string) []*meta.Unit {
	units := r.imports[imported]
	out := make([]*meta.Unit, len(units))
	copy(out, units)
	return out
}

// RemoveImporting drops every edge declared by the named importing unit.
func (r *ImportRegistry) RemoveImporting(importing string) {
	for imported, units := range r.imports {
		kept := units[:0]
		for _, u := range units {
			if u.Name() != importing {
				kept = append(kept, u)
			}
		}
		if len(kept) == 0 {
			delete(r.imports, imported)
		} else {
			r.imports[imported] = kept
		}
	}
}

// importStack tracks the chain of records currently being expanded. The
// embedded registry persists after the stack unwinds.
type importStack struct {
	*ImportRegistry
	stack []*model.ConfigClass
}

func newImportStack() *importStack {
	return &importStack{ImportRegistry: newImportRegistry()}
}

func (s *importStack) push(c *model.ConfigClass) {
	s.stack = append(s.stack, c)
}

func (s *importStack) pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *importStack) contains(name string) bool {
	for _, c := range s.stack {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// chain returns the names on the active stack, outermost first.
func (s *importStack) chain() []string {
	out := make([]string, len(s.stack))
	for i, c := range s.stack {
		out[i] = c.Name()
	}
	return out
}

func (s *importStack) String() string {
	names := make([]string, len(s.stack))
	for i, c := range s.stack {
		names[i] = meta.ShortName(c.Name())
	}
	return "[" + strings.Join(names, " -> ") + "]"
}
