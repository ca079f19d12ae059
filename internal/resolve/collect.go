package resolve

import (
	"context"

	"github.com/vk/confgraph/internal/ctxlog"
	"github.com/vk/confgraph/internal/meta"
)

// collectImports gathers every unit named by core.import annotations on a
// unit, walking its meta-annotations depth first. Targets come back in
// encounter order, each at its first occurrence. Reserved annotations are
// not traversed, and neither is core.import itself, which would otherwise
// recurse through its own declaration.
func (p *Parser) collectImports(ctx context.Context, unit *meta.Unit) []string {
	var ordered []string
	seen := make(map[string]struct{})
	visited := make(map[string]struct{})
	p.doCollectImports(ctx, unit, &ordered, seen, visited)
	return ordered
}

func (p *Parser) doCollectImports(ctx context.Context, unit *meta.Unit, ordered *[]string, seen, visited map[string]struct{}) {
	if _, ok := visited[unit.Name()]; ok {
		return
	}
	visited[unit.Name()] = struct{}{}

	for _, ann := range unit.Annotations() {
		if ann.Type == meta.AnnotationImport || meta.IsReserved(ann.Type) {
			continue
		}
		annUnit, err := p.src.UnitFor(ann.Type)
		if err != nil {
			ctxlog.FromContext(ctx).Debug("Skipping unresolvable annotation type during import collection.",
				"unit", unit.Name(), "annotation", ann.Type, "error", err)
			continue
		}
		p.doCollectImports(ctx, annUnit, ordered, seen, visited)
	}
	for _, ann := range unit.AnnotationsOf(meta.AnnotationImport) {
		for _, target := range ann.StringList("value") {
			if _, ok := seen[target]; ok {
				continue
			}
			seen[target] = struct{}{}
			*ordered = append(*ordered, target)
		}
	}
}
