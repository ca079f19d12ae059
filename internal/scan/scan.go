// Package scan discovers component units under declared packages and
// registers them as definitions. The resolution engine delegates
// core.scan directives here and treats whatever comes back as further
// configuration candidates.
package scan

import (
	"context"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/vk/confgraph/internal/ctxlog"
	"github.com/vk/confgraph/internal/defs"
	"github.com/vk/confgraph/internal/meta"
)

// Directive describes one component-scan request.
type Directive struct {
	// Packages to search. A unit matches when its name sits under one of
	// them. Empty means every package.
	Packages []string
	// Include holds glob patterns over unit names; empty includes all.
	// Patterns treat '.' as a separator, so "web.*" stays within the web
	// package while "web.**" descends into nested units.
	Include []string
	// Exclude holds glob patterns removing units after inclusion.
	Exclude []string
}

// DirectiveFromAnnotation builds a Directive from a core.scan annotation.
// When the annotation names no packages, the declaring unit's own package
// is scanned.
func DirectiveFromAnnotation(ann meta.Annotation, declaringUnit string) Directive {
	d := Directive{
		Packages: ann.StringList("packages"),
		Include:  ann.StringList("include"),
		Exclude:  ann.StringList("exclude"),
	}
	if len(d.Packages) == 0 {
		if pkg := meta.PackageOf(declaringUnit); pkg != "" {
			d.Packages = []string{pkg}
		}
	}
	return d
}

// Scanner finds component definitions for a scan directive.
type Scanner interface {
	// Scan registers every matching component and returns the holders in
	// discovery order. declaredBy names the unit whose directive caused
	// the scan and is recorded as each definition's source.
	Scan(ctx context.Context, d Directive, declaredBy string) ([]defs.Holder, error)
}

// SourceScanner scans the units known to a metadata source. Matching is
// name-based: a unit qualifies when it lies under a requested package,
// passes the include/exclude globs and carries the component stereotype,
// directly or through meta-annotation.
type SourceScanner struct {
	src *meta.Source
	reg *defs.Registry
}

// NewSourceScanner creates a scanner over src that registers findings
// into reg.
func NewSourceScanner(src *meta.Source, reg *defs.Registry) *SourceScanner {
	return &SourceScanner{src: src, reg: reg}
}

// Scan implements Scanner.
func (s *SourceScanner) Scan(ctx context.Context, d Directive, declaredBy string) ([]defs.Holder, error) {
	logger := ctxlog.FromContext(ctx)

	include, err := compilePatterns(d.Include)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	exclude, err := compilePatterns(d.Exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}

	var holders []defs.Holder
	for _, name := range s.src.Names() {
		if meta.IsReserved(name) {
			continue
		}
		if !underPackages(name, d.Packages) {
			continue
		}
		if len(include) > 0 && !anyMatch(include, name) {
			continue
		}
		if anyMatch(exclude, name) {
			continue
		}

		unit, err := s.src.UnitFor(name)
		if err != nil {
			logger.Debug("Skipping unresolvable unit during scan.", "unit", name, "error", err)
			continue
		}
		if unit.Kind() == meta.KindAnnotation {
			continue
		}
		if !s.src.Annotated(unit, meta.AnnotationComponent) {
			continue
		}

		beanName := meta.DefaultBeanName(name)
		if s.reg.Contains(beanName) {
			logger.Debug("Scan skipping already registered bean.", "bean", beanName, "unit", name)
			continue
		}
		def := &defs.Definition{UnitName: name, Role: defs.RoleApplication, Source: declaredBy}
		s.reg.Register(beanName, def)
		holders = append(holders, defs.Holder{Name: beanName, Def: def})
	}

	logger.Debug("Component scan finished.", "declared_by", declaredBy, "packages", d.Packages, "found", len(holders))
	return holders, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '.')
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func anyMatch(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func underPackages(name string, packages []string) bool {
	if len(packages) == 0 {
		return true
	}
	for _, pkg := range packages {
		if pkg != "" && strings.HasPrefix(name, pkg+".") {
			return true
		}
	}
	return false
}
