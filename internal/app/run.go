package app

import (
	"context"
	"fmt"

	"github.com/vk/confgraph/internal/ctxlog"
	"github.com/vk/confgraph/internal/defs"
	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/resolve"
)

// Run executes one full resolution: parse the configured roots, apply the
// outcome to the registry, and write the report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	result, err := a.Resolve(ctx)
	if err != nil {
		return err
	}

	if err := a.Apply(ctx, result); err != nil {
		return err
	}

	if err := a.report(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// Resolve parses the configured root units into configuration records.
func (a *App) Resolve(ctx context.Context) (*resolve.Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	roots := a.rootCandidates()
	if len(roots) == 0 {
		a.logger.Warn("No configuration roots found, nothing to resolve.")
		return &resolve.Result{}, nil
	}
	a.logger.Info("Resolving configuration roots.", "count", len(roots))

	parser := resolve.NewParser(resolve.Options{
		Source:      a.src,
		Environment: a.environ,
		Registry:    a.registry,
		Resources:   a.resources,
	})
	result, err := parser.Parse(ctx, roots)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Resolution finished.", "records", len(result.Classes))
	return result, nil
}

// Apply replays a resolution into the registry: one definition per record,
// then every registrar binding in record order.
func (a *App) Apply(ctx context.Context, result *resolve.Result) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	for _, class := range result.Classes {
		beanName := class.BeanName
		if beanName == "" {
			// Import-derived records carry no declared name; derive the
			// default one at registration time.
			beanName = meta.DefaultBeanName(class.Name())
		}
		a.registry.Register(beanName, &defs.Definition{
			UnitName: class.Name(),
			Role:     defs.RoleApplication,
			Source:   class.Unit.SourceRef(),
		})

		for _, binding := range class.Registrars {
			if err := binding.Registrar.Register(ctx, binding.Importer, a.registry); err != nil {
				return fmt.Errorf("registrar contributed by unit %q failed: %w", binding.Importer.Name(), err)
			}
		}
	}
	a.logger.Debug("Registry populated.", "definitions", a.registry.Len())
	return nil
}

func (a *App) rootCandidates() []resolve.Candidate {
	names := a.config.Roots
	if len(names) == 0 {
		names = a.discoverRoots()
	}
	candidates := make([]resolve.Candidate, 0, len(names))
	for _, name := range names {
		candidates = append(candidates, resolve.Candidate{Name: name, BeanName: meta.DefaultBeanName(name)})
	}
	return candidates
}

// discoverRoots returns every manifest-declared full configuration unit, in
// name order. Live-only units are library code reached through imports and
// never become roots on their own.
func (a *App) discoverRoots() []string {
	var roots []string
	for _, name := range a.src.Names() {
		if meta.IsReserved(name) || !a.src.Declared(name) {
			continue
		}
		unit, err := a.src.UnitFor(name)
		if err != nil {
			continue
		}
		if unit.Kind() == meta.KindAnnotation {
			continue
		}
		if a.src.Annotated(unit, meta.AnnotationConfiguration) {
			roots = append(roots, name)
		}
	}
	return roots
}
