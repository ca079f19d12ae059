package resolve

import (
	"context"
	"fmt"

	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/model"
)

// processImports expands a batch of import candidates on behalf of cc.
// cur is the source unit whose declarations produced the candidates; it
// differs from cc.Unit while a superclass or grouped entry is being
// processed. The record is pushed onto the import stack for the duration
// of the batch so nested expansions can detect cycles; inner batches pass
// checkCircular false because the outer frame already guards the chain.
func (p *Parser) processImports(ctx context.Context, cc *model.ConfigClass, cur *meta.Unit, candidates []string, checkCircular bool) error {
	if len(candidates) == 0 {
		return nil
	}

	if checkCircular && p.isChainedImportOnStack(cc) {
		return &CircularImportError{Offender: cc.Name(), Chain: p.stack.chain()}
	}

	p.stack.push(cc)
	defer p.stack.pop()

	for _, candidate := range candidates {
		if err := p.expandImportCandidate(ctx, cc, cur, candidate); err != nil {
			return err
		}
	}
	return nil
}

// expandImportCandidate dispatches one candidate to its import kind. A
// candidate whose loaded artifact implements DeferredSelector is buffered,
// a Selector is invoked immediately and its targets re-expanded, a
// Registrar is bound to the record for the registration stage, and
// anything else is processed as an ordinary configuration candidate.
func (p *Parser) expandImportCandidate(ctx context.Context, cc *model.ConfigClass, cur *meta.Unit, candidate string) error {
	unit, err := p.src.UnitFor(candidate)
	if err != nil {
		return fmt.Errorf("failed to resolve import candidate %q for unit %q: %w", candidate, cc.Name(), err)
	}

	if unit.Live() {
		instance, err := unit.Load()
		if err != nil {
			return fmt.Errorf("failed to load import candidate %q: %w", candidate, err)
		}
		switch imp := instance.(type) {
		case DeferredSelector:
			p.injectAware(imp)
			return p.deferred.handle(ctx, cc, unit, imp)
		case Selector:
			p.injectAware(imp)
			targets, err := imp.SelectImports(ctx, cur)
			if err != nil {
				return fmt.Errorf("import selector %q failed for unit %q: %w", candidate, cc.Name(), err)
			}
			return p.processImports(ctx, cc, cur, targets, false)
		case model.Registrar:
			p.injectAware(imp)
			cc.AddRegistrar(imp, cur)
			return nil
		}
	}

	p.stack.registerImport(cur, candidate)
	return p.processConfigClass(ctx, model.NewImportedConfigClass(unit, cc))
}

// injectAware hands collaborators to a freshly loaded instance.
func (p *Parser) injectAware(instance any) {
	if a, ok := instance.(SourceAware); ok {
		a.SetSource(p.src)
	}
	if a, ok := instance.(RegistryAware); ok {
		a.SetRegistry(p.registry)
	}
	if a, ok := instance.(EnvironmentAware); ok {
		a.SetEnvironment(p.environ)
	}
	if a, ok := instance.(ResourcesAware); ok {
		a.SetResources(p.resources)
	}
}

// isChainedImportOnStack reports whether expanding cc again would close an
// import cycle: the record must already sit on the active stack and the
// recorded who-imported-whom chain must lead back to its own name. Stack
// membership alone is not enough, since the same unit can legitimately be
// reached twice through independent paths.
func (p *Parser) isChainedImportOnStack(cc *model.ConfigClass) bool {
	if !p.stack.contains(cc.Name()) {
		return false
	}
	name := cc.Name()
	importer := p.stack.Importer(name)
	for importer != nil {
		if importer.Name() == name {
			return true
		}
		importer = p.stack.Importer(importer.Name())
	}
	return false
}
