package resolve

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vk/confgraph/internal/condition"
	"github.com/vk/confgraph/internal/ctxlog"
	"github.com/vk/confgraph/internal/defs"
	"github.com/vk/confgraph/internal/env"
	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/model"
	"github.com/vk/confgraph/internal/resource"
	"github.com/vk/confgraph/internal/scan"
)

// Options configure one resolution session.
type Options struct {
	// Source supplies unit metadata. Required.
	Source *meta.Source
	// Environment backs property sources and placeholder resolution.
	// Defaults to a fresh empty environment.
	Environment *env.Environment
	// Resources fetches property-source locations. Defaults to a file
	// loader rooted in the working directory.
	Resources resource.Loader
	// Registry receives scanned and registrar-contributed definitions.
	// Defaults to a fresh registry.
	Registry *defs.Registry
	// Conditions holds the predicates behind core.conditional. Optional.
	Conditions *condition.Registry
	// Scanner handles core.scan directives. Defaults to a SourceScanner
	// over Source and Registry.
	Scanner scan.Scanner
}

// Parser turns configuration candidates into a closed set of records. A
// Parser owns its session state exclusively; create a fresh one per
// session and do not share it across goroutines.
type Parser struct {
	src       *meta.Source
	environ   *env.Environment
	resources resource.Loader
	registry  *defs.Registry
	scanner   scan.Scanner
	evaluator condition.Evaluator

	classes             map[string]*model.ConfigClass
	classOrder          []string
	knownSuperclasses   map[string]*model.ConfigClass
	stack               *importStack
	deferred            *deferredHandler
	propertySourceNames []string
}

// Candidate names one root unit to resolve.
type Candidate struct {
	Name     string
	BeanName string
}

// Result is the session's output for the registration stage. The mutated
// property-source chain lives on the session's environment.
type Result struct {
	// Classes holds the resolved records in completion order.
	Classes []*model.ConfigClass
	// Imports answers who imported whom.
	Imports *ImportRegistry
}

// NewParser creates a session from options, filling in defaults for the
// optional collaborators.
func NewParser(opts Options) *Parser {
	if opts.Source == nil {
		panic("resolve: Options.Source is required")
	}
	environ := opts.Environment
	if environ == nil {
		environ = env.New()
	}
	resources := opts.Resources
	if resources == nil {
		resources = resource.NewFileLoader(".")
	}
	registry := opts.Registry
	if registry == nil {
		registry = defs.NewRegistry()
	}
	scanner := opts.Scanner
	if scanner == nil {
		scanner = scan.NewSourceScanner(opts.Source, registry)
	}

	p := &Parser{
		src:               opts.Source,
		environ:           environ,
		resources:         resources,
		registry:          registry,
		scanner:           scanner,
		classes:           make(map[string]*model.ConfigClass),
		knownSuperclasses: make(map[string]*model.ConfigClass),
		stack:             newImportStack(),
	}
	p.evaluator = condition.NewEvaluator(opts.Conditions, &condition.Context{
		Environment: environ,
		Registry:    registry,
		Source:      opts.Source,
	})
	p.deferred = newDeferredHandler(p)
	return p
}

// Parse resolves a batch of candidates. Each candidate is processed in
// order, possibly reaching further units through members, scans, imports
// and superclasses; deferred selectors buffered along the way are drained
// once the batch completes. Failures abort the whole session.
func (p *Parser) Parse(ctx context.Context, candidates []Candidate) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuration resolution started.", "candidates", len(candidates))

	for _, cand := range candidates {
		unit, err := p.src.UnitFor(cand.Name)
		if err != nil {
			return nil, &ParseError{Unit: cand.Name, Err: err}
		}
		if err := p.processConfigClass(ctx, model.NewConfigClass(unit, cand.BeanName)); err != nil {
			return nil, wrapParseError(cand.Name, err)
		}
	}
	if err := p.deferred.process(ctx); err != nil {
		return nil, err
	}

	result := &Result{
		Classes: make([]*model.ConfigClass, 0, len(p.classOrder)),
		Imports: p.stack.ImportRegistry,
	}
	for _, name := range p.classOrder {
		result.Classes = append(result.Classes, p.classes[name])
	}
	logger.Debug("Configuration resolution finished.", "classes", len(result.Classes))
	return result, nil
}

// wrapParseError attaches the root candidate's identity once.
func wrapParseError(unit string, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Unit: unit, Err: err}
}

// processConfigClass runs the per-unit state machine. A unit vetoed by a
// parse-phase condition is dropped. A unit already resolved either merges
// into the existing record (both occurrences imported), loses to it (the
// existing one is explicit) or evicts it (the new one is explicit). The
// record is stored only after the unit and its whole superclass chain
// have been processed, so failed parses never leave partial records.
func (p *Parser) processConfigClass(ctx context.Context, cc *model.ConfigClass) error {
	if p.evaluator.ShouldSkip(cc.Unit, condition.PhaseParse) {
		ctxlog.FromContext(ctx).Debug("Skipping configuration unit by condition.", "unit", cc.Name())
		return nil
	}

	if existing, ok := p.classes[cc.Name()]; ok {
		if cc.Imported() {
			if existing.Imported() {
				existing.MergeImportedBy(cc)
			}
			// Otherwise the explicit record overrides the import.
			return nil
		}
		// Explicit declaration found, probably replacing an import.
		p.removeClass(existing)
	}

	cur := cc.Unit
	for cur != nil {
		next, err := p.doProcess(ctx, cc, cur)
		if err != nil {
			return err
		}
		cur = next
	}

	p.putClass(cc)
	return nil
}

// doProcess folds one source unit into the record and returns the
// superclass to continue with, or nil when the chain ends. The steps run
// in a fixed order that downstream behavior depends on: members, property
// sources, scans, imports, file imports, bean methods, interface default
// methods, superclass.
func (p *Parser) doProcess(ctx context.Context, cc *model.ConfigClass, cur *meta.Unit) (*meta.Unit, error) {
	if p.src.Annotated(cur, meta.AnnotationComponent) {
		if err := p.processMemberUnits(ctx, cc, cur); err != nil {
			return nil, err
		}
	}

	for _, ann := range cur.AnnotationsOf(meta.AnnotationPropertySource) {
		if err := p.processPropertySource(ctx, cur, ann); err != nil {
			return nil, err
		}
	}

	scanAnns := cur.AnnotationsOf(meta.AnnotationScan)
	if len(scanAnns) > 0 && !p.evaluator.ShouldSkip(cur, condition.PhaseRegister) {
		for _, ann := range scanAnns {
			if err := p.processScan(ctx, cur, ann); err != nil {
				return nil, err
			}
		}
	}

	if err := p.processImports(ctx, cc, cur, p.collectImports(ctx, cur), true); err != nil {
		return nil, err
	}

	for _, ann := range cur.AnnotationsOf(meta.AnnotationImportFiles) {
		reader := ann.String("reader")
		for _, location := range ann.StringList("locations") {
			resolved, err := p.environ.ResolveRequired(location)
			if err != nil {
				return nil, err
			}
			cc.AddFileImport(resolved, reader)
		}
	}

	for _, m := range p.retrieveBeanMethods(cur) {
		cc.AddMethod(model.BeanMethod{Name: m.Name, Returns: m.Returns, Declaring: cur})
	}

	if err := p.processInterfaces(ctx, cc, cur); err != nil {
		return nil, err
	}

	if super := cur.SuperName(); super != "" && !meta.IsReserved(super) {
		if _, known := p.knownSuperclasses[super]; !known {
			p.knownSuperclasses[super] = cc
			superUnit, err := p.src.UnitFor(super)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve superclass %q of unit %q: %w", super, cur.Name(), err)
			}
			return superUnit, nil
		}
	}
	return nil, nil
}

// processMemberUnits resolves nested units that are themselves
// configuration candidates, ordered by their core.order annotation with
// unordered ones last. Re-entering a unit already being expanded is a
// hard failure.
func (p *Parser) processMemberUnits(ctx context.Context, cc *model.ConfigClass, cur *meta.Unit) error {
	members, err := cur.Members()
	if err != nil {
		ctxlog.FromContext(ctx).Debug("Skipping unresolvable member units.", "unit", cur.Name(), "error", err)
		return nil
	}
	candidates := make([]*meta.Unit, 0, len(members))
	for _, member := range members {
		if meta.IsCandidate(p.src, member) && member.Name() != cc.Name() {
			candidates = append(candidates, member)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return unitOrder(candidates[i]) < unitOrder(candidates[j])
	})
	for _, candidate := range candidates {
		if p.stack.contains(cc.Name()) {
			return &CircularImportError{Offender: cc.Name(), Chain: p.stack.chain()}
		}
		p.stack.push(cc)
		err := p.processConfigClass(ctx, model.NewImportedConfigClass(candidate, cc))
		p.stack.pop()
		if err != nil {
			return err
		}
	}
	return nil
}

// unitOrder reads a unit's core.order value, defaulting to lowest
// precedence.
func unitOrder(u *meta.Unit) int {
	if ann, ok := u.Annotation(meta.AnnotationOrder); ok {
		if v, ok := ann.Int("value"); ok {
			return v
		}
	}
	return LowestPrecedence
}

// processScan delegates one core.scan directive to the scanner and
// recursively parses every returned definition that itself qualifies as a
// configuration candidate.
func (p *Parser) processScan(ctx context.Context, cur *meta.Unit, ann meta.Annotation) error {
	holders, err := p.scanner.Scan(ctx, scan.DirectiveFromAnnotation(ann, cur.Name()), cur.Name())
	if err != nil {
		return err
	}
	for _, holder := range holders {
		unit, err := p.src.UnitFor(holder.Def.UnitName)
		if err != nil {
			ctxlog.FromContext(ctx).Debug("Skipping unresolvable scanned unit.", "unit", holder.Def.UnitName, "error", err)
			continue
		}
		if meta.IsCandidate(p.src, unit) {
			if err := p.processConfigClass(ctx, model.NewConfigClass(unit, holder.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Parser) putClass(cc *model.ConfigClass) {
	if _, exists := p.classes[cc.Name()]; !exists {
		p.classOrder = append(p.classOrder, cc.Name())
	}
	p.classes[cc.Name()] = cc
}

// removeClass evicts a record and purges superclass bookkeeping pointing
// at it, so the replacing record can fold the same superclasses again.
func (p *Parser) removeClass(cc *model.ConfigClass) {
	delete(p.classes, cc.Name())
	for i, name := range p.classOrder {
		if name == cc.Name() {
			p.classOrder = append(p.classOrder[:i], p.classOrder[i+1:]...)
			break
		}
	}
	for super, owner := range p.knownSuperclasses {
		if owner.Name() == cc.Name() {
			delete(p.knownSuperclasses, super)
		}
	}
}
