package resolve

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/confgraph/internal/ctxlog"
	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/model"
)

// deferredHolder pairs a buffered selector with the record that declared
// it and the unit the selector was loaded from.
type deferredHolder struct {
	class    *model.ConfigClass
	unit     *meta.Unit
	selector DeferredSelector
}

// deferredHandler buffers deferred selectors during the main parse pass.
// A nil buffer marks the drain in progress; a selector arriving then is
// processed immediately through a one-off grouping pass instead of being
// buffered past the drain.
type deferredHandler struct {
	p       *Parser
	holders []*deferredHolder
}

func newDeferredHandler(p *Parser) *deferredHandler {
	return &deferredHandler{p: p, holders: make([]*deferredHolder, 0)}
}

func (d *deferredHandler) handle(ctx context.Context, class *model.ConfigClass, unit *meta.Unit, selector DeferredSelector) error {
	holder := &deferredHolder{class: class, unit: unit, selector: selector}
	if d.holders == nil {
		handler := newGroupingHandler(d.p)
		if err := handler.register(holder); err != nil {
			return err
		}
		return handler.processGroupImports(ctx)
	}
	d.holders = append(d.holders, holder)
	return nil
}

// process drains the buffer: sorts the snapshot by precedence, registers
// every holder into its group and expands each group's entries. A fresh
// buffer is installed on the way out so a nested drain still has
// somewhere to land afterwards.
func (d *deferredHandler) process(ctx context.Context) error {
	holders := d.holders
	d.holders = nil
	defer func() { d.holders = make([]*deferredHolder, 0) }()

	if len(holders) == 0 {
		return nil
	}
	ctxlog.FromContext(ctx).Debug("Processing deferred import selectors.", "count", len(holders))

	sort.SliceStable(holders, func(i, j int) bool {
		return holderOrder(holders[i]) < holderOrder(holders[j])
	})
	handler := newGroupingHandler(d.p)
	for _, holder := range holders {
		if err := handler.register(holder); err != nil {
			return err
		}
	}
	return handler.processGroupImports(ctx)
}

// holderOrder resolves a holder's precedence: the selector's own Order
// method wins, then a core.order annotation on the selector's unit, then
// LowestPrecedence.
func holderOrder(h *deferredHolder) int {
	if o, ok := h.selector.(Ordered); ok {
		return o.Order()
	}
	if ann, ok := h.unit.Annotation(meta.AnnotationOrder); ok {
		if v, ok := ann.Int("value"); ok {
			return v
		}
	}
	return LowestPrecedence
}

// groupingHandler accumulates one pass worth of groups. Selectors sharing
// a group name feed one group instance; selectors without a group each
// form their own.
type groupingHandler struct {
	p         *Parser
	groupings map[any]*grouping
	keys      []any
	classes   map[string]*model.ConfigClass
}

func newGroupingHandler(p *Parser) *groupingHandler {
	return &groupingHandler{
		p:         p,
		groupings: make(map[any]*grouping),
		classes:   make(map[string]*model.ConfigClass),
	}
}

func (h *groupingHandler) register(holder *deferredHolder) error {
	groupName := holder.selector.GroupName()
	var key any = groupName
	if groupName == "" {
		key = holder
	}
	g, ok := h.groupings[key]
	if !ok {
		group, err := h.p.createGroup(groupName)
		if err != nil {
			return err
		}
		g = &grouping{name: groupLabel(groupName, holder), group: group}
		h.groupings[key] = g
		h.keys = append(h.keys, key)
	}
	g.holders = append(g.holders, holder)
	h.classes[holder.class.Name()] = holder.class
	return nil
}

// processGroupImports expands every group's entries, in group
// registration order, attributing each entry to the record that declared
// the selector it came from.
func (h *groupingHandler) processGroupImports(ctx context.Context) error {
	for _, key := range h.keys {
		g := h.groupings[key]
		entries, err := g.imports(ctx)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			declaring, ok := h.classes[entry.Importer.Name()]
			if !ok {
				return fmt.Errorf("deferred import group %s yielded an entry for unknown unit %q", g.name, entry.Importer.Name())
			}
			if err := h.p.processImports(ctx, declaring, declaring.Unit, []string{entry.Import}, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// grouping is one live group accumulator and its registered holders.
type grouping struct {
	name    string
	group   Group
	holders []*deferredHolder
}

// imports runs the two-phase contract: Process per holder in registration
// order, then Entries exactly once.
func (g *grouping) imports(ctx context.Context) ([]GroupEntry, error) {
	for _, h := range g.holders {
		if err := g.group.Process(ctx, h.class.Unit, h.selector); err != nil {
			return nil, fmt.Errorf("deferred import group %s failed: %w", g.name, err)
		}
	}
	entries := g.group.Entries(ctx)
	if entries == nil {
		return nil, &GroupContractError{Group: g.name}
	}
	return entries, nil
}

func groupLabel(groupName string, holder *deferredHolder) string {
	if groupName != "" {
		return groupName
	}
	return fmt.Sprintf("%T", holder.selector)
}

// createGroup builds the accumulator for a group name. The empty name
// yields the default group, which runs each selector independently.
func (p *Parser) createGroup(name string) (Group, error) {
	if name == "" {
		return &defaultGroup{entries: make([]GroupEntry, 0)}, nil
	}
	factory, ok := p.src.GroupFactory(name)
	if !ok {
		return nil, fmt.Errorf("deferred import group %q is not registered", name)
	}
	instance := factory()
	group, ok := instance.(Group)
	if !ok {
		return nil, fmt.Errorf("deferred import group %q factory returned %T, which does not implement the group contract", name, instance)
	}
	p.injectAware(group)
	return group, nil
}

// defaultGroup collects each selector's targets in selection order.
type defaultGroup struct {
	entries []GroupEntry
}

func (g *defaultGroup) Process(ctx context.Context, importer *meta.Unit, selector Selector) error {
	targets, err := selector.SelectImports(ctx, importer)
	if err != nil {
		return err
	}
	for _, target := range targets {
		g.entries = append(g.entries, GroupEntry{Importer: importer, Import: target})
	}
	return nil
}

func (g *defaultGroup) Entries(context.Context) []GroupEntry {
	return g.entries
}
