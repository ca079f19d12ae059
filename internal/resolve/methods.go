package resolve

import (
	"context"
	"fmt"

	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/model"
)

// retrieveBeanMethods returns a unit's bean methods in declaration order.
// Live units enumerate methods in map order, which is nondeterministic, so
// when more than one method exists the manifest's declared order is
// consulted as the authoritative source. The unordered set is kept only
// when the declared order does not cover every method found.
func (p *Parser) retrieveBeanMethods(unit *meta.Unit) []meta.MethodSpec {
	methods := unit.Methods()
	if len(methods) > 1 && unit.Live() {
		declared := p.src.DeclaredOrder(unit.Name())
		if len(declared) >= len(methods) {
			selected := make([]meta.MethodSpec, 0, len(methods))
			for _, name := range declared {
				for _, m := range methods {
					if m.Name == name {
						selected = append(selected, m)
						break
					}
				}
			}
			if len(selected) == len(methods) {
				methods = selected
			}
		}
	}
	return methods
}

// processInterfaces folds default methods declared on a unit's interfaces
// into the record, recursing into super-interfaces. Abstract methods are
// contracts for the implementing unit, not producers, and are left out.
func (p *Parser) processInterfaces(ctx context.Context, cc *model.ConfigClass, unit *meta.Unit) error {
	for _, name := range unit.InterfaceNames() {
		iface, err := p.src.UnitFor(name)
		if err != nil {
			return fmt.Errorf("failed to resolve interface %q of unit %q: %w", name, unit.Name(), err)
		}
		for _, m := range p.retrieveBeanMethods(iface) {
			if !m.Abstract {
				cc.AddMethod(model.BeanMethod{Name: m.Name, Returns: m.Returns, Declaring: iface})
			}
		}
		if err := p.processInterfaces(ctx, cc, iface); err != nil {
			return err
		}
	}
	return nil
}
