package meta

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/confgraph/internal/ctxlog"
)

// Validate performs a strict parity check over dual-declared units: every
// unit present in both the live registry and a manifest must declare the
// same method set on both sides. The manifest is what gives a live unit a
// deterministic method order, so a drift between the two backings is a
// configuration error worth failing fast on.
func (s *Source) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	checked := 0
	for name, reg := range s.registered {
		decl, ok := s.declared[name]
		if !ok {
			continue
		}
		checked++

		for methodName := range reg.Desc.Methods {
			if _, ok := decl.Methods[methodName]; !ok {
				errs = append(errs, fmt.Sprintf("unit '%s': Go registration declares method '%s' which is not in the manifest", name, methodName))
			}
		}
		for methodName := range decl.Methods {
			if _, ok := reg.Desc.Methods[methodName]; !ok {
				errs = append(errs, fmt.Sprintf("unit '%s': manifest declares method '%s' which is not in the Go registration", name, methodName))
			}
		}

		if decl.Extends != reg.Desc.Extends {
			errs = append(errs, fmt.Sprintf("unit '%s': manifest extends '%s' but Go registration extends '%s'", name, decl.Extends, reg.Desc.Extends))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("source validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Source validation passed.", "dual_declared_units", checked)
	return nil
}
