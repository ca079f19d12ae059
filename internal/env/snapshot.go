package env

import (
	"fmt"

	"dario.cat/mergo"
)

// Snapshot deep-merges the nested views of every map-backed source into one
// document, respecting chain precedence: later (weaker) sources are applied
// first and stronger ones override them. Sources without a nested view,
// such as the OS environment, do not contribute.
func (e *Environment) Snapshot() (map[string]any, error) {
	out := make(map[string]any)
	sources := e.chain.Sources()
	for i := len(sources) - 1; i >= 0; i-- {
		if err := mergeNested(&out, sources[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func mergeNested(out *map[string]any, s Source) error {
	if composite, ok := s.(*Composite); ok {
		members := composite.Sources()
		for i := len(members) - 1; i >= 0; i-- {
			if err := mergeNested(out, members[i]); err != nil {
				return err
			}
		}
		return nil
	}
	nested, ok := s.(Nested)
	if !ok {
		return nil
	}
	if err := mergo.Merge(out, nested.NestedValues(), mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge property source %q into snapshot: %w", s.Name(), err)
	}
	return nil
}
