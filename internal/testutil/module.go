package testutil

import "github.com/vk/confgraph/internal/meta"

// StaticModule is a meta.Module assembled from literal registrations, so
// integration tests can contribute live units and deferred-import groups
// without declaring a real module package.
type StaticModule struct {
	Registrations []*meta.Registration
	Groups        map[string]func() any
}

// Register implements meta.Module.
func (m *StaticModule) Register(src *meta.Source) {
	for _, reg := range m.Registrations {
		src.Register(reg)
	}
	for name, factory := range m.Groups {
		src.RegisterGroup(name, factory)
	}
}
