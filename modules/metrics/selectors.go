package metrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/confgraph/internal/defs"
	"github.com/vk/confgraph/internal/env"
	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/model"
	"github.com/vk/confgraph/internal/resolve"
)

var (
	_ resolve.Selector         = (*collectorSelector)(nil)
	_ resolve.DeferredSelector = (*exportersSelector)(nil)
	_ resolve.Group            = (*exportersGroup)(nil)
	_ model.Registrar          = (*infraRegistrar)(nil)
)

// exporterConfigs maps the exporter names accepted by metrics.Enable to the
// configuration units implementing them.
var exporterConfigs = map[string]string{
	"prometheus": "metrics.PrometheusConfig",
	"statsd":     "metrics.StatsdConfig",
}

// collectorSelector picks the collector wiring matching the mode declared
// on the importing unit's metrics.Enable annotation.
type collectorSelector struct{}

func (s *collectorSelector) SelectImports(_ context.Context, importer *meta.Unit) ([]string, error) {
	mode := "pull"
	if ann, ok := importer.Annotation(Enable); ok {
		if m := ann.String("mode"); m != "" {
			mode = m
		}
	}
	switch mode {
	case "pull":
		return []string{"metrics.PullCollectorConfig"}, nil
	case "push":
		return []string{"metrics.PushCollectorConfig"}, nil
	default:
		return nil, fmt.Errorf("unknown metrics mode %q declared by unit %q", mode, importer.Name())
	}
}

// exportersSelector expands the exporters requested by metrics.Enable. It
// runs deferred so every eagerly reachable unit is parsed before exporters
// are chosen, and it joins the shared exporters group so requests from
// several units collapse into one decision.
type exportersSelector struct {
	environ *env.Environment
}

func (s *exportersSelector) SetEnvironment(environ *env.Environment) { s.environ = environ }

func (s *exportersSelector) GroupName() string { return GroupName }

func (s *exportersSelector) SelectImports(_ context.Context, importer *meta.Unit) ([]string, error) {
	var requested []string
	if ann, ok := importer.Annotation(Enable); ok {
		requested = ann.StringList("exporters")
	}

	disabled := map[string]bool{}
	if s.environ != nil {
		if raw, ok := s.environ.PropertyString("metrics.exporters.disabled"); ok {
			for _, name := range strings.Split(raw, ",") {
				disabled[strings.TrimSpace(name)] = true
			}
		}
	}

	var out []string
	for _, name := range requested {
		if disabled[name] {
			continue
		}
		target, ok := exporterConfigs[name]
		if !ok {
			return nil, fmt.Errorf("unknown metrics exporter %q requested by unit %q", name, importer.Name())
		}
		out = append(out, target)
	}
	return out, nil
}

// exportersGroup merges exporter selections across every importing unit, so
// each exporter configuration is imported once no matter how many units
// request it. The first requester wins the attribution.
type exportersGroup struct {
	entries []resolve.GroupEntry
	seen    map[string]bool
}

func (g *exportersGroup) Process(ctx context.Context, importer *meta.Unit, selector resolve.Selector) error {
	targets, err := selector.SelectImports(ctx, importer)
	if err != nil {
		return err
	}
	if g.seen == nil {
		g.seen = make(map[string]bool)
	}
	for _, target := range targets {
		if g.seen[target] {
			continue
		}
		g.seen[target] = true
		g.entries = append(g.entries, resolve.GroupEntry{Importer: importer, Import: target})
	}
	return nil
}

func (g *exportersGroup) Entries(context.Context) []resolve.GroupEntry {
	if g.entries == nil {
		return []resolve.GroupEntry{}
	}
	return g.entries
}

// infraRegistrar contributes the collector's runtime definition straight to
// the registry. Registrar imports never become configuration records.
type infraRegistrar struct{}

func (r *infraRegistrar) Register(_ context.Context, importer *meta.Unit, reg *defs.Registry) error {
	if reg.Contains("metricsCollector") {
		return nil
	}
	reg.Register("metricsCollector", &defs.Definition{
		UnitName: "metrics.Collector",
		Role:     defs.RoleInfrastructure,
		Source:   importer.Name(),
	})
	return nil
}
