package metrics

import (
	"reflect"
	"time"

	"github.com/vk/confgraph/internal/meta"
)

// Module implements the meta.Module interface for this package.
type Module struct{}

// Enable is the annotation users attach to a configuration unit to turn the
// metrics machinery on. Attributes: mode ("pull" or "push", default "pull")
// and exporters (list of exporter names, see exporterConfigs).
const Enable = "metrics.Enable"

// GroupName is the deferred-import group shared by exporter selectors.
const GroupName = "metrics.exporters"

// PrometheusConfig is the artifact behind metrics.PrometheusConfig.
type PrometheusConfig struct {
	Path      string
	Namespace string
}

// StatsdConfig is the artifact behind metrics.StatsdConfig.
type StatsdConfig struct {
	Addr          string
	FlushInterval time.Duration
}

// CollectorConfig is the artifact behind both collector units.
type CollectorConfig struct {
	Interval time.Duration
}

// Register contributes the metrics units to the source: the Enable
// annotation, the selectors and registrar it imports, the exporter group,
// and the configuration units the selectors resolve to.
func (m *Module) Register(src *meta.Source) {
	src.Register(&meta.Registration{
		Desc: &meta.Descriptor{
			Name: Enable,
			Kind: meta.KindAnnotation,
			Annotations: []meta.Annotation{
				meta.NewAnnotation(meta.AnnotationImport).WithStrings("value",
					"metrics.CollectorSelector",
					"metrics.ExportersSelector",
					"metrics.Registrar",
				),
			},
		},
	})

	src.Register(&meta.Registration{
		Desc: &meta.Descriptor{Name: "metrics.CollectorSelector", Kind: meta.KindUnit},
		New:  func() any { return new(collectorSelector) },
		Type: reflect.TypeOf(collectorSelector{}),
	})
	src.Register(&meta.Registration{
		Desc: &meta.Descriptor{
			Name: "metrics.ExportersSelector",
			Kind: meta.KindUnit,
			Annotations: []meta.Annotation{
				meta.NewAnnotation(meta.AnnotationOrder).WithNumber("value", 10),
			},
		},
		New:  func() any { return new(exportersSelector) },
		Type: reflect.TypeOf(exportersSelector{}),
	})
	src.Register(&meta.Registration{
		Desc: &meta.Descriptor{Name: "metrics.Registrar", Kind: meta.KindUnit},
		New:  func() any { return new(infraRegistrar) },
		Type: reflect.TypeOf(infraRegistrar{}),
	})
	src.RegisterGroup(GroupName, func() any { return new(exportersGroup) })

	src.Register(&meta.Registration{
		Desc: &meta.Descriptor{
			Name:        "metrics.PullCollectorConfig",
			Kind:        meta.KindUnit,
			Annotations: []meta.Annotation{meta.NewAnnotation(meta.AnnotationConfiguration)},
			Methods: map[string]meta.MethodSpec{
				"collector":      {Name: "collector", Returns: "metrics.Collector"},
				"scrapeEndpoint": {Name: "scrapeEndpoint", Returns: "web.Handler"},
			},
		},
		New:  func() any { return new(CollectorConfig) },
		Type: reflect.TypeOf(CollectorConfig{}),
	})
	src.Register(&meta.Registration{
		Desc: &meta.Descriptor{
			Name:        "metrics.PushCollectorConfig",
			Kind:        meta.KindUnit,
			Annotations: []meta.Annotation{meta.NewAnnotation(meta.AnnotationConfiguration)},
			Methods: map[string]meta.MethodSpec{
				"collector": {Name: "collector", Returns: "metrics.Collector"},
				"pusher":    {Name: "pusher", Returns: "metrics.Pusher"},
			},
		},
		New:  func() any { return new(CollectorConfig) },
		Type: reflect.TypeOf(CollectorConfig{}),
	})
	src.Register(&meta.Registration{
		Desc: &meta.Descriptor{
			Name:        "metrics.PrometheusConfig",
			Kind:        meta.KindUnit,
			Annotations: []meta.Annotation{meta.NewAnnotation(meta.AnnotationConfiguration)},
			Methods: map[string]meta.MethodSpec{
				"prometheusExporter": {Name: "prometheusExporter", Returns: "metrics.Exporter"},
			},
		},
		New:  func() any { return new(PrometheusConfig) },
		Type: reflect.TypeOf(PrometheusConfig{}),
	})
	src.Register(&meta.Registration{
		Desc: &meta.Descriptor{
			Name:        "metrics.StatsdConfig",
			Kind:        meta.KindUnit,
			Annotations: []meta.Annotation{meta.NewAnnotation(meta.AnnotationConfiguration)},
			Methods: map[string]meta.MethodSpec{
				"statsdExporter": {Name: "statsdExporter", Returns: "metrics.Exporter"},
			},
		},
		New:  func() any { return new(StatsdConfig) },
		Type: reflect.TypeOf(StatsdConfig{}),
	})
}
