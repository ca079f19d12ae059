package web

import (
	"reflect"
	"time"

	"github.com/vk/confgraph/internal/meta"
)

// Module implements the meta.Module interface for this package.
type Module struct{}

// ServerConfig is the artifact behind the web.ServerConfig unit. The
// resolution engine only loads it; turning it into a running server is a
// later phase's job.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Register contributes the web configuration units to the source. The unit
// reads its defaults from config/web.properties when the file exists and
// records the route table as a file import for the registration phase.
func (m *Module) Register(src *meta.Source) {
	src.Register(&meta.Registration{
		Desc: &meta.Descriptor{
			Name: "web.ServerConfig",
			Kind: meta.KindUnit,
			Annotations: []meta.Annotation{
				meta.NewAnnotation(meta.AnnotationConfiguration),
				meta.NewAnnotation(meta.AnnotationPropertySource).
					WithString("name", "web").
					WithStrings("locations", "config/web.properties").
					WithBool("ignore_missing", true),
				meta.NewAnnotation(meta.AnnotationImportFiles).
					WithStrings("locations", "config/routes.conf").
					WithString("reader", "routes"),
			},
			Methods: map[string]meta.MethodSpec{
				"server":    {Name: "server", Returns: "web.Server"},
				"mux":       {Name: "mux", Returns: "web.Mux"},
				"accessLog": {Name: "accessLog", Returns: "web.AccessLog"},
			},
		},
		New:  func() any { return new(ServerConfig) },
		Type: reflect.TypeOf(ServerConfig{}),
	})
}
