package app

import (
	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/modules/metrics"
	"github.com/vk/confgraph/modules/web"
)

// coreModules is the definitive list of all modules that are compiled into
// the confgraph binary.
var coreModules = []meta.Module{
	&web.Module{},
	&metrics.Module{},
}
