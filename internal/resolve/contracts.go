package resolve

import (
	"context"
	"math"

	"github.com/vk/confgraph/internal/defs"
	"github.com/vk/confgraph/internal/env"
	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/resource"
)

// Selector computes import targets programmatically. When an import
// candidate's loaded artifact implements Selector, the engine calls
// SelectImports with the metadata of the unit that declared the import and
// expands the returned names as further import candidates.
type Selector interface {
	SelectImports(ctx context.Context, importer *meta.Unit) ([]string, error)
}

// DeferredSelector is a Selector whose selection is postponed until every
// eagerly reachable unit has been parsed, so its decision can depend on
// the complete picture.
type DeferredSelector interface {
	Selector

	// GroupName names the registered group that coordinates this
	// selector's entries. Empty means the selector forms a group of its
	// own.
	GroupName() string
}

// Group coordinates the deferred selectors sharing a group name. The
// engine calls Process once per selector, in registration order, and then
// Entries exactly once.
type Group interface {
	// Process lets the group observe one selector. importer is the
	// metadata of the unit that declared the selector's import.
	Process(ctx context.Context, importer *meta.Unit, selector Selector) error

	// Entries returns the imports the group decided on. Implementations
	// must return an empty slice, never nil, when there is nothing to
	// import; a nil return is treated as a broken implementation.
	Entries(ctx context.Context) []GroupEntry
}

// GroupEntry is one import produced by a Group, attributed to the unit
// that declared the selector it came from.
type GroupEntry struct {
	Importer *meta.Unit
	Import   string
}

// Ordered lets a deferred selector declare its precedence for the drain
// pass. Lower values are processed earlier. Selectors without it sort by
// their unit's core.order annotation, or last.
type Ordered interface {
	Order() int
}

// LowestPrecedence is the order assigned to selectors that declare none.
const LowestPrecedence = math.MaxInt

// Awareness interfaces. The engine injects collaborators into freshly
// loaded selectors, registrars and groups that implement them, in the
// order listed here.
type (
	SourceAware interface {
		SetSource(src *meta.Source)
	}
	RegistryAware interface {
		SetRegistry(reg *defs.Registry)
	}
	EnvironmentAware interface {
		SetEnvironment(environ *env.Environment)
	}
	ResourcesAware interface {
		SetResources(loader resource.Loader)
	}
)
