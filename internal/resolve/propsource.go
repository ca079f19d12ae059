package resolve

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/vk/confgraph/internal/ctxlog"
	"github.com/vk/confgraph/internal/env"
	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/resource"
)

// processPropertySource applies one core.propertysource directive. Each
// location is placeholder-resolved, fetched and parsed into a property
// source, then merged into the environment's chain. Missing resources and
// unresolvable placeholders fail the parse unless the directive sets
// ignore_missing, in which case the location is logged and skipped.
func (p *Parser) processPropertySource(ctx context.Context, declaring *meta.Unit, ann meta.Annotation) error {
	logger := ctxlog.FromContext(ctx)

	locations := ann.StringList("locations")
	if len(locations) == 0 {
		return fmt.Errorf("unit %q declares a property source without locations", declaring.Name())
	}
	name := ann.String("name")
	format := ann.String("format")
	ignoreMissing := ann.Bool("ignore_missing")

	for _, location := range locations {
		src, err := p.readPropertySource(ctx, name, location, format)
		if err != nil {
			var unresolved *env.UnresolvedPlaceholderError
			var notFound *resource.NotFoundError
			if ignoreMissing && (errors.As(err, &unresolved) || errors.As(err, &notFound)) {
				logger.Info("Property source location not found, ignoring.", "location", location, "error", err)
				continue
			}
			return err
		}
		if err := p.addPropertySource(src); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) readPropertySource(ctx context.Context, name, location, format string) (env.Source, error) {
	resolved, err := p.environ.ResolveRequired(location)
	if err != nil {
		return nil, err
	}
	res, err := p.resources.Get(ctx, resolved)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = resolved
	}
	return env.ReadSource(name, res, format)
}

// addPropertySource merges a parsed source into the environment's chain.
// A name seen before extends the existing source in place: the chain entry
// becomes a composite with the newest content first. The first name ever
// added goes to the chain's tail; every later new name is inserted
// directly before the most recently added one, so later declarations end
// up with higher precedence without displacing the first entry's tail
// position.
func (p *Parser) addPropertySource(src env.Source) error {
	name := src.Name()
	chain := p.environ.Chain()

	if slices.Contains(p.propertySourceNames, name) {
		if existing, ok := chain.Get(name); ok {
			if composite, ok := existing.(*env.Composite); ok {
				composite.AddFirst(src)
				return nil
			}
			return chain.Replace(name, env.NewComposite(name, src, existing))
		}
	}

	if len(p.propertySourceNames) == 0 {
		chain.AddLast(src)
	} else {
		lastAdded := p.propertySourceNames[len(p.propertySourceNames)-1]
		if err := chain.AddBefore(lastAdded, src); err != nil {
			return err
		}
	}
	p.propertySourceNames = append(p.propertySourceNames, name)
	return nil
}
