package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/confgraph/internal/ctxlog"
	"github.com/vk/confgraph/internal/defs"
	"github.com/vk/confgraph/internal/env"
	"github.com/vk/confgraph/internal/manifest"
	"github.com/vk/confgraph/internal/meta"
	"github.com/vk/confgraph/internal/resource"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	src       *meta.Source
	environ   *env.Environment
	registry  *defs.Registry
	resources resource.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, metadata source,
// environment and registry. Failures to assemble that state are fatal
// startup errors and panic; the entrypoint recovers them into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader *manifest.Loader, modules ...meta.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	src := meta.NewSource()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(src)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := loader.Load(ctx, src, appConfig.UnitPaths...); err != nil {
		panic(fmt.Errorf("failed to load unit manifests: %w", err))
	}
	logger.Debug("Unit manifests loaded.", "paths", appConfig.UnitPaths)

	if err := src.Validate(ctx); err != nil {
		// Drift between a unit's Go registration and its manifest twin is a
		// programmer error.
		panic(err)
	}
	logger.Debug("Source validation passed.")

	environ := env.NewStandard()
	resources := resource.NewFileLoader(appConfig.BasePath)
	if err := loadProps(ctx, environ, resources, appConfig.Props); err != nil {
		panic(fmt.Errorf("failed to load property files: %w", err))
	}

	return &App{
		outW:      outW,
		logger:    logger,
		config:    appConfig,
		src:       src,
		environ:   environ,
		registry:  defs.NewRegistry(),
		resources: resources,
	}
}

// loadProps reads the command-line property files into the chain. Each file
// is added at the front, so later files win over earlier ones and all of
// them win over the OS environment.
func loadProps(ctx context.Context, environ *env.Environment, resources resource.Loader, locations []string) error {
	for _, location := range locations {
		res, err := resources.Get(ctx, location)
		if err != nil {
			return err
		}
		src, err := env.ReadSource(location, res, "")
		if err != nil {
			return err
		}
		environ.Chain().AddFirst(src)
	}
	return nil
}

// Source returns the application's metadata source. Primarily for testing.
func (a *App) Source() *meta.Source { return a.src }

// Environment returns the application's environment. Primarily for testing.
func (a *App) Environment() *env.Environment { return a.environ }

// Registry returns the application's definition registry. Primarily for
// testing.
func (a *App) Registry() *defs.Registry { return a.registry }
