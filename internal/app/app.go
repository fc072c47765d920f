package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/lazykit/internal/component"
	"github.com/vk/lazykit/internal/config"
	"github.com/vk/lazykit/internal/ctxlog"
	"github.com/vk/lazykit/internal/dom"
	"github.com/vk/lazykit/internal/engine"
	"github.com/vk/lazykit/internal/htmldoc"
	"github.com/vk/lazykit/internal/registry"
)

// App encapsulates the page runner's dependencies, configuration, and
// lifecycle: a parsed page, a populated registry, and an engine over both.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	doc      *dom.MemoryDocument
	host     *logHost
	registry *registry.Registry
	engine   *engine.Engine
}

// NewApp is the constructor for the page runner. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Configuration and page errors at this stage are fatal startup errors, so
// it panics; entrypoints recover and translate the panic into an exit code.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model := &config.Model{Engine: config.Default()}
	if appConfig.ConfigPath != "" {
		loaded, err := loader.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		model = loaded
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	doc, err := htmldoc.ParseFile(appConfig.PagePath)
	if err != nil {
		panic(fmt.Errorf("failed to load page: %w", err))
	}
	logger.Debug("Page parsed.", "path", appConfig.PagePath)

	reg := registry.New()
	for _, def := range model.Components {
		def := def
		reg.Register(ctx, def.Name, func(context.Context) (*component.Module, error) {
			return moduleFromDefinition(def), nil
		})
	}
	logger.Debug("Registry populated from config model.", "components", len(model.Components))

	h := newLogHost(logger)
	eng, err := engine.New(model.Engine, doc, h, engine.Options{
		Registry: reg,
		Importer: newManifestImporter(model.Components),
	})
	if err != nil {
		panic(fmt.Errorf("failed to create engine: %w", err))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		doc:      doc,
		host:     h,
		registry: reg,
		engine:   eng,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Engine returns the application's engine. This is primarily for testing.
func (a *App) Engine() *engine.Engine {
	return a.engine
}
