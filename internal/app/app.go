package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/vk/framegridgo/internal/config"
	"github.com/vk/framegridgo/internal/ctxlog"
	"github.com/vk/framegridgo/internal/registry"
	"github.com/vk/framegridgo/modules"
)

// App encapsulates the application's dependencies, configuration and node
// instances.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	cfg       *Config
	registry  *registry.Registry
	converter config.Converter
	env       *registry.Env

	mu   sync.Mutex
	deps map[string]any
}

// NewApp is the constructor for the main application. It loads the node
// manifests from manifests (the embedded set when nil) plus the optional
// cfg.ManifestsPath overrides, registers the Go modules (the core set when
// none are given) and validates that both sides agree.
//
// Manifest and registry problems are programmer errors, so NewApp panics.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, manifests fs.FS, mods ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if manifests == nil {
		manifests = modules.Manifests
	}
	model, converter, err := loader.Load(ctx, manifests)
	if err != nil {
		panic(fmt.Errorf("failed to load manifests: %w", err))
	}
	if cfg.ManifestsPath != "" {
		overrides, _, err := loader.Load(ctx, os.DirFS(cfg.ManifestsPath))
		if err != nil {
			panic(fmt.Errorf("failed to load manifests from %s: %w", cfg.ManifestsPath, err))
		}
		model.Merge(overrides)
		logger.Debug("Merged manifest overrides.", "path", cfg.ManifestsPath, "nodes", len(overrides.Nodes))
	}

	reg := registry.New()
	if len(mods) == 0 {
		mods = coreModules
	}
	for _, mod := range mods {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(mods))

	reg.PopulateDefinitionsFromModel(model)
	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.", "nodes", len(reg.DefinitionRegistry))

	return &App{
		outW:      outW,
		logger:    logger,
		cfg:       cfg,
		registry:  reg,
		converter: converter,
		env:       &registry.Env{Assets: cfg.Assets.Library(), Clock: time.Now},
		deps:      make(map[string]any),
	}
}

// Registry returns the application's registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Catalog returns every node definition ordered by category, then key.
func (a *App) Catalog() []*config.NodeDefinition {
	return a.registry.Catalog()
}

// instanceDeps returns the deps object of a node key, creating it on first
// use. The same object is handed to every invocation of that key.
func (a *App) instanceDeps(key string, handler *registry.RegisteredNode) any {
	a.mu.Lock()
	defer a.mu.Unlock()
	if d, ok := a.deps[key]; ok {
		return d
	}
	if handler.NewDeps == nil {
		return nil
	}
	d := handler.NewDeps(a.env)
	a.deps[key] = d
	return d
}
