package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/subgrid/internal/config"
	"github.com/vk/subgrid/internal/ctxlog"
	"github.com/vk/subgrid/internal/depgraph"
	"github.com/vk/subgrid/internal/project"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: the loaded workspace model, the discovered registry, and the
// validated dependency graph, all immutable for the run's duration.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	config   *config.Model
	registry *project.Registry
	graph    *depgraph.Graph
	root     string
}

// NewApp is the constructor for the main application. It loads the
// workspace configuration, discovers the subproject registry, and builds
// the dependency graph; any failure there is fatal for the invocation and
// returned to the boundary rather than terminating the process from here.
func NewApp(outW, errW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := config.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace configuration: %w", err)
	}

	root := filepath.Dir(appConfig.ConfigPath)
	registry, err := project.Discover(ctx, root, model.ProjectDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to discover subprojects: %w", err)
	}
	logger.Debug("Subproject registry populated.", "count", registry.Len())

	graph, err := depgraph.Build(ctx, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	logger.Debug("Dependency graph built.", "node_count", graph.Len())

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		config:   model,
		registry: registry,
		graph:    graph,
		root:     root,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *project.Registry {
	return a.registry
}

// Graph returns the application's dependency graph. This is primarily for testing.
func (a *App) Graph() *depgraph.Graph {
	return a.graph
}
