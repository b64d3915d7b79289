package depgraph

import (
	"context"

	"github.com/vk/subgrid/internal/ctxlog"
	"github.com/vk/subgrid/internal/project"
)

// Build constructs a validated dependency graph from a registry.
//
// Each descriptor's declared dependency names are intersected with the set
// of registered names: a dependency on another subproject becomes an edge, a
// dependency on an external library does not (it stays on the descriptor for
// linting). The topological order is computed here too, so a cyclic
// workspace fails at construction with a CycleError and no later operation
// has to handle an invalid graph.
func Build(ctx context.Context, reg *project.Registry) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")

	deps := make(map[string]map[string]struct{}, reg.Len())
	for _, name := range reg.Names() {
		desc, _ := reg.Get(name)
		edges := make(map[string]struct{})
		for _, dep := range desc.Dependencies {
			if reg.Has(dep.Name) {
				edges[dep.Name] = struct{}{}
			}
		}
		deps[name] = edges
	}
	logger.Debug("Build: Adjacency construction complete.", "node_count", len(deps))

	order, err := topoSort(deps)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: Topological ordering complete.")

	return &Graph{deps: deps, order: order}, nil
}
