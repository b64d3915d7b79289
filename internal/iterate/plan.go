package iterate

import (
	"context"
	"fmt"

	"github.com/vk/subgrid/internal/config"
	"github.com/vk/subgrid/internal/ctxlog"
	"github.com/vk/subgrid/internal/depgraph"
	"github.com/vk/subgrid/internal/project"
	"github.com/vk/subgrid/internal/selector"
)

// Plan is the concrete ordered visitation sequence for one run, plus a
// cursor advanced during execution. Plans are built fresh per invocation and
// discarded afterwards; nothing persists between runs.
type Plan struct {
	Units []string

	opts   Options
	cursor int
}

// Options returns the options the plan was built with, for resume reporting.
func (p *Plan) Options() Options {
	return p.opts
}

// BuildPlan composes the graph's topological order with the requested
// restrictions into a concrete plan. Filters apply in a fixed precedence:
// subtree and skip and selector narrow the candidate *set* while the
// graph-determined order is preserved, then start trims a prefix of the
// already-filtered sequence. An empty result is an AbortError.
func BuildPlan(ctx context.Context, g *depgraph.Graph, reg *project.Registry, cfg *config.Model, opts Options) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	candidates := g.TopologicalOrder()
	logger.Debug("Plan: full topological order computed.", "count", len(candidates))

	if opts.Subtree {
		closure, err := g.SubtreeFrom(opts.CurrentProject)
		if err != nil {
			return nil, fmt.Errorf("cannot restrict iteration to subtree: %w", err)
		}
		candidates = retain(candidates, func(name string) bool {
			_, ok := closure[name]
			return ok
		})
		logger.Debug("Plan: restricted to subtree.", "root", opts.CurrentProject, "count", len(candidates))
	}

	if len(opts.Skip) > 0 {
		skipped := make(map[string]struct{}, len(opts.Skip))
		for _, name := range opts.Skip {
			skipped[name] = struct{}{}
		}
		candidates = retain(candidates, func(name string) bool {
			_, ok := skipped[name]
			return !ok
		})
		logger.Debug("Plan: removed skipped subprojects.", "count", len(candidates))
	}

	if opts.Select != "" {
		sel, err := selector.Resolve(opts.Select, cfg.Selectors)
		if err != nil {
			return nil, err
		}
		candidates = retain(candidates, func(name string) bool {
			desc, ok := reg.Get(name)
			return ok && sel.Matches(desc)
		})
		logger.Debug("Plan: applied selector.", "selector", opts.Select, "count", len(candidates))
	}

	if opts.Start != "" {
		at := -1
		for i, name := range candidates {
			if name == opts.Start {
				at = i
				break
			}
		}
		if at < 0 {
			return nil, &NotFoundError{Start: opts.Start}
		}
		candidates = candidates[at:]
		logger.Debug("Plan: applied start cut.", "start", opts.Start, "count", len(candidates))
	}

	if len(candidates) == 0 {
		return nil, &AbortError{}
	}

	return &Plan{Units: candidates, opts: opts}, nil
}

// retain filters the ordered candidates in place, preserving order.
func retain(candidates []string, keep func(string) bool) []string {
	out := candidates[:0]
	for _, name := range candidates {
		if keep(name) {
			out = append(out, name)
		}
	}
	return out
}
