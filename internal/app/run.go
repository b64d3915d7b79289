package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/subgrid/internal/checkout"
	"github.com/vk/subgrid/internal/ctxlog"
	"github.com/vk/subgrid/internal/iterate"
	"github.com/vk/subgrid/internal/lint"
	"github.com/vk/subgrid/internal/render"
	"github.com/vk/subgrid/internal/task"
)

// Run dispatches a resolved command against the loaded workspace.
func (a *App) Run(ctx context.Context, cmd *Command) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", cmd.Kind)

	switch cmd.Kind {
	case CommandIterate:
		return a.runIterate(ctx, cmd.Iterate)
	case CommandLint:
		return a.runLint()
	case CommandGraph:
		return a.runGraph(cmd.Graph)
	case CommandCheckout:
		return a.runCheckout(ctx, cmd.Checkout)
	case CommandList:
		for _, name := range a.graph.TopologicalOrder() {
			fmt.Fprintln(a.outW, name)
		}
		return nil
	}
	return fmt.Errorf("unhandled command kind %d", cmd.Kind)
}

func (a *App) runIterate(ctx context.Context, opts iterate.Options) error {
	plan, err := iterate.BuildPlan(ctx, a.graph, a.registry, a.config, opts)
	if err != nil {
		return err
	}
	a.logger.Info("Iteration plan ready.", "units", len(plan.Units), "task", opts.Task)

	controller := iterate.NewController(a.outW)
	_, err = controller.Execute(ctx, plan, a.registry, task.Shell(a.outW, a.errW, opts.Task))
	return err
}

func (a *App) runLint() error {
	report := lint.Check(a.registry)
	if report.Empty() {
		fmt.Fprintln(a.outW, "No dependency version conflicts found.")
		return nil
	}
	// Conflicts are advisory: render the table and still exit cleanly.
	return report.Render(a.outW)
}

func (a *App) runGraph(opts GraphOptions) error {
	if opts.Output == "" {
		return render.WriteDOT(a.outW, a.graph, a.registry)
	}
	f, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("cannot create graph output file: %w", err)
	}
	defer f.Close()
	if err := render.WriteDOT(f, a.graph, a.registry); err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "Wrote dependency graph to %s\n", opts.Output)
	return nil
}

func (a *App) runCheckout(ctx context.Context, opts CheckoutOptions) error {
	if opts.Remove {
		return checkout.Unlink(ctx, a.registry, opts.Project, opts.Dependency)
	}
	source := opts.Source
	if source == "" {
		def, ok := a.config.Checkouts[opts.Dependency]
		if !ok {
			return fmt.Errorf("no checkout source given and none configured for %q", opts.Dependency)
		}
		source = def.Source
	}
	return checkout.Link(ctx, a.registry, opts.Project, opts.Dependency, source)
}
