package iterate

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vk/subgrid/internal/ctxlog"
	"github.com/vk/subgrid/internal/project"
)

// TaskFunc is the external task callback invoked once per unit. It blocks
// until the unit's task finishes; the controller imposes no timeout of its
// own and moves on only after the callback returns.
type TaskFunc func(ctx context.Context, desc *project.Descriptor, args []string) error

// RunResult summarizes one execution of a plan.
type RunResult struct {
	// RunID identifies this run in log output.
	RunID string
	// Total is the number of units in the plan.
	Total int
	// Completed is how many units finished successfully.
	Completed int
	// FailedUnit is the unit the run halted at, or empty on full success.
	FailedUnit string
	// Position is the 1-based plan position of FailedUnit.
	Position int
	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// Controller drives sequential execution of a plan through a task callback.
type Controller struct {
	outW io.Writer
}

// NewController creates a controller writing progress to outW.
func NewController(outW io.Writer) *Controller {
	return &Controller{outW: outW}
}

// Execute visits every unit of the plan in order, strictly one at a time:
// later units may depend on side effects of earlier ones, so no two
// callbacks ever overlap. On the first failure execution halts, completed
// units stand, and the resume directive an operator can re-run from that
// point with is printed. Cancellation of ctx halts at the next unit boundary
// the same way. The controller never retries on its own.
func (c *Controller) Execute(ctx context.Context, plan *Plan, reg *project.Registry, task TaskFunc) (*RunResult, error) {
	logger := ctxlog.FromContext(ctx)
	result := &RunResult{
		RunID: uuid.NewString(),
		Total: len(plan.Units),
	}
	began := time.Now()

	for i, name := range plan.Units[plan.cursor:] {
		position := plan.cursor + i + 1

		if err := ctx.Err(); err != nil {
			result.FailedUnit = name
			result.Position = position
			result.Elapsed = time.Since(began)
			c.reportHalt(result, plan, err)
			return result, &TaskFailure{Unit: name, Position: position, Total: result.Total, Err: err}
		}

		desc, ok := reg.Get(name)
		if !ok {
			// The plan was built from this registry; a miss is a bug.
			return result, fmt.Errorf("plan references unregistered subproject %q", name)
		}

		fmt.Fprintf(c.outW, "[%d/%d] %s\n", position, result.Total, name)
		logger.Info("Visiting subproject.",
			"run_id", result.RunID, "project", name, "position", position, "total", result.Total)

		if err := task(ctx, desc, plan.opts.TaskArgs); err != nil {
			result.FailedUnit = name
			result.Position = position
			result.Elapsed = time.Since(began)
			c.reportHalt(result, plan, err)
			return result, &TaskFailure{Unit: name, Position: position, Total: result.Total, Err: err}
		}

		result.Completed++
	}
	plan.cursor = len(plan.Units)

	result.Elapsed = time.Since(began)
	fmt.Fprintf(c.outW, "Completed %d subprojects in %s\n",
		result.Total, result.Elapsed.Round(time.Millisecond))
	logger.Info("Iteration finished.",
		"run_id", result.RunID, "completed", result.Completed, "elapsed", result.Elapsed)
	return result, nil
}

// reportHalt prints the failure position and the literal resume command.
func (c *Controller) reportHalt(result *RunResult, plan *Plan, cause error) {
	fmt.Fprintf(c.outW, "Halted at %s (%d/%d): %v\n",
		result.FailedUnit, result.Position, result.Total, cause)
	fmt.Fprintf(c.outW, "Resume with:\n  %s\n", ResumeCommand(plan.opts, result.FailedUnit))
}

// ResumeCommand renders the exact command line that re-runs the iteration
// from the given unit, preserving every other option of the original run.
func ResumeCommand(opts Options, start string) string {
	parts := []string{"subgrid", "iterate"}
	if opts.Subtree {
		parts = append(parts, "-subtree", "-project", opts.CurrentProject)
	}
	if opts.Select != "" {
		parts = append(parts, "-select", opts.Select)
	}
	for _, name := range opts.Skip {
		parts = append(parts, "-skip", name)
	}
	parts = append(parts, "-start", start, opts.Task)
	parts = append(parts, opts.TaskArgs...)
	return strings.Join(parts, " ")
}
