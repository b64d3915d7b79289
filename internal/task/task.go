// Package task provides the default task callback: shelling into each
// subproject's own build tooling inside its root directory.
package task

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/vk/subgrid/internal/ctxlog"
	"github.com/vk/subgrid/internal/iterate"
	"github.com/vk/subgrid/internal/project"
)

// Shell returns a TaskFunc that runs the named tool with the given arguments
// in the unit's root directory, with the parent environment and output
// streamed to the given writers. The command is bound to ctx, so an operator
// interrupt kills the child process rather than orphaning it.
func Shell(outW, errW io.Writer, tool string) iterate.TaskFunc {
	return func(ctx context.Context, desc *project.Descriptor, args []string) error {
		logger := ctxlog.FromContext(ctx)
		logger.Debug("Running task in subproject root.", "tool", tool, "args", args, "dir", desc.Root)

		cmd := exec.CommandContext(ctx, tool, args...)
		cmd.Dir = desc.Root
		cmd.Env = os.Environ()
		cmd.Stdout = outW
		cmd.Stderr = errW

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s failed in %s: %w", tool, desc.Root, err)
		}
		return nil
	}
}
