// Package checkout manages local checkout overrides: a dependency inside a
// consuming subproject is replaced with a symlink to a sibling working copy,
// so an operator can iterate against unreleased local changes.
package checkout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/subgrid/internal/ctxlog"
	"github.com/vk/subgrid/internal/project"
)

// linkDir is the directory inside a subproject's root where dependency
// links live.
const linkDir = "lib"

// Link points the named dependency of the given subproject at a local
// source directory. An existing link is replaced; anything that is not a
// symlink is left alone and reported, since clobbering real files would
// destroy checked-in content.
func Link(ctx context.Context, reg *project.Registry, projectName, depName, source string) error {
	logger := ctxlog.FromContext(ctx)

	desc, ok := reg.Get(projectName)
	if !ok {
		return fmt.Errorf("unknown subproject %q", projectName)
	}

	absSource, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("cannot resolve checkout source %s: %w", source, err)
	}
	if _, err := os.Stat(absSource); err != nil {
		return fmt.Errorf("checkout source is not accessible: %w", err)
	}

	dir := filepath.Join(desc.Root, linkDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create link directory %s: %w", dir, err)
	}

	linkPath := filepath.Join(dir, depName)
	if info, err := os.Lstat(linkPath); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			return fmt.Errorf("refusing to replace %s: not a symlink", linkPath)
		}
		if err := os.Remove(linkPath); err != nil {
			return fmt.Errorf("cannot remove existing link %s: %w", linkPath, err)
		}
	}

	if err := os.Symlink(absSource, linkPath); err != nil {
		return fmt.Errorf("cannot create checkout link: %w", err)
	}
	logger.Info("Checkout link created.", "project", projectName, "dependency", depName, "source", absSource)
	return nil
}

// Unlink removes a previously created checkout link. Removing something that
// is not a symlink is refused for the same reason Link refuses to replace
// one.
func Unlink(ctx context.Context, reg *project.Registry, projectName, depName string) error {
	logger := ctxlog.FromContext(ctx)

	desc, ok := reg.Get(projectName)
	if !ok {
		return fmt.Errorf("unknown subproject %q", projectName)
	}

	linkPath := filepath.Join(desc.Root, linkDir, depName)
	info, err := os.Lstat(linkPath)
	if err != nil {
		return fmt.Errorf("no checkout link for %q in %s: %w", depName, projectName, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("refusing to remove %s: not a symlink", linkPath)
	}

	if err := os.Remove(linkPath); err != nil {
		return fmt.Errorf("cannot remove checkout link %s: %w", linkPath, err)
	}
	logger.Info("Checkout link removed.", "project", projectName, "dependency", depName)
	return nil
}
