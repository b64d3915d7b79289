package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vk/subgrid/internal/ctxlog"
	"github.com/vk/subgrid/internal/fsutil"
)

// DescriptorFileName is the file each subproject places in its root
// directory to declare itself to the workspace.
const DescriptorFileName = "project.yaml"

// Discover scans the configured project directories (relative to the
// workspace root) for subproject descriptors and builds a Registry from
// them. A malformed or duplicate descriptor excludes that one unit with a
// warning; discovery itself only fails on filesystem errors.
func Discover(ctx context.Context, workspaceRoot string, dirs []string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	reg := NewRegistry()

	for _, dir := range dirs {
		searchRoot := filepath.Join(workspaceRoot, dir)
		files, err := fsutil.FindFilesByName(searchRoot, DescriptorFileName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project directory %s: %w", searchRoot, err)
		}
		logger.Debug("Scanned project directory.", "dir", searchRoot, "descriptors_found", len(files))

		for _, file := range files {
			desc, err := LoadDescriptor(file)
			if err != nil {
				logger.Warn("Skipping subproject with invalid descriptor.", "path", file, "error", err)
				continue
			}
			if err := reg.Add(desc); err != nil {
				logger.Warn("Skipping subproject with conflicting descriptor.", "path", file, "error", err)
				continue
			}
		}
	}

	logger.Debug("Discovery complete.", "subprojects", reg.Len())
	return reg, nil
}

// LoadDescriptor reads and parses a single subproject descriptor file. The
// descriptor's Root is set to the directory containing the file.
func LoadDescriptor(path string) (*Descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}

	var desc Descriptor
	if err := yaml.Unmarshal(raw, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor: %w", err)
	}

	if desc.Name == "" {
		return nil, fmt.Errorf("descriptor %s is missing a name", path)
	}
	if desc.Version == "" {
		return nil, fmt.Errorf("descriptor %s is missing a version", path)
	}

	desc.Root = filepath.Dir(path)
	return &desc, nil
}
