package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/subgrid/internal/ctxlog"
)

// selectorAttributes are the descriptor fields a selector may test.
var selectorAttributes = map[string]struct{}{
	"tags":    {},
	"name":    {},
	"version": {},
}

// fileRoot is the struct used to decode the top-level blocks of a workspace file.
type fileRoot struct {
	Workspace *workspaceBlock  `hcl:"workspace,block"`
	Selectors []*selectorBlock `hcl:"selector,block"`
	Checkouts []*checkoutBlock `hcl:"checkout,block"`
}

type workspaceBlock struct {
	Projects []string `hcl:"projects"`
}

type selectorBlock struct {
	Key       string    `hcl:"key,label"`
	Attribute string    `hcl:"attribute"`
	Values    cty.Value `hcl:"values"`
}

type checkoutBlock struct {
	Dependency string `hcl:"dependency,label"`
	Source     string `hcl:"source"`
}

// Load parses the workspace configuration file at path and translates it
// into the Model the rest of the application consumes. A malformed file is a
// fatal startup error for the whole invocation.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Workspace config loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse workspace file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode workspace file %s: %w", path, diags)
	}

	if root.Workspace == nil {
		return nil, fmt.Errorf("workspace file %s has no workspace block", path)
	}

	model := &Model{
		ProjectDirs: root.Workspace.Projects,
		Selectors:   make(map[string]*SelectorDef),
		Checkouts:   make(map[string]*CheckoutDef),
	}

	for _, block := range root.Selectors {
		def, err := translateSelector(block)
		if err != nil {
			return nil, err
		}
		if _, dup := model.Selectors[def.Key]; dup {
			return nil, fmt.Errorf("duplicate selector %q in workspace file", def.Key)
		}
		model.Selectors[def.Key] = def
	}

	for _, block := range root.Checkouts {
		if _, dup := model.Checkouts[block.Dependency]; dup {
			return nil, fmt.Errorf("duplicate checkout block for %q in workspace file", block.Dependency)
		}
		model.Checkouts[block.Dependency] = &CheckoutDef{
			Dependency: block.Dependency,
			Source:     block.Source,
		}
	}

	logger.Debug("Workspace config loaded.",
		"project_dirs", len(model.ProjectDirs),
		"selectors", len(model.Selectors),
		"checkouts", len(model.Checkouts))
	return model, nil
}

// translateSelector converts a decoded selector block into a SelectorDef,
// normalizing the values expression into plain strings.
func translateSelector(block *selectorBlock) (*SelectorDef, error) {
	if _, ok := selectorAttributes[block.Attribute]; !ok {
		return nil, fmt.Errorf("selector %q tests unknown attribute %q", block.Key, block.Attribute)
	}

	listVal, err := convert.Convert(block.Values, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("selector %q has non-string values: %w", block.Key, err)
	}

	var values []string
	for it := listVal.ElementIterator(); it.Next(); {
		_, v := it.Element()
		values = append(values, v.AsString())
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("selector %q declares no values", block.Key)
	}

	return &SelectorDef{
		Key:       block.Key,
		Attribute: block.Attribute,
		Values:    values,
	}, nil
}
