// Package render emits the dependency graph as Graphviz DOT source. The
// adjacency and node set come straight from depgraph; descriptor root paths
// become node tooltips so the rendered image links back to the tree.
package render

import (
	"fmt"
	"io"

	"github.com/vk/subgrid/internal/depgraph"
	"github.com/vk/subgrid/internal/project"
)

// WriteDOT writes the graph in DOT form. Nodes and edges are emitted in
// ascending name order so the output is stable across runs.
func WriteDOT(w io.Writer, g *depgraph.Graph, reg *project.Registry) error {
	if _, err := fmt.Fprintln(w, "digraph subprojects {"); err != nil {
		return err
	}
	fmt.Fprintln(w, "\trankdir=BT;")
	fmt.Fprintln(w, "\tnode [shape=box];")

	for _, name := range g.Names() {
		label := name
		tooltip := ""
		if desc, ok := reg.Get(name); ok {
			label = desc.Name + `\n` + desc.Version
			tooltip = desc.Root
		}
		fmt.Fprintf(w, "\t\"%s\" [label=\"%s\", tooltip=\"%s\"];\n", name, label, tooltip)
	}

	for _, name := range g.Names() {
		deps, err := g.DependenciesOf(name)
		if err != nil {
			return err
		}
		for _, dep := range deps {
			fmt.Fprintf(w, "\t\"%s\" -> \"%s\";\n", name, dep)
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
