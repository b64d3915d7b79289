// Package depgraph models the workspace's internal dependency graph and the
// orderings derived from it. It is the structural half of the iteration
// machinery: iterate composes its plans from the deterministic topological
// order and subtree closures computed here.
//
// For a detailed contract of each operation, see the method documentation on
// Graph.
package depgraph
