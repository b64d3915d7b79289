package depgraph

import "fmt"

// CycleError reports that the declared dependencies of the workspace form a
// cycle. Node names at least one subproject on the cycle.
type CycleError struct {
	Node string
}

// Error implements the error interface for CycleError.
func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected involving subproject '%s'", e.Node)
}

// NotFoundError reports a graph operation against a subproject name that is
// not part of the graph.
type NotFoundError struct {
	Name string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("subproject not found in dependency graph: %s", e.Name)
}
