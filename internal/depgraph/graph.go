package depgraph

import "sort"

// Graph is the internal dependency graph of a workspace. Nodes are
// subproject names; an edge from A to B means A declares a dependency on
// fellow subproject B. External library dependencies never become edges.
//
// A Graph is immutable after Build and safe for concurrent reads.
type Graph struct {
	// deps maps each node to the set of internal names it depends on.
	deps map[string]map[string]struct{}
	// order is the topological order computed at build time.
	order []string
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.deps)
}

// Has reports whether the named subproject is a node of the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.deps[name]
	return ok
}

// Names returns all node names in ascending order.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.deps))
	for name := range g.deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DependenciesOf returns the direct internal dependencies of the named
// subproject, in ascending order.
func (g *Graph) DependenciesOf(name string) ([]string, error) {
	set, ok := g.deps[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	deps := make([]string, 0, len(set))
	for dep := range set {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps, nil
}

// TopologicalOrder returns a visitation order in which every dependency
// appears before everything that depends on it. Ties between unconstrained
// nodes are broken by ascending name, so the order is byte-identical across
// runs over the same registry. The returned slice is a copy.
func (g *Graph) TopologicalOrder() []string {
	order := make([]string, len(g.order))
	copy(order, g.order)
	return order
}

// SubtreeFrom returns the named subproject plus the transitive closure of
// its internal dependencies. Subprojects that depend on name are never part
// of the result.
func (g *Graph) SubtreeFrom(name string) (map[string]struct{}, error) {
	if _, ok := g.deps[name]; !ok {
		return nil, &NotFoundError{Name: name}
	}

	closure := make(map[string]struct{})
	stack := []string{name}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, visited := closure[current]; visited {
			continue
		}
		closure[current] = struct{}{}
		for dep := range g.deps[current] {
			stack = append(stack, dep)
		}
	}
	return closure, nil
}

// topoSort runs Kahn's algorithm over the adjacency, keeping the frontier of
// unconstrained nodes sorted so the result is deterministic. If the graph
// has a cycle the unplaceable residue is handed to findCycleNode to name a
// participant.
func topoSort(deps map[string]map[string]struct{}) ([]string, error) {
	remaining := make(map[string]int, len(deps))
	dependents := make(map[string][]string, len(deps))
	for name, set := range deps {
		remaining[name] = len(set)
		for dep := range set {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var frontier []string
	for name, count := range remaining {
		if count == 0 {
			frontier = append(frontier, name)
		}
	}
	sort.Strings(frontier)

	order := make([]string, 0, len(deps))
	for len(frontier) > 0 {
		name := frontier[0]
		frontier = frontier[1:]
		order = append(order, name)

		for _, dependent := range dependents[name] {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				at := sort.SearchStrings(frontier, dependent)
				frontier = append(frontier, "")
				copy(frontier[at+1:], frontier[at:])
				frontier[at] = dependent
			}
		}
	}

	if len(order) != len(deps) {
		placed := make(map[string]struct{}, len(order))
		for _, name := range order {
			placed[name] = struct{}{}
		}
		return nil, &CycleError{Node: findCycleNode(deps, placed)}
	}

	return order, nil
}

// findCycleNode walks the unplaced residue of a stalled topological sort
// with a depth-first search and returns the first node seen twice on one
// path. Every unplaced node sits on or downstream of a cycle, so the search
// always terminates with a concrete participant.
func findCycleNode(deps map[string]map[string]struct{}, placed map[string]struct{}) string {
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var found string
	var visit func(name string) bool
	visit = func(name string) bool {
		if _, ok := placed[name]; ok {
			return false
		}
		if permanent[name] {
			return false
		}
		if temporary[name] {
			found = name
			return true
		}
		temporary[name] = true
		for _, dep := range sortedSetSlice(deps[name]) {
			if visit(dep) {
				return true
			}
		}
		delete(temporary, name)
		permanent[name] = true
		return false
	}

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if visit(name) {
			return found
		}
	}
	return ""
}

func sortedSetSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
