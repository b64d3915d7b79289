package app

import "github.com/vk/subgrid/internal/iterate"

// CommandKind enumerates the closed set of subcommands. The CLI boundary
// resolves the raw argument string into one of these exactly once; no code
// below the boundary branches on command strings.
type CommandKind int

const (
	// CommandIterate runs a task across subprojects in dependency order.
	CommandIterate CommandKind = iota
	// CommandLint reports dependency version conflicts.
	CommandLint
	// CommandGraph writes the dependency graph as Graphviz source.
	CommandGraph
	// CommandCheckout creates or removes a local checkout link.
	CommandCheckout
	// CommandList prints the topological order of all subprojects.
	CommandList
)

// Command is one resolved subcommand with its typed option payload. Only the
// payload matching Kind is meaningful.
type Command struct {
	Kind CommandKind

	Iterate  iterate.Options
	Graph    GraphOptions
	Checkout CheckoutOptions
}

// GraphOptions carries the graph command's payload.
type GraphOptions struct {
	// Output is the .dot destination path; empty means standard output.
	Output string
}

// CheckoutOptions carries the checkout command's payload.
type CheckoutOptions struct {
	// Remove selects unlinking instead of linking.
	Remove bool
	// Project is the consuming subproject.
	Project string
	// Dependency is the dependency name being overridden.
	Dependency string
	// Source is the local working copy the link points at. Unused when
	// Remove is set. Empty means look the source up in the workspace
	// configuration's checkout blocks.
	Source string
}
