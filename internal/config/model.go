package config

// Model is the parsed, format-agnostic representation of the workspace
// configuration file.
type Model struct {
	// ProjectDirs are the directories, relative to the workspace root,
	// scanned for subproject descriptors.
	ProjectDirs []string
	// Selectors holds the named filter predicates declared in the file,
	// keyed by selector name.
	Selectors map[string]*SelectorDef
	// Checkouts holds local checkout overrides, keyed by the dependency
	// name being overridden.
	Checkouts map[string]*CheckoutDef
}

// SelectorDef declares a named attribute-membership predicate over
// subproject descriptors. The engine applies it as configured data; there is
// no selector logic beyond membership.
type SelectorDef struct {
	Key       string
	Attribute string
	Values    []string
}

// CheckoutDef declares a local checkout override: consumers of the named
// dependency link it to the local working copy at Source instead of the
// released artifact.
type CheckoutDef struct {
	Dependency string
	Source     string
}
