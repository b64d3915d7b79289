package iterate

// Options are the operator-supplied knobs for one iteration run. All fields
// default to absent: no subtree restriction, no selector, empty skip list,
// no start cut.
type Options struct {
	// Subtree restricts candidates to CurrentProject plus its transitive
	// internal dependencies before ordering filters apply.
	Subtree bool
	// CurrentProject names the subtree root. Required when Subtree is set.
	CurrentProject string
	// Select names a configured selector; only matching descriptors are
	// retained. Empty means no selector filtering.
	Select string
	// Skip lists subprojects removed from the candidates after ordering.
	// A skipped unit is never re-added, even when something later in the
	// plan depends on it; the operator accepts the broken chain.
	Skip []string
	// Start drops every ordered candidate strictly before this name. Empty
	// means start from the beginning.
	Start string
	// Task is the tool invoked inside each unit's root directory.
	Task string
	// TaskArgs are passed to the task verbatim. The controller never
	// interprets them.
	TaskArgs []string
}
