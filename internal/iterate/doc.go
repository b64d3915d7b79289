// Package iterate is the iteration controller: it composes the dependency
// graph's order, subtree restriction, skip list, selector, and start cut
// into a concrete plan, then drives strictly sequential execution of an
// external task callback over that plan.
//
// Sequencing is the whole point. A later unit may depend on artifacts a
// prior unit installed, so the controller runs exactly one task at a time
// and halts at the first failure, printing the resume directive that lets an
// operator continue the run without revisiting completed units.
package iterate
