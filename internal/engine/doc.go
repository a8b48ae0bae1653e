// Package engine coordinates a whole-project review: it fans the seven
// trade checks, the formal document check, and the cross-trade coordination
// checks out over goroutines, then merges their findings into one
// deterministic, sorted result.
//
// Determinism contract: the merged finding list depends only on the project
// facts and the parameter catalog, never on goroutine completion order.
// Each branch writes into its own pre-assigned slot; the slots are
// concatenated in a fixed order after every branch has finished, then
// sorted by priority and confidence.
package engine
