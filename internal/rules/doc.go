// Package rules implements the per-trade compliance rule evaluators.
//
// Every rule follows the same shape: "X should hold; if not, here is why",
// expressed through the Guard combinator so finding construction (including
// string formatting) only happens when a violation is real. Evaluators are
// pure functions over a Context; absent values mean "unknown" and never
// flag. The Engine wraps each evaluator with panic isolation so one
// malformed trade context cannot take down a project run.
//
// Rule IDs are deterministic composites of trade code, entity label and
// check name, e.g. "kg420_room_Büro 1_hoch". Identical input yields an
// identical ID set across runs.
package rules
