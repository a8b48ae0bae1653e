// Package catalog holds the per-trade parameter catalog: the numeric and
// structural thresholds the rule evaluators check against.
//
// The catalog is pure data and read-only during a run. Swapping the catalog
// changes the evaluated thresholds without touching evaluator code. The
// built-in defaults (Default) encode the current guideline values; Load
// overlays a CUE file onto the defaults and validates the result, so
// project-specific deviations live in configuration rather than code.
package catalog
