// Package harness runs declarative review conformance scenarios. A
// scenario names a project fact file, optionally a catalog overlay, and
// the findings the review must (or must not) produce. Golden files pin the
// full rendered result so any drift in IDs, texts, ordering, or digest
// shows up as a diff.
package harness
