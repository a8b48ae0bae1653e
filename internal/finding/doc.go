// Package finding defines the normalized audit finding value type shared by
// the rule evaluators and the coordination checks.
//
// A Finding is immutable once constructed. Its ID is a deterministic
// composite of trade code, entity label and check name, so that two runs
// over identical input produce identical ID sets. Labels embedded in IDs are
// NFC-normalized; see ComposeID.
//
// The package also owns the canonical ordering of a result set
// (priority desc, confidence desc) and a content digest over the ordered ID
// list used for determinism checks and the audit store.
package finding
