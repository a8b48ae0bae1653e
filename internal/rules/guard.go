package rules

import (
	"fmt"
	"sort"

	"github.com/Kevin180791/tgacheck/internal/finding"
)

// Guard is the conditional-finding combinator every rule is phrased with.
//
// If ok holds, the rule is satisfied and nothing is produced; the producer
// is never invoked, so description formatting stays off the compliant path.
// If ok fails, the producer runs and its result is returned as-is (nil is
// an accepted "nothing after all").
func Guard(ok bool, produce func() []finding.Finding) []finding.Finding {
	if ok || produce == nil {
		return nil
	}
	return produce()
}

// GuardIf is Guard with an enable switch for rules gated by a catalog flag.
// A disabled rule never produces, regardless of the condition.
func GuardIf(enabled, ok bool, produce func() []finding.Finding) []finding.Finding {
	if !enabled {
		return nil
	}
	return Guard(ok, produce)
}

// One adapts a single finding to the producer result shape.
func One(f finding.Finding) []finding.Finding {
	return []finding.Finding{f}
}

// deref unpacks an optional numeric fact.
func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// pct formats a fraction as a percentage ("15.0%"); nil renders as "n/a".
func pct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

func pctVal(v float64) string {
	return pct(&v)
}

// sortedKeys returns map keys in sorted order. Catalog maps drive several
// per-medium loops; iterating them sorted keeps finding order deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
