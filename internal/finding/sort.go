package finding

import "sort"

// Sort orders findings by priority (high first), then confidence (high
// first). The sort is stable: findings with equal priority and confidence
// keep their merge order, which is itself fixed (trades in KG order, then
// the coordination checks), so the final order is fully deterministic and
// independent of branch completion order.
func Sort(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		ri, rj := findings[i].Priority.Rank(), findings[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return findings[i].Confidence > findings[j].Confidence
	})
}

// Summary counts findings per priority.
type Summary struct {
	Total  int `json:"gesamt"`
	High   int `json:"hoch"`
	Medium int `json:"mittel"`
	Low    int `json:"niedrig"`
}

// Summarize tallies a result set by priority.
func Summarize(findings []Finding) Summary {
	s := Summary{Total: len(findings)}
	for _, f := range findings {
		switch f.Priority {
		case PriorityHigh:
			s.High++
		case PriorityMedium:
			s.Medium++
		case PriorityLow:
			s.Low++
		}
	}
	return s
}
