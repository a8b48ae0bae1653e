package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin180791/tgacheck/internal/finding"
)

// fp builds an optional numeric fact.
func fp(v float64) *float64 { return &v }

// ids collects finding IDs in evaluation order.
func ids(findings []finding.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.ID)
	}
	return out
}

func byID(t *testing.T, findings []finding.Finding, id string) finding.Finding {
	t.Helper()
	for _, f := range findings {
		if f.ID == id {
			return f
		}
	}
	require.Failf(t, "finding not produced", "id %q not in %v", id, ids(findings))
	return finding.Finding{}
}

func TestGuardSatisfiedNeverInvokesProducer(t *testing.T) {
	invoked := false
	got := Guard(true, func() []finding.Finding {
		invoked = true
		return One(finding.Finding{ID: "x"})
	})
	assert.Nil(t, got)
	assert.False(t, invoked, "producer must stay untouched on the compliant path")
}

func TestGuardViolatedProduces(t *testing.T) {
	got := Guard(false, func() []finding.Finding {
		return One(finding.Finding{ID: "x"})
	})
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
}

func TestGuardNilProducer(t *testing.T) {
	assert.Nil(t, Guard(false, nil))
}

func TestGuardIfDisabled(t *testing.T) {
	invoked := false
	got := GuardIf(false, false, func() []finding.Finding {
		invoked = true
		return One(finding.Finding{ID: "x"})
	})
	assert.Nil(t, got)
	assert.False(t, invoked)
}

func TestGuardIfEnabled(t *testing.T) {
	got := GuardIf(true, false, func() []finding.Finding {
		return One(finding.Finding{ID: "x"})
	})
	require.Len(t, got, 1)
}

func TestPct(t *testing.T) {
	assert.Equal(t, "n/a", pct(nil))
	assert.Equal(t, "15.0%", pct(fp(0.15)))
	assert.Equal(t, "92.0%", pctVal(0.92))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]float64{"zirkulation": 1, "abwasser": 2, "kaltwasser": 3}
	assert.Equal(t, []string{"abwasser", "kaltwasser", "zirkulation"}, sortedKeys(m))
}
