package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kevin180791/tgacheck/internal/engine"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// Verify checks the scenario's expectations against a review result.
func Verify(t *testing.T, scenario *Scenario, result *engine.Result) {
	t.Helper()

	byID := make(map[string]finding.Finding, len(result.Findings))
	for _, f := range result.Findings {
		byID[f.ID] = f
	}

	for _, expect := range scenario.Expect {
		got, ok := byID[expect.ID]
		if !assert.True(t, ok, "expected finding %s missing", expect.ID) {
			continue
		}
		if expect.Priority != "" {
			assert.Equal(t, finding.Priority(expect.Priority), got.Priority,
				"finding %s priority", expect.ID)
		}
	}

	for _, id := range scenario.Absent {
		_, ok := byID[id]
		assert.False(t, ok, "finding %s must not be produced", id)
	}
}
