package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/Kevin180791/tgacheck/internal/engine"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// Snapshot is the golden-file rendering of one scenario run. Findings are
// already sorted by the engine, so the serialization is deterministic.
type Snapshot struct {
	Scenario string            `json:"szenario"`
	Project  string            `json:"projekt"`
	RunID    string            `json:"auftrag_id"`
	Digest   string            `json:"digest"`
	Findings []finding.Finding `json:"befunde"`
}

// RunWithGolden executes a scenario and compares the rendered result
// against testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*engine.Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	findings := result.Findings
	if findings == nil {
		findings = []finding.Finding{}
	}
	snapshot := Snapshot{
		Scenario: scenario.Name,
		Project:  result.Project,
		RunID:    result.RunID,
		Digest:   result.Digest,
		Findings: findings,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, err
	}
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
