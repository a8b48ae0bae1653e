package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/engine"
	"github.com/Kevin180791/tgacheck/internal/facts"
)

// testRunID is the fixed run ID every scenario executes under, so golden
// files stay byte-stable.
const testRunID = "test-run"

// Run executes a scenario and returns the review result.
func Run(scenario *Scenario) (*engine.Result, error) {
	cat := catalog.Default()
	if scenario.Catalog != "" {
		loaded, err := catalog.Load(scenario.Catalog)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		cat = loaded
	}

	project, err := facts.LoadProject(scenario.Project)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	runner := engine.NewRunner(cat,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		engine.NewFixedGenerator(testRunID))
	result, err := runner.Run(context.Background(), project)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return result, nil
}
