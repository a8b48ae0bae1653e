package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one review conformance scenario.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Project is the path to the project fact file, relative to the
	// scenario file.
	Project string `yaml:"project"`

	// Catalog optionally points at a CUE parameter overlay, relative to
	// the scenario file.
	Catalog string `yaml:"catalog,omitempty"`

	// Expect lists findings the review must produce.
	Expect []ExpectedFinding `yaml:"expect,omitempty"`

	// Absent lists finding IDs the review must not produce.
	Absent []string `yaml:"absent,omitempty"`
}

// ExpectedFinding is a subset match on one produced finding: the ID must
// exist, and the priority must match when given.
type ExpectedFinding struct {
	ID       string `yaml:"id"`
	Priority string `yaml:"prioritaet,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Relative project and
// catalog paths are resolved against the scenario file's directory.
// Returns an error if the file is malformed, contains unknown fields
// (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	if scenario.Project != "" && !filepath.IsAbs(scenario.Project) {
		scenario.Project = filepath.Join(base, scenario.Project)
	}
	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) {
		scenario.Catalog = filepath.Join(base, scenario.Catalog)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Project == "" {
		return fmt.Errorf("project is required")
	}
	if _, err := os.Stat(s.Project); os.IsNotExist(err) {
		return fmt.Errorf("project file not found: %s", s.Project)
	}
	if s.Catalog != "" {
		if _, err := os.Stat(s.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("catalog file not found: %s", s.Catalog)
		}
	}
	for i, expect := range s.Expect {
		if expect.ID == "" {
			return fmt.Errorf("expect[%d]: id is required", i)
		}
	}
	return nil
}
