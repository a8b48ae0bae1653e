package facts

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Kevin180791/tgacheck/internal/finding"
)

var validDocTypes = map[string]bool{
	DocTypePlan:        true,
	DocTypeCalculation: true,
	DocTypeSchema:      true,
	DocTypeReport:      true,
}

// LoadProject reads and parses a project fact file. Returns an error if the
// file is malformed, contains unknown fields (typos), names an unknown
// trade or document type, or reuses a document ID.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var project Project
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&project); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateProject(&project); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}
	return &project, nil
}

func validateProject(p *Project) error {
	if p.Name == "" {
		return fmt.Errorf("projekt is required")
	}
	if p.ProjectType == "" {
		p.ProjectType = "buerogebaeude"
	}
	if len(p.Documents) == 0 {
		return fmt.Errorf("dokumente must not be empty")
	}

	seen := make(map[string]bool, len(p.Documents))
	for i, doc := range p.Documents {
		if doc.ID == "" {
			return fmt.Errorf("dokumente[%d]: id is required", i)
		}
		if seen[doc.ID] {
			return fmt.Errorf("dokumente[%d]: duplicate id %q", i, doc.ID)
		}
		seen[doc.ID] = true

		if doc.Filename == "" {
			return fmt.Errorf("dokument %s: dateiname is required", doc.ID)
		}
		if doc.Type != "" && !validDocTypes[doc.Type] {
			return fmt.Errorf("dokument %s: unknown typ %q", doc.ID, doc.Type)
		}
		trade, err := finding.ParseTrade(string(doc.Trade))
		if err != nil {
			return fmt.Errorf("dokument %s: %w", doc.ID, err)
		}
		p.Documents[i].Trade = trade // normalize short codes
	}
	return nil
}
