// Package coord implements the cross-trade coordination checks: geometric
// collisions between placed elements, electrical interface reconciliation,
// and Schlitz- und Durchbruchsplanung (penetration) matching.
//
// The package works on pre-extracted inputs; the engine assembles them from
// the project fact model. All checks are pure functions of their inputs and
// produce findings in input order, so runs are deterministic.
package coord

import (
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// Element is one placed component from a geometry block.
type Element struct {
	DocumentID string
	Trade      finding.Trade
	// ID labels the element in findings; the extractor falls back to the
	// element name when no ID was assigned.
	ID      string
	Level   string
	PlanRef string
	// Box holds the raw aliased bbox keys; NormalizeBox resolves them.
	Box map[string]float64
}

// Supply is an electrical circuit published for other trades.
type Supply struct {
	DocumentID string
	Reference  string
	Capacity   *float64 // kW; nil = undocumented
	PlanRef    string
}

// Demand is a heating consumer drawing from an electrical supply circuit.
type Demand struct {
	DocumentID string
	Trade      finding.Trade
	Supply     string   // referenced circuit; empty = unassigned
	Power      *float64 // kW
	PlanRef    string
}

// Dimensions of a requested or confirmed opening, in meters. A circular
// opening is recorded as diameter x diameter.
type Dimensions struct {
	Width, Height float64
}

// Position of an opening in plan coordinates, in meters.
type Position struct {
	X, Y float64
}

// OpeningRequest is an opening a TGA trade needs in the structure.
type OpeningRequest struct {
	ID         string
	DocumentID string
	Trade      finding.Trade
	Level      string
	PlanRef    string
	Dim        *Dimensions
	Pos        *Position
}

// OpeningConfirmation is an opening the structural planning confirmed.
type OpeningConfirmation struct {
	Reference string
	Level     string
	PlanRef   string
	Dim       *Dimensions
	Pos       *Position
}

// Input bundles everything the coordination checks consume.
type Input struct {
	Elements      []Element
	Supplies      []Supply
	Demands       []Demand
	Requests      []OpeningRequest
	Confirmations []OpeningConfirmation
}

// Evaluate runs the three coordination checks and returns their findings
// in check order (collisions, interfaces, penetrations).
func Evaluate(in Input) []finding.Finding {
	var findings []finding.Finding
	findings = append(findings, Collisions(in.Elements)...)
	findings = append(findings, Interfaces(in.Supplies, in.Demands)...)
	findings = append(findings, Penetrations(in.Requests, in.Confirmations)...)
	return findings
}
