package finding

import "fmt"

// Trade identifies one of the seven KG400 building-services disciplines.
// The string values are the stable trade codes used in finding IDs and in
// project fact files.
type Trade string

const (
	TradeSanitary        Trade = "kg410_sanitaer"
	TradeHeating         Trade = "kg420_heizung"
	TradeVentilation     Trade = "kg430_lueftung"
	TradeElectrical      Trade = "kg440_elektro"
	TradeCommunication   Trade = "kg450_kommunikation"
	TradeFireSuppression Trade = "kg474_feuerloeschung"
	TradeAutomation      Trade = "kg480_automation"
)

// AllTrades lists every trade in fixed KG order. The order is part of the
// deterministic-merge contract: branch results are concatenated in this
// order before sorting.
var AllTrades = []Trade{
	TradeSanitary,
	TradeHeating,
	TradeVentilation,
	TradeElectrical,
	TradeCommunication,
	TradeFireSuppression,
	TradeAutomation,
}

// Code returns the short KG prefix of the trade code ("kg420").
func (t Trade) Code() string {
	s := string(t)
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			return s[:i]
		}
	}
	return s
}

// ParseTrade resolves a trade code, accepting both the full code
// ("kg420_heizung") and the short KG prefix ("kg420").
func ParseTrade(code string) (Trade, error) {
	for _, t := range AllTrades {
		if code == string(t) || code == t.Code() {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown trade code %q", code)
}

// Category classifies a finding.
type Category string

const (
	CategoryFormal       Category = "formal"
	CategoryTechnical    Category = "technisch"
	CategoryCoordination Category = "koordination"
	CategoryAdvisory     Category = "hinweis"
)

// Priority is the totally ordered severity of a finding.
type Priority string

const (
	PriorityHigh   Priority = "hoch"
	PriorityMedium Priority = "mittel"
	PriorityLow    Priority = "niedrig"
)

// Rank maps priorities onto a total order (high > medium > low).
// Unknown priorities rank below low so malformed input sorts last instead
// of failing.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Finding is one normalized, reportable compliance observation.
//
// Findings are created by a rule evaluator or a coordination check and never
// mutated afterwards. Optional fields use omitempty so serialized findings
// carry no null noise.
type Finding struct {
	ID             string   `json:"id"`
	Category       Category `json:"kategorie"`
	Priority       Priority `json:"prioritaet"`
	Title          string   `json:"titel"`
	Description    string   `json:"beschreibung"`
	Trade          Trade    `json:"gewerk"`
	NormRef        string   `json:"norm_referenz,omitempty"`
	Recommendation string   `json:"empfehlung,omitempty"`
	Confidence     float64  `json:"konfidenz_score"`
	DocumentID     string   `json:"dokument_id,omitempty"`
	PlanRef        string   `json:"plan_referenz,omitempty"`
}
