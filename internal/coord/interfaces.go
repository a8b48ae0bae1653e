package coord

import (
	"fmt"
	"strings"

	"github.com/Kevin180791/tgacheck/internal/finding"
)

// epsilon guards the capacity comparison against float formatting noise; a
// supply matching its demand to the sixth decimal is not undersized.
const epsilon = 1e-6

// Interfaces reconciles heating demands against published electrical
// supply circuits. References match case-insensitively after trimming.
// Per demand, the first applicable branch decides: no reference, unknown
// reference, unverifiable (capacity undocumented), or undersized.
func Interfaces(supplies []Supply, demands []Demand) []finding.Finding {
	byRef := make(map[string]Supply, len(supplies))
	for _, s := range supplies {
		ref := strings.ToLower(strings.TrimSpace(s.Reference))
		if ref == "" {
			continue
		}
		if _, exists := byRef[ref]; !exists {
			byRef[ref] = s
		}
	}

	var findings []finding.Finding
	for _, d := range demands {
		ref := strings.ToLower(strings.TrimSpace(d.Supply))

		if ref == "" {
			findings = append(findings, finding.Finding{
				ID:             finding.ComposeID("schnittstelle", d.DocumentID, "ohne_zuordnung"),
				Category:       finding.CategoryCoordination,
				Priority:       finding.PriorityMedium,
				Title:          "Heizungsanschluss ohne Elektro-Zuordnung",
				Description:    "Für einen Heizungsanschluss konnte kein zugehöriger Elektro-Stromkreis identifiziert werden.",
				Trade:          d.Trade,
				Recommendation: "Versorgungskreis in Heizungs- und Elektroplanung eindeutig referenzieren",
				Confidence:     0.75,
				DocumentID:     d.DocumentID,
				PlanRef:        d.PlanRef,
			})
			continue
		}

		supply, ok := byRef[ref]
		if !ok {
			findings = append(findings, finding.Finding{
				ID:       finding.ComposeID("schnittstelle", d.DocumentID, ref, "fehlt"),
				Category: finding.CategoryCoordination,
				Priority: finding.PriorityMedium,
				Title:    "Versorgungskreis in Elektroplanung fehlt",
				Description: fmt.Sprintf(
					"Für den Heizungsanschluss '%s' konnte kein entsprechender Elektro-Stromkreis gefunden werden.",
					ref),
				Trade:          d.Trade,
				Recommendation: "Heizungs- und Elektroplanung auf Konsistenz prüfen",
				Confidence:     0.8,
				DocumentID:     d.DocumentID,
				PlanRef:        d.PlanRef,
			})
			continue
		}

		if d.Power == nil || *d.Power <= 0 {
			continue
		}
		power := *d.Power

		if supply.Capacity == nil {
			findings = append(findings, finding.Finding{
				ID:       finding.ComposeID("schnittstelle", d.DocumentID, ref, "unbekannt"),
				Category: finding.CategoryCoordination,
				Priority: finding.PriorityMedium,
				Title:    "Fehlende Kapazitätsangabe Elektro",
				Description: fmt.Sprintf(
					"Für den Elektro-Stromkreis '%s' ist keine Kapazität dokumentiert; Heizlast %.1f kW kann nicht verifiziert werden.",
					ref, power),
				Trade:          d.Trade,
				Recommendation: "Kapazität in Elektroplanung nachtragen",
				Confidence:     0.7,
				DocumentID:     d.DocumentID,
				PlanRef:        d.PlanRef + " / " + supply.PlanRef,
			})
			continue
		}

		capacity := *supply.Capacity
		if capacity+epsilon < power {
			findings = append(findings, finding.Finding{
				ID:       finding.ComposeID("schnittstelle", d.DocumentID, ref, "unterdimensioniert"),
				Category: finding.CategoryCoordination,
				Priority: finding.PriorityHigh,
				Title:    "Elektrische Leistung für Wärmeerzeuger unzureichend",
				Description: fmt.Sprintf(
					"Der zugewiesene Elektro-Stromkreis '%s' stellt %.1f kW bereit, benötigt werden jedoch %.1f kW. Differenz: %.1f kW.",
					ref, capacity, power, power-capacity),
				Trade:          d.Trade,
				Recommendation: "Stromkreisleistung erhöhen oder zusätzlichen Kreis vorsehen",
				Confidence:     0.9,
				DocumentID:     d.DocumentID,
				PlanRef:        d.PlanRef + " / " + supply.PlanRef,
			})
		}
	}
	return findings
}
