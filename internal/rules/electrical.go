package rules

import (
	"fmt"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// electricalRules covers KG440 (Elektrische Anlagen): voltage drop,
// diversity factors, power reserves, lighting power density, safety
// lighting and UPS coverage for sensitive zones.
type electricalRules struct {
	params catalog.Electrical
}

func (r *electricalRules) Trade() finding.Trade { return finding.TradeElectrical }

func (r *electricalRules) Evaluate(ctx *Context) []finding.Finding {
	facts := ctx.Electrical
	if facts == nil {
		facts = &ElectricalFacts{}
	}
	projectType := ctx.ProjectType

	var findings []finding.Finding

	findings = append(findings, Guard(len(facts.Circuits) > 0, func() []finding.Finding {
		return One(finding.Finding{
			ID:             "kg440_0001",
			Category:       finding.CategoryTechnical,
			Priority:       finding.PriorityMedium,
			Title:          "Keine Stromkreise dokumentiert",
			Description:    "Es liegen keine auswertbaren Daten zu Stromkreisen oder Lastbereichen vor.",
			Trade:          r.Trade(),
			Recommendation: "Lastberechnung und Stromkreislisten ergänzen.",
			Confidence:     0.5,
		})
	})...)

	for _, circuit := range facts.Circuits {
		findings = append(findings, r.checkCircuit(circuit)...)
	}
	for _, zone := range facts.Lighting {
		findings = append(findings, r.checkLighting(zone, projectType)...)
	}

	emergencyRequired := catalog.Contains(r.params.EmergencyLightingReq, projectType)
	findings = append(findings, Guard(!emergencyRequired || facts.EmergencyLighting, func() []finding.Finding {
		return One(finding.Finding{
			ID:       "kg440_notbeleuchtung",
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Notbeleuchtung nicht nachgewiesen",
			Description: "Für den Gebäudetyp ist eine Sicherheitsbeleuchtung nach DIN EN 1838 erforderlich," +
				" sie wird jedoch nicht dokumentiert.",
			Trade:          r.Trade(),
			NormRef:        "DIN EN 1838",
			Recommendation: "Notbeleuchtungsanlage planen und Fluchtwegkennzeichnung ergänzen.",
			Confidence:     0.84,
		})
	})...)

	upsZones := make(map[string]bool)
	for _, consumer := range facts.Consumers {
		if consumer.UPSRequired {
			upsZones[consumer.Zone] = true
		}
	}
	for _, sensitive := range r.params.UPSRequiredFor {
		sensitive := sensitive
		findings = append(findings, Guard(upsZones[sensitive], func() []finding.Finding {
			return One(finding.Finding{
				ID:       finding.ComposeID("kg440", "usv", sensitive),
				Category: finding.CategoryTechnical,
				Priority: finding.PriorityHigh,
				Title:    "USV-Versorgung fehlt",
				Description: fmt.Sprintf(
					"Für den Bereich %s ist eine unterbrechungsfreie Stromversorgung erforderlich, jedoch nicht nachgewiesen.",
					sensitive),
				Trade:          r.Trade(),
				Recommendation: "USV-Anlage dimensionieren und Schaltplan ergänzen.",
				Confidence:     0.8,
			})
		})...)
	}

	return findings
}

func (r *electricalRules) checkCircuit(circuit Circuit) []finding.Finding {
	name := circuit.Name
	if name == "" {
		name = "Stromkreis"
	}

	var findings []finding.Finding

	if drop, ok := deref(circuit.VoltageDropPct); ok && drop > r.params.VoltageDropMaxPercent {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg440", name, "spannung"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Spannungsfall überschreitet Grenzwert",
			Description: fmt.Sprintf(
				"Der berechnete Spannungsfall von %.1f%% im Stromkreis %s überschreitet den Grenzwert von %.0f%% gemäß DIN VDE 0100-520.",
				drop, name, r.params.VoltageDropMaxPercent),
			Trade:          r.Trade(),
			NormRef:        "DIN VDE 0100-520",
			Recommendation: "Leiterquerschnitt erhöhen oder Leitungslänge reduzieren.",
			Confidence:     0.82,
			DocumentID:     circuit.DocumentID,
		})
	}

	if diversity, ok := deref(circuit.DiversityFactor); ok && !r.params.DiversityFactorRange.Contains(diversity) {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg440", name, "diversity"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Gleichzeitigkeitsfaktor außerhalb Erfahrungswert",
			Description: fmt.Sprintf(
				"Für %s ist ein Gleichzeitigkeitsfaktor von %.2f angesetzt. Erwarteter Bereich: %.2f bis %.2f.",
				name, diversity, r.params.DiversityFactorRange.Min, r.params.DiversityFactorRange.Max),
			Trade:          r.Trade(),
			NormRef:        "DIN 18015",
			Recommendation: "Lastannahmen überprüfen und dokumentieren.",
			Confidence:     0.7,
			DocumentID:     circuit.DocumentID,
		})
	}

	if reserve, ok := deref(circuit.ReservePct); ok && reserve < r.params.ReservePercentMin {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg440", name, "reserve"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityLow,
			Title:    "Geringe Leistungsreserve",
			Description: fmt.Sprintf(
				"Im Stromkreis %s verbleibt nur eine Reserve von %.1f%%. Empfehlung: mindestens %.0f%% für Erweiterungen vorsehen.",
				name, reserve, r.params.ReservePercentMin),
			Trade:          r.Trade(),
			Recommendation: "Stromkreise bündeln oder Trafoleistung erhöhen.",
			Confidence:     0.65,
			DocumentID:     circuit.DocumentID,
		})
	}

	return findings
}

func (r *electricalRules) checkLighting(zone LightingZone, projectType string) []finding.Finding {
	usage := zone.Usage
	if usage == "" {
		usage = projectType
	}
	limit, ok := r.params.LightingPowerDensity[usage]
	if !ok {
		return nil
	}

	area, hasArea := deref(zone.Area)
	power, hasPower := deref(zone.Power)
	if !hasArea || !hasPower || area <= 0 {
		return nil
	}

	density := power / area
	if density <= limit {
		return nil
	}

	zoneID := zone.ID
	if zoneID == "" {
		zoneID = "zone"
	}
	zoneName := zone.Name
	if zoneName == "" {
		zoneName = "unbekannt"
	}

	return One(finding.Finding{
		ID:       finding.ComposeID("kg440", "beleuchtung", zoneID),
		Category: finding.CategoryTechnical,
		Priority: finding.PriorityMedium,
		Title:    "Lichtleistungsdichte über Richtwert",
		Description: fmt.Sprintf(
			"Für Bereich %s beträgt die Lichtleistungsdichte %.1f W/m² und überschreitet den Richtwert %.0f W/m² gemäß DIN EN 12464-1.",
			zoneName, density, limit),
		Trade:          r.Trade(),
		NormRef:        "DIN EN 12464-1",
		Recommendation: "Leuchtenauswahl optimieren oder Tageslichtnutzung berücksichtigen.",
		Confidence:     0.73,
	})
}
