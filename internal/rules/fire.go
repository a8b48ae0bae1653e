package rules

import (
	"fmt"
	"strings"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// fireSuppressionRules covers KG474 (Feuerlöschanlagen): sprinkler design
// density per hazard class, water supply duration, pump redundancy and
// hydrant hydraulics.
type fireSuppressionRules struct {
	params catalog.FireSuppression
}

func (r *fireSuppressionRules) Trade() finding.Trade { return finding.TradeFireSuppression }

func (r *fireSuppressionRules) Evaluate(ctx *Context) []finding.Finding {
	facts := ctx.FireSuppression
	if facts == nil {
		facts = &FireSuppressionFacts{}
	}

	if len(facts.Sprinkler) == 0 && len(facts.Hydrants) == 0 {
		return One(finding.Finding{
			ID:             "kg474_0001",
			Category:       finding.CategoryTechnical,
			Priority:       finding.PriorityMedium,
			Title:          "Keine Feuerlöschanlagen dokumentiert",
			Description:    "Es konnten keine Angaben zu Sprinkler- oder Hydrantenanlagen ausgewertet werden.",
			Trade:          r.Trade(),
			Recommendation: "Brandschutzkonzept prüfen und Löschanlagen dokumentieren.",
			Confidence:     0.5,
		})
	}

	var findings []finding.Finding

	for _, zone := range facts.Sprinkler {
		findings = append(findings, r.checkSprinklerZone(zone)...)
	}
	for _, hydrant := range facts.Hydrants {
		findings = append(findings, r.checkHydrant(hydrant)...)
	}

	duration, hasDuration := deref(facts.WaterSupply.Duration)
	findings = append(findings, Guard(!hasDuration || duration >= r.params.WaterSupplyDurationMin, func() []finding.Finding {
		return One(finding.Finding{
			ID:       "kg474_wasserspeicher",
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Gesamte Löschwasserbevorratung unzureichend",
			Description: fmt.Sprintf(
				"Die zentrale Wasserversorgung reicht nur für %.0f Minuten und unterschreitet den Richtwert von %.0f Minuten.",
				duration, r.params.WaterSupplyDurationMin),
			Trade:          r.Trade(),
			Recommendation: "Wasservorrat erhöhen oder externe Einspeisung sicherstellen.",
			Confidence:     0.81,
		})
	})...)

	return findings
}

func (r *fireSuppressionRules) checkSprinklerZone(zone SprinklerZone) []finding.Finding {
	hazard := strings.ToLower(zone.HazardClass)
	if hazard == "" {
		hazard = "normal"
	}
	densityRequired, ok := r.params.SprinklerDensity[hazard]
	if !ok {
		densityRequired = r.params.SprinklerDensity["normal"]
	}
	name := zone.Name
	if name == "" {
		name = "Sprinklerzone"
	}

	var findings []finding.Finding

	if density, ok := deref(zone.Density); ok && density < densityRequired {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg474", name, "dichte"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Sprinkler-Dichte unterschreitet VdS-Anforderung",
			Description: fmt.Sprintf(
				"Für Zone %s sind %.1f l/min·m² geplant. Erforderlich für Klasse %s: %.1f l/min·m².",
				name, density, hazard, densityRequired),
			Trade:          r.Trade(),
			NormRef:        "VdS CEA 4001",
			Recommendation: "Düsenzahl oder Pumpenleistung anpassen.",
			Confidence:     0.83,
		})
	}

	if duration, ok := deref(zone.Duration); ok && duration < r.params.WaterSupplyDurationMin {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg474", name, "dauer"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Löschwasserbevorratung unzureichend",
			Description: fmt.Sprintf(
				"Die vorgehaltene Löschwassermenge reicht nur für %.0f Minuten. Vorgabe: mindestens %.0f Minuten.",
				duration, r.params.WaterSupplyDurationMin),
			Trade:          r.Trade(),
			Recommendation: "Löschwasserbehälter oder Speisung dimensionieren.",
			Confidence:     0.8,
		})
	}

	redundancyRequired := catalog.Contains(r.params.PumpRedundancyRequired, hazard)
	findings = append(findings, GuardIf(redundancyRequired, zone.PumpRedundancy, func() []finding.Finding {
		return One(finding.Finding{
			ID:       finding.ComposeID("kg474", name, "pumpe"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Sprinkleranlage ohne redundante Pumpe",
			Description: fmt.Sprintf(
				"Für Zone %s ist keine redundante Sprinklerpumpe vorgesehen, obwohl sie für die Gefährdungsklasse gefordert ist.",
				name),
			Trade:          r.Trade(),
			Recommendation: "Reservepumpe bzw. Diesel-/Elektro-Doppelpumpe vorsehen.",
			Confidence:     0.82,
		})
	})...)

	return findings
}

func (r *fireSuppressionRules) checkHydrant(hydrant Hydrant) []finding.Finding {
	name := hydrant.Name
	if name == "" {
		name = "Hydrant"
	}

	var findings []finding.Finding

	if flow, ok := deref(hydrant.Flow); ok && flow < r.params.HydrantFlowMin {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg474", name, "strom"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Hydrantenvolumenstrom zu gering",
			Description: fmt.Sprintf(
				"Für %s sind nur %.0f l/min Volumenstrom vorgesehen. Richtwert für Wandhydranten Typ F: ≥%.0f l/min.",
				name, flow, r.params.HydrantFlowMin),
			Trade:          r.Trade(),
			NormRef:        "DIN 14462",
			Recommendation: "Rohrnetzdimensionierung prüfen und Hydrantenverstärker einplanen.",
			Confidence:     0.75,
		})
	}

	if pressure, ok := deref(hydrant.Pressure); ok && pressure < r.params.HydrantPressureMinBar {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg474", name, "druck"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Hydranten-Betriebsdruck zu gering",
			Description: fmt.Sprintf(
				"Der Betriebsdruck beträgt %.1f bar und unterschreitet den geforderten Wert von %.1f bar.",
				pressure, r.params.HydrantPressureMinBar),
			Trade:          r.Trade(),
			NormRef:        "DIN 14462",
			Recommendation: "Druckhaltung optimieren oder Pumpenleistung erhöhen.",
			Confidence:     0.74,
		})
	}

	return findings
}
