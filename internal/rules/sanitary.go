package rules

import (
	"fmt"
	"strings"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// sanitaryRules covers KG410 (Sanitär, Wasser, Gas): potable-water
// temperatures, flow velocities, material and insulation requirements,
// stagnation times and backflow protection.
type sanitaryRules struct {
	params catalog.Sanitary
}

func (r *sanitaryRules) Trade() finding.Trade { return finding.TradeSanitary }

func (r *sanitaryRules) Evaluate(ctx *Context) []finding.Finding {
	facts := ctx.Sanitary
	if facts == nil {
		facts = &SanitaryFacts{}
	}

	var findings []finding.Finding

	findings = append(findings, Guard(len(facts.Systems) > 0, func() []finding.Finding {
		return One(finding.Finding{
			ID:             "kg410_0001",
			Category:       finding.CategoryTechnical,
			Priority:       finding.PriorityHigh,
			Title:          "Keine Trinkwasseranlagen gefunden",
			Description:    "Für das Gewerk KG410 konnten keine Systeme erkannt werden.",
			Trade:          r.Trade(),
			Recommendation: "Heizungs- und Sanitärunterlagen bereitstellen bzw. Kennzeichnung prüfen.",
			Confidence:     0.6,
		})
	})...)

	for _, system := range facts.Systems {
		findings = append(findings, r.checkSystem(system)...)
	}
	for _, fixture := range facts.Fixtures {
		findings = append(findings, r.checkFixture(fixture, ctx.ProjectType)...)
	}
	return findings
}

func (r *sanitaryRules) checkSystem(system SanitarySystem) []finding.Finding {
	label := system.Name
	if label == "" {
		label = "System"
	}

	var findings []finding.Finding

	hotTemp, hasHot := deref(system.HotWaterTemp)
	findings = append(findings, Guard(!hasHot || hotTemp >= r.params.HotWaterTempMin, func() []finding.Finding {
		return One(finding.Finding{
			ID:       finding.ComposeID("kg410", label, "temp"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Trinkwarmwasser nicht ausreichend aufgeheizt",
			Description: fmt.Sprintf(
				"Im System %s liegt die Warmwassertemperatur bei %.1f °C und unterschreitet den Mindestwert von %.0f °C nach TrinkwV.",
				label, hotTemp, r.params.HotWaterTempMin),
			Trade:          r.Trade(),
			NormRef:        "TrinkwV, DVGW W 551",
			Recommendation: "Warmwasserbereitung auf mindestens 55 °C einstellen und dokumentieren.",
			Confidence:     0.85,
			DocumentID:     system.DocumentID,
		})
	})...)

	findings = append(findings, Guard(hasHot, func() []finding.Finding {
		return One(finding.Finding{
			ID:       finding.ComposeID("kg410", label, "temp_missing"),
			Category: finding.CategoryAdvisory,
			Priority: finding.PriorityLow,
			Title:    "Keine Warmwassertemperatur dokumentiert",
			Description: fmt.Sprintf(
				"Für das System %s liegt keine dokumentierte Trinkwarmwassertemperatur vor. Bitte Messwert nachreichen oder Monitoring ergänzen.",
				label),
			Trade:          r.Trade(),
			Recommendation: "Temperaturaufzeichnungen ergänzen und Prüfprotokolle aktualisieren.",
			Confidence:     0.4,
			DocumentID:     system.DocumentID,
		})
	})...)

	circTemp, hasCirc := deref(system.CirculationTemp)
	findings = append(findings, Guard(!hasCirc || circTemp >= r.params.CirculationTempMin, func() []finding.Finding {
		return One(finding.Finding{
			ID:       finding.ComposeID("kg410", label, "zirkulation"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Zirkulationsrücklauftemperatur zu niedrig",
			Description: fmt.Sprintf(
				"Die gemessene Rücklauftemperatur der Zirkulation beträgt %.1f °C und unterschreitet den Richtwert von %.0f °C.",
				circTemp, r.params.CirculationTempMin),
			Trade:          r.Trade(),
			NormRef:        "DVGW W 551",
			Recommendation: "Zirkulationssystem hydraulisch optimieren und Dämmung prüfen.",
			Confidence:     0.8,
			DocumentID:     system.DocumentID,
		})
	})...)

	// Sorted media keep the finding order deterministic.
	for _, medium := range sortedKeys(r.params.MaxVelocity) {
		limit := r.params.MaxVelocity[medium]
		value, ok := system.Velocities[medium]
		if !ok || value <= limit {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg410", label, "velocity", medium),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Strömungsgeschwindigkeit überschreitet Grenzwert",
			Description: fmt.Sprintf(
				"Im Strang '%s' des Systems %s liegt die Strömungsgeschwindigkeit bei %.2f m/s und überschreitet den Richtwert von %.1f m/s gemäß DIN 1988-300.",
				medium, label, value, limit),
			Trade:          r.Trade(),
			NormRef:        "DIN 1988-300",
			Recommendation: "Dimensionierung bzw. Pumpeneinstellung überprüfen.",
			Confidence:     0.78,
			DocumentID:     system.DocumentID,
		})
	}

	for _, medium := range sortedKeys(r.params.MaterialBlacklist) {
		material := system.Materials[medium]
		if material == "" || !containsFold(r.params.MaterialBlacklist[medium], material) {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg410", label, "material", medium),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Nicht zulässiges Werkstoffkonzept",
			Description: fmt.Sprintf(
				"Für %s in %s ist der Werkstoff '%s' vorgesehen. Dieser ist für Trinkwarmwasser hygienisch kritisch und sollte vermieden werden.",
				medium, label, material),
			Trade:          r.Trade(),
			NormRef:        "DIN EN 806-2",
			Recommendation: "Korrosionsbeständige Werkstoffe (z.B. Edelstahl, Kunststoff) einsetzen.",
			Confidence:     0.82,
			DocumentID:     system.DocumentID,
		})
	}

	for _, medium := range sortedKeys(r.params.InsulationMin) {
		minThickness := r.params.InsulationMin[medium]
		thickness, ok := system.Insulation[medium]
		if !ok || thickness >= minThickness {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg410", label, "insulation", medium),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Dämmstärke unterschreitet GEG-Anforderung",
			Description: fmt.Sprintf(
				"Für %s im System %s sind nur %.0f mm Dämmung vorgesehen. Vorgabe nach GEG: mindestens %.0f mm.",
				medium, label, thickness, minThickness),
			Trade:          r.Trade(),
			NormRef:        "GEG Anlage 8",
			Recommendation: "Dämmkonzept nachbessern und Berechnung aktualisieren.",
			Confidence:     0.76,
			DocumentID:     system.DocumentID,
		})
	}

	return findings
}

func (r *sanitaryRules) checkFixture(fixture SanitaryFixture, projectType string) []finding.Finding {
	var findings []finding.Finding

	zone := fixture.Zone
	if zone == "" {
		zone = "unbekannt"
	}

	if hours, ok := deref(fixture.StagnationHrs); ok && hours > r.params.MaxStagnationHours {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg410", "fixture", fixture.ID, "stagnation"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Stagnationszeiten überschreiten Trinkwasseranforderungen",
			Description: fmt.Sprintf(
				"Für den Bereich %s wurden Stagnationszeiten von %.0f Stunden angegeben. Vorgabe: ≤ %.0f Stunden.",
				zone, hours, r.params.MaxStagnationHours),
			Trade:          r.Trade(),
			NormRef:        "DVGW W 557",
			Recommendation: "Nutzungsprofil prüfen und ggf. Spülkonzept vorsehen.",
			Confidence:     0.74,
			DocumentID:     fixture.DocumentID,
		})
	}

	backflowRequired := fixture.Zone != "" && catalog.Contains(r.params.BackflowRequired, projectType)
	findings = append(findings, Guard(!backflowRequired || fixture.Backflow, func() []finding.Finding {
		return One(finding.Finding{
			ID:       finding.ComposeID("kg410", "fixture", fixture.ID, "ruecksaugsicherung"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Rückflussverhinderer erforderlich",
			Description: fmt.Sprintf(
				"Für den sensiblen Bereich %s ist gemäß DIN EN 1717 ein Rückflussverhinderer vorzusehen. Die Unterlage weist keinen entsprechenden Nachweis auf.",
				zone),
			Trade:          r.Trade(),
			NormRef:        "DIN EN 1717",
			Recommendation: "Geräteseitige Sicherungseinrichtungen vorsehen und dokumentieren.",
			Confidence:     0.81,
			DocumentID:     fixture.DocumentID,
		})
	})...)

	return findings
}

func containsFold(list []string, needle string) bool {
	for _, entry := range list {
		if strings.EqualFold(entry, needle) {
			return true
		}
	}
	return false
}
