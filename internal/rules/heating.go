package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// heatingRules covers KG420 (Wärmeversorgungsanlagen): specific heat loads,
// system temperatures and pressure, hydraulic balancing, mandatory
// components and generator sizing/efficiency.
type heatingRules struct {
	params catalog.Heating
}

func (r *heatingRules) Trade() finding.Trade { return finding.TradeHeating }

func (r *heatingRules) Evaluate(ctx *Context) []finding.Finding {
	facts := ctx.Heating
	if facts == nil {
		facts = &HeatingFacts{}
	}

	projectType := ctx.ProjectType
	loadRange, ok := r.params.SpecificLoad[projectType]
	if !ok {
		loadRange = r.params.SpecificLoad["buerogebaeude"]
	}

	var findings []finding.Finding

	findings = append(findings, Guard(len(facts.Rooms) > 0, func() []finding.Finding {
		return One(finding.Finding{
			ID:             "kg420_0001",
			Category:       finding.CategoryTechnical,
			Priority:       finding.PriorityHigh,
			Title:          "Keine Heizlastdaten gefunden",
			Description:    "Für die Heizungsbewertung konnten keine Raumheizlasten identifiziert werden.",
			Trade:          r.Trade(),
			Recommendation: "Heizlastberechnung nach DIN EN 12831 bereitstellen.",
			Confidence:     0.55,
		})
	})...)

	totalLoad := r.totalLoad(facts)

	for _, room := range facts.Rooms {
		findings = append(findings, r.checkRoom(room, loadRange, projectType)...)
	}
	findings = append(findings, r.checkSystem(facts.System)...)
	findings = append(findings, r.checkGenerator(facts.Generator, totalLoad)...)

	return findings
}

// totalLoad is the declared project heat load in kW, falling back to the
// room sum. Legacy inputs list room loads in W; values above 1000 are read
// as W and scaled down.
func (r *heatingRules) totalLoad(facts *HeatingFacts) float64 {
	if total, ok := deref(facts.TotalLoad); ok {
		return total
	}
	var sum float64
	for _, room := range facts.Rooms {
		value, ok := deref(room.HeatLoad)
		if !ok {
			continue
		}
		if value > 1000 {
			value /= 1000
		}
		sum += value
	}
	return sum
}

func (r *heatingRules) checkRoom(room HeatingRoom, loadRange catalog.Range, projectType string) []finding.Finding {
	specific, ok := deref(room.SpecificLoad)
	if !ok {
		return nil
	}

	var findings []finding.Finding
	if specific > loadRange.Max {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg420", "room", room.Name, "hoch"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Spezifische Heizlast über Richtwert",
			Description: fmt.Sprintf(
				"Für den Raum %s liegt die spezifische Heizlast bei %.1f W/m² und überschreitet den Richtwert von %.0f W/m² für %s.",
				finding.Label(room.Name), specific, loadRange.Max, projectType),
			Trade:          r.Trade(),
			NormRef:        "DIN EN 12831-1",
			Recommendation: "Bauteilannahmen und Lüftungszonen prüfen.",
			Confidence:     0.82,
		})
	}
	if specific < loadRange.Min {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg420", "room", room.Name, "niedrig"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityLow,
			Title:    "Spezifische Heizlast auffällig niedrig",
			Description: fmt.Sprintf(
				"Der Raum %s weist lediglich %.1f W/m² auf. Erwartungswert: mindestens %.0f W/m².",
				finding.Label(room.Name), specific, loadRange.Min),
			Trade:          r.Trade(),
			NormRef:        "DIN EN 12831-1",
			Recommendation: "Eingabedaten der Heizlastberechnung überprüfen.",
			Confidence:     0.7,
		})
	}
	return findings
}

func (r *heatingRules) checkSystem(system HeatingSystem) []finding.Finding {
	var findings []finding.Finding

	supplyTemp, hasSupply := deref(system.SupplyTemp)
	returnTemp, hasReturn := deref(system.ReturnTemp)
	pressure, hasPressure := deref(system.Pressure)

	findings = append(findings, Guard(!hasSupply || supplyTemp <= r.params.SupplyTempMax, func() []finding.Finding {
		return One(finding.Finding{
			ID:       "kg420_vorlauf_001",
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Vorlauftemperatur über Grenzwert",
			Description: fmt.Sprintf(
				"Die geplante Vorlauftemperatur beträgt %.1f °C und überschreitet den Grenzwert von %.0f °C für Niedertemperatursysteme.",
				supplyTemp, r.params.SupplyTempMax),
			Trade:          r.Trade(),
			NormRef:        "GEG §70",
			Recommendation: "Heizkreis-Temperaturniveau optimieren (z.B. größere Heizflächen).",
			Confidence:     0.78,
		})
	})...)

	findings = append(findings, Guard(!hasReturn || returnTemp <= r.params.ReturnTempMax, func() []finding.Finding {
		return One(finding.Finding{
			ID:       "kg420_ruecklauf_001",
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityLow,
			Title:    "Rücklauftemperatur über Richtwert",
			Description: fmt.Sprintf(
				"Der Rücklauf liegt bei %.1f °C und überschreitet den empfohlenen Wert von %.0f °C.",
				returnTemp, r.params.ReturnTempMax),
			Trade:          r.Trade(),
			NormRef:        "VDI 6030",
			Recommendation: "Hydraulische Optimierung prüfen (z.B. Volumenstromerhöhung).",
			Confidence:     0.72,
		})
	})...)

	if hasSupply && hasReturn && supplyTemp > returnTemp {
		deltaT := supplyTemp - returnTemp
		if deltaT < r.params.DeltaTTolerance {
			findings = append(findings, finding.Finding{
				ID:       "kg420_deltaT_001",
				Category: finding.CategoryTechnical,
				Priority: finding.PriorityMedium,
				Title:    "Temperaturspreizung zu gering",
				Description: fmt.Sprintf(
					"Die Temperaturspreizung beträgt nur %.1f K. Für stabile Regelung sollten mindestens %.0f K erreicht werden.",
					deltaT, r.params.DeltaTTolerance),
				Trade:          r.Trade(),
				NormRef:        "VDI 2035",
				Recommendation: "Heizflächen oder Volumenströme anpassen.",
				Confidence:     0.69,
			})
		}
	}

	if hasPressure {
		switch {
		case pressure < r.params.PressureMin:
			findings = append(findings, finding.Finding{
				ID:       "kg420_druck_min",
				Category: finding.CategoryTechnical,
				Priority: finding.PriorityMedium,
				Title:    "Anlagendruck zu niedrig",
				Description: fmt.Sprintf(
					"Der dokumentierte Anlagendruck beträgt %.1f bar. Mindestwert nach DIN EN 12828: %.1f bar.",
					pressure, r.params.PressureMin),
				Trade:          r.Trade(),
				NormRef:        "DIN EN 12828",
				Recommendation: "Vordruck des Ausdehnungsgefäßes prüfen und nachjustieren.",
				Confidence:     0.77,
			})
		case pressure > r.params.PressureMax:
			findings = append(findings, finding.Finding{
				ID:       "kg420_druck_max",
				Category: finding.CategoryTechnical,
				Priority: finding.PriorityHigh,
				Title:    "Anlagendruck oberhalb Sicherheitsgrenze",
				Description: fmt.Sprintf(
					"Der festgelegte Systemdruck beträgt %.1f bar und überschreitet den zulässigen Maximalwert von %.1f bar.",
					pressure, r.params.PressureMax),
				Trade:          r.Trade(),
				NormRef:        "DIN EN 12828",
				Recommendation: "Sicherheitsventil und Ausdehnungsgefäßdimensionierung überprüfen.",
				Confidence:     0.84,
			})
		}
	}

	findings = append(findings, GuardIf(r.params.HydraulicBalanceReq, system.HydraulicBalancing, func() []finding.Finding {
		return One(finding.Finding{
			ID:             "kg420_hydraulik_001",
			Category:       finding.CategoryTechnical,
			Priority:       finding.PriorityHigh,
			Title:          "Nachweis hydraulischer Abgleich fehlt",
			Description:    "Für das Heizsystem liegt kein Nachweis des hydraulischen Abgleichs vor.",
			Trade:          r.Trade(),
			NormRef:        "EnSimiMaV, VdZ-Formular",
			Recommendation: "Hydraulischen Abgleich durchführen und protokollieren.",
			Confidence:     0.88,
		})
	})...)

	if missing := r.missingComponents(system.Components); len(missing) > 0 {
		findings = append(findings, finding.Finding{
			ID:             "kg420_komponenten_001",
			Category:       finding.CategoryTechnical,
			Priority:       finding.PriorityHigh,
			Title:          "Pflichtkomponenten im Schema nicht nachgewiesen",
			Description:    "Im Anlagenschema fehlen folgende Komponenten: " + strings.Join(missing, ", "),
			Trade:          r.Trade(),
			NormRef:        "DIN EN 12828",
			Recommendation: "Schema ergänzen und Komponenten nachweisen.",
			Confidence:     0.83,
		})
	}

	return findings
}

// missingComponents compares the documented schema components against the
// required set, case-insensitively, and returns the missing ones sorted.
func (r *heatingRules) missingComponents(components []string) []string {
	present := make(map[string]bool, len(components))
	for _, c := range components {
		present[strings.ToLower(strings.TrimSpace(c))] = true
	}

	var missing []string
	for _, required := range r.params.RequiredComponents {
		if !present[strings.ToLower(required)] {
			missing = append(missing, required)
		}
	}
	sort.Strings(missing)
	return missing
}

func (r *heatingRules) checkGenerator(gen HeatingGenerator, totalLoad float64) []finding.Finding {
	var findings []finding.Finding

	if power, ok := deref(gen.Power); ok && totalLoad > 0 {
		margin := power / totalLoad
		if margin < r.params.GeneratorMargin {
			reserve := r.params.GeneratorMargin - 1
			findings = append(findings, finding.Finding{
				ID:       "kg420_erzeuger_001",
				Category: finding.CategoryTechnical,
				Priority: finding.PriorityHigh,
				Title:    "Wärmeerzeuger zu klein dimensioniert",
				Description: fmt.Sprintf(
					"Der Wärmeerzeuger ist mit %.1f kW angesetzt. Der Nachweis erfordert mindestens %s Reserve auf die berechnete Heizlast (aktuell %.1f kW).",
					power, pctVal(reserve), totalLoad),
				Trade:          r.Trade(),
				NormRef:        "DIN EN 12831-3",
				Recommendation: "Erzeugerleistung erhöhen oder Heizlastberechnung plausibilisieren.",
				Confidence:     0.86,
			})
		}
	}

	switch strings.ToLower(gen.Type) {
	case "waermepumpe":
		cop, hasCOP := deref(gen.COP)
		findings = append(findings, Guard(!hasCOP || cop >= r.params.COPMin, func() []finding.Finding {
			return One(finding.Finding{
				ID:       "kg420_wp_001",
				Category: finding.CategoryTechnical,
				Priority: finding.PriorityMedium,
				Title:    "COP der Wärmepumpe zu niedrig",
				Description: fmt.Sprintf(
					"Der dokumentierte COP/SCOP beträgt %.2f und liegt unter dem Zielwert von %.1f für effiziente Wärmepumpen.",
					cop, r.params.COPMin),
				Trade:          r.Trade(),
				NormRef:        "GEG §71",
				Recommendation: "Geräteauswahl prüfen oder Systemtemperaturen senken.",
				Confidence:     0.8,
			})
		})...)
	case "gaskessel":
		eta, hasEta := deref(gen.Efficiency)
		findings = append(findings, Guard(!hasEta || eta >= r.params.BoilerEfficiencyMin, func() []finding.Finding {
			return One(finding.Finding{
				ID:       "kg420_kessel_001",
				Category: finding.CategoryTechnical,
				Priority: finding.PriorityHigh,
				Title:    "Wirkungsgrad des Kessels zu gering",
				Description: fmt.Sprintf(
					"Der angegebene Kesselwirkungsgrad liegt bei %s und unterschreitet den Mindestwert von %s.",
					pct(gen.Efficiency), pctVal(r.params.BoilerEfficiencyMin)),
				Trade:          r.Trade(),
				NormRef:        "GEG §62",
				Recommendation: "Brennwerttechnik einsetzen oder Wirkungsgradnachweis erbringen.",
				Confidence:     0.87,
			})
		})...)
	}

	return findings
}
