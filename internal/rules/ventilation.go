package rules

import (
	"fmt"
	"strings"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// ventilationRules covers KG430 (Raumlufttechnische Anlagen): outdoor air
// per person, air-change rates, CO₂ limits, supply/exhaust balance, heat
// recovery and filter classes.
type ventilationRules struct {
	params catalog.Ventilation
}

func (r *ventilationRules) Trade() finding.Trade { return finding.TradeVentilation }

func (r *ventilationRules) Evaluate(ctx *Context) []finding.Finding {
	facts := ctx.Ventilation
	if facts == nil {
		facts = &VentilationFacts{}
	}

	projectType := ctx.ProjectType
	airChange, ok := r.params.AirChange[projectType]
	if !ok {
		airChange = r.params.AirChange["buerogebaeude"]
	}
	outdoorAir, ok := r.params.OutdoorAirPerPerson[projectType]
	if !ok {
		outdoorAir = 30.0
	}

	var findings []finding.Finding

	findings = append(findings, Guard(len(facts.Rooms) > 0, func() []finding.Finding {
		return One(finding.Finding{
			ID:             "kg430_0001",
			Category:       finding.CategoryTechnical,
			Priority:       finding.PriorityHigh,
			Title:          "Keine Luftmengenberechnung gefunden",
			Description:    "Für die RLT-Bewertung konnten keine Raumdaten extrahiert werden.",
			Trade:          r.Trade(),
			Recommendation: "Luftmengenberechnung nach DIN EN 16798 bereitstellen.",
			Confidence:     0.55,
		})
	})...)

	var totalSupply, totalExhaust float64
	for _, room := range facts.Rooms {
		if v, ok := deref(room.Supply); ok {
			totalSupply += v
		}
		if v, ok := deref(room.Exhaust); ok {
			totalExhaust += v
		}
		findings = append(findings, r.checkRoom(room, airChange, outdoorAir, projectType)...)
	}

	if totalSupply > 0 && totalExhaust > 0 {
		larger := totalSupply
		if totalExhaust > larger {
			larger = totalExhaust
		}
		ratio := (totalSupply - totalExhaust) / larger
		if ratio < 0 {
			ratio = -ratio
		}
		if ratio > r.params.BalanceTolerance {
			findings = append(findings, finding.Finding{
				ID:       "kg430_balance_001",
				Category: finding.CategoryTechnical,
				Priority: finding.PriorityMedium,
				Title:    "Zu- und Abluft nicht im Gleichgewicht",
				Description: fmt.Sprintf(
					"Die Volumenströme differieren um %s. Zulässig sind maximal %s.",
					pctVal(ratio), pctVal(r.params.BalanceTolerance)),
				Trade:          r.Trade(),
				NormRef:        "VDI 6022",
				Recommendation: "Volumenstromabgleich in der Inbetriebnahmeplanung ergänzen.",
				Confidence:     0.75,
			})
		}
	}

	for _, system := range facts.Systems {
		findings = append(findings, r.checkSystem(system)...)
	}

	return findings
}

func (r *ventilationRules) checkRoom(room VentilationRoom, airChange catalog.Range, outdoorAir float64, projectType string) []finding.Finding {
	var findings []finding.Finding
	name := finding.Label(room.Name)

	supply, hasSupply := deref(room.Supply)
	persons, _ := deref(room.Persons)
	if persons > 0 && hasSupply && supply/persons < outdoorAir {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg430", room.Name, "luftmenge"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Außenluftvolumenstrom je Person zu gering",
			Description: fmt.Sprintf(
				"Für %s stehen nur %.0f m³/h Außenluft zur Verfügung. Vorgabe für %s: %.0f m³/h pro Person (aktuell %.0f Personen).",
				name, supply, projectType, outdoorAir, persons),
			Trade:          r.Trade(),
			NormRef:        "ASR A3.6 / DIN EN 16798",
			Recommendation: "Volumenströme anpassen oder Personenbelegung reduzieren.",
			Confidence:     0.83,
		})
	}

	if change, ok := deref(room.AirChange); ok {
		switch {
		case change < airChange.Min:
			findings = append(findings, finding.Finding{
				ID:       finding.ComposeID("kg430", room.Name, "wechsel_min"),
				Category: finding.CategoryTechnical,
				Priority: finding.PriorityMedium,
				Title:    "Luftwechselrate zu gering",
				Description: fmt.Sprintf(
					"Der Luftwechsel in %s beträgt %.1f 1/h und liegt unter dem Mindestwert von %.1f 1/h.",
					name, change, airChange.Min),
				Trade:          r.Trade(),
				NormRef:        "DIN EN 16798-1",
				Recommendation: "Luftmengenberechnung aktualisieren und Geräteauswahl prüfen.",
				Confidence:     0.79,
			})
		case change > airChange.Max:
			findings = append(findings, finding.Finding{
				ID:       finding.ComposeID("kg430", room.Name, "wechsel_max"),
				Category: finding.CategoryTechnical,
				Priority: finding.PriorityLow,
				Title:    "Luftwechselrate auffällig hoch",
				Description: fmt.Sprintf(
					"Der Luftwechsel in %s beträgt %.1f 1/h und überschreitet den Richtwert von %.1f 1/h.",
					name, change, airChange.Max),
				Trade:          r.Trade(),
				NormRef:        "DIN EN 16798-1",
				Recommendation: "Plausibilität der Lastannahmen prüfen.",
				Confidence:     0.68,
			})
		}
	}

	if co2, ok := deref(room.CO2); ok && co2 > r.params.CO2Limit {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg430", room.Name, "co2"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "CO₂-Konzentration über Grenzwert",
			Description: fmt.Sprintf(
				"Für %s werden %.0f ppm CO₂ ausgewiesen. Grenzwert nach DIN EN 16798: %.0f ppm.",
				name, co2, r.params.CO2Limit),
			Trade:          r.Trade(),
			NormRef:        "DIN EN 16798-1",
			Recommendation: "Außenluftanteil erhöhen oder CO₂-Regelung vorsehen.",
			Confidence:     0.8,
		})
	}

	return findings
}

func (r *ventilationRules) checkSystem(system VentilationSystem) []finding.Finding {
	var findings []finding.Finding

	systemID := system.ID
	if systemID == "" {
		systemID = "anlage"
	}

	flow, hasFlow := deref(system.Flow)
	if r.params.HeatRecoveryReq && hasFlow && flow > r.params.HeatRecoveryMinFlow {
		findings = append(findings, Guard(system.HeatRecovery, func() []finding.Finding {
			return One(finding.Finding{
				ID:       finding.ComposeID("kg430", systemID, "wrg"),
				Category: finding.CategoryTechnical,
				Priority: finding.PriorityHigh,
				Title:    "Wärmerückgewinnung fehlt",
				Description: fmt.Sprintf(
					"Die Anlage %s verfügt über %.0f m³/h Volumenstrom. Für Anlagen >%.0f m³/h ist eine Wärmerückgewinnung vorzusehen.",
					systemID, flow, r.params.HeatRecoveryMinFlow),
				Trade:          r.Trade(),
				NormRef:        "GEG §70, DIN EN 13053",
				Recommendation: "WRG-System (z.B. Rotationswärmetauscher) nachrüsten.",
				Confidence:     0.85,
			})
		})...)
	}

	if eta, ok := deref(system.HeatRecoveryEta); system.HeatRecovery && ok && eta < r.params.HeatRecoveryEtaMin {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg430", systemID, "eta"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Wirkungsgrad der Wärmerückgewinnung zu gering",
			Description: fmt.Sprintf(
				"Für Anlage %s ist ein WRG-Wirkungsgrad von %s dokumentiert. Gefordert sind mindestens %s.",
				systemID, pct(system.HeatRecoveryEta), pctVal(r.params.HeatRecoveryEtaMin)),
			Trade:          r.Trade(),
			NormRef:        "DIN EN 13053",
			Recommendation: "Geräteauswahl überprüfen oder Leistungsdaten aktualisieren.",
			Confidence:     0.78,
		})
	}

	if !hasSupplyFilter(system.FilterClasses) {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg430", systemID, "filter"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Filterklasse für Zuluft unzureichend",
			Description: fmt.Sprintf(
				"Für Anlage %s ist keine Filterklasse ≥F7 dokumentiert. Gemäß DIN EN ISO 16890 sind mindestens F7/ePM1 50%% erforderlich.",
				systemID),
			Trade:          r.Trade(),
			NormRef:        "DIN EN ISO 16890",
			Recommendation: "Filterstufen festlegen und Kennzeichnung im Schema ergänzen.",
			Confidence:     0.76,
		})
	}

	return findings
}

// hasSupplyFilter reports whether any documented filter class meets the F7
// (or ePM1 equivalent) supply-air minimum.
func hasSupplyFilter(classes []string) bool {
	for _, class := range classes {
		upper := strings.ToUpper(strings.TrimSpace(class))
		if strings.HasPrefix(upper, "F7") || strings.HasPrefix(upper, "EPM1") {
			return true
		}
	}
	return false
}
