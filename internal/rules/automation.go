package rules

import (
	"fmt"
	"strings"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// automationRules covers KG480 (Gebäudeautomation): BACS efficiency classes
// per served trade, point densities, trend storage and alarm latency.
type automationRules struct {
	params catalog.Automation
}

func (r *automationRules) Trade() finding.Trade { return finding.TradeAutomation }

// bacsRank orders efficiency classes from D (worst, 0) to A (best, 3).
// Unknown classes rank below D so they always fail a class requirement.
func bacsRank(class string) int {
	switch strings.ToUpper(class) {
	case "D":
		return 0
	case "C":
		return 1
	case "B":
		return 2
	case "A":
		return 3
	default:
		return -1
	}
}

func (r *automationRules) Evaluate(ctx *Context) []finding.Finding {
	facts := ctx.Automation
	if facts == nil {
		facts = &AutomationFacts{}
	}

	var findings []finding.Finding

	for _, system := range facts.Systems {
		tradeRef := strings.ToLower(system.TradeRef)
		class := system.Class
		if class == "" {
			class = "D"
		}
		required, ok := r.params.BACSClasses[tradeRef]
		if !ok || bacsRank(class) >= bacsRank(required) {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg480", tradeRef, "klasse"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Gebäudeautomationsklasse unterschreitet Vorgabe",
			Description: fmt.Sprintf(
				"Für das Gewerk %s ist Klasse %s geplant. Vorgabe gemäß DIN EN ISO 52120-1: mindestens Klasse %s.",
				tradeRef, class, required),
			Trade:          r.Trade(),
			NormRef:        "DIN EN ISO 52120-1",
			Recommendation: "Funktionsumfang (z.B. Einzelraumregelung, Energiemonitoring) erweitern.",
			Confidence:     0.78,
		})
	}

	for _, group := range facts.Points {
		category := strings.ToLower(group.Category)
		if category == "" {
			category = "hvac"
		}
		required, ok := r.params.PointDensityMin[category]
		if !ok {
			continue
		}
		area, hasArea := deref(group.Area)
		count, hasCount := deref(group.Count)
		if !hasArea || area <= 0 || !hasCount {
			continue
		}
		density := count / area * 100 // points per 100 m²
		if density >= required {
			continue
		}
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg480", category, "punkte"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Mess- und Stellpunktdichte zu gering",
			Description: fmt.Sprintf(
				"Für Kategorie %s sind nur %.2f Punkte pro 100 m² vorgesehen. Vorgabe: mindestens %.1f Punkte/100 m².",
				category, density, required),
			Trade:          r.Trade(),
			Recommendation: "Sensorik/Aktorik ergänzen und GA-Funktionsliste überarbeiten.",
			Confidence:     0.72,
		})
	}

	trendDays, hasTrend := deref(facts.TrendDays)
	findings = append(findings, Guard(!hasTrend || trendDays >= r.params.TrendStorageDaysMin, func() []finding.Finding {
		return One(finding.Finding{
			ID:       "kg480_trendaufzeichnung",
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Trenddatenspeicherung zu kurz",
			Description: fmt.Sprintf(
				"Trenddaten werden nur %.0f Tage gespeichert. Vorgabe: mindestens %.0f Tage für Energieauswertung.",
				trendDays, r.params.TrendStorageDaysMin),
			Trade:          r.Trade(),
			Recommendation: "Speicherkapazität erweitern oder Export-Schnittstelle vorsehen.",
			Confidence:     0.7,
		})
	})...)

	alarmResponse, hasAlarm := deref(facts.AlarmResponse)
	findings = append(findings, Guard(!hasAlarm || alarmResponse <= r.params.AlarmResponseTimeMax, func() []finding.Finding {
		return One(finding.Finding{
			ID:       "kg480_alarmzeit",
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Alarmweiterleitung zu träge",
			Description: fmt.Sprintf(
				"Die geplante Alarmreaktionszeit beträgt %.0f Sekunden und überschreitet den Richtwert von %.0f Sekunden.",
				alarmResponse, r.params.AlarmResponseTimeMax),
			Trade:          r.Trade(),
			Recommendation: "Alarmmanagement (z.B. Push/SMS) beschleunigen und Eskalation definieren.",
			Confidence:     0.82,
		})
	})...)

	return findings
}
