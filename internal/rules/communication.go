package rules

import (
	"fmt"
	"strings"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// communicationRules covers KG450 (Kommunikations- und sicherheitstechnische
// Anlagen): data network capacity, cable shielding, fire alarm conformity
// and security-zone coverage.
type communicationRules struct {
	params catalog.Communication
}

func (r *communicationRules) Trade() finding.Trade { return finding.TradeCommunication }

func (r *communicationRules) Evaluate(ctx *Context) []finding.Finding {
	facts := ctx.Communication
	if facts == nil {
		facts = &CommunicationFacts{}
	}
	projectType := ctx.ProjectType

	if len(facts.Networks) == 0 && facts.FireAlarm == nil && len(facts.SecurityAreas) == 0 {
		return One(finding.Finding{
			ID:             "kg450_0001",
			Category:       finding.CategoryTechnical,
			Priority:       finding.PriorityMedium,
			Title:          "Keine Kommunikationsanlagen dokumentiert",
			Description:    "Es konnten keine Daten zu Netzwerken oder sicherheitstechnischen Anlagen ausgewertet werden.",
			Trade:          r.Trade(),
			Recommendation: "Planunterlagen für Datennetze und Gefahrenmeldeanlagen ergänzen.",
			Confidence:     0.45,
		})
	}

	var findings []finding.Finding

	shieldingRequired := catalog.Contains(r.params.CableShieldingRequired, projectType)
	for _, network := range facts.Networks {
		findings = append(findings, r.checkNetwork(network, shieldingRequired)...)
	}

	if facts.FireAlarm != nil {
		findings = append(findings, r.checkFireAlarm(*facts.FireAlarm, projectType)...)
	}

	redundancyRequired := catalog.Contains(r.params.RedundantPathsRequired, projectType)
	for _, area := range facts.SecurityAreas {
		findings = append(findings, r.checkSecurityArea(area, projectType, redundancyRequired)...)
	}

	return findings
}

func (r *communicationRules) checkNetwork(network Network, shieldingRequired bool) []finding.Finding {
	zone := network.Zone
	if zone == "" {
		zone = "Netz"
	}

	var findings []finding.Finding

	if fill, ok := deref(network.RackFill); ok && fill > r.params.DataRackFillMax {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg450", zone, "rack"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Racks zu hoch belegt",
			Description: fmt.Sprintf(
				"Im Bereich %s ist eine Gestellbelegung von %.0f%% geplant. Empfohlen werden maximal %.0f%% zur Reservebildung.",
				zone, fill*100, r.params.DataRackFillMax*100),
			Trade:          r.Trade(),
			Recommendation: "Racks auf mehrere Verteilräume verteilen oder Kapazität erweitern.",
			Confidence:     0.7,
		})
	}

	findings = append(findings, GuardIf(shieldingRequired, network.Shielding, func() []finding.Finding {
		return One(finding.Finding{
			ID:       finding.ComposeID("kg450", zone, "schirmung"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Kabelschirmung nicht nachgewiesen",
			Description: fmt.Sprintf(
				"Für Zone %s ist aufgrund elektromagnetischer Störungen eine geschirmte Verkabelung vorzusehen. Aktuell fehlt der Nachweis.",
				zone),
			Trade:          r.Trade(),
			Recommendation: "Verkabelungskonzept aktualisieren und Schirmungsmaßnahme spezifizieren.",
			Confidence:     0.68,
		})
	})...)

	return findings
}

func (r *communicationRules) checkFireAlarm(alarm FireAlarm, projectType string) []finding.Finding {
	var findings []finding.Finding

	conforming := strings.HasPrefix(strings.ToLower(alarm.Standard), "din 14675")
	findings = append(findings, Guard(conforming, func() []finding.Finding {
		return One(finding.Finding{
			ID:             "kg450_bma_norm",
			Category:       finding.CategoryTechnical,
			Priority:       finding.PriorityHigh,
			Title:          "Brandmeldeanlage nicht normkonform",
			Description:    "Für die Brandmeldeanlage ist kein Nachweis gemäß DIN 14675 dokumentiert.",
			Trade:          r.Trade(),
			NormRef:        r.params.FireAlarmStandard,
			Recommendation: "Planungsnachweis nach DIN 14675 erstellen und Wartungskonzept definieren.",
			Confidence:     0.82,
		})
	})...)

	required := catalog.Contains(r.params.RedundantPathsRequired, projectType)
	findings = append(findings, Guard(!required || alarm.RedundantPaths, func() []finding.Finding {
		return One(finding.Finding{
			ID:             "kg450_bma_redundanz",
			Category:       finding.CategoryTechnical,
			Priority:       finding.PriorityHigh,
			Title:          "Brandmeldeanlage ohne redundante Leitungsführung",
			Description:    "Für kritische Gebäude ist eine redundante Übertragungsstrecke vorzusehen.",
			Trade:          r.Trade(),
			Recommendation: "Ringstruktur bzw. doppelte Anbindung der Brandmeldezentrale planen.",
			Confidence:     0.8,
		})
	})...)

	return findings
}

func (r *communicationRules) checkSecurityArea(area SecurityArea, projectType string, redundancyRequired bool) []finding.Finding {
	name := area.Name
	if name == "" {
		name = "Bereich"
	}

	var findings []finding.Finding

	findings = append(findings, GuardIf(redundancyRequired, area.RedundantLink, func() []finding.Finding {
		return One(finding.Finding{
			ID:       finding.ComposeID("kg450", name, "redundanz"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Sicherheitsnetz ohne redundante Anbindung",
			Description: fmt.Sprintf(
				"Für sicherheitskritische Zone %s ist keine redundante Netzwerkverbindung vorgesehen.",
				name),
			Trade:          r.Trade(),
			Recommendation: "Redundante Switch-/Leitungstopologie auslegen.",
			Confidence:     0.7,
		})
	})...)

	findings = append(findings, Guard(area.AccessControl, func() []finding.Finding {
		return One(finding.Finding{
			ID:       finding.ComposeID("kg450", name, "zutritt"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityHigh,
			Title:    "Zutrittskontrolle nicht geplant",
			Description: fmt.Sprintf(
				"Für den sensiblen Bereich %s ist keine Zutrittskontrolle dokumentiert.",
				name),
			Trade:          r.Trade(),
			Recommendation: "Zutrittskontrollsystem mit Protokollierung vorsehen.",
			Confidence:     0.75,
		})
	})...)

	// An unspecified monitoring field (not a documented "no") flags in the
	// most sensitive building types.
	if area.VideoMonitoring == nil && (projectType == "krankenhaus" || projectType == "rechenzentrum") {
		findings = append(findings, finding.Finding{
			ID:       finding.ComposeID("kg450", name, "video"),
			Category: finding.CategoryTechnical,
			Priority: finding.PriorityMedium,
			Title:    "Videomonitoring nicht spezifiziert",
			Description: fmt.Sprintf(
				"Für sicherheitsrelevanten Bereich %s fehlt der Nachweis einer Videoüberwachung.",
				name),
			Trade:          r.Trade(),
			Recommendation: "Videoüberwachungskonzept inkl. Aufbewahrungsfristen definieren.",
			Confidence:     0.66,
		})
	}

	return findings
}
