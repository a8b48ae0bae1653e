// Package formal implements the formal document checks, currently the
// VDI 6026 legend completeness check for plan documents.
package formal

import (
	"sort"
	"strings"
	"unicode"

	"github.com/Kevin180791/tgacheck/internal/facts"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

// mandatoryLegendKeywords lists the symbols a trade's plan legend must
// name per VDI 6026.
var mandatoryLegendKeywords = map[finding.Trade][]string{
	finding.TradeSanitary:        {"kaltwasser", "warmwasser", "abwasser"},
	finding.TradeHeating:         {"vorlauf", "rücklauf", "heizkörper"},
	finding.TradeVentilation:     {"zuluft", "abluft", "fortluft"},
	finding.TradeElectrical:      {"steckdose", "beleuchtung", "hauptverteilung"},
	finding.TradeCommunication:   {"daten", "kommunikation", "netzwerk"},
	finding.TradeFireSuppression: {"sprinkler", "hydrant", "brandmelder"},
	finding.TradeAutomation:      {"sensor", "aktor", "steuerung"},
}

// CheckProject runs the legend check across all plan documents.
func CheckProject(project *facts.Project) []finding.Finding {
	var findings []finding.Finding
	for _, doc := range project.Documents {
		findings = append(findings, CheckDocument(doc)...)
	}
	return findings
}

// CheckDocument checks one document's legend against the mandatory
// keywords of its trade. Non-plan documents are skipped. A plan without
// usable legend terms yields a low-confidence advisory (the check could
// not run); a legend missing mandatory symbols yields a formal finding.
func CheckDocument(doc facts.Document) []finding.Finding {
	if doc.Type != facts.DocTypePlan {
		return nil
	}
	keywords := mandatoryLegendKeywords[doc.Trade]
	if len(keywords) == 0 {
		return nil
	}

	terms := normalizeTerms(doc.Legend)
	if len(terms) == 0 {
		return []finding.Finding{{
			ID:             finding.ComposeID("formal", doc.ID, "legend_hint"),
			Category:       finding.CategoryAdvisory,
			Priority:       finding.PriorityLow,
			Title:          "Legendenprüfung nicht möglich",
			Description:    "Für den Plan konnten keine Legendendaten extrahiert werden; bitte Sichtprüfung durchführen.",
			Trade:          doc.Trade,
			NormRef:        "VDI 6026",
			Recommendation: "Legende bereitstellen oder Scan-Qualität verbessern",
			Confidence:     0.2,
			DocumentID:     doc.ID,
			PlanRef:        doc.Filename,
		}}
	}

	var missing []string
	for _, keyword := range keywords {
		found := false
		for _, term := range terms {
			if strings.Contains(term, keyword) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, capitalize(keyword))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)

	return []finding.Finding{{
		ID:             finding.ComposeID("formal", doc.ID, "legend_missing"),
		Category:       finding.CategoryFormal,
		Priority:       finding.PriorityMedium,
		Title:          "Legende unvollständig",
		Description:    "Folgende Pflichtsymbole fehlen in der Legende: " + strings.Join(missing, ", "),
		Trade:          doc.Trade,
		NormRef:        "VDI 6026",
		Recommendation: "Legende um die fehlenden Symbole ergänzen",
		Confidence:     0.7,
		DocumentID:     doc.ID,
		PlanRef:        doc.Filename,
	}}
}

func normalizeTerms(legend []string) []string {
	terms := make([]string, 0, len(legend))
	for _, entry := range legend {
		normalized := strings.ToLower(strings.TrimSpace(entry))
		if normalized != "" {
			terms = append(terms, normalized)
		}
	}
	return terms
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
