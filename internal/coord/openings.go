package coord

import (
	"fmt"
	"math"
	"strings"

	"github.com/Kevin180791/tgacheck/internal/finding"
)

// positionTolerance is the accepted placement deviation per axis in meters.
const positionTolerance = 0.1

// dimensionTolerance is the accepted size deviation for an opening: at
// least 2 cm, or 10% of the largest requested dimension for big openings.
func dimensionTolerance(requested Dimensions) float64 {
	return math.Max(0.02, 0.1*math.Max(requested.Width, requested.Height))
}

// Penetrations matches requested openings against confirmed ones by
// case-insensitive reference. Per request, the first applicable deviation
// decides: unconfirmed, wrong level, dimensions out of tolerance, or
// position out of tolerance. The first confirmation per reference wins.
func Penetrations(requests []OpeningRequest, confirmations []OpeningConfirmation) []finding.Finding {
	confirmed := make(map[string][]OpeningConfirmation, len(confirmations))
	for _, c := range confirmations {
		ref := strings.ToLower(strings.TrimSpace(c.Reference))
		if ref == "" {
			continue
		}
		confirmed[ref] = append(confirmed[ref], c)
	}

	var findings []finding.Finding
	for _, req := range requests {
		ident := strings.ToLower(strings.TrimSpace(req.ID))
		if ident == "" {
			continue
		}

		matches := confirmed[ident]
		if len(matches) == 0 {
			findings = append(findings, finding.Finding{
				ID:             finding.ComposeID("sud", req.DocumentID, ident, "fehlend"),
				Category:       finding.CategoryCoordination,
				Priority:       finding.PriorityHigh,
				Title:          "SuD-Durchbruch nicht bestätigt",
				Description:    "Für die angeforderte Öffnung liegt kein bestätigter Schlitz- und Durchbruchsplan vor.",
				Trade:          req.Trade,
				Recommendation: "Öffnung in SuD-Plan aufnehmen und mit Tragwerksplanung abstimmen",
				Confidence:     0.85,
				DocumentID:     req.DocumentID,
				PlanRef:        req.PlanRef,
			})
			continue
		}
		conf := matches[0]
		planRef := req.PlanRef + " / " + conf.PlanRef

		if req.Level != "" && conf.Level != "" && !strings.EqualFold(req.Level, conf.Level) {
			findings = append(findings, finding.Finding{
				ID:             finding.ComposeID("sud", req.DocumentID, ident, "geschoss"),
				Category:       finding.CategoryCoordination,
				Priority:       finding.PriorityMedium,
				Title:          "SuD-Durchbruch falsches Geschoss",
				Description:    "Die bestätigte Öffnung befindet sich in einem anderen Geschoss als angefordert.",
				Trade:          req.Trade,
				Recommendation: "Geschosslage zwischen Planungsteams abstimmen",
				Confidence:     0.75,
				DocumentID:     req.DocumentID,
				PlanRef:        planRef,
			})
			continue
		}

		if req.Dim != nil && conf.Dim != nil {
			tolerance := dimensionTolerance(*req.Dim)
			deltaW := math.Abs(req.Dim.Width - conf.Dim.Width)
			deltaH := math.Abs(req.Dim.Height - conf.Dim.Height)
			if deltaW > tolerance || deltaH > tolerance {
				findings = append(findings, finding.Finding{
					ID:       finding.ComposeID("sud", req.DocumentID, ident, "abmessung"),
					Category: finding.CategoryCoordination,
					Priority: finding.PriorityMedium,
					Title:    "SuD-Abmessungen weichen ab",
					Description: fmt.Sprintf(
						"Angefordert %.2f x %.2f m, bestätigt %.2f x %.2f m.",
						req.Dim.Width, req.Dim.Height, conf.Dim.Width, conf.Dim.Height),
					Trade:          req.Trade,
					Recommendation: "Abmessungen zwischen TGA und Tragwerk abstimmen",
					Confidence:     0.8,
					DocumentID:     req.DocumentID,
					PlanRef:        planRef,
				})
				continue
			}
		}

		if req.Pos != nil && conf.Pos != nil {
			deltaX := math.Abs(req.Pos.X - conf.Pos.X)
			deltaY := math.Abs(req.Pos.Y - conf.Pos.Y)
			if deltaX > positionTolerance || deltaY > positionTolerance {
				findings = append(findings, finding.Finding{
					ID:       finding.ComposeID("sud", req.DocumentID, ident, "lage"),
					Category: finding.CategoryCoordination,
					Priority: finding.PriorityMedium,
					Title:    "SuD-Lageabweichung",
					Description: fmt.Sprintf(
						"Lageabweichung von %.2f m in X und %.2f m in Y festgestellt.",
						deltaX, deltaY),
					Trade:          req.Trade,
					Recommendation: "Lage in Koordinationsplan korrigieren",
					Confidence:     0.78,
					DocumentID:     req.DocumentID,
					PlanRef:        planRef,
				})
			}
		}
	}
	return findings
}
