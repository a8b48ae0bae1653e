package coord

import (
	"fmt"
	"strings"

	"github.com/Kevin180791/tgacheck/internal/finding"
)

// Collisions checks every unordered cross-trade pair of elements for
// geometric overlap. Elements of the same trade never collide with each
// other; elements on explicitly different levels are skipped.
func Collisions(elements []Element) []finding.Finding {
	type placed struct {
		Element
		box BoundingBox
	}

	items := make([]placed, 0, len(elements))
	for _, el := range elements {
		box, ok := NormalizeBox(el.Box)
		if !ok {
			continue
		}
		items = append(items, placed{Element: el, box: box})
	}

	var findings []finding.Finding
	for i, a := range items {
		for _, b := range items[i+1:] {
			if a.Trade == b.Trade {
				continue
			}
			if a.Level != "" && b.Level != "" && !strings.EqualFold(a.Level, b.Level) {
				continue
			}

			overlap, ok := Intersect(a.box, b.box)
			if !ok {
				continue
			}
			area := overlap.X * overlap.Y
			if area <= 0 {
				continue
			}

			description := fmt.Sprintf(
				"Element %s (%s) überlappt mit %s (%s). Überdeckung: %.2f m²",
				a.ID, a.Trade, b.ID, b.Trade, area)
			if overlap.Z > 0 {
				description += fmt.Sprintf(" bei einer vertikalen Überschneidung von %.2f m", overlap.Z)
			}

			findings = append(findings, finding.Finding{
				ID:             finding.ComposeID("kollision", a.DocumentID, a.ID, b.DocumentID, b.ID),
				Category:       finding.CategoryCoordination,
				Priority:       finding.PriorityHigh,
				Title:          "Geometrische Kollision zwischen Gewerken",
				Description:    description,
				Trade:          a.Trade,
				Recommendation: "Koordinationsmodell prüfen und Höhenlage abstimmen",
				Confidence:     0.85,
				DocumentID:     a.DocumentID,
				PlanRef:        a.PlanRef + " / " + b.PlanRef,
			})
		}
	}
	return findings
}
