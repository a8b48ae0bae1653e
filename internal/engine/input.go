package engine

import (
	"strings"

	"github.com/Kevin180791/tgacheck/internal/coord"
	"github.com/Kevin180791/tgacheck/internal/facts"
)

// buildCoordInput collects the geometry elements, interface declarations,
// and opening requests/confirmations of every document into the flat input
// the coordination checks consume. Fallback chains resolve missing element
// metadata from the enclosing block and finally the document itself.
func buildCoordInput(project *facts.Project) coord.Input {
	var in coord.Input
	for _, doc := range project.Documents {
		collectGeometry(&in, doc)
		collectInterfaces(&in, doc)
		collectOpenings(&in, doc)
	}
	return in
}

func collectGeometry(in *coord.Input, doc facts.Document) {
	geo := doc.Geometry
	if geo == nil {
		return
	}
	for _, element := range geo.Elements {
		id := element.ID
		if id == "" {
			id = element.Name
		}
		in.Elements = append(in.Elements, coord.Element{
			DocumentID: doc.ID,
			Trade:      doc.Trade,
			ID:         id,
			Level:      firstNonEmpty(element.Level, geo.Level, doc.Level),
			PlanRef:    firstNonEmpty(element.PlanRef, geo.PlanRef, doc.PlanRef()),
			Box:        boxValues(element.Box),
		})
	}
}

func collectInterfaces(in *coord.Input, doc facts.Document) {
	ifc := doc.Interfaces
	if ifc == nil {
		return
	}
	for _, supply := range ifc.Supplies {
		in.Supplies = append(in.Supplies, coord.Supply{
			DocumentID: doc.ID,
			Reference:  supply.Reference,
			Capacity:   supply.Capacity.Ptr(),
			PlanRef:    firstNonEmpty(supply.PlanRef, doc.PlanRef()),
		})
	}
	for _, demand := range ifc.Heating {
		in.Demands = append(in.Demands, coord.Demand{
			DocumentID: doc.ID,
			Trade:      doc.Trade,
			Supply:     demand.Supply,
			Power:      demand.Power.Ptr(),
			PlanRef:    firstNonEmpty(demand.PlanRef, doc.PlanRef()),
		})
	}
}

func collectOpenings(in *coord.Input, doc facts.Document) {
	op := doc.Openings
	if op == nil {
		return
	}
	for _, req := range op.Requests {
		in.Requests = append(in.Requests, coord.OpeningRequest{
			ID:         req.ID,
			DocumentID: doc.ID,
			Trade:      doc.Trade,
			Level:      firstNonEmpty(req.Level, doc.Level),
			PlanRef:    firstNonEmpty(req.PlanRef, op.PlanRef, doc.PlanRef()),
			Dim:        openingDims(req.Width, req.Height, req.Diameter),
			Pos:        openingPos(req.X, req.Y),
		})
	}
	for _, conf := range op.Confirmed {
		in.Confirmations = append(in.Confirmations, coord.OpeningConfirmation{
			Reference: conf.Reference,
			Level:     conf.Level,
			PlanRef:   firstNonEmpty(conf.PlanRef, op.PlanRef),
			Dim:       openingDims(conf.Width, conf.Height, conf.Diameter),
			Pos:       openingPos(conf.X, conf.Y),
		})
	}
}

// openingDims prefers an explicit width/height pair; a round opening given
// only by diameter reads as a square of that size. Partial dimensions stay
// unknown and skip the dimension comparison.
func openingDims(width, height, diameter facts.Quantity) *coord.Dimensions {
	w, wok := width.Value()
	h, hok := height.Value()
	if wok && hok {
		return &coord.Dimensions{Width: w, Height: h}
	}
	if d, ok := diameter.Value(); ok {
		return &coord.Dimensions{Width: d, Height: d}
	}
	return nil
}

func openingPos(x, y facts.Quantity) *coord.Position {
	xv, xok := x.Value()
	yv, yok := y.Value()
	if !xok || !yok {
		return nil
	}
	return &coord.Position{X: xv, Y: yv}
}

func boxValues(box map[string]facts.Quantity) map[string]float64 {
	if len(box) == 0 {
		return nil
	}
	out := make(map[string]float64, len(box))
	for key, q := range box {
		if v, ok := q.Value(); ok {
			out[strings.ToLower(strings.TrimSpace(key))] = v
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
