package facts

import (
	"github.com/Kevin180791/tgacheck/internal/finding"
	"github.com/Kevin180791/tgacheck/internal/rules"
)

// BuildContext assembles the rule context for one trade from the project's
// documents of that trade. Trades the original extraction treated as
// "document present but nothing extractable" get placeholder entries so the
// per-entity checks still see the document (and the no-data finding stays
// reserved for trades without any documents).
func BuildContext(project *Project, trade finding.Trade) *rules.Context {
	docs := project.DocumentsByTrade()[trade]
	ctx := &rules.Context{ProjectType: project.ProjectType}

	switch trade {
	case finding.TradeSanitary:
		ctx.Sanitary = buildSanitary(docs)
	case finding.TradeHeating:
		ctx.Heating = buildHeating(docs)
	case finding.TradeVentilation:
		ctx.Ventilation = buildVentilation(docs)
	case finding.TradeElectrical:
		ctx.Electrical = buildElectrical(docs)
	case finding.TradeCommunication:
		ctx.Communication = buildCommunication(docs)
	case finding.TradeFireSuppression:
		ctx.FireSuppression = buildFireSuppression(docs)
	case finding.TradeAutomation:
		ctx.Automation = buildAutomation(docs)
	}
	return ctx
}

// buildSanitary reads every sanitary document as one potable-water system.
// A document without extracted values still contributes an (empty) system,
// so temperature documentation gaps surface per document.
func buildSanitary(docs []Document) *rules.SanitaryFacts {
	if len(docs) == 0 {
		return nil
	}

	facts := &rules.SanitaryFacts{}
	for _, doc := range docs {
		system := rules.SanitarySystem{
			Name:       doc.PlanRef(),
			DocumentID: doc.ID,
		}
		if s := doc.Sanitary; s != nil {
			system.HotWaterTemp = s.HotWaterTemp.Ptr()
			system.CirculationTemp = s.CirculationTemp.Ptr()
			system.Velocities = quantityMap(s.Velocities)
			system.Materials = s.Materials
			system.Insulation = quantityMap(s.Insulation)

			for _, fixture := range s.Fixtures {
				facts.Fixtures = append(facts.Fixtures, rules.SanitaryFixture{
					ID:            fixture.ID,
					DocumentID:    doc.ID,
					Zone:          fixture.Zone,
					StagnationHrs: fixture.StagnationHrs.Ptr(),
					Backflow:      fixture.Backflow,
				})
			}
		}
		facts.Systems = append(facts.Systems, system)
	}
	return facts
}

func buildHeating(docs []Document) *rules.HeatingFacts {
	if len(docs) == 0 {
		return nil
	}

	facts := &rules.HeatingFacts{}
	var haveSystem, haveGenerator bool
	for _, doc := range docs {
		h := doc.Heating
		if h == nil {
			continue
		}
		for _, room := range h.Rooms {
			facts.Rooms = append(facts.Rooms, rules.HeatingRoom{
				Name:         room.Name,
				HeatLoad:     room.HeatLoad.Ptr(),
				SpecificLoad: room.SpecificLoad.Ptr(),
			})
		}
		if facts.TotalLoad == nil {
			facts.TotalLoad = h.TotalLoad.Ptr()
		}
		if h.System != nil && !haveSystem {
			haveSystem = true
			facts.System = rules.HeatingSystem{
				SupplyTemp:         h.System.SupplyTemp.Ptr(),
				ReturnTemp:         h.System.ReturnTemp.Ptr(),
				Pressure:           h.System.Pressure.Ptr(),
				HydraulicBalancing: h.System.HydraulicBalancing,
				Components:         h.System.Components,
			}
		}
		if h.Generator != nil && !haveGenerator {
			haveGenerator = true
			facts.Generator = rules.HeatingGenerator{
				Type:       h.Generator.Type,
				Power:      h.Generator.Power.Ptr(),
				COP:        h.Generator.COP.Ptr(),
				Efficiency: h.Generator.Efficiency.Ptr(),
			}
		}
	}
	return facts
}

func buildVentilation(docs []Document) *rules.VentilationFacts {
	if len(docs) == 0 {
		return nil
	}

	facts := &rules.VentilationFacts{}
	for _, doc := range docs {
		v := doc.Ventilation
		if v == nil {
			continue
		}
		for _, room := range v.Rooms {
			facts.Rooms = append(facts.Rooms, rules.VentilationRoom{
				Name:      room.Name,
				Supply:    room.Supply.Ptr(),
				Exhaust:   room.Exhaust.Ptr(),
				Persons:   room.Persons.Ptr(),
				AirChange: room.AirChange.Ptr(),
				CO2:       room.CO2.Ptr(),
			})
		}
		for _, system := range v.Systems {
			facts.Systems = append(facts.Systems, rules.VentilationSystem{
				ID:              system.ID,
				Flow:            system.Flow.Ptr(),
				HeatRecovery:    system.HeatRecovery,
				HeatRecoveryEta: system.HeatRecoveryEta.Ptr(),
				FilterClasses:   system.FilterClasses,
			})
		}
	}
	return facts
}

// buildElectrical appends a placeholder circuit for documents without
// extractable circuit data, so the document is represented in the review.
func buildElectrical(docs []Document) *rules.ElectricalFacts {
	if len(docs) == 0 {
		return nil
	}

	facts := &rules.ElectricalFacts{}
	for _, doc := range docs {
		e := doc.Electrical
		if e == nil || len(e.Circuits) == 0 {
			facts.Circuits = append(facts.Circuits, rules.Circuit{
				Name:       doc.PlanRef(),
				DocumentID: doc.ID,
			})
		} else {
			for _, circuit := range e.Circuits {
				facts.Circuits = append(facts.Circuits, rules.Circuit{
					Name:            circuit.Name,
					DocumentID:      doc.ID,
					VoltageDropPct:  circuit.VoltageDropPct.Ptr(),
					DiversityFactor: circuit.DiversityFactor.Ptr(),
					ReservePct:      circuit.ReservePct.Ptr(),
				})
			}
		}
		if e == nil {
			continue
		}
		for _, zone := range e.Lighting {
			facts.Lighting = append(facts.Lighting, rules.LightingZone{
				ID:    zone.ID,
				Name:  zone.Name,
				Usage: zone.Usage,
				Area:  zone.Area.Ptr(),
				Power: zone.Power.Ptr(),
			})
		}
		for _, consumer := range e.Consumers {
			facts.Consumers = append(facts.Consumers, rules.Consumer{
				Zone:        consumer.Zone,
				UPSRequired: consumer.UPSRequired,
			})
		}
		if e.EmergencyLighting {
			facts.EmergencyLighting = true
		}
	}
	return facts
}

func buildCommunication(docs []Document) *rules.CommunicationFacts {
	if len(docs) == 0 {
		return nil
	}

	facts := &rules.CommunicationFacts{}
	var alarm *rules.FireAlarm
	for _, doc := range docs {
		c := doc.Communication
		if c == nil {
			continue
		}
		for _, network := range c.Networks {
			facts.Networks = append(facts.Networks, rules.Network{
				Zone:      network.Zone,
				RackFill:  network.RackFill.Ptr(),
				Shielding: network.Shielding,
			})
		}
		if c.FireAlarm != nil {
			if alarm == nil {
				alarm = &rules.FireAlarm{}
			}
			if c.FireAlarm.Standard != "" {
				alarm.Standard = c.FireAlarm.Standard
			}
			if c.FireAlarm.RedundantPaths != nil {
				alarm.RedundantPaths = *c.FireAlarm.RedundantPaths
			}
		}
		for _, area := range c.SecurityAreas {
			facts.SecurityAreas = append(facts.SecurityAreas, rules.SecurityArea{
				Name:            area.Name,
				RedundantLink:   area.RedundantLink,
				AccessControl:   area.AccessControl,
				VideoMonitoring: area.VideoMonitoring,
			})
		}
	}
	facts.FireAlarm = alarm

	// Documents without any extractable communication data still represent
	// a network zone each.
	if len(facts.Networks) == 0 && facts.FireAlarm == nil && len(facts.SecurityAreas) == 0 {
		for _, doc := range docs {
			facts.Networks = append(facts.Networks, rules.Network{Zone: doc.PlanRef()})
		}
	}
	return facts
}

func buildFireSuppression(docs []Document) *rules.FireSuppressionFacts {
	if len(docs) == 0 {
		return nil
	}

	facts := &rules.FireSuppressionFacts{}
	for _, doc := range docs {
		f := doc.FireSuppression
		if f == nil {
			continue
		}
		for _, zone := range f.Sprinkler {
			facts.Sprinkler = append(facts.Sprinkler, rules.SprinklerZone{
				Name:           zone.Name,
				HazardClass:    zone.HazardClass,
				Density:        zone.Density.Ptr(),
				Duration:       zone.Duration.Ptr(),
				PumpRedundancy: zone.PumpRedundancy,
			})
		}
		for _, hydrant := range f.Hydrants {
			facts.Hydrants = append(facts.Hydrants, rules.Hydrant{
				Name:     hydrant.Name,
				Flow:     hydrant.Flow.Ptr(),
				Pressure: hydrant.Pressure.Ptr(),
			})
		}
		if f.WaterSupply != nil && facts.WaterSupply.Duration == nil {
			facts.WaterSupply.Duration = f.WaterSupply.Duration.Ptr()
		}
	}

	// Documents without extractable suppression data read as one sprinkler
	// zone of normal hazard each.
	if len(facts.Sprinkler) == 0 && len(facts.Hydrants) == 0 {
		for _, doc := range docs {
			facts.Sprinkler = append(facts.Sprinkler, rules.SprinklerZone{
				Name:        doc.PlanRef(),
				HazardClass: "normal",
			})
		}
	}
	return facts
}

func buildAutomation(docs []Document) *rules.AutomationFacts {
	if len(docs) == 0 {
		return nil
	}

	facts := &rules.AutomationFacts{}
	for _, doc := range docs {
		a := doc.Automation
		if a == nil {
			continue
		}
		for _, system := range a.Systems {
			facts.Systems = append(facts.Systems, rules.AutomationSystem{
				TradeRef: system.TradeRef,
				Class:    system.Class,
			})
		}
		for _, group := range a.Points {
			facts.Points = append(facts.Points, rules.PointGroup{
				Category: group.Category,
				Area:     group.Area.Ptr(),
				Count:    group.Count.Ptr(),
			})
		}
		if facts.TrendDays == nil {
			facts.TrendDays = a.TrendDays.Ptr()
		}
		if facts.AlarmResponse == nil {
			facts.AlarmResponse = a.AlarmResponse.Ptr()
		}
	}
	return facts
}

func quantityMap(m map[string]Quantity) map[string]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, q := range m {
		if v, ok := q.Value(); ok {
			out[k] = v
		}
	}
	return out
}
