package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

func newHeatingRules() *heatingRules {
	return &heatingRules{params: catalog.Default().Heating}
}

func TestHeatingNoRooms(t *testing.T) {
	r := newHeatingRules()
	got := r.Evaluate(&Context{ProjectType: "buerogebaeude", Heating: &HeatingFacts{}})

	f := byID(t, got, "kg420_0001")
	assert.Equal(t, finding.PriorityHigh, f.Priority)
}

func TestHeatingSpecificLoadAboveOfficeRange(t *testing.T) {
	r := newHeatingRules()
	got := r.Evaluate(&Context{
		ProjectType: "buerogebaeude",
		Heating: &HeatingFacts{
			Rooms: []HeatingRoom{{Name: "Büro 1", SpecificLoad: fp(120)}},
		},
	})

	f := byID(t, got, "kg420_room_Büro 1_hoch")
	assert.Equal(t, finding.PriorityMedium, f.Priority)
	assert.NotContains(t, ids(got), "kg420_room_Büro 1_niedrig",
		"a value above the range must not also flag as below it")
}

func TestHeatingSpecificLoadUnknownProjectFallsBackToOffice(t *testing.T) {
	r := newHeatingRules()
	got := r.Evaluate(&Context{
		ProjectType: "mischnutzung",
		Heating: &HeatingFacts{
			Rooms: []HeatingRoom{{Name: "Halle", SpecificLoad: fp(35)}},
		},
	})

	// Office minimum is 40 W/m²; 35 flags low under the fallback range.
	assert.Contains(t, ids(got), "kg420_room_Halle_niedrig")
}

func TestHeatingSpecificLoadUnknownNeverFlags(t *testing.T) {
	r := newHeatingRules()
	got := r.Evaluate(&Context{
		ProjectType: "buerogebaeude",
		Heating: &HeatingFacts{
			Rooms: []HeatingRoom{{Name: "Büro 2"}},
		},
	})

	assert.NotContains(t, ids(got), "kg420_room_Büro 2_hoch")
	assert.NotContains(t, ids(got), "kg420_room_Büro 2_niedrig")
}

func TestHeatingSystemTemperaturesAndPressure(t *testing.T) {
	r := newHeatingRules()
	got := r.Evaluate(&Context{
		ProjectType: "buerogebaeude",
		Heating: &HeatingFacts{
			Rooms: []HeatingRoom{{Name: "Büro", SpecificLoad: fp(60)}},
			System: HeatingSystem{
				SupplyTemp:         fp(75),
				ReturnTemp:         fp(72),
				Pressure:           fp(3.5),
				HydraulicBalancing: true,
				Components: []string{
					"Wärmeerzeuger", "Umwälzpumpe", "Ausdehnungsgefäß",
					"Sicherheitsventil", "Manometer",
				},
			},
		},
	})

	assert.Contains(t, ids(got), "kg420_vorlauf_001")
	assert.Contains(t, ids(got), "kg420_ruecklauf_001")
	assert.Contains(t, ids(got), "kg420_deltaT_001")
	assert.Contains(t, ids(got), "kg420_druck_max")
	assert.NotContains(t, ids(got), "kg420_druck_min")
	assert.NotContains(t, ids(got), "kg420_hydraulik_001")
	assert.NotContains(t, ids(got), "kg420_komponenten_001")
}

func TestHeatingMissingComponentsSorted(t *testing.T) {
	r := newHeatingRules()
	got := r.Evaluate(&Context{
		Heating: &HeatingFacts{
			Rooms: []HeatingRoom{{Name: "Büro"}},
			System: HeatingSystem{
				HydraulicBalancing: true,
				Components:         []string{"wärmeerzeuger", "umwälzpumpe"},
			},
		},
	})

	f := byID(t, got, "kg420_komponenten_001")
	assert.Equal(t, "Im Anlagenschema fehlen folgende Komponenten: ausdehnungsgefäß, manometer, sicherheitsventil", f.Description)
}

func TestHeatingHydraulicBalancingRequired(t *testing.T) {
	r := newHeatingRules()
	got := r.Evaluate(&Context{Heating: &HeatingFacts{Rooms: []HeatingRoom{{Name: "Büro"}}}})

	f := byID(t, got, "kg420_hydraulik_001")
	assert.Equal(t, finding.PriorityHigh, f.Priority)

	r.params.HydraulicBalanceReq = false
	got = r.Evaluate(&Context{Heating: &HeatingFacts{Rooms: []HeatingRoom{{Name: "Büro"}}}})
	assert.NotContains(t, ids(got), "kg420_hydraulik_001")
}

func TestHeatingTotalLoadScalesLegacyWatts(t *testing.T) {
	r := newHeatingRules()
	facts := &HeatingFacts{
		Rooms: []HeatingRoom{
			{Name: "a", HeatLoad: fp(2500)}, // W
			{Name: "b", HeatLoad: fp(3.5)},  // kW
		},
	}
	assert.InDelta(t, 6.0, r.totalLoad(facts), 1e-9)

	facts.TotalLoad = fp(12)
	assert.InDelta(t, 12.0, r.totalLoad(facts), 1e-9)
}

func TestHeatingGeneratorMargin(t *testing.T) {
	r := newHeatingRules()
	got := r.Evaluate(&Context{
		Heating: &HeatingFacts{
			Rooms:     []HeatingRoom{{Name: "Büro", HeatLoad: fp(10)}},
			TotalLoad: fp(10),
			System:    HeatingSystem{HydraulicBalancing: true},
			Generator: HeatingGenerator{Type: "gaskessel", Power: fp(10.5), Efficiency: fp(0.95)},
		},
	})

	f := byID(t, got, "kg420_erzeuger_001")
	require.Contains(t, f.Description, "15.0%")
	assert.NotContains(t, ids(got), "kg420_kessel_001")
}

func TestHeatingHeatPumpCOP(t *testing.T) {
	r := newHeatingRules()
	got := r.Evaluate(&Context{
		Heating: &HeatingFacts{
			Rooms:     []HeatingRoom{{Name: "Büro"}},
			Generator: HeatingGenerator{Type: "waermepumpe", COP: fp(2.9)},
		},
	})
	assert.Contains(t, ids(got), "kg420_wp_001")

	got = r.Evaluate(&Context{
		Heating: &HeatingFacts{
			Rooms:     []HeatingRoom{{Name: "Büro"}},
			Generator: HeatingGenerator{Type: "waermepumpe"},
		},
	})
	assert.NotContains(t, ids(got), "kg420_wp_001", "unknown COP must not flag")
}

func TestHeatingBoilerEfficiency(t *testing.T) {
	r := newHeatingRules()
	got := r.Evaluate(&Context{
		Heating: &HeatingFacts{
			Rooms:     []HeatingRoom{{Name: "Büro"}},
			Generator: HeatingGenerator{Type: "gaskessel", Efficiency: fp(0.88)},
		},
	})

	f := byID(t, got, "kg420_kessel_001")
	assert.Contains(t, f.Description, "88.0%")
	assert.Contains(t, f.Description, "92.0%")
}
