package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

func newVentilationRules() *ventilationRules {
	return &ventilationRules{params: catalog.Default().Ventilation}
}

func TestVentilationNoRooms(t *testing.T) {
	r := newVentilationRules()
	got := r.Evaluate(&Context{ProjectType: "buerogebaeude"})

	f := byID(t, got, "kg430_0001")
	assert.Equal(t, finding.PriorityHigh, f.Priority)
}

func TestVentilationOutdoorAirPerPerson(t *testing.T) {
	r := newVentilationRules()
	got := r.Evaluate(&Context{
		ProjectType: "buerogebaeude",
		Ventilation: &VentilationFacts{
			Rooms: []VentilationRoom{{
				Name:    "Besprechung",
				Supply:  fp(300),
				Exhaust: fp(300),
				Persons: fp(10), // 30 m³/h per person, office needs 36
			}},
		},
	})

	f := byID(t, got, "kg430_Besprechung_luftmenge")
	assert.Equal(t, finding.PriorityHigh, f.Priority)
	assert.Contains(t, f.Description, "36")
}

func TestVentilationAirChangeBounds(t *testing.T) {
	r := newVentilationRules()
	got := r.Evaluate(&Context{
		ProjectType: "schule",
		Ventilation: &VentilationFacts{
			Rooms: []VentilationRoom{
				{Name: "Klasse 1a", AirChange: fp(1.5)},
				{Name: "Aula", AirChange: fp(8.0)},
				{Name: "Flur"},
			},
		},
	})

	assert.Contains(t, ids(got), "kg430_Klasse 1a_wechsel_min")
	assert.Contains(t, ids(got), "kg430_Aula_wechsel_max")
	assert.NotContains(t, ids(got), "kg430_Flur_wechsel_min")
}

func TestVentilationCO2Limit(t *testing.T) {
	r := newVentilationRules()
	got := r.Evaluate(&Context{
		ProjectType: "buerogebaeude",
		Ventilation: &VentilationFacts{
			Rooms: []VentilationRoom{{Name: "Büro", CO2: fp(1250)}},
		},
	})

	assert.Contains(t, ids(got), "kg430_Büro_co2")
}

func TestVentilationBalance(t *testing.T) {
	r := newVentilationRules()
	got := r.Evaluate(&Context{
		ProjectType: "buerogebaeude",
		Ventilation: &VentilationFacts{
			Rooms: []VentilationRoom{
				{Name: "Zuluftzone", Supply: fp(1000)},
				{Name: "Abluftzone", Exhaust: fp(800)},
			},
		},
	})

	f := byID(t, got, "kg430_balance_001")
	assert.Contains(t, f.Description, "20.0%")

	got = r.Evaluate(&Context{
		ProjectType: "buerogebaeude",
		Ventilation: &VentilationFacts{
			Rooms: []VentilationRoom{
				{Name: "Zuluftzone", Supply: fp(1000)},
				{Name: "Abluftzone", Exhaust: fp(950)},
			},
		},
	})
	assert.NotContains(t, ids(got), "kg430_balance_001")
}

func TestVentilationHeatRecovery(t *testing.T) {
	r := newVentilationRules()
	got := r.Evaluate(&Context{
		ProjectType: "buerogebaeude",
		Ventilation: &VentilationFacts{
			Rooms: []VentilationRoom{{Name: "Büro", Supply: fp(2000), Exhaust: fp(2000)}},
			Systems: []VentilationSystem{{
				ID:            "RLT-01",
				Flow:          fp(2000),
				FilterClasses: []string{"F7"},
			}},
		},
	})

	f := byID(t, got, "kg430_RLT-01_wrg")
	assert.Equal(t, finding.PriorityHigh, f.Priority)

	// Below the flow threshold no recovery is demanded.
	got = r.Evaluate(&Context{
		ProjectType: "buerogebaeude",
		Ventilation: &VentilationFacts{
			Rooms:   []VentilationRoom{{Name: "Büro", Supply: fp(1200), Exhaust: fp(1200)}},
			Systems: []VentilationSystem{{ID: "RLT-02", Flow: fp(1200), FilterClasses: []string{"ePM1 55%"}}},
		},
	})
	assert.NotContains(t, ids(got), "kg430_RLT-02_wrg")
}

func TestVentilationHeatRecoveryEta(t *testing.T) {
	r := newVentilationRules()
	got := r.Evaluate(&Context{
		Ventilation: &VentilationFacts{
			Rooms: []VentilationRoom{{Name: "Büro"}},
			Systems: []VentilationSystem{{
				ID:              "RLT-01",
				Flow:            fp(2000),
				HeatRecovery:    true,
				HeatRecoveryEta: fp(0.6),
				FilterClasses:   []string{"F7", "F9"},
			}},
		},
	})

	f := byID(t, got, "kg430_RLT-01_eta")
	assert.Contains(t, f.Description, "60.0%")
	assert.Contains(t, f.Description, "75.0%")
	assert.NotContains(t, ids(got), "kg430_RLT-01_wrg")
	assert.NotContains(t, ids(got), "kg430_RLT-01_filter")
}

func TestVentilationFilterClass(t *testing.T) {
	r := newVentilationRules()
	got := r.Evaluate(&Context{
		Ventilation: &VentilationFacts{
			Rooms: []VentilationRoom{{Name: "Büro"}},
			Systems: []VentilationSystem{{
				ID:            "RLT-03",
				HeatRecovery:  true,
				FilterClasses: []string{"G4", "M5"},
			}},
		},
	})

	assert.Contains(t, ids(got), "kg430_RLT-03_filter")
}
