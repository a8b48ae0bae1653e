package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin180791/tgacheck/internal/catalog"
	"github.com/Kevin180791/tgacheck/internal/finding"
)

func newSanitaryRules() *sanitaryRules {
	return &sanitaryRules{params: catalog.Default().Sanitary}
}

func TestSanitaryNoSystems(t *testing.T) {
	r := newSanitaryRules()
	got := r.Evaluate(&Context{ProjectType: "buerogebaeude"})

	require.Len(t, got, 1)
	assert.Equal(t, "kg410_0001", got[0].ID)
	assert.Equal(t, finding.PriorityHigh, got[0].Priority)
}

func TestSanitaryHotWaterTemp(t *testing.T) {
	r := newSanitaryRules()
	got := r.Evaluate(&Context{
		ProjectType: "buerogebaeude",
		Sanitary: &SanitaryFacts{
			Systems: []SanitarySystem{{
				Name:         "TWW Nord",
				DocumentID:   "doc-1",
				HotWaterTemp: fp(48.0),
			}},
		},
	})

	f := byID(t, got, "kg410_TWW Nord_temp")
	assert.Equal(t, finding.PriorityHigh, f.Priority)
	assert.Equal(t, "doc-1", f.DocumentID)
	assert.Contains(t, f.Description, "48.0")
	assert.NotContains(t, ids(got), "kg410_TWW Nord_temp_missing")
}

func TestSanitaryMissingTempIsAdvisoryOnly(t *testing.T) {
	r := newSanitaryRules()
	got := r.Evaluate(&Context{
		Sanitary: &SanitaryFacts{
			Systems: []SanitarySystem{{Name: "TWW"}},
		},
	})

	f := byID(t, got, "kg410_TWW_temp_missing")
	assert.Equal(t, finding.CategoryAdvisory, f.Category)
	assert.Equal(t, finding.PriorityLow, f.Priority)
	assert.NotContains(t, ids(got), "kg410_TWW_temp", "unknown temperature must not read as a violation")
}

func TestSanitaryVelocityAndInsulation(t *testing.T) {
	r := newSanitaryRules()
	got := r.Evaluate(&Context{
		Sanitary: &SanitaryFacts{
			Systems: []SanitarySystem{{
				Name:         "Steigstrang A",
				HotWaterTemp: fp(60.0),
				Velocities: map[string]float64{
					"zirkulation": 1.2,
					"kaltwasser":  1.9,
				},
				Insulation: map[string]float64{
					"warmwasser": 8,
				},
			}},
		},
	})

	assert.Contains(t, ids(got), "kg410_Steigstrang A_velocity_zirkulation")
	assert.NotContains(t, ids(got), "kg410_Steigstrang A_velocity_kaltwasser")
	assert.Contains(t, ids(got), "kg410_Steigstrang A_insulation_warmwasser")
}

func TestSanitaryMaterialBlacklistFoldsCase(t *testing.T) {
	r := newSanitaryRules()
	got := r.Evaluate(&Context{
		Sanitary: &SanitaryFacts{
			Systems: []SanitarySystem{{
				Name:         "System 1",
				HotWaterTemp: fp(60.0),
				Materials:    map[string]string{"warmwasser": "VERZINKTER STAHL"},
			}},
		},
	})

	assert.Contains(t, ids(got), "kg410_System 1_material_warmwasser")
}

func TestSanitaryBackflowOnlyForSensitiveProjects(t *testing.T) {
	r := newSanitaryRules()
	fixture := SanitaryFixture{ID: "wc-01", Zone: "labor"}

	got := r.Evaluate(&Context{
		ProjectType: "labor",
		Sanitary:    &SanitaryFacts{Fixtures: []SanitaryFixture{fixture}},
	})
	assert.Contains(t, ids(got), "kg410_fixture_wc-01_ruecksaugsicherung")

	fixture.Backflow = true
	got = r.Evaluate(&Context{
		ProjectType: "labor",
		Sanitary:    &SanitaryFacts{Fixtures: []SanitaryFixture{fixture}},
	})
	assert.NotContains(t, ids(got), "kg410_fixture_wc-01_ruecksaugsicherung")

	got = r.Evaluate(&Context{
		ProjectType: "wohngebaeude",
		Sanitary:    &SanitaryFacts{Fixtures: []SanitaryFixture{{ID: "wc-01", Zone: "labor"}}},
	})
	assert.NotContains(t, ids(got), "kg410_fixture_wc-01_ruecksaugsicherung")
}

func TestSanitaryStagnation(t *testing.T) {
	r := newSanitaryRules()
	got := r.Evaluate(&Context{
		Sanitary: &SanitaryFacts{
			Fixtures: []SanitaryFixture{{ID: "dusche-07", Zone: "keller", StagnationHrs: fp(96)}},
		},
	})

	f := byID(t, got, "kg410_fixture_dusche-07_stagnation")
	assert.Equal(t, finding.PriorityHigh, f.Priority)
}
