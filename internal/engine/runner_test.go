package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin180791/tgacheck/internal/facts"
	"github.com/Kevin180791/tgacheck/internal/finding"
	"github.com/Kevin180791/tgacheck/internal/testutil"
)

func box(xMin, xMax, yMin, yMax float64) map[string]facts.Quantity {
	return map[string]facts.Quantity{
		"x_min": facts.Num(xMin), "x_max": facts.Num(xMax),
		"y_min": facts.Num(yMin), "y_max": facts.Num(yMax),
		"z_min": facts.Num(0), "z_max": facts.Num(1),
	}
}

// reviewProject triggers at least one finding from every branch kind:
// trade rules, the formal legend check, and all three coordination checks.
func reviewProject() *facts.Project {
	return &facts.Project{
		Name:        "Büro Nord",
		ProjectType: "buerogebaeude",
		Documents: []facts.Document{
			{
				ID:       "doc-h",
				Filename: "heizung_eg.pdf",
				Type:     facts.DocTypePlan,
				Trade:    finding.TradeHeating,
				Heating: &facts.HeatingSection{
					Rooms: []facts.HeatingRoom{
						{Name: "Büro 1", SpecificLoad: facts.Num(120)},
					},
				},
				Geometry: &facts.Geometry{
					Level: "EG",
					Elements: []facts.GeometryElement{
						{ID: "kanal-1", Box: box(0, 2, 0, 2)},
					},
				},
				Interfaces: &facts.Interfaces{
					Heating: []facts.InterfaceDemand{
						{Supply: "WP-01", Power: facts.Num(12)},
					},
				},
				Openings: &facts.Openings{
					Requests: []facts.OpeningRequest{{ID: "DB-101"}},
				},
			},
			{
				ID:       "doc-e",
				Filename: "elektro_eg.pdf",
				Type:     facts.DocTypePlan,
				Trade:    finding.TradeElectrical,
				Legend:   []string{"Steckdose", "Beleuchtung", "Hauptverteilung"},
				Geometry: &facts.Geometry{
					Level: "EG",
					Elements: []facts.GeometryElement{
						{ID: "trasse-1", Box: box(1, 3, 1, 3)},
					},
				},
			},
		},
	}
}

func findingIDs(fs []finding.Finding) []string {
	ids := make([]string, len(fs))
	for i, f := range fs {
		ids[i] = f.ID
	}
	return ids
}

func TestRunnerRunMergesAllBranches(t *testing.T) {
	runner := NewRunner(nil, testutil.Logger(t), NewFixedGenerator("run-1"))

	result, err := runner.Run(context.Background(), reviewProject())
	require.NoError(t, err)
	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, "Büro Nord", result.Project)

	ids := findingIDs(result.Findings)
	assert.Contains(t, ids, "kg420_room_Büro 1_hoch")
	assert.Contains(t, ids, "formal_doc-h_legend_hint")
	assert.Contains(t, ids, "kollision_doc-h_kanal-1_doc-e_trasse-1")
	assert.Contains(t, ids, "schnittstelle_doc-h_wp-01_fehlt")
	assert.Contains(t, ids, "sud_doc-h_db-101_fehlend")
	assert.NotContains(t, ids, "formal_doc-e_legend_missing")
}

func TestRunnerRunIsDeterministic(t *testing.T) {
	runner := NewRunner(nil, testutil.Logger(t), UUIDv7Generator{})

	first, err := runner.Run(context.Background(), reviewProject())
	require.NoError(t, err)
	require.NotEmpty(t, first.Findings)

	for i := 0; i < 20; i++ {
		next, err := runner.Run(context.Background(), reviewProject())
		require.NoError(t, err)
		assert.Equal(t, first.Digest, next.Digest)
		assert.Equal(t, findingIDs(first.Findings), findingIDs(next.Findings))
	}
}

func TestRunnerRunSortsByPriorityThenConfidence(t *testing.T) {
	runner := NewRunner(nil, testutil.Logger(t), nil)

	result, err := runner.Run(context.Background(), reviewProject())
	require.NoError(t, err)

	for i := 1; i < len(result.Findings); i++ {
		prev, cur := result.Findings[i-1], result.Findings[i]
		if prev.Priority.Rank() == cur.Priority.Rank() {
			assert.GreaterOrEqual(t, prev.Confidence, cur.Confidence)
		} else {
			assert.Greater(t, prev.Priority.Rank(), cur.Priority.Rank())
		}
	}
}

func TestRunnerRunStampsPlanRefs(t *testing.T) {
	project := &facts.Project{
		Name: "Test",
		Documents: []facts.Document{
			{
				ID:         "doc-s",
				Filename:   "sanitaer.pdf",
				PlanNumber: "S-100",
				Trade:      finding.TradeSanitary,
			},
		},
	}
	runner := NewRunner(nil, testutil.Logger(t), nil)

	result, err := runner.Run(context.Background(), project)
	require.NoError(t, err)

	var stamped bool
	for _, f := range result.Findings {
		if f.ID == "kg410_S-100_temp_missing" {
			stamped = true
			assert.Equal(t, "sanitaer.pdf", f.PlanRef)
		}
	}
	assert.True(t, stamped, "expected the undocumented-temperature advisory")
}

func TestRunnerRunSummaryCounts(t *testing.T) {
	runner := NewRunner(nil, testutil.Logger(t), nil)

	result, err := runner.Run(context.Background(), reviewProject())
	require.NoError(t, err)

	s := result.Summary
	assert.Equal(t, 2, s.Documents)
	assert.Equal(t, len(result.Findings), s.Findings)
	assert.Equal(t, s.Findings, s.High+s.Medium+s.Low)
	assert.Greater(t, s.High, 0)
}

func TestRunnerRunCancellation(t *testing.T) {
	runner := NewRunner(nil, testutil.Logger(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := runner.Run(ctx, reviewProject())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result, "a cancelled run must not produce a partial result")
}

func TestRunnerRunNilProject(t *testing.T) {
	runner := NewRunner(nil, testutil.Logger(t), nil)

	_, err := runner.Run(context.Background(), nil)
	require.Error(t, err)
}

func TestFixedGeneratorSequence(t *testing.T) {
	gen := NewFixedGenerator("a", "b")
	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestUUIDv7GeneratorUnique(t *testing.T) {
	gen := UUIDv7Generator{}
	first := gen.Generate()
	second := gen.Generate()
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}
