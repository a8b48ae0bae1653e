package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin180791/tgacheck/internal/finding"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildContextNoDocumentsForTrade(t *testing.T) {
	project := &Project{
		Name:        "Test",
		ProjectType: "schule",
		Documents: []Document{
			{ID: "doc-h", Filename: "h.pdf", Trade: finding.TradeHeating},
		},
	}

	ctx := BuildContext(project, finding.TradeSanitary)
	assert.Equal(t, "schule", ctx.ProjectType)
	assert.Nil(t, ctx.Sanitary, "no sanitary documents means no facts block")
}

func TestBuildContextSanitaryPlaceholderSystem(t *testing.T) {
	project := &Project{
		Name: "Test",
		Documents: []Document{
			{ID: "doc-s", Filename: "sanitaer.pdf", PlanNumber: "S-100", Trade: finding.TradeSanitary},
		},
	}

	ctx := BuildContext(project, finding.TradeSanitary)
	require.NotNil(t, ctx.Sanitary)
	require.Len(t, ctx.Sanitary.Systems, 1)

	system := ctx.Sanitary.Systems[0]
	assert.Equal(t, "S-100", system.Name)
	assert.Equal(t, "doc-s", system.DocumentID)
	assert.Nil(t, system.HotWaterTemp, "nothing extracted stays unknown")
}

func TestBuildContextSanitaryFixturesCarryDocumentID(t *testing.T) {
	project := &Project{
		Name: "Test",
		Documents: []Document{
			{
				ID:       "doc-s",
				Filename: "sanitaer.pdf",
				Trade:    finding.TradeSanitary,
				Sanitary: &SanitarySection{
					HotWaterTemp: Num(60),
					Fixtures: []SanitaryFixture{
						{ID: "wc-01", Zone: "og1", StagnationHrs: Num(96)},
					},
				},
			},
		},
	}

	ctx := BuildContext(project, finding.TradeSanitary)
	require.NotNil(t, ctx.Sanitary)
	require.Len(t, ctx.Sanitary.Fixtures, 1)
	assert.Equal(t, "doc-s", ctx.Sanitary.Fixtures[0].DocumentID)
	require.NotNil(t, ctx.Sanitary.Fixtures[0].StagnationHrs)
	assert.Equal(t, 96.0, *ctx.Sanitary.Fixtures[0].StagnationHrs)
}

func TestBuildContextHeatingMergesAcrossDocuments(t *testing.T) {
	project := &Project{
		Name: "Test",
		Documents: []Document{
			{
				ID: "doc-1", Filename: "berechnung.pdf", Trade: finding.TradeHeating,
				Heating: &HeatingSection{
					TotalLoad: Num(45),
					Rooms:     []HeatingRoom{{Name: "Büro 1", SpecificLoad: Num(55)}},
				},
			},
			{
				ID: "doc-2", Filename: "schema.pdf", Trade: finding.TradeHeating,
				Heating: &HeatingSection{
					TotalLoad: Num(99),
					Rooms:     []HeatingRoom{{Name: "Büro 2", SpecificLoad: Num(60)}},
					System:    &HeatingSystem{SupplyTemp: Num(70), ReturnTemp: Num(50)},
					Generator: &HeatingGenerator{Type: "waermepumpe", COP: Num(4.1)},
				},
			},
		},
	}

	ctx := BuildContext(project, finding.TradeHeating)
	h := ctx.Heating
	require.NotNil(t, h)
	assert.Len(t, h.Rooms, 2)

	require.NotNil(t, h.TotalLoad)
	assert.Equal(t, 45.0, *h.TotalLoad, "first documented total load wins")

	require.NotNil(t, h.System.SupplyTemp)
	assert.Equal(t, 70.0, *h.System.SupplyTemp)
	assert.Equal(t, "waermepumpe", h.Generator.Type)
}

func TestBuildContextElectricalPlaceholderCircuit(t *testing.T) {
	project := &Project{
		Name: "Test",
		Documents: []Document{
			{ID: "doc-e", Filename: "elektro.pdf", Trade: finding.TradeElectrical},
		},
	}

	ctx := BuildContext(project, finding.TradeElectrical)
	require.NotNil(t, ctx.Electrical)
	require.Len(t, ctx.Electrical.Circuits, 1)
	assert.Equal(t, "elektro.pdf", ctx.Electrical.Circuits[0].Name)
	assert.Equal(t, "doc-e", ctx.Electrical.Circuits[0].DocumentID)
}

func TestBuildContextElectricalEmergencyLightingIsSticky(t *testing.T) {
	project := &Project{
		Name: "Test",
		Documents: []Document{
			{
				ID: "doc-1", Filename: "a.pdf", Trade: finding.TradeElectrical,
				Electrical: &ElectricalSection{EmergencyLighting: true},
			},
			{
				ID: "doc-2", Filename: "b.pdf", Trade: finding.TradeElectrical,
				Electrical: &ElectricalSection{},
			},
		},
	}

	ctx := BuildContext(project, finding.TradeElectrical)
	require.NotNil(t, ctx.Electrical)
	assert.True(t, ctx.Electrical.EmergencyLighting)
}

func TestBuildContextCommunicationMergesFireAlarm(t *testing.T) {
	project := &Project{
		Name: "Test",
		Documents: []Document{
			{
				ID: "doc-1", Filename: "a.pdf", Trade: finding.TradeCommunication,
				Communication: &CommunicationSection{
					FireAlarm: &FireAlarm{Standard: "DIN 14675"},
				},
			},
			{
				ID: "doc-2", Filename: "b.pdf", Trade: finding.TradeCommunication,
				Communication: &CommunicationSection{
					FireAlarm: &FireAlarm{RedundantPaths: boolPtr(true)},
				},
			},
		},
	}

	ctx := BuildContext(project, finding.TradeCommunication)
	c := ctx.Communication
	require.NotNil(t, c)
	require.NotNil(t, c.FireAlarm)
	assert.Equal(t, "DIN 14675", c.FireAlarm.Standard)
	assert.True(t, c.FireAlarm.RedundantPaths)
}

func TestBuildContextCommunicationPlaceholderNetworks(t *testing.T) {
	project := &Project{
		Name: "Test",
		Documents: []Document{
			{ID: "doc-k", Filename: "kommunikation.pdf", Trade: finding.TradeCommunication},
		},
	}

	ctx := BuildContext(project, finding.TradeCommunication)
	require.NotNil(t, ctx.Communication)
	require.Len(t, ctx.Communication.Networks, 1)
	assert.Equal(t, "kommunikation.pdf", ctx.Communication.Networks[0].Zone)
}

func TestBuildContextFireSuppressionPlaceholderZone(t *testing.T) {
	project := &Project{
		Name: "Test",
		Documents: []Document{
			{ID: "doc-f", Filename: "sprinkler.pdf", Trade: finding.TradeFireSuppression},
		},
	}

	ctx := BuildContext(project, finding.TradeFireSuppression)
	require.NotNil(t, ctx.FireSuppression)
	require.Len(t, ctx.FireSuppression.Sprinkler, 1)

	zone := ctx.FireSuppression.Sprinkler[0]
	assert.Equal(t, "sprinkler.pdf", zone.Name)
	assert.Equal(t, "normal", zone.HazardClass)
}

func TestBuildContextAutomationFirstSetWins(t *testing.T) {
	project := &Project{
		Name: "Test",
		Documents: []Document{
			{
				ID: "doc-1", Filename: "a.pdf", Trade: finding.TradeAutomation,
				Automation: &AutomationSection{TrendDays: Num(30)},
			},
			{
				ID: "doc-2", Filename: "b.pdf", Trade: finding.TradeAutomation,
				Automation: &AutomationSection{TrendDays: Num(7), AlarmResponse: Num(60)},
			},
		},
	}

	ctx := BuildContext(project, finding.TradeAutomation)
	a := ctx.Automation
	require.NotNil(t, a)
	require.NotNil(t, a.TrendDays)
	assert.Equal(t, 30.0, *a.TrendDays)
	require.NotNil(t, a.AlarmResponse)
	assert.Equal(t, 60.0, *a.AlarmResponse)
}

func TestQuantityMapDropsUnset(t *testing.T) {
	got := quantityMap(map[string]Quantity{
		"zirkulation": Num(0.6),
		"steigstrang": {},
	})
	assert.Equal(t, map[string]float64{"zirkulation": 0.6}, got)
}
