package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin180791/tgacheck/internal/finding"
)

func fv(v float64) *float64 { return &v }

func heatingDemand(doc, supply string, power *float64) Demand {
	return Demand{
		DocumentID: doc,
		Trade:      finding.TradeHeating,
		Supply:     supply,
		Power:      power,
		PlanRef:    doc + ".pdf",
	}
}

func TestInterfacesUndersizedSupply(t *testing.T) {
	got := Interfaces(
		[]Supply{{DocumentID: "doc-e", Reference: "WP-01", Capacity: fv(15), PlanRef: "E-100"}},
		[]Demand{heatingDemand("doc-h", "wp-01", fv(20))},
	)

	require.Len(t, got, 1)
	f := got[0]
	assert.Equal(t, "schnittstelle_doc-h_wp-01_unterdimensioniert", f.ID)
	assert.Equal(t, finding.PriorityHigh, f.Priority)
	assert.Contains(t, f.Description, "15.0 kW")
	assert.Contains(t, f.Description, "20.0 kW")
	assert.Contains(t, f.Description, "5.0 kW")
	assert.Equal(t, "doc-h.pdf / E-100", f.PlanRef)
}

func TestInterfacesSufficientSupply(t *testing.T) {
	got := Interfaces(
		[]Supply{{Reference: "WP-01", Capacity: fv(22)}},
		[]Demand{heatingDemand("doc-h", "WP-01", fv(18))},
	)
	assert.Empty(t, got)
}

func TestInterfacesExactMatchIsNotUndersized(t *testing.T) {
	got := Interfaces(
		[]Supply{{Reference: "WP-01", Capacity: fv(20)}},
		[]Demand{heatingDemand("doc-h", "WP-01", fv(20))},
	)
	assert.Empty(t, got)
}

func TestInterfacesMissingAssignment(t *testing.T) {
	got := Interfaces(nil, []Demand{heatingDemand("doc-h", "", fv(20))})

	require.Len(t, got, 1)
	assert.Equal(t, "schnittstelle_doc-h_ohne_zuordnung", got[0].ID)
	assert.Equal(t, finding.PriorityMedium, got[0].Priority)
}

func TestInterfacesUnknownReference(t *testing.T) {
	got := Interfaces(
		[]Supply{{Reference: "WP-01", Capacity: fv(20)}},
		[]Demand{heatingDemand("doc-h", "WP-02", fv(10))},
	)

	require.Len(t, got, 1)
	assert.Equal(t, "schnittstelle_doc-h_wp-02_fehlt", got[0].ID)
}

func TestInterfacesUnknownDemandSkipsVerification(t *testing.T) {
	supplies := []Supply{{Reference: "WP-01", Capacity: fv(1)}}

	got := Interfaces(supplies, []Demand{heatingDemand("doc-h", "WP-01", nil)})
	assert.Empty(t, got, "unknown demand cannot be verified and must not flag")

	got = Interfaces(supplies, []Demand{heatingDemand("doc-h", "WP-01", fv(0))})
	assert.Empty(t, got, "non-positive demand is skipped")
}

func TestInterfacesUndocumentedCapacity(t *testing.T) {
	got := Interfaces(
		[]Supply{{Reference: "WP-01", PlanRef: "E-100"}},
		[]Demand{heatingDemand("doc-h", "WP-01", fv(12))},
	)

	require.Len(t, got, 1)
	f := got[0]
	assert.Equal(t, "schnittstelle_doc-h_wp-01_unbekannt", f.ID)
	assert.Contains(t, f.Description, "12.0 kW")
}

func TestInterfacesFirstSupplyPerReferenceWins(t *testing.T) {
	got := Interfaces(
		[]Supply{
			{Reference: "WP-01", Capacity: fv(25)},
			{Reference: "wp-01", Capacity: fv(5)},
		},
		[]Demand{heatingDemand("doc-h", "WP-01", fv(20))},
	)
	assert.Empty(t, got)
}
