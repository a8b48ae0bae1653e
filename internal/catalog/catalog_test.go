package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversAllTrades(t *testing.T) {
	cat := Default()

	assert.Equal(t, 55.0, cat.Sanitary.HotWaterTempMin)
	assert.Equal(t, Range{Min: 40.0, Max: 95.0}, cat.Heating.SpecificLoad["buerogebaeude"])
	assert.Equal(t, 36.0, cat.Ventilation.OutdoorAirPerPerson["buerogebaeude"])
	assert.Equal(t, 3.0, cat.Electrical.VoltageDropMaxPercent)
	assert.Equal(t, "DIN 14675", cat.Communication.FireAlarmStandard)
	assert.Equal(t, 2.5, cat.FireSuppression.SprinklerDensity["normal"])
	assert.Equal(t, "A", cat.Automation.BACSClasses["kg420"])
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().validate())
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: 40, Max: 95}
	assert.True(t, r.Contains(40))
	assert.True(t, r.Contains(95))
	assert.False(t, r.Contains(39.9))
	assert.False(t, r.Contains(95.1))
}

func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverlayChangesOnlyStatedValues(t *testing.T) {
	path := writeOverlay(t, `
kg420: supply_temp_max: 60.0
kg410: max_velocity: warmwasser: 1.2
`)
	cat, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 60.0, cat.Heating.SupplyTempMax)
	assert.Equal(t, 1.2, cat.Sanitary.MaxVelocity["warmwasser"])

	// Untouched values keep their defaults, including sibling map keys.
	assert.Equal(t, 55.0, cat.Heating.ReturnTempMax)
	assert.Equal(t, 2.0, cat.Sanitary.MaxVelocity["kaltwasser"])
}

func TestLoad_RejectsInvertedRange(t *testing.T) {
	path := writeOverlay(t, `
kg420: specific_load: schule: {min: 120.0, max: 20.0}
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "specific_load.schule")
}

func TestLoad_RejectsNonConcreteOverlay(t *testing.T) {
	path := writeOverlay(t, `
kg420: supply_temp_max: float
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsFractionOutOfBounds(t *testing.T) {
	path := writeOverlay(t, `
kg430: wrg_eta_min: 1.4
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrg_eta_min")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	assert.Error(t, err)
}
