package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevin180791/tgacheck/internal/catalog"
)

func TestCatalogCommandShowsDefaults(t *testing.T) {
	out, err := executeCommand(t, "catalog")
	require.NoError(t, err)

	var cat catalog.Catalog
	require.NoError(t, json.Unmarshal([]byte(out), &cat))
	assert.Equal(t, 55.0, cat.Sanitary.HotWaterTempMin)
	assert.Equal(t, "DIN 14675", cat.Communication.FireAlarmStandard)
}

func TestCatalogCommandAppliesOverlay(t *testing.T) {
	out, err := executeCommand(t, "catalog", "--catalog",
		filepath.Join("testdata", "stricter-catalog.cue"))
	require.NoError(t, err)

	var cat catalog.Catalog
	require.NoError(t, json.Unmarshal([]byte(out), &cat))
	assert.Equal(t, 61.0, cat.Sanitary.HotWaterTempMin)
	assert.Equal(t, 55.0, cat.Heating.SpecificLoad["buerogebaeude"].Max)
	// Untouched defaults stay in place.
	assert.Equal(t, 3.0, cat.Electrical.VoltageDropMaxPercent)
}

func TestCatalogCommandRejectsInvalidOverlay(t *testing.T) {
	_, err := executeCommand(t, "catalog", "--catalog",
		filepath.Join("testdata", "invalid-catalog.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
