package fiscalprinter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistrySupportsKnownFamilies(t *testing.T) {
	reg := DefaultRegistry(48)

	assert.True(t, reg.Supports("epson"))
	assert.True(t, reg.Supports("EPSON TM-T20"))
	assert.True(t, reg.Supports("Bematech MP-4200 TH"))
	assert.True(t, reg.Supports("daruma DR800"))
	assert.True(t, reg.Supports("  Epson TM-T88V  "))

	assert.False(t, reg.Supports("elgin i9"))
	assert.False(t, reg.Supports(""))
}

func TestRegistryNewUnsupportedModel(t *testing.T) {
	reg := DefaultRegistry(48)

	driver, err := reg.New("star TSP100", "USB001")
	require.ErrorIs(t, err, ErrUnsupportedModel)
	assert.Nil(t, driver)
}

func TestRegistryNewBuildsDriver(t *testing.T) {
	reg := DefaultRegistry(48)

	driver, err := reg.New("bematech MP-100S", "COM3")
	require.NoError(t, err)
	require.NotNil(t, driver)

	res := driver.Connect()
	assert.True(t, res.Success)
	assert.Equal(t, "bematech MP-100S", res.Data["model"])
}
