package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_Set(t *testing.T) {
	var m Mode
	require.NoError(t, m.Set("master_data"))
	assert.Equal(t, ModeMasterData, m)

	require.NoError(t, m.Set("measurements"))
	assert.Equal(t, ModeMeasurements, m)

	assert.Error(t, m.Set("Measurements"))
	assert.Error(t, m.Set(""))
	assert.Equal(t, ModeMeasurements, m, "a rejected value must not change the mode")
}

func TestRootCmd_RejectsUnknownMode(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--mode", "forecasts"})

	// Parsing fails before RunE, so no configuration or network is touched.
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestRootCmd_DefaultMode(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, "measurements", cmd.Flags().Lookup("mode").Value.String())
}
