package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMasterDataRecord_Set(t *testing.T) {
	r := NewMasterDataRecord("Neu-Ulm")
	r.Set("Gewässer", "Donau")
	r.Set("Meldestufen", "")
	r.Set("Gewässer", "Donau (Oberlauf)")

	assert.Equal(t, []string{"Station", "Gewässer", "Meldestufen"}, r.Labels)
	v, ok := r.Get("Gewässer")
	assert.True(t, ok)
	assert.Equal(t, "Donau (Oberlauf)", v)

	v, ok = r.Get("Meldestufen")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestMeasurementKind_String(t *testing.T) {
	assert.Equal(t, "measured", Measured.String())
	assert.Equal(t, "forecast", Forecast.String())
	assert.Equal(t, "unknown", MeasurementKind(7).String())
}
