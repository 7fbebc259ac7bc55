package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatarValor(t *testing.T) {
	assert.Equal(t, "R$ 123,45", FormatarValor(12345))
	assert.Equal(t, "R$ 0,00", FormatarValor(0))
	assert.Equal(t, "R$ 0,07", FormatarValor(7))
	assert.Equal(t, "R$ 100,00", FormatarValor(10000))
	assert.Equal(t, "R$ 1.234.567,89", FormatarValor(123456789))
}

func TestDataISORoundTrip(t *testing.T) {
	d, err := ParseDataISO("2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-31", FormatarDataISO(d))
	assert.Equal(t, "31/03/2024", FormatarData(d))

	// No timezone shift: day boundaries must survive the round trip.
	d, err = ParseDataISO("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", FormatarDataISO(d))
	assert.Equal(t, 0, d.Hour())
}

func TestParseDataISOInvalida(t *testing.T) {
	_, err := ParseDataISO("31/03/2024")
	assert.Error(t, err)
}
