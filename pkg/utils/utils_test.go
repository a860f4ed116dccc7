package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		want        float64
	}{
		{name: "divisão simples", numerator: 150.5, denominator: 5, want: 30.1},
		{name: "arredonda em duas casas", numerator: 10, denominator: 3, want: 3.33},
		{name: "divisor zero", numerator: 10, denominator: 0, want: 0},
		{name: "numerador zero", numerator: 0, denominator: 7, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ratio(tt.numerator, tt.denominator))
		})
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate(" 2024-03-15 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *date)
	assert.Equal(t, "2024-03-15", FormatDate(*date))

	empty, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	first, err := GenerateID()
	require.NoError(t, err)
	second, err := GenerateID()
	require.NoError(t, err)

	assert.Len(t, first, 12)
	assert.NotEqual(t, first, second)
}
