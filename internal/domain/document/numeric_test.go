package document

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToNonNegativeDecimal(t *testing.T) {
	assert.True(t, ToNonNegativeDecimal(d(-3)).IsZero())
	assert.Equal(t, "3", ToNonNegativeDecimal(d(3)).String())
	assert.True(t, ToNonNegativeDecimal(decimal.Zero).IsZero())
}

func TestParseNonNegativeDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid decimal", "12.5", "12.5"},
		{"integer", "7", "7"},
		{"negative coerces to zero", "-4", "0"},
		{"garbage coerces to zero", "abc", "0"},
		{"empty coerces to zero", "", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNonNegativeDecimal(tt.input).String())
		})
	}
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, "0", ClampPercent(d(-10)).String())
	assert.Equal(t, "50", ClampPercent(d(50)).String())
	assert.Equal(t, "100", ClampPercent(d(100)).String())
	assert.Equal(t, "100", ClampPercent(d(150)).String())
}
