package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(10.50), EUR)
		require.NoError(t, err)
		assert.Equal(t, EUR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(10.50)))
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		require.Error(t, err)
	})
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyEURFromFloat(10.25)
	b := NewMoneyEURFromFloat(4.75)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "15.00", sum.StringFixed(2))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "5.50", diff.StringFixed(2))

	t.Run("mismatched currencies fail", func(t *testing.T) {
		usd := Zero(USD)
		_, err := a.Add(usd)
		assert.Error(t, err)
		_, err = a.Subtract(usd)
		assert.Error(t, err)
	})
}

func TestMoney_ApplyDiscount(t *testing.T) {
	m := NewMoneyEURFromFloat(100)
	discounted := m.ApplyDiscount(decimal.NewFromInt(20))
	assert.Equal(t, "80.00", discounted.StringFixed(2))
}

func TestMoney_CalculatePercentage(t *testing.T) {
	m := NewMoneyEURFromFloat(24)
	tax := m.CalculatePercentage(decimal.NewFromInt(21))
	assert.Equal(t, "5.04", tax.StringFixed(2))
}

func TestMoney_RoundBank(t *testing.T) {
	m, err := NewMoneyEURFromString("2.345")
	require.NoError(t, err)
	// Banker's rounding: 2.345 -> 2.34
	assert.Equal(t, "2.34", m.RoundBank(2).StringFixed(2))

	m2, err := NewMoneyEURFromString("2.355")
	require.NoError(t, err)
	assert.Equal(t, "2.36", m2.RoundBank(2).StringFixed(2))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyEURFromFloat(19.99)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("12.34"))
	assert.Equal(t, DefaultCurrency, m.Currency())
	assert.Equal(t, "12.34", m.StringFixed(2))

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())
}
