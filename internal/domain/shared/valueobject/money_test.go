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
		m, err := NewMoney(decimal.NewFromFloat(19.99), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(19.99)))
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		require.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("adds amounts in the same currency", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10.50)
		b := NewMoneyUSDFromFloat(4.25)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "14.75", sum.StringFixed(2))
	})

	t.Run("rejects mixed-currency addition", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10)
		b, err := NewMoney(decimal.NewFromInt(10), EUR)
		require.NoError(t, err)

		_, err = a.Add(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})

	t.Run("multiplies by integer quantity", func(t *testing.T) {
		price := NewMoneyUSDFromFloat(299.99)
		total := price.MultiplyByInt(3)
		assert.Equal(t, "899.97", total.StringFixed(2))
	})

	t.Run("calculates percentage", func(t *testing.T) {
		subtotal := NewMoneyUSDFromFloat(200)
		tax := subtotal.CalculatePercentage(decimal.NewFromFloat(8.25))
		assert.Equal(t, "16.50", tax.StringFixed(2))
	})
}

func TestMoney_Comparison(t *testing.T) {
	t.Run("greater than or equal at the boundary", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(25.00)
		b := NewMoneyUSDFromFloat(25.00)

		ok, err := a.GreaterThanOrEqual(b)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("less than", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(24.99)
		b := NewMoneyUSDFromFloat(25.00)

		ok, err := a.LessThan(b)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("equals requires same currency", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(5)
		b, _ := NewMoney(decimal.NewFromInt(5), GBP)
		assert.False(t, a.Equals(b))
	})
}

func TestMoney_JSON(t *testing.T) {
	t.Run("round-trips through JSON", func(t *testing.T) {
		original := NewMoneyUSDFromFloat(5.99)

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded Money
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, original.Equals(decoded))
	})

	t.Run("rejects malformed amount", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"abc","currency":"USD"}`), &m)
		require.Error(t, err)
	})
}
