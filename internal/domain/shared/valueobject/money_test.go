package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", GBP)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", GBP)
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add same currency", func(t *testing.T) {
		a := MustMoney("10.50", USD)
		b := MustMoney("4.50", USD)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "15.00", sum.StringFixed(2))
	})

	t.Run("add different currencies fails", func(t *testing.T) {
		a := MustMoney("10.00", USD)
		b := MustMoney("10.00", EUR)
		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("subtract", func(t *testing.T) {
		a := MustMoney("10.00", USD)
		b := MustMoney("2.50", USD)
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "7.50", diff.StringFixed(2))
	})

	t.Run("multiply by int", func(t *testing.T) {
		m := MustMoney("9.99", USD).MultiplyByInt(3)
		assert.Equal(t, "29.97", m.StringFixed(2))
	})

	t.Run("percentage", func(t *testing.T) {
		m := MustMoney("200.00", USD).CalculatePercentage(decimal.NewFromFloat(7.5))
		assert.Equal(t, "15.00", m.StringFixed(2))
	})

	t.Run("round", func(t *testing.T) {
		m := MustMoney("10.555", USD).Round(2)
		assert.Equal(t, "10.56", m.StringFixed(2))
	})
}

func TestMoneyComparison(t *testing.T) {
	t.Run("less than", func(t *testing.T) {
		a := MustMoney("5.00", USD)
		b := MustMoney("10.00", USD)
		less, err := a.LessThan(b)
		require.NoError(t, err)
		assert.True(t, less)
	})

	t.Run("less than across currencies fails", func(t *testing.T) {
		a := MustMoney("5.00", USD)
		b := MustMoney("10.00", JPY)
		_, err := a.LessThan(b)
		assert.Error(t, err)
	})

	t.Run("equals", func(t *testing.T) {
		assert.True(t, MustMoney("5.00", USD).Equals(MustMoney("5", USD)))
		assert.False(t, MustMoney("5.00", USD).Equals(MustMoney("5.00", EUR)))
	})
}

func TestMoneyJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := MustMoney("42.42", AUD)
		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded Money
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, original.Equals(decoded))
	})

	t.Run("invalid amount fails", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"oops","currency":"USD"}`), &m)
		assert.Error(t, err)
	})
}

func TestZero(t *testing.T) {
	z := Zero(CAD)
	assert.True(t, z.IsZero())
	assert.Equal(t, CAD, z.Currency())
}
