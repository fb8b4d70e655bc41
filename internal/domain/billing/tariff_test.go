package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTariffType_IsValid(t *testing.T) {
	t.Run("accepts known categories", func(t *testing.T) {
		for _, tt := range []TariffType{TariffResidential, TariffCommercial, TariffIndustrial, TariffAgricultural} {
			assert.True(t, tt.IsValid(), string(tt))
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		assert.False(t, TariffType("domestic").IsValid())
		assert.False(t, TariffType("").IsValid())
	})
}

func TestCalculateBillAmount(t *testing.T) {
	t.Run("multiplies rate by units at currency precision", func(t *testing.T) {
		amount, err := CalculateBillAmount(decimal.RequireFromString("5.50"), decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.True(t, amount.Equal(decimal.RequireFromString("550.00")), amount.String())
	})

	t.Run("rounds to two decimal places", func(t *testing.T) {
		amount, err := CalculateBillAmount(decimal.RequireFromString("3.333"), decimal.RequireFromString("7.5"))
		require.NoError(t, err)
		assert.Equal(t, "25.00", amount.StringFixed(2))
	})

	t.Run("is exact for values that drift under floats", func(t *testing.T) {
		amount, err := CalculateBillAmount(decimal.RequireFromString("0.10"), decimal.NewFromInt(3))
		require.NoError(t, err)
		assert.Equal(t, "0.30", amount.StringFixed(2))
	})

	t.Run("rejects non-positive units", func(t *testing.T) {
		_, err := CalculateBillAmount(decimal.RequireFromString("5.50"), decimal.Zero)
		assert.Error(t, err)

		_, err = CalculateBillAmount(decimal.RequireFromString("5.50"), decimal.NewFromInt(-10))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive rate", func(t *testing.T) {
		_, err := CalculateBillAmount(decimal.Zero, decimal.NewFromInt(100))
		assert.Error(t, err)
	})
}
