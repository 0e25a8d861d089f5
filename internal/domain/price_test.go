package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice(0))
	assert.NoError(t, ValidatePrice(MinPrice))
	assert.NoError(t, ValidatePrice(MaxPrice))
	assert.ErrorIs(t, ValidatePrice(MinPrice-1), ErrValidation)
	assert.ErrorIs(t, ValidatePrice(MaxPrice+1), ErrValidation)
	assert.ErrorIs(t, ValidatePrice(-1), ErrValidation)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "97.00", FormatAmount(9700))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "0.00", FormatAmount(0))
}

func TestSplitPayment(t *testing.T) {
	rate := decimal.RequireFromString(DefaultPlatformFeeRate)

	split, err := SplitPayment(10500, 500, rate)
	require.NoError(t, err)
	assert.Equal(t, Split{Base: 10000, Tip: 500, Fee: 800, Total: 9700}, split)

	// fee округляется вверх
	split, err = SplitPayment(1001, 0, rate)
	require.NoError(t, err)
	assert.Equal(t, int64(81), split.Fee)
	assert.Equal(t, int64(920), split.Total)

	_, err = SplitPayment(100, 200, rate)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
