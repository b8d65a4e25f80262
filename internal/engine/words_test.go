package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountInWords_IndianScale(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "ZERO"},
		{-12, "ZERO"},
		{1, "ONE"},
		{14, "FOURTEEN"},
		{40, "FORTY"},
		{99, "NINETY NINE"},
		{100, "ONE HUNDRED"},
		{205, "TWO HUNDRED FIVE"},
		{1000, "ONE THOUSAND"},
		{99999, "NINETY NINE THOUSAND NINE HUNDRED NINETY NINE"},
		{100000, "ONE LAKH"},
		{250000, "TWO LAKH FIFTY THOUSAND"},
		{10000000, "ONE CRORE"},
		{12345678, "ONE CRORE TWENTY THREE LAKH FORTY FIVE THOUSAND SIX HUNDRED SEVENTY EIGHT"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, AmountInWords(tc.amount), "amount %v", tc.amount)
	}
}

func TestAmountInWords_Fraction(t *testing.T) {
	require.Equal(t,
		"TWELVE LAKH THIRTY FOUR THOUSAND FIVE HUNDRED SIXTY SEVEN AND 50/100",
		AmountInWords(1234567.50))
	require.Equal(t, "ONE AND 05/100", AmountInWords(1.05))
	// whole amounts carry no fraction suffix
	require.Equal(t, "TEN", AmountInWords(10.00))
}

func TestAmountInWords_FractionRoundsUpToNextRupee(t *testing.T) {
	require.Equal(t, "TWO", AmountInWords(1.999))
}

func TestAmountInWords_NonFiniteInputs(t *testing.T) {
	require.Equal(t, "ZERO", AmountInWords(math.NaN()))
	require.Equal(t, "ZERO", AmountInWords(math.Inf(1)))
}
