package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var feeTestNow = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

func expiryAfterDays(days int) string {
	return feeTestNow.AddDate(0, 0, days).Format("2006-01-02")
}

func TestTenorMonths(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{30, 1},
		{90, 3},
		{180, 6},
		{360, 12},
		{390, 13},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, tenorMonths(expiryAfterDays(tc.days), feeTestNow),
			"tenor for expiry %d days out", tc.days)
	}
}

func TestTenorMonths_Floors(t *testing.T) {
	// expiry in the past still yields at least one month
	require.Equal(t, 1, tenorMonths(expiryAfterDays(-10), feeTestNow))
	// unparseable expiry defaults to a 3-month tenor
	require.Equal(t, 3, tenorMonths("end of June", feeTestNow))
	require.Equal(t, 3, tenorMonths("", feeTestNow))
}

func TestBandRate(t *testing.T) {
	bands := DefaultFeeConfig().Bands

	tests := []struct {
		months int
		want   float64
	}{
		{1, 0.30},
		{3, 0.30},
		{6, 0.60},
		{12, 1.20},
		{13, 1.55},
		{48, 1.55},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, bandRate(bands, tc.months), "rate for %d months", tc.months)
	}
}

func TestCalculateFees_Breakdown(t *testing.T) {
	app := completeApplication()
	app.Amount = 1000000
	app.ExpiryDate = expiryAfterDays(90)
	app.ConfirmingBank = ""

	fees := calculateFees(app, DefaultFeeConfig(), feeTestNow)

	require.Equal(t, 3, fees.TenorMonths)
	require.Equal(t, 0.30, fees.AppliedRatePct)

	// commission 3000, negotiation 1250
	require.InDelta(t, 4250, fees.VariableSubtotal, 0.01)
	require.InDelta(t, 8500, fees.FixedSubtotal, 0.01)
	require.InDelta(t, 12750, fees.Subtotal, 0.01)
	require.InDelta(t, fees.Subtotal+fees.Subtotal*0.18, fees.GrandTotal, 0.01)
	require.Equal(t, 2500.0, fees.AmendmentFee)
	require.Len(t, fees.Lines, 4)
	require.Contains(t, fees.Note, "indicative")
}

func TestCalculateFees_ConfirmationPremiumOnlyWithConfirmingBank(t *testing.T) {
	app := completeApplication()
	app.Amount = 1000000
	app.ExpiryDate = expiryAfterDays(90)

	app.ConfirmingBank = "  "
	without := calculateFees(app, DefaultFeeConfig(), feeTestNow)

	app.ConfirmingBank = "Standard Chartered"
	with := calculateFees(app, DefaultFeeConfig(), feeTestNow)

	require.Len(t, without.Lines, 4)
	require.Len(t, with.Lines, 5)
	// premium is 0.15% of the amount
	require.InDelta(t, without.VariableSubtotal+1500, with.VariableSubtotal, 0.01)
}

func TestCalculateFees_FixedFeesStayINR(t *testing.T) {
	app := completeApplication()
	app.Currency = "USD"
	app.ExpiryDate = expiryAfterDays(90)

	fees := calculateFees(app, DefaultFeeConfig(), feeTestNow)

	for _, line := range fees.Lines {
		switch line.Description {
		case "Advising fee", "Courier/SWIFT charges":
			require.Equal(t, "INR", line.Currency, line.Description)
		default:
			require.Equal(t, "USD", line.Currency, line.Description)
		}
	}
}

func TestCalculateFees_AlternateScheduleInjectable(t *testing.T) {
	app := completeApplication()
	app.Amount = 100000
	app.ExpiryDate = expiryAfterDays(30)
	app.ConfirmingBank = ""

	cfg := FeeConfig{
		Bands:               []FeeBand{{MaxMonths: 12, RatePct: 1}},
		NegotiationRatePct:  0,
		ConfirmationRatePct: 0,
		GSTRatePct:          0,
		AdvisingFee:         100,
		CourierFee:          0,
		AmendmentFee:        50,
	}

	fees := calculateFees(app, cfg, feeTestNow)

	require.InDelta(t, 1000, fees.VariableSubtotal, 0.01)
	require.InDelta(t, 100, fees.FixedSubtotal, 0.01)
	require.InDelta(t, 0, fees.GST, 0.01)
	require.InDelta(t, 1100, fees.GrandTotal, 0.01)
}
