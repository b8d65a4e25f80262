package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecide_HaircutTable(t *testing.T) {
	tests := []struct {
		collateralType string
		haircut        float64
	}{
		{CollateralFD, 0},
		{CollateralCash, 0},
		{CollateralGovtBond, 10},
		{CollateralLiquidSec, 15},
		{CollateralReceivables, 25},
		{CollateralProperty, 40},
		{CollateralMachinery, 50},
	}

	for _, tc := range tests {
		t.Run(tc.collateralType, func(t *testing.T) {
			decision := Decide(tc.collateralType, 1000, 100, DefaultHaircuts())
			require.NotNil(t, decision.HaircutPct)
			require.Equal(t, tc.haircut, *decision.HaircutPct)
			require.InDelta(t, 1000*(1-tc.haircut/100), decision.EligibleValue, 0.001)
		})
	}
}

func TestDecide_Outcomes(t *testing.T) {
	haircuts := DefaultHaircuts()

	// eligible >= amount: YES
	yes := Decide(CollateralFD, 1300000, 1250000, haircuts)
	require.Equal(t, DecisionYes, yes.Outcome)
	require.Contains(t, yes.Reason, "1250000.00")

	// eligible >= 75% of amount: REVIEW
	review := Decide(CollateralGovtBond, 1000000, 1100000, haircuts) // eligible 900000, threshold 825000
	require.Equal(t, DecisionReview, review.Outcome)
	require.Contains(t, review.Reason, "900000.00")

	// otherwise: NO
	no := Decide(CollateralMachinery, 1000000, 1100000, haircuts) // eligible 500000
	require.Equal(t, DecisionNo, no.Outcome)
	require.Contains(t, no.Reason, "500000.00")
}

// Cover that is orders of magnitude below the credit amount is a decline
// no matter how clean the collateral type is.
func TestDecide_TokenCoverIsDeclined(t *testing.T) {
	haircuts := DefaultHaircuts()

	fd := Decide(CollateralFD, 200, 1250000, haircuts)
	require.Equal(t, DecisionNo, fd.Outcome)
	require.InDelta(t, 200, fd.EligibleValue, 0.001)

	bond := Decide(CollateralGovtBond, 500, 3700000, haircuts)
	require.Equal(t, DecisionNo, bond.Outcome)
	require.InDelta(t, 450, bond.EligibleValue, 0.001)
}

func TestDecide_UnknownTypeGoesToReview(t *testing.T) {
	decision := Decide("CRYPTO", 5000000, 1000000, DefaultHaircuts())

	require.Equal(t, DecisionReview, decision.Outcome)
	require.Nil(t, decision.HaircutPct)
	require.Zero(t, decision.EligibleValue)
	require.Contains(t, decision.Reason, "CRYPTO")
}

func TestDecide_TypeTagIsCaseInsensitive(t *testing.T) {
	decision := Decide(" fd ", 100, 100, DefaultHaircuts())
	require.Equal(t, DecisionYes, decision.Outcome)
}

// Increasing collateral value must never worsen the outcome.
func TestDecide_MonotonicInCollateralValue(t *testing.T) {
	haircuts := DefaultHaircuts()
	rank := map[string]int{DecisionNo: 0, DecisionReview: 1, DecisionYes: 2}

	previous := -1
	for value := 0.0; value <= 2000000; value += 50000 {
		decision := Decide(CollateralLiquidSec, value, 1000000, haircuts)
		current := rank[decision.Outcome]
		require.GreaterOrEqual(t, current, previous, "outcome regressed at value %.0f", value)
		previous = current
	}
}
