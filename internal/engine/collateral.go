package engine

import (
	"fmt"
	"strings"

	"github.com/lucidbank/lcbridge/internal/models"
)

// STP decision outcomes. PENDING is the stored state before the first run;
// Decide itself only ever returns YES, NO or REVIEW.
const (
	DecisionPending = "PENDING"
	DecisionYes     = "YES"
	DecisionNo      = "NO"
	DecisionReview  = "REVIEW"
)

// Collateral type tags accepted by the decision engine.
const (
	CollateralFD          = "FD"
	CollateralCash        = "CASH"
	CollateralGovtBond    = "GOVT_BOND"
	CollateralLiquidSec   = "LIQUID_SECURITY"
	CollateralReceivables = "RECEIVABLES"
	CollateralProperty    = "PROPERTY"
	CollateralMachinery   = "MACHINERY"
)

// HaircutTable maps a collateral type tag to the fraction of its value
// forfeited for liquidity/price risk, expressed as a percentage.
type HaircutTable map[string]float64

// DefaultHaircuts is the approved credit-policy schedule. It is returned
// fresh on every call so callers can't mutate a shared copy.
func DefaultHaircuts() HaircutTable {
	return HaircutTable{
		CollateralFD:          0,
		CollateralCash:        0,
		CollateralGovtBond:    10,
		CollateralLiquidSec:   15,
		CollateralReceivables: 25,
		CollateralProperty:    40,
		CollateralMachinery:   50,
	}
}

// reviewThreshold is the fraction of the LC amount the eligible collateral
// must reach to earn a manual review instead of an outright decline.
const reviewThreshold = 0.75

// Decision is the outcome of one STP run. Haircut is nil when the
// collateral type was not recognised.
type Decision struct {
	Outcome       string   `json:"decision"`
	HaircutPct    *float64 `json:"haircut_pct"`
	EligibleValue float64  `json:"eligible_value"`
	Reason        string   `json:"reason"`
}

// Decide applies the haircut rule: eligible = value x (1 - haircut).
// eligible >= amount is an automatic YES, eligible >= 75% of amount goes to
// manual review, anything less is declined. Unknown collateral types are
// never an error; they route to REVIEW with a zero eligible value.
//
// The function is a pure recomputation: callers overwrite any prior
// decision state with this result wholesale.
func Decide(collateralType string, collateralValue, lcAmount float64, haircuts HaircutTable) Decision {
	tag := strings.ToUpper(strings.TrimSpace(collateralType))

	haircut, known := haircuts[tag]
	if !known {
		return Decision{
			Outcome:       DecisionReview,
			HaircutPct:    nil,
			EligibleValue: 0,
			Reason:        fmt.Sprintf("Collateral type %q is not in the approved haircut schedule; manual review required", collateralType),
		}
	}

	eligible := collateralValue * (1 - haircut/100)

	decision := Decision{
		HaircutPct:    &haircut,
		EligibleValue: eligible,
	}

	switch {
	case eligible >= lcAmount:
		decision.Outcome = DecisionYes
		decision.Reason = fmt.Sprintf(
			"Eligible collateral %.2f (after %.0f%% haircut on %.2f) fully covers the LC amount %.2f",
			eligible, haircut, collateralValue, lcAmount)
	case eligible >= reviewThreshold*lcAmount:
		decision.Outcome = DecisionReview
		decision.Reason = fmt.Sprintf(
			"Eligible collateral %.2f covers only part of the LC amount %.2f but clears the 75%% review threshold (%.2f)",
			eligible, lcAmount, reviewThreshold*lcAmount)
	default:
		decision.Outcome = DecisionNo
		decision.Reason = fmt.Sprintf(
			"Eligible collateral %.2f is below 75%% of the LC amount %.2f (threshold %.2f)",
			eligible, lcAmount, reviewThreshold*lcAmount)
	}

	return decision
}

// CollateralValue resolves the amount the decision engine should use:
// the type-specific field first, the generic collateral value as fallback.
func CollateralValue(app *models.LCApplication) float64 {
	switch strings.ToUpper(strings.TrimSpace(app.CollateralType)) {
	case CollateralFD:
		if app.FDAmount > 0 {
			return app.FDAmount
		}
	case CollateralLiquidSec, CollateralGovtBond:
		if app.SecMarketValue > 0 {
			return app.SecMarketValue
		}
	case CollateralCash:
		if app.CashMarginAmount > 0 {
			return app.CashMarginAmount
		}
	}
	return app.CollateralValue
}
