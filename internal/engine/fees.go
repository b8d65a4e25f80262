package engine

import (
	"math"
	"strings"
	"time"

	"github.com/lucidbank/lcbridge/internal/models"
)

// avgDaysPerMonth is the banking convention used for tenor banding.
const avgDaysPerMonth = 30.44

// FeeBand maps a tenor ceiling (months, inclusive) to the mid-rate applied
// as issuance commission. Bands are evaluated in ascending MaxMonths order;
// the first match wins and anything beyond the last ceiling takes the last
// band's rate.
type FeeBand struct {
	MaxMonths int     `json:"max_months"`
	RatePct   float64 `json:"rate_pct"`
}

// FeeConfig carries every schedule input so tests and future repricing can
// substitute alternates. Nothing in this package holds mutable tables.
type FeeConfig struct {
	Bands               []FeeBand
	NegotiationRatePct  float64
	ConfirmationRatePct float64
	GSTRatePct          float64

	// Fixed fees, always INR regardless of the LC currency.
	AdvisingFee  float64
	CourierFee   float64
	AmendmentFee float64
}

// DefaultFeeConfig is the published indicative schedule.
func DefaultFeeConfig() FeeConfig {
	return FeeConfig{
		Bands: []FeeBand{
			{MaxMonths: 3, RatePct: 0.30},
			{MaxMonths: 6, RatePct: 0.60},
			{MaxMonths: 12, RatePct: 1.20},
			{MaxMonths: 1<<31 - 1, RatePct: 1.55},
		},
		NegotiationRatePct:  0.125,
		ConfirmationRatePct: 0.15,
		GSTRatePct:          18,
		AdvisingFee:         5000,
		CourierFee:          3500,
		AmendmentFee:        2500,
	}
}

type FeeLine struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

type FeeSchedule struct {
	TenorMonths      int       `json:"tenor_months"`
	AppliedRatePct   float64   `json:"applied_rate_pct"`
	Lines            []FeeLine `json:"lines"`
	VariableSubtotal float64   `json:"variable_subtotal"`
	FixedSubtotal    float64   `json:"fixed_subtotal"`
	Subtotal         float64   `json:"subtotal"`
	GST              float64   `json:"gst"`
	GrandTotal       float64   `json:"grand_total"`
	AmendmentFee     float64   `json:"amendment_fee"`
	Currency         string    `json:"currency"`
	Note             string    `json:"note"`
}

const feeScheduleNote = "Rates shown are indicative and subject to the bank's prevailing tariff at the time of issuance. Fixed fees are denominated in INR irrespective of the Credit currency."

// round2 rounds half away from zero to two decimals, the way the tariff
// sheets are published.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// tenorMonths computes max(1, ceil(days-to-expiry / 30.44)). An expiry we
// can't parse defaults to a 3-month tenor rather than failing the quote.
func tenorMonths(expiryDate string, now time.Time) int {
	expiry, ok := ParseDate(expiryDate)
	if !ok {
		return 3
	}
	days := expiry.Sub(now).Hours() / 24
	months := int(math.Ceil(days / avgDaysPerMonth))
	if months < 1 {
		return 1
	}
	return months
}

func bandRate(bands []FeeBand, months int) float64 {
	for _, band := range bands {
		if months <= band.MaxMonths {
			return band.RatePct
		}
	}
	// past every ceiling: the long-tenor band applies
	return bands[len(bands)-1].RatePct
}

// CalculateFees produces the itemised fee schedule for an application.
// It stays pure over partial data so officers can quote before the file is
// complete.
func CalculateFees(app *models.LCApplication, cfg FeeConfig) FeeSchedule {
	return calculateFees(app, cfg, time.Now())
}

func calculateFees(app *models.LCApplication, cfg FeeConfig, now time.Time) FeeSchedule {
	months := tenorMonths(app.ExpiryDate, now)
	rate := bandRate(cfg.Bands, months)

	currency := strings.ToUpper(strings.TrimSpace(app.Currency))
	if currency == "" {
		currency = "INR"
	}

	commission := round2(app.Amount * rate / 100)
	negotiation := round2(app.Amount * cfg.NegotiationRatePct / 100)

	lines := []FeeLine{
		{Description: "Issuance commission", Amount: commission, Currency: currency},
		{Description: "Negotiation/acceptance fee", Amount: negotiation, Currency: currency},
	}

	variable := commission + negotiation

	if strings.TrimSpace(app.ConfirmingBank) != "" {
		confirmation := round2(app.Amount * cfg.ConfirmationRatePct / 100)
		lines = append(lines, FeeLine{
			Description: "Confirmation premium",
			Amount:      confirmation,
			Currency:    currency,
		})
		variable += confirmation
	}

	lines = append(lines,
		FeeLine{Description: "Advising fee", Amount: cfg.AdvisingFee, Currency: "INR"},
		FeeLine{Description: "Courier/SWIFT charges", Amount: cfg.CourierFee, Currency: "INR"},
	)
	fixed := cfg.AdvisingFee + cfg.CourierFee

	variable = round2(variable)
	fixed = round2(fixed)

	// GST is levied separately on each subtotal, then summed.
	gst := round2(variable*cfg.GSTRatePct/100) + round2(fixed*cfg.GSTRatePct/100)
	gst = round2(gst)

	subtotal := round2(variable + fixed)
	grandTotal := round2(subtotal + gst)

	return FeeSchedule{
		TenorMonths:      months,
		AppliedRatePct:   rate,
		Lines:            lines,
		VariableSubtotal: variable,
		FixedSubtotal:    fixed,
		Subtotal:         subtotal,
		GST:              gst,
		GrandTotal:       grandTotal,
		AmendmentFee:     cfg.AmendmentFee,
		Currency:         currency,
		Note:             feeScheduleNote,
	}
}
