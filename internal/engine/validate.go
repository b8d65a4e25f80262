package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucidbank/lcbridge/internal/models"
)

// KnownCurrencies is the ISO 4217 subset we recognise for trade credits.
// An unlisted code is a warning, never a hard error, because branches do
// occasionally book credits in exotic currencies.
var KnownCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CHF": true,
	"AUD": true, "CAD": true, "SGD": true, "HKD": true, "INR": true,
	"AED": true, "CNY": true, "MYR": true, "THB": true, "ZAR": true,
	"BRL": true, "NOK": true, "SEK": true, "DKK": true, "NZD": true,
	"KWD": true, "QAR": true, "SAR": true, "BHD": true,
}

type FieldStatus struct {
	Label   string `json:"label"`
	Present bool   `json:"present"`
	Value   string `json:"value"`
}

type ValidationResult struct {
	Valid    bool                   `json:"valid"`
	Missing  []string               `json:"missing"`
	Warnings []string               `json:"warnings"`
	Fields   map[string]FieldStatus `json:"field_status"`
}

// mandatoryFields lists what a draft cannot be produced without.
// The labels are surfaced verbatim to the officer.
var mandatoryFields = []struct {
	key   string
	label string
	value func(*models.LCApplication) string
}{
	{"applicantName", "Applicant Name", func(a *models.LCApplication) string { return a.ApplicantName }},
	{"beneficiaryName", "Beneficiary Name", func(a *models.LCApplication) string { return a.BeneficiaryName }},
	{"amount", "LC Amount", func(a *models.LCApplication) string { return formatNumberField(a.Amount) }},
	{"currency", "LC Currency", func(a *models.LCApplication) string { return a.Currency }},
	{"expiryDate", "Expiry Date", func(a *models.LCApplication) string { return a.ExpiryDate }},
	{"portOfLoading", "Port of Loading", func(a *models.LCApplication) string { return a.PortOfLoading }},
	{"portOfDischarge", "Port of Discharge", func(a *models.LCApplication) string { return a.PortOfDischarge }},
	{"goodsDescription", "Goods Description", func(a *models.LCApplication) string { return a.GoodsDescription }},
	{"paymentTerms", "Payment Terms", func(a *models.LCApplication) string { return a.PaymentTerms }},
	{"issuingBank", "Issuing Bank", func(a *models.LCApplication) string { return a.IssuingBank }},
}

func formatNumberField(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fieldPresent implements the intake rule: a value counts as filled only
// if its trimmed string form is neither empty nor the literal "0".
func fieldPresent(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && trimmed != "0"
}

// Validate checks mandatory-field presence and basic cross-field sanity on
// an application. It is pure; warnings never block anything downstream.
func Validate(app *models.LCApplication) ValidationResult {
	result := ValidationResult{
		Missing:  []string{},
		Warnings: []string{},
		Fields:   make(map[string]FieldStatus, len(mandatoryFields)),
	}

	for _, field := range mandatoryFields {
		value := field.value(app)
		present := fieldPresent(value)
		result.Fields[field.key] = FieldStatus{
			Label:   field.label,
			Present: present,
			Value:   value,
		}
		if !present {
			result.Missing = append(result.Missing, field.label)
		}
	}

	result.Valid = len(result.Missing) == 0

	// Soft warnings. Both dates must parse before we compare them; a typo
	// in either is not grounds for blocking the file.
	expiry, expOK := ParseDate(app.ExpiryDate)
	shipment, shipOK := ParseDate(app.LatestShipmentDate)
	if expOK && shipOK && !shipment.Before(expiry) {
		result.Warnings = append(result.Warnings,
			"Latest shipment date should be before the expiry date")
	}

	if app.Amount <= 0 {
		result.Warnings = append(result.Warnings, "LC amount should be greater than zero")
	}

	currency := strings.ToUpper(strings.TrimSpace(app.Currency))
	if currency != "" && !KnownCurrencies[currency] {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Currency %q is not a recognised ISO 4217 code", currency))
	}

	return result
}
