package engine

import (
	"testing"

	"github.com/lucidbank/lcbridge/internal/models"
	"github.com/stretchr/testify/require"
)

func completeApplication() *models.LCApplication {
	return &models.LCApplication{
		Reference:          "LC-2026-00042",
		ApplicantName:      "Sunrise Textiles Pvt Ltd",
		BeneficiaryName:    "Hangzhou Weaving Co Ltd",
		Amount:             1250000,
		Currency:           "USD",
		TolerancePct:       5,
		IssueDate:          "2026-01-10",
		ExpiryDate:         "2026-06-30",
		ExpiryPlace:        "Mumbai",
		LatestShipmentDate: "2026-05-31",
		Incoterms:          "CIF",
		PortOfLoading:      "Shanghai",
		PortOfDischarge:    "Nhava Sheva",
		GoodsDescription:   "100% cotton woven fabric, 40s count",
		PaymentTerms:       "Sight",
		LCType:             "Sight",
		IssuingBank:        "Lucid Bank Ltd",
		AdvisingBank:       "First Commercial Bank, Shanghai",
	}
}

func TestValidate_CompleteApplication(t *testing.T) {
	result := Validate(completeApplication())

	require.True(t, result.Valid)
	require.Empty(t, result.Missing)
	require.Empty(t, result.Warnings)
	require.Len(t, result.Fields, 10)
}

func TestValidate_MissingFieldsReportExactLabels(t *testing.T) {
	tests := []struct {
		name  string
		blank func(*models.LCApplication)
		label string
	}{
		{"applicant", func(a *models.LCApplication) { a.ApplicantName = "" }, "Applicant Name"},
		{"beneficiary", func(a *models.LCApplication) { a.BeneficiaryName = "   " }, "Beneficiary Name"},
		{"amount", func(a *models.LCApplication) { a.Amount = 0 }, "LC Amount"},
		{"currency", func(a *models.LCApplication) { a.Currency = "" }, "LC Currency"},
		{"expiry", func(a *models.LCApplication) { a.ExpiryDate = "" }, "Expiry Date"},
		{"loading", func(a *models.LCApplication) { a.PortOfLoading = "" }, "Port of Loading"},
		{"discharge", func(a *models.LCApplication) { a.PortOfDischarge = "" }, "Port of Discharge"},
		{"goods", func(a *models.LCApplication) { a.GoodsDescription = "" }, "Goods Description"},
		{"terms", func(a *models.LCApplication) { a.PaymentTerms = "" }, "Payment Terms"},
		{"issuing bank", func(a *models.LCApplication) { a.IssuingBank = "" }, "Issuing Bank"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := completeApplication()
			tc.blank(app)

			result := Validate(app)

			require.False(t, result.Valid)
			require.Contains(t, result.Missing, tc.label)
		})
	}
}

func TestValidate_LiteralZeroCountsAsMissing(t *testing.T) {
	app := completeApplication()
	app.PaymentTerms = "0"

	result := Validate(app)

	require.False(t, result.Valid)
	require.Contains(t, result.Missing, "Payment Terms")
}

func TestValidate_WarningsDoNotBlock(t *testing.T) {
	app := completeApplication()
	app.LatestShipmentDate = "2026-07-15" // after expiry
	app.Currency = "XAU"

	result := Validate(app)

	require.True(t, result.Valid)
	require.Len(t, result.Warnings, 2)
	require.Contains(t, result.Warnings[0], "before the expiry date")
	require.Contains(t, result.Warnings[1], "XAU")
}

func TestValidate_UnparseableShipmentDateSkipsDateWarning(t *testing.T) {
	app := completeApplication()
	app.LatestShipmentDate = "sometime in May"

	result := Validate(app)

	require.True(t, result.Valid)
	require.Empty(t, result.Warnings)
}
