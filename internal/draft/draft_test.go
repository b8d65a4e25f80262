package draft

import (
	"strings"
	"testing"
	"time"

	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/models"
	"github.com/stretchr/testify/require"
)

var draftNow = time.Date(2026, time.January, 15, 9, 30, 0, 0, time.UTC)

func draftApplication() *models.LCApplication {
	return &models.LCApplication{
		Reference:          "LC-2026-00042",
		ApplicantName:      "Sunrise Textiles Pvt Ltd",
		ApplicantCity:      "Mumbai",
		ApplicantCountry:   "India",
		BeneficiaryName:    "Hangzhou Weaving Co Ltd",
		BeneficiaryCity:    "Hangzhou",
		BeneficiaryCountry: "China",
		IssuingBank:        "Lucid Bank Ltd",
		AdvisingBank:       "First Commercial Bank, Shanghai",
		Currency:           "USD",
		Amount:             1250000,
		TolerancePct:       5,
		ExpiryDate:         "2026-06-30",
		ExpiryPlace:        "Mumbai",
		LatestShipmentDate: "2026-05-31",
		Incoterms:          "CIF",
		PortOfLoading:      "Shanghai",
		PortOfDischarge:    "Nhava Sheva",
		GoodsDescription:   "100% cotton woven fabric",
		PaymentTerms:       "Sight",
		LCType:             "Sight",
		RequiredDocuments:  []string{"Commercial Invoice", "Bill of Lading"},
	}
}

func TestGenerate_Success(t *testing.T) {
	result := Generate(draftApplication(), engine.DefaultFeeConfig(), draftNow)

	require.Equal(t, StatusSuccess, result.Status)
	require.Equal(t, "ILC-2026-LC-2026-00042", result.LCNumber)
	require.Equal(t, "2026-01-15", result.IssueDate)
	require.Empty(t, result.Missing)
	require.NotEmpty(t, result.Text)
	require.Len(t, result.Sections, 9)
}

func TestGenerate_ValidationGate(t *testing.T) {
	app := draftApplication()
	app.BeneficiaryName = ""
	app.Currency = "XAU" // warning, must still surface

	result := Generate(app, engine.DefaultFeeConfig(), draftNow)

	require.Equal(t, StatusError, result.Status)
	require.Equal(t, []string{"Beneficiary Name"}, result.Missing)
	require.Len(t, result.Warnings, 1)
	require.Empty(t, result.Text)
	require.Empty(t, result.Sections)
}

func TestGenerate_WarningsSurfacedOnSuccess(t *testing.T) {
	app := draftApplication()
	app.LatestShipmentDate = "2026-08-01" // after expiry

	result := Generate(app, engine.DefaultFeeConfig(), draftNow)

	require.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Warnings, 1)
}

func TestGenerate_TextEmbedsClausesAndFees(t *testing.T) {
	app := draftApplication()
	app.SpecialInstructions = "SGS inspection required"

	result := Generate(app, engine.DefaultFeeConfig(), draftNow)

	require.Contains(t, result.Text, "TERMS AND CONDITIONS")
	require.Contains(t, result.Text, "at sight")
	require.Contains(t, result.Text, "SGS")
	require.Contains(t, result.Text, "UCP 600")
	require.Contains(t, result.Text, "FEE SCHEDULE")
	require.Contains(t, result.Text, "Issuance commission")
	require.Contains(t, result.Text, "USD TWELVE LAKH FIFTY THOUSAND")
}

func TestGenerate_AmountInWordsUsesIndianScale(t *testing.T) {
	app := draftApplication()
	app.Amount = 1234567.50

	result := Generate(app, engine.DefaultFeeConfig(), draftNow)

	require.Contains(t, result.Text,
		"TWELVE LAKH THIRTY FOUR THOUSAND FIVE HUNDRED SIXTY SEVEN AND 50/100")
}

func TestGenerate_MissingConfirmingBankReadsWithoutConfirmation(t *testing.T) {
	result := Generate(draftApplication(), engine.DefaultFeeConfig(), draftNow)
	require.Contains(t, result.Text, "Without confirmation")
}

func TestGenerate_InspectionClauseOmittedWhenAbsent(t *testing.T) {
	result := Generate(draftApplication(), engine.DefaultFeeConfig(), draftNow)
	require.NotContains(t, result.Text, "inspection certificate issued by")
}

func TestRenderPDF_RequiresSuccessDraft(t *testing.T) {
	_, err := RenderPDF(Result{Status: StatusError})
	require.ErrorIs(t, err, ErrDraftNotGenerated)
}

func TestRenderPDF_ProducesDocument(t *testing.T) {
	result := Generate(draftApplication(), engine.DefaultFeeConfig(), draftNow)

	pdfBytes, err := RenderPDF(result)

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(pdfBytes), "%PDF-"))
}

func TestPDFFileName_Sanitized(t *testing.T) {
	require.Equal(t, "LC_LC_2026_42_2026-01-15.pdf", PDFFileName("LC/2026#42", "2026-01-15"))
}
