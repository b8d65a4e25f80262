package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/lucidbank/lcbridge/internal/models"
	"github.com/stretchr/testify/require"
)

// cleanPresentation matches completeApplication on every rule.
func cleanPresentation() *models.Presentation {
	return &models.Presentation{
		InvoiceAmount:       1250000,
		InvoiceCurrency:     "USD",
		InvoiceDate:         "2026-05-20",
		BLNumber:            "MAEU123456789",
		BLDate:              "2026-05-20",
		Vessel:              "MSC Altair",
		ShipmentDate:        "2026-05-20",
		PortOfLoading:       "Shanghai",
		PortOfDischarge:     "Nhava Sheva",
		CommercialInvoice:   "Yes",
		BillOfLading:        "Yes",
		PackingList:         "Yes",
		CertificateOfOrigin: "Yes",
		Status:              models.PresentationStatusSubmitted,
		SubmittedAt:         time.Date(2026, time.May, 25, 0, 0, 0, 0, time.UTC),
	}
}

func TestExamine_CompliantPresentation(t *testing.T) {
	app := completeApplication()
	app.RequiredDocuments = []string{"Commercial Invoice", "Bill of Lading"}

	exam := Examine(app, cleanPresentation())

	require.Empty(t, exam.Findings)
	require.Equal(t, VerdictCompliant, exam.Summary.Overall)
	require.Zero(t, exam.Summary.Total)
}

func TestExamine_AmountWithinToleranceBand(t *testing.T) {
	app := completeApplication()
	app.Amount = 100000
	app.TolerancePct = 5

	p := cleanPresentation()
	p.InvoiceAmount = 104999

	exam := Examine(app, p)
	for _, f := range exam.Findings {
		require.NotEqual(t, RuleAmountTolerance, f.Rule)
	}
}

func TestExamine_AmountAboveToleranceIsMajor(t *testing.T) {
	app := completeApplication()
	app.Amount = 100000
	app.TolerancePct = 5

	p := cleanPresentation()
	p.InvoiceAmount = 106000

	exam := Examine(app, p)

	require.Equal(t, 1, exam.Summary.Major)
	require.Equal(t, "Invoice Amount", exam.Findings[0].Field)
	require.Equal(t, SeverityMajor, exam.Findings[0].Severity)
	require.Equal(t, VerdictDiscrepant, exam.Summary.Overall)
}

// The MINOR branch deliberately compares against half of the lower
// tolerance bound, not the bound itself. Pin the behaviour.
func TestExamine_UnderDrawingMinorBranch(t *testing.T) {
	app := completeApplication()
	app.Amount = 100000
	app.TolerancePct = 5 // lower bound 95000, minor threshold 47500

	p := cleanPresentation()
	p.InvoiceAmount = 47499
	exam := Examine(app, p)
	require.Equal(t, 1, exam.Summary.Minor)
	require.Equal(t, SeverityMinor, exam.Findings[0].Severity)
	require.Equal(t, VerdictMinor, exam.Summary.Overall)

	// between half the lower bound and the lower bound: no finding at all
	p.InvoiceAmount = 60000
	exam = Examine(app, p)
	require.Zero(t, exam.Summary.Total)
}

func TestExamine_CurrencyMismatchIsFatal(t *testing.T) {
	app := completeApplication()
	p := cleanPresentation()
	p.InvoiceCurrency = "EUR"

	exam := Examine(app, p)

	require.Equal(t, 1, exam.Summary.Fatal)
	require.Equal(t, RuleCurrencyMismatch, exam.Findings[0].Rule)
	require.Equal(t, VerdictDiscrepant, exam.Summary.Overall)
}

func TestExamine_CurrencyCaseAndBlanksTolerated(t *testing.T) {
	app := completeApplication()
	p := cleanPresentation()

	p.InvoiceCurrency = "usd"
	require.Zero(t, Examine(app, p).Summary.Total)

	p.InvoiceCurrency = ""
	require.Zero(t, Examine(app, p).Summary.Total)
}

func TestExamine_LateShipmentIsMajor(t *testing.T) {
	app := completeApplication() // latest shipment 2026-05-31
	p := cleanPresentation()
	p.ShipmentDate = "2026-06-02"
	p.SubmittedAt = time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)

	exam := Examine(app, p)

	require.Equal(t, 1, exam.Summary.Major)
	require.Equal(t, RuleLateShipment, exam.Findings[0].Rule)
}

func TestExamine_PortSubstringMatchBothDirections(t *testing.T) {
	app := completeApplication()
	p := cleanPresentation()

	p.PortOfLoading = "Shanghai, China"
	require.Zero(t, Examine(app, p).Summary.Total)

	p.PortOfLoading = "Ningbo"
	exam := Examine(app, p)
	require.Equal(t, 1, exam.Summary.Major)
	require.Equal(t, RulePortOfLoading, exam.Findings[0].Rule)

	p.PortOfLoading = "Shanghai"
	p.PortOfDischarge = "Mundra"
	exam = Examine(app, p)
	require.Equal(t, RulePortOfDischarge, exam.Findings[0].Rule)
}

func TestExamine_MissingRequiredDocuments(t *testing.T) {
	app := completeApplication()
	app.RequiredDocuments = []string{
		"Signed Commercial Invoice in triplicate",
		"Full set of clean on board Bill of Lading",
		"Weight and Measurement Certificate",
	}

	p := cleanPresentation()
	p.CommercialInvoice = "Yes"
	p.BillOfLading = "No"
	p.WeightCertificate = ""

	exam := Examine(app, p)

	require.Equal(t, 2, exam.Summary.Major)
	fields := []string{exam.Findings[0].Field, exam.Findings[1].Field}
	require.Contains(t, fields, "Bill of Lading")
	require.Contains(t, fields, "Weight/Measurement Certificate")
}

func TestExamine_LatePresentationIsFatal(t *testing.T) {
	app := completeApplication()
	p := cleanPresentation()
	p.ShipmentDate = "2026-05-01"
	p.SubmittedAt = time.Date(2026, time.May, 25, 0, 0, 0, 0, time.UTC) // 24 days

	exam := Examine(app, p)

	require.Equal(t, 1, exam.Summary.Fatal)
	require.Equal(t, RuleLatePresentation, exam.Findings[0].Rule)
	require.Contains(t, exam.Findings[0].Description, "Article 14(c)")
}

func TestExamine_RulesDoNotShortCircuit(t *testing.T) {
	app := completeApplication()
	app.Amount = 100000
	app.TolerancePct = 5
	app.RequiredDocuments = []string{"Commercial Invoice"}

	p := cleanPresentation()
	p.InvoiceAmount = 200000        // major
	p.InvoiceCurrency = "EUR"       // fatal
	p.PortOfDischarge = "Rotterdam" // major
	p.CommercialInvoice = "No"      // major

	exam := Examine(app, p)

	require.Equal(t, 4, exam.Summary.Total)
	require.Equal(t, 1, exam.Summary.Fatal)
	require.Equal(t, 3, exam.Summary.Major)
	require.Equal(t, VerdictDiscrepant, exam.Summary.Overall)
}

// Each run is a full recomputation; the same inputs always produce the
// same finding set, never an accumulation.
func TestExamine_RerunsAreStable(t *testing.T) {
	app := completeApplication()
	p := cleanPresentation()
	p.InvoiceCurrency = "EUR"

	first := Examine(app, p)
	second := Examine(app, p)

	require.Equal(t, first.Summary.Total, second.Summary.Total)
	require.Equal(t, fmt.Sprintf("%v", first.Findings), fmt.Sprintf("%v", second.Findings))
}
