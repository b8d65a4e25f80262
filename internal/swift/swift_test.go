package swift

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/models"
	"github.com/stretchr/testify/require"
)

var renderTime = time.Date(2026, time.January, 15, 9, 30, 0, 0, time.UTC)

func testApplication() *models.LCApplication {
	return &models.LCApplication{
		Reference:           "LC-2026-00042",
		ApplicantName:       "Sunrise Textiles Pvt Ltd",
		ApplicantAddress:    "14 Industrial Estate",
		ApplicantCity:       "Mumbai",
		ApplicantCountry:    "India",
		ApplicantAccount:    "00412000988",
		BeneficiaryName:     "Hangzhou Weaving Co Ltd",
		BeneficiaryAddress:  "88 Binjiang Road",
		BeneficiaryCity:     "Hangzhou",
		BeneficiaryCountry:  "China",
		BeneficiaryBankBIC:  "FCBKCNSH",
		IssuingBank:         "Lucid Bank Ltd",
		IssuingBankBIC:      "LUCDINBB",
		AdvisingBank:        "First Commercial Bank, Shanghai",
		Currency:            "USD",
		Amount:              1250000,
		TolerancePct:        5,
		IssueDate:           "2026-01-15",
		ExpiryDate:          "2026-06-30",
		ExpiryPlace:         "Mumbai",
		LatestShipmentDate:  "2026-05-31",
		Incoterms:           "CIF",
		PortOfLoading:       "Shanghai",
		PortOfDischarge:     "Nhava Sheva",
		GoodsDescription:    "100% cotton woven fabric, 40s count",
		Quantity:            "50000 metres",
		HSCode:              "5208.42",
		CountryOfOrigin:     "China",
		LCType:              "Sight",
		PaymentTerms:        "Sight",
		RequiredDocuments:   []string{"Commercial Invoice", "Bill of Lading", "Packing List"},
		AdditionalDocuments: "Beneficiary certificate of fax advice",
	}
}

var tagPattern = regexp.MustCompile(`(?m)^:(\w+):`)

func extractTags(message string) []string {
	var tags []string
	for _, m := range tagPattern.FindAllStringSubmatch(message, -1) {
		tags = append(tags, m[1])
	}
	return tags
}

func TestGenerateMT700_TagOrderIsInvariant(t *testing.T) {
	app := testApplication()

	first := GenerateMT700(app, renderTime)
	second := GenerateMT700(app, renderTime)

	require.Equal(t, first, second)
	require.Equal(t, MT700TagOrder(), extractTags(first))
	require.Len(t, extractTags(first), 28)
}

func TestGenerateMT700_FieldSubstitution(t *testing.T) {
	message := GenerateMT700(testApplication(), renderTime)

	require.Contains(t, message, ":20:\nLC-2026-00042")
	require.Contains(t, message, ":31C:\n20260115")
	require.Contains(t, message, ":31D:\n20260630MUMBAI")
	require.Contains(t, message, ":32B:\nUSD1250000.00")
	require.Contains(t, message, ":39A:\n5/5")
	require.Contains(t, message, ":44C:\n20260531")
	require.Contains(t, message, ":43P:\nNOT ALLOWED")
	require.Contains(t, message, "SUNRISE TEXTILES PVT LTD")
	require.Contains(t, message, "//00412000988")
	require.Contains(t, message, "HANGZHOU/CHINA")
	require.Contains(t, message, "+1. COMMERCIAL INVOICE")
	require.Contains(t, message, "+4. BENEFICIARY CERTIFICATE OF FAX ADVICE")
}

func TestGenerateMT700_AvailabilityVocabulary(t *testing.T) {
	app := testApplication()

	app.LCType = "Sight"
	require.Contains(t, GenerateMT700(app, renderTime), "BY PAYMENT")

	app.LCType = "Usance"
	app.PaymentTerms = "90 Days"
	message := GenerateMT700(app, renderTime)
	require.Contains(t, message, "BY ACCEPTANCE")
	require.Contains(t, message, ":42C:\n90 DAYS AFTER SIGHT")

	app.LCType = ""
	require.Contains(t, GenerateMT700(app, renderTime), "BY NEGOTIATION")

	app.LCType = "Standby"
	require.Contains(t, GenerateMT700(app, renderTime), ":40A:\nIRREVOCABLE STANDBY")
}

func TestGenerateMT700_ShipmentFlagsAllowed(t *testing.T) {
	app := testApplication()
	app.PartialShipment = true
	app.Transshipment = true

	message := GenerateMT700(app, renderTime)

	require.Contains(t, message, ":43P:\nALLOWED")
	require.Contains(t, message, ":43T:\nALLOWED")
}

func TestGenerateMT700_FINFraming(t *testing.T) {
	message := GenerateMT700(testApplication(), renderTime)

	require.True(t, strings.HasPrefix(message, "{1:F01LUCDINBB"))
	require.Contains(t, message, "{2:I700FCBKCNSH")
	require.Contains(t, message, "{4:\n")
	require.Contains(t, message, "\n-}\n")
	require.True(t, strings.HasSuffix(message, "{5:{CHK:000000000000}}"))
}

func TestGenerateMT700_ReceiverBICFallsBackToAdvisingBank(t *testing.T) {
	app := testApplication()
	app.AdvisingBankBIC = "SCBLINBB"

	require.Contains(t, GenerateMT700(app, renderTime), "{2:I700SCBLINBB")

	app.AdvisingBankBIC = ""
	app.BeneficiaryBankBIC = ""
	require.Contains(t, GenerateMT700(app, renderTime), "{2:I700"+defaultReceiverBIC)
}

func TestGenerateMT700_UnparseableDatesDegrade(t *testing.T) {
	app := testApplication()
	app.LatestShipmentDate = "end of May"
	app.ExpiryDate = ""

	message := GenerateMT700(app, renderTime)

	require.Contains(t, message, ":44C:\nEND OF MAY")
	require.Contains(t, message, ":31D:\nNOT SPECIFIEDMUMBAI")
}

func TestGenerateMT700_BodyLinesStayWithinWidth(t *testing.T) {
	app := testApplication()
	app.GoodsDescription = strings.Repeat("very long goods description ", 12)

	message := GenerateMT700(app, renderTime)

	for _, line := range strings.Split(message, "\n") {
		if strings.HasPrefix(line, "{") {
			continue // header/trailer blocks are exempt
		}
		require.LessOrEqual(t, len(line), lineWidth, "line too long: %q", line)
	}
}

func TestGenerateMT707(t *testing.T) {
	app := testApplication()
	amendment := &models.Amendment{
		Sequence: 2,
		Field:    "Expiry Date",
		OldValue: "2026-06-30",
		NewValue: "2026-09-30",
		Reason:   "Production delay at beneficiary",
	}

	message := GenerateMT707(app, amendment, renderTime)

	require.Equal(t, mt707TagOrder, extractTags(message))
	require.Contains(t, message, ":26E:\n2")
	require.Contains(t, message, ":30:\n20260115")
	require.Contains(t, message, "AMENDMENT NO. 2")
	require.Contains(t, message, "PREVIOUSLY: 2026-06-30")
	require.Contains(t, message, "AMENDED TO: 2026-09-30")
	require.Contains(t, message, "ALL OTHER TERMS AND CONDITIONS REMAIN UNCHANGED")
	require.Contains(t, message, "{2:I707")
}

func TestGenerateMT734(t *testing.T) {
	app := testApplication()
	presentation := &models.Presentation{InvoiceAmount: 1310000}
	findings := []engine.Finding{
		{Severity: engine.SeverityMajor, Description: "Invoice amount 1310000.00 exceeds the maximum drawable"},
		{Severity: engine.SeverityFatal, Description: "Invoice is drawn in EUR but the Credit is denominated in USD"},
	}

	message := GenerateMT734(app, presentation, findings, renderTime)

	require.Equal(t, mt734TagOrder, extractTags(message))
	require.Contains(t, message, ":20:\nRFLLC-2026-00042")
	require.Contains(t, message, ":32A:\n260115USD1310000.00")
	require.Contains(t, message, "1. (MAJOR)")
	require.Contains(t, message, "2. (FATAL)")
	require.Contains(t, message, "UCP 600 ARTICLE 16")
	require.Contains(t, message, "{2:I734")
}

func TestSanitizeReference(t *testing.T) {
	require.Equal(t, "LC_2026_00042_A", SanitizeReference("LC/2026 00042:A"))
	require.Equal(t, "LC-2026-00042", SanitizeReference("LC-2026-00042"))
}

func TestDraftFileName(t *testing.T) {
	name := DraftFileName("MT700", "LC/2026#42", renderTime)
	require.Equal(t, "MT700_LC_2026_42_20260115T093000.txt", name)
}
