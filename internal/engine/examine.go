package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucidbank/lcbridge/internal/models"
)

// Discrepancy severities, in ascending order of consequence.
const (
	SeverityMinor = "MINOR"
	SeverityMajor = "MAJOR"
	SeverityFatal = "FATAL"
)

// Overall examination verdicts.
const (
	VerdictCompliant  = "COMPLIANT"
	VerdictMinor      = "MINOR_DISCREPANCIES"
	VerdictDiscrepant = "DISCREPANT"
)

// Examination rule identifiers, stable for audit and reporting.
const (
	RuleAmountTolerance  = "AMOUNT_TOLERANCE"
	RuleCurrencyMismatch = "CURRENCY_MISMATCH"
	RuleLateShipment     = "LATE_SHIPMENT"
	RulePortOfLoading    = "PORT_OF_LOADING"
	RulePortOfDischarge  = "PORT_OF_DISCHARGE"
	RuleMissingDocument  = "MISSING_DOCUMENT"
	RuleLatePresentation = "LATE_PRESENTATION"
)

// maxPresentationDays is the UCP 600 Article 14(c) window.
const maxPresentationDays = 21

type Finding struct {
	Field       string `json:"field"`
	LCValue     string `json:"lc_value"`
	DocValue    string `json:"doc_value"`
	Severity    string `json:"severity"`
	Rule        string `json:"rule"`
	Description string `json:"description"`
}

type ExamSummary struct {
	Overall string `json:"overall"`
	Fatal   int    `json:"fatal"`
	Major   int    `json:"major"`
	Minor   int    `json:"minor"`
	Total   int    `json:"total"`
}

type Examination struct {
	Findings []Finding   `json:"discrepancies"`
	Summary  ExamSummary `json:"summary"`
}

// canonicalDocuments is the fixed lookup table for the required-document
// check. A requirement on the LC matches a canonical entry when the
// requirement text contains the first slash-segment of the key,
// case-insensitively — e.g. "Weight/Measurement Certificate" matches any
// requirement mentioning "weight". Deliberately a dumb containment rule:
// deterministic and testable, not NLP.
var canonicalDocuments = []struct {
	key      string
	presence func(*models.Presentation) string
}{
	{"Commercial Invoice", func(p *models.Presentation) string { return p.CommercialInvoice }},
	{"Bill of Lading", func(p *models.Presentation) string { return p.BillOfLading }},
	{"Packing List", func(p *models.Presentation) string { return p.PackingList }},
	{"Certificate of Origin", func(p *models.Presentation) string { return p.CertificateOfOrigin }},
	{"Insurance Certificate", func(p *models.Presentation) string { return p.InsuranceCertificate }},
	{"Inspection Certificate", func(p *models.Presentation) string { return p.InspectionCertificate }},
	{"Weight/Measurement Certificate", func(p *models.Presentation) string { return p.WeightCertificate }},
}

// documentPresented applies the covering-schedule convention: blank, "0"
// and "No" all mean the document did not arrive.
func documentPresented(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "0" {
		return false
	}
	return !strings.EqualFold(trimmed, "no")
}

func firstSlashSegment(key string) string {
	if idx := strings.Index(key, "/"); idx >= 0 {
		return key[:idx]
	}
	return key
}

// portsMatch does a case-insensitive substring comparison in both
// directions, so "Nhava Sheva" matches "Nhava Sheva (JNPT), India".
func portsMatch(lcPort, docPort string) bool {
	a := strings.ToLower(strings.TrimSpace(lcPort))
	b := strings.ToLower(strings.TrimSpace(docPort))
	if a == "" || b == "" {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Examine compares one presentation against the LC's terms. All rules run
// independently — a fatal finding does not short-circuit the rest — so the
// refusal notice can cite every defect at once. Each run stands alone;
// persistence replaces, never appends, the stored findings.
func Examine(app *models.LCApplication, p *models.Presentation) Examination {
	var findings []Finding

	// Rule 1: invoice amount within the tolerance band. The under-drawing
	// branch intentionally compares against 50% of the lower bound, not the
	// bound itself; the behaviour is pinned by tests (see package tests).
	tolerance := app.TolerancePct / 100
	maxAmt := app.Amount * (1 + tolerance)
	minAmt := app.Amount * (1 - tolerance)
	if p.InvoiceAmount > maxAmt {
		findings = append(findings, Finding{
			Field:       "Invoice Amount",
			LCValue:     formatAmount(app.Amount),
			DocValue:    formatAmount(p.InvoiceAmount),
			Severity:    SeverityMajor,
			Rule:        RuleAmountTolerance,
			Description: fmt.Sprintf("Invoice amount %s exceeds the maximum drawable %s (LC amount %s plus %s%% tolerance)", formatAmount(p.InvoiceAmount), formatAmount(maxAmt), formatAmount(app.Amount), strconv.FormatFloat(app.TolerancePct, 'f', -1, 64)),
		})
	} else if p.InvoiceAmount < minAmt*0.5 {
		findings = append(findings, Finding{
			Field:       "Invoice Amount",
			LCValue:     formatAmount(app.Amount),
			DocValue:    formatAmount(p.InvoiceAmount),
			Severity:    SeverityMinor,
			Rule:        RuleAmountTolerance,
			Description: fmt.Sprintf("Invoice amount %s is less than half of the minimum drawable %s", formatAmount(p.InvoiceAmount), formatAmount(minAmt)),
		})
	}

	// Rule 2: currency mismatch is never negotiable.
	lcCur := strings.TrimSpace(app.Currency)
	docCur := strings.TrimSpace(p.InvoiceCurrency)
	if lcCur != "" && docCur != "" && !strings.EqualFold(lcCur, docCur) {
		findings = append(findings, Finding{
			Field:       "Invoice Currency",
			LCValue:     lcCur,
			DocValue:    docCur,
			Severity:    SeverityFatal,
			Rule:        RuleCurrencyMismatch,
			Description: fmt.Sprintf("Invoice is drawn in %s but the Credit is denominated in %s", docCur, lcCur),
		})
	}

	// Rule 3: shipment after the latest permitted date.
	latestShipment, lsOK := ParseDate(app.LatestShipmentDate)
	shipped, shipOK := ParseDate(p.ShipmentDate)
	if lsOK && shipOK && shipped.After(latestShipment) {
		findings = append(findings, Finding{
			Field:       "Shipment Date",
			LCValue:     app.LatestShipmentDate,
			DocValue:    p.ShipmentDate,
			Severity:    SeverityMajor,
			Rule:        RuleLateShipment,
			Description: fmt.Sprintf("Goods were shipped on %s, after the latest shipment date %s", p.ShipmentDate, app.LatestShipmentDate),
		})
	}

	// Rule 4: ports must agree with the Credit.
	if !portsMatch(app.PortOfLoading, p.PortOfLoading) {
		findings = append(findings, Finding{
			Field:       "Port of Loading",
			LCValue:     app.PortOfLoading,
			DocValue:    p.PortOfLoading,
			Severity:    SeverityMajor,
			Rule:        RulePortOfLoading,
			Description: fmt.Sprintf("Documents show loading at %q but the Credit stipulates %q", p.PortOfLoading, app.PortOfLoading),
		})
	}
	if !portsMatch(app.PortOfDischarge, p.PortOfDischarge) {
		findings = append(findings, Finding{
			Field:       "Port of Discharge",
			LCValue:     app.PortOfDischarge,
			DocValue:    p.PortOfDischarge,
			Severity:    SeverityMajor,
			Rule:        RulePortOfDischarge,
			Description: fmt.Sprintf("Documents show discharge at %q but the Credit stipulates %q", p.PortOfDischarge, app.PortOfDischarge),
		})
	}

	// Rule 5: every required document the LC names must have arrived.
	for _, required := range app.RequiredDocuments {
		requiredLower := strings.ToLower(required)
		for _, canonical := range canonicalDocuments {
			segment := strings.ToLower(firstSlashSegment(canonical.key))
			if !strings.Contains(requiredLower, segment) {
				continue
			}
			if !documentPresented(canonical.presence(p)) {
				findings = append(findings, Finding{
					Field:       canonical.key,
					LCValue:     required,
					DocValue:    "Not presented",
					Severity:    SeverityMajor,
					Rule:        RuleMissingDocument,
					Description: fmt.Sprintf("Required document %q was not presented", required),
				})
			}
			break
		}
	}

	// Rule 6: presentation window per UCP 600 Article 14(c).
	if shipOK {
		days := int(p.SubmittedAt.Sub(shipped).Hours() / 24)
		if days > maxPresentationDays {
			findings = append(findings, Finding{
				Field:       "Presentation Date",
				LCValue:     fmt.Sprintf("Within %d days of shipment", maxPresentationDays),
				DocValue:    p.SubmittedAt.Format("2006-01-02"),
				Severity:    SeverityFatal,
				Rule:        RuleLatePresentation,
				Description: fmt.Sprintf("Documents were presented %d days after shipment, beyond the %d-day limit of UCP 600 Article 14(c)", days, maxPresentationDays),
			})
		}
	}

	summary := ExamSummary{Total: len(findings)}
	for _, f := range findings {
		switch f.Severity {
		case SeverityFatal:
			summary.Fatal++
		case SeverityMajor:
			summary.Major++
		case SeverityMinor:
			summary.Minor++
		}
	}

	switch {
	case summary.Fatal > 0 || summary.Major > 0:
		summary.Overall = VerdictDiscrepant
	case summary.Minor > 0:
		summary.Overall = VerdictMinor
	default:
		summary.Overall = VerdictCompliant
	}

	return Examination{Findings: findings, Summary: summary}
}
