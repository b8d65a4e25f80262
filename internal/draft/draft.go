// Package draft assembles the human-readable LC pre-draft. The draft is
// built once as an ordered list of sections and rendered per target (plain
// text here, PDF in pdf.go), so the conditional logic lives in exactly one
// place.
package draft

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Result statuses
const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is the structured intermediate both renderers consume: a title,
// optional label/value rows, optional free paragraphs.
type Section struct {
	Title      string   `json:"title"`
	Fields     []Field  `json:"fields,omitempty"`
	Paragraphs []string `json:"paragraphs,omitempty"`
}

type Result struct {
	Status    string             `json:"status"`
	LCNumber  string             `json:"lc_number,omitempty"`
	IssueDate string             `json:"issue_date,omitempty"`
	Missing   []string           `json:"missing,omitempty"`
	Warnings  []string           `json:"warnings,omitempty"`
	Clauses   engine.ClauseSet   `json:"clauses"`
	Fees      engine.FeeSchedule `json:"fee_schedule"`
	Sections  []Section          `json:"sections,omitempty"`
	Text      string             `json:"draft_text,omitempty"`
}

// amounts in the draft are comma-grouped for readability
var amountPrinter = message.NewPrinter(language.English)

func money(currency string, v float64) string {
	return fmt.Sprintf("%s %s", currency, amountPrinter.Sprintf("%.2f", v))
}

// Generate produces the pre-draft for an application. Validation gates
// generation: a failed validation comes back as an ERROR result carrying
// the missing labels and warnings verbatim, and nothing else.
func Generate(app *models.LCApplication, feeConfig engine.FeeConfig, now time.Time) Result {
	validation := engine.Validate(app)
	if !validation.Valid {
		return Result{
			Status:   StatusError,
			Missing:  validation.Missing,
			Warnings: validation.Warnings,
		}
	}

	clauses := engine.ComposeClauses(app)
	fees := engine.CalculateFees(app, feeConfig)
	lcNumber := LCNumber(app, now)
	issueDate := issueDate(app, now)

	sections := buildSections(app, clauses, fees, lcNumber, issueDate)

	return Result{
		Status:    StatusSuccess,
		LCNumber:  lcNumber,
		IssueDate: issueDate,
		Missing:   []string{},
		Warnings:  validation.Warnings,
		Clauses:   clauses,
		Fees:      fees,
		Sections:  sections,
		Text:      renderText(sections, lcNumber),
	}
}

// LCNumber derives the credit number once: the stored number if one was
// already assigned, otherwise ILC-<year>-<reference>.
func LCNumber(app *models.LCApplication, now time.Time) string {
	if app.LCNumber.Valid && strings.TrimSpace(app.LCNumber.String) != "" {
		return app.LCNumber.String
	}
	return fmt.Sprintf("ILC-%d-%s", now.UTC().Year(), app.Reference)
}

func issueDate(app *models.LCApplication, now time.Time) string {
	if t, ok := engine.ParseDate(app.IssueDate); ok {
		return t.Format("2006-01-02")
	}
	return now.UTC().Format("2006-01-02")
}

func buildSections(app *models.LCApplication, clauses engine.ClauseSet, fees engine.FeeSchedule, lcNumber, issueDate string) []Section {
	currency := strings.ToUpper(strings.TrimSpace(app.Currency))

	confirming := strings.TrimSpace(app.ConfirmingBank)
	if confirming == "" {
		confirming = "Without confirmation"
	}

	parties := Section{
		Title: "Parties",
		Fields: []Field{
			{"Applicant", partyLine(app.ApplicantName, app.ApplicantAddress, app.ApplicantCity, app.ApplicantCountry)},
			{"Beneficiary", partyLine(app.BeneficiaryName, app.BeneficiaryAddress, app.BeneficiaryCity, app.BeneficiaryCountry)},
			{"Issuing Bank", app.IssuingBank},
			{"Advising Bank", orNotSpecified(app.AdvisingBank)},
			{"Confirming Bank", confirming},
			{"Negotiating Bank", orNotSpecified(app.NegotiatingBank)},
		},
	}

	credit := Section{
		Title: "Credit Terms",
		Fields: []Field{
			{"Documentary Credit Number", lcNumber},
			{"Date of Issue", issueDate},
			{"Form of Credit", "Irrevocable " + engine.ParseLCType(app.LCType).String()},
			{"Amount", money(currency, app.Amount)},
			{"Amount in Words", currency + " " + engine.AmountInWords(app.Amount)},
			{"Tolerance", fmt.Sprintf("%s%% more or less", trimPct(app.TolerancePct))},
			{"Expiry Date", app.ExpiryDate},
			{"Place of Expiry", orNotSpecified(app.ExpiryPlace)},
			{"Payment Terms", app.PaymentTerms},
		},
	}

	shipment := Section{
		Title: "Shipment",
		Fields: []Field{
			{"Port of Loading", app.PortOfLoading},
			{"Port of Discharge", app.PortOfDischarge},
			{"Latest Shipment Date", orNotSpecified(app.LatestShipmentDate)},
			{"Incoterms", orNotSpecified(app.Incoterms)},
			{"Partial Shipment", permitted(app.PartialShipment)},
			{"Transshipment", permitted(app.Transshipment)},
		},
	}

	goods := Section{
		Title: "Goods",
		Fields: []Field{
			{"Description", app.GoodsDescription},
			{"Quantity", orNotSpecified(app.Quantity)},
			{"Unit Price", orNotSpecified(app.UnitPrice)},
			{"HS Code", orNotSpecified(app.HSCode)},
			{"Country of Origin", orNotSpecified(app.CountryOfOrigin)},
		},
	}

	documents := Section{Title: "Documents Required"}
	for i, doc := range app.RequiredDocuments {
		if trimmed := strings.TrimSpace(doc); trimmed != "" {
			documents.Paragraphs = append(documents.Paragraphs, fmt.Sprintf("%d. %s", i+1, trimmed))
		}
	}
	if extra := strings.TrimSpace(app.AdditionalDocuments); extra != "" {
		documents.Paragraphs = append(documents.Paragraphs,
			fmt.Sprintf("%d. %s", len(documents.Paragraphs)+1, extra))
	}
	if len(documents.Paragraphs) == 0 {
		documents.Paragraphs = []string{"As per credit application."}
	}

	terms := Section{
		Title: "Terms and Conditions",
		Paragraphs: []string{
			clauses.Payment,
			clauses.PartialShipment,
			clauses.Transshipment,
			clauses.Tolerance,
			clauses.Insurance,
		},
	}
	if clauses.Inspection != nil {
		terms.Paragraphs = append(terms.Paragraphs, *clauses.Inspection)
	}
	terms.Paragraphs = append(terms.Paragraphs,
		clauses.Charges,
		clauses.PresentationPeriod,
		clauses.Undertaking,
	)

	feeSection := Section{Title: "Fee Schedule"}
	for _, line := range fees.Lines {
		feeSection.Fields = append(feeSection.Fields, Field{line.Description, money(line.Currency, line.Amount)})
	}
	feeSection.Fields = append(feeSection.Fields,
		Field{"Subtotal", amountPrinter.Sprintf("%.2f", fees.Subtotal)},
		Field{"GST (18%)", amountPrinter.Sprintf("%.2f", fees.GST)},
		Field{"Grand Total", amountPrinter.Sprintf("%.2f", fees.GrandTotal)},
		Field{"Amendment fee (per amendment, quoted separately)", money("INR", fees.AmendmentFee)},
	)
	feeSection.Paragraphs = []string{fees.Note}

	governing := Section{
		Title:      "Governing Rules",
		Paragraphs: []string{clauses.GoverningRules},
	}

	signature := Section{
		Title: "Authorisation",
		Paragraphs: []string{
			"For and on behalf of " + app.IssuingBank + ".",
			"Authorised Signatory — Trade Finance Operations.",
			"This pre-draft is for review purposes only and does not constitute a binding undertaking until the Documentary Credit is issued over SWIFT.",
		},
	}

	return []Section{parties, credit, shipment, goods, documents, terms, feeSection, governing, signature}
}

func renderText(sections []Section, lcNumber string) string {
	var b strings.Builder
	rule := strings.Repeat("=", 72)

	b.WriteString(rule + "\n")
	b.WriteString("IRREVOCABLE DOCUMENTARY CREDIT — PRE-DRAFT\n")
	b.WriteString(lcNumber + "\n")
	b.WriteString(rule + "\n")

	for _, section := range sections {
		b.WriteString("\n" + strings.ToUpper(section.Title) + "\n")
		b.WriteString(strings.Repeat("-", len(section.Title)) + "\n")
		for _, field := range section.Fields {
			b.WriteString(fmt.Sprintf("%-28s: %s\n", field.Label, field.Value))
		}
		for _, paragraph := range section.Paragraphs {
			b.WriteString(paragraph + "\n")
		}
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}

func partyLine(name, address, city, country string) string {
	parts := []string{name}
	for _, p := range []string{address, city, country} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}

func orNotSpecified(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not specified"
	}
	return strings.TrimSpace(value)
}

func permitted(allowed bool) string {
	if allowed {
		return "Permitted"
	}
	return "Not permitted"
}

func trimPct(pct float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", pct), "0"), ".")
	if s == "" {
		return "0"
	}
	return s
}
