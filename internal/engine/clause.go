package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucidbank/lcbridge/internal/models"
)

// LCType is the closed set of credit forms we issue. Free-text values are
// normalised once at the boundary; the clause and message logic switches
// exhaustively on the result.
type LCType int

const (
	TypeUnspecified LCType = iota
	TypeSight
	TypeUsance
	TypeStandby
	TypeRevolving
)

func ParseLCType(raw string) LCType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sight", "sight lc":
		return TypeSight
	case "usance", "usance lc", "deferred":
		return TypeUsance
	case "standby", "standby lc", "sblc":
		return TypeStandby
	case "revolving", "revolving lc":
		return TypeRevolving
	default:
		return TypeUnspecified
	}
}

func (t LCType) String() string {
	switch t {
	case TypeSight:
		return "Sight"
	case TypeUsance:
		return "Usance"
	case TypeStandby:
		return "Standby"
	case TypeRevolving:
		return "Revolving"
	default:
		return "Unspecified"
	}
}

// ClauseSet holds the composed terms-and-conditions wording for one
// application. Inspection is nil when no inspection requirement was found;
// renderers must omit the clause entirely in that case.
type ClauseSet struct {
	PartialShipment    string  `json:"partial_shipment"`
	Transshipment      string  `json:"transshipment"`
	Insurance          string  `json:"insurance"`
	Payment            string  `json:"payment"`
	Tolerance          string  `json:"tolerance"`
	Inspection         *string `json:"inspection,omitempty"`
	Charges            string  `json:"charges"`
	GoverningRules     string  `json:"governing_rules"`
	Undertaking        string  `json:"undertaking"`
	PresentationPeriod string  `json:"presentation_period"`
}

var dayCountPattern = regexp.MustCompile(`(\d+)`)

// usanceDays pulls the first number out of the payment-terms text,
// e.g. "90 Days from BL date" -> 90. Defaults to 90 when no number is found.
func usanceDays(paymentTerms string) int {
	match := dayCountPattern.FindString(paymentTerms)
	if match == "" {
		return 90
	}
	days, err := strconv.Atoi(match)
	if err != nil || days <= 0 {
		return 90
	}
	return days
}

// inspection agencies we recognise by name in special instructions
var inspectionBodies = []struct {
	keyword string
	name    string
}{
	{"sgs", "SGS"},
	{"bureau veritas", "Bureau Veritas"},
	{"bv", "Bureau Veritas"},
	{"tüv", "TÜV"},
	{"tuv", "TÜV"},
	{"ceig", "CEIG"},
}

var inspectionTriggers = []string{
	"inspection", "sgs", "bv", "bureau veritas", "tüv", "tuv",
	"pre-shipment", "quality check", "ceig", "weight",
}

// ComposeClauses derives the full clause set from the application record.
// Every branch is a plain conditional on record fields; no state, no
// randomness.
func ComposeClauses(app *models.LCApplication) ClauseSet {
	set := ClauseSet{
		PartialShipment:    partialShipmentClause(app.PartialShipment),
		Transshipment:      transshipmentClause(app.Transshipment),
		Insurance:          insuranceClause(app.Incoterms),
		Payment:            paymentClause(app.PaymentTerms, ParseLCType(app.LCType)),
		Tolerance:          toleranceClause(app.TolerancePct),
		Inspection:         inspectionClause(app.SpecialInstructions),
		Charges:            chargesClause(),
		GoverningRules:     "This Documentary Credit is subject to the Uniform Customs and Practice for Documentary Credits, 2007 Revision, ICC Publication No. 600 (UCP 600), and, to the extent not inconsistent therewith, the laws of England.",
		Undertaking:        undertakingClause(app.IssuingBank),
		PresentationPeriod: "Documents must be presented within 21 days after the date of shipment but in any event within the validity of this Credit, in accordance with UCP 600 Article 14(c).",
	}
	return set
}

func partialShipmentClause(allowed bool) string {
	if allowed {
		return "Partial shipments are permitted under this Documentary Credit."
	}
	return "Partial shipments are prohibited under this Documentary Credit."
}

func transshipmentClause(allowed bool) string {
	if allowed {
		return "Transshipment is permitted under this Documentary Credit."
	}
	return "Transshipment is prohibited under this Documentary Credit."
}

func insuranceClause(incoterms string) string {
	switch strings.ToUpper(strings.TrimSpace(incoterms)) {
	case "CIF", "CIP":
		return "Insurance to be effected by the seller for at least 110% of the CIF/CIP value of the goods, covering Institute Cargo Clauses (A), war and strikes risks, with claims payable at destination."
	case "FOB", "EXW", "FCA", "FAS":
		return "Insurance to be arranged by the buyer. The applicant confirms that adequate marine insurance cover has been or will be obtained for this shipment."
	case "DAP", "DDP", "DPU":
		return "Risk of loss or damage to the goods remains with the seller until delivery at the named place; insurance, where taken, is for the seller's account."
	default:
		return "Insurance arrangements shall be as agreed between buyer and seller under the applicable trade term."
	}
}

// paymentClause branches are checked in priority order: sight markers win
// over usance markers, and the type enum only decides when the free text
// is silent.
func paymentClause(paymentTerms string, lcType LCType) string {
	terms := strings.ToLower(paymentTerms)

	switch {
	case strings.Contains(terms, "sight") || lcType == TypeSight:
		return "Available by payment at sight against presentation of documents in strict compliance with the terms and conditions of this Credit."
	case strings.Contains(terms, "usance") || strings.Contains(terms, "days") || lcType == TypeUsance:
		days := usanceDays(paymentTerms)
		return fmt.Sprintf("Available by acceptance of drafts drawn at %d days from the date of shipment, payable at maturity against documents in strict compliance with the terms of this Credit.", days)
	case lcType == TypeStandby:
		return "This Standby Credit is available by payment against the beneficiary's first written demand stating that the applicant has failed to perform its contractual obligations."
	case lcType == TypeRevolving:
		return "This Credit revolves automatically upon each drawing, reinstating the available amount, subject to the cumulative maximum stated herein."
	default:
		return "Available by payment against presentation of conforming documents."
	}
}

// toleranceClause states the band both ways per UCP 600 Article 30.
func toleranceClause(tolerancePct float64) string {
	if tolerancePct > 0 {
		pct := strconv.FormatFloat(tolerancePct, 'f', -1, 64)
		return fmt.Sprintf("A tolerance of %s%% more or %s%% less in the Credit amount and in the quantity of goods is permitted, in accordance with UCP 600 Article 30.", pct, pct)
	}
	return "No tolerance in the Credit amount or quantity of goods is permitted; drawings must not exceed the Credit amount."
}

// inspectionClause returns nil when the special instructions carry no
// inspection requirement at all.
func inspectionClause(specialInstructions string) *string {
	text := strings.ToLower(specialInstructions)

	triggered := false
	for _, keyword := range inspectionTriggers {
		if strings.Contains(text, keyword) {
			triggered = true
			break
		}
	}
	if !triggered {
		return nil
	}

	var bodies []string
	seen := map[string]bool{}
	for _, body := range inspectionBodies {
		if strings.Contains(text, body.keyword) && !seen[body.name] {
			bodies = append(bodies, body.name)
			seen[body.name] = true
		}
	}

	agency := "an internationally recognised independent inspection agency"
	if len(bodies) > 0 {
		agency = strings.Join(bodies, ", ")
	}

	clause := fmt.Sprintf("A pre-shipment inspection certificate issued by %s must accompany the documents, confirming the quality, quantity and packing of the goods.", agency)
	return &clause
}

func chargesClause() string {
	return "All banking charges within India are for the account of the applicant; all banking charges outside India, including advising, confirmation and reimbursement charges, are for the account of the beneficiary."
}

func undertakingClause(issuingBank string) string {
	bank := strings.TrimSpace(issuingBank)
	if bank == "" {
		bank = "the Issuing Bank"
	}
	return fmt.Sprintf("%s hereby undertakes to honour complying presentations made under and in accordance with the terms and conditions of this Documentary Credit.", bank)
}
