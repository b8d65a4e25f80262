package models

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// LCApplication is the aggregate root of the issuance workflow.
// Presentations, discrepancies, amendments and generated artifacts
// are all keyed to its Reference and have no life of their own.
//
// Date fields are stored as the free text captured at intake; the
// engines parse them defensively and degrade when they can't.
type LCApplication struct {
	ID        string `db:"id" json:"id"`
	Reference string `db:"reference" json:"reference"`

	// Applicant
	ApplicantName    string `db:"applicant_name" json:"applicant_name"`
	ApplicantAddress string `db:"applicant_address" json:"applicant_address"`
	ApplicantCity    string `db:"applicant_city" json:"applicant_city"`
	ApplicantCountry string `db:"applicant_country" json:"applicant_country"`
	ApplicantAccount string `db:"applicant_account" json:"applicant_account"`
	ApplicantTaxID   string `db:"applicant_tax_id" json:"applicant_tax_id"`

	// Beneficiary
	BeneficiaryName     string `db:"beneficiary_name" json:"beneficiary_name"`
	BeneficiaryAddress  string `db:"beneficiary_address" json:"beneficiary_address"`
	BeneficiaryCity     string `db:"beneficiary_city" json:"beneficiary_city"`
	BeneficiaryCountry  string `db:"beneficiary_country" json:"beneficiary_country"`
	BeneficiaryBankName string `db:"beneficiary_bank_name" json:"beneficiary_bank_name"`
	BeneficiaryBankBIC  string `db:"beneficiary_bank_bic" json:"beneficiary_bank_bic"`
	BeneficiaryIBAN     string `db:"beneficiary_iban" json:"beneficiary_iban"`

	// Banks
	IssuingBank     string `db:"issuing_bank" json:"issuing_bank"`
	IssuingBankBIC  string `db:"issuing_bank_bic" json:"issuing_bank_bic"`
	AdvisingBank    string `db:"advising_bank" json:"advising_bank"`
	AdvisingBankBIC string `db:"advising_bank_bic" json:"advising_bank_bic"`
	ConfirmingBank  string `db:"confirming_bank" json:"confirming_bank"`
	NegotiatingBank string `db:"negotiating_bank" json:"negotiating_bank"`

	// Commercial terms
	Currency           string  `db:"currency" json:"currency"`
	Amount             float64 `db:"amount" json:"amount"`
	TolerancePct       float64 `db:"tolerance_pct" json:"tolerance_pct"`
	IssueDate          string  `db:"issue_date" json:"issue_date"`
	ExpiryDate         string  `db:"expiry_date" json:"expiry_date"`
	ExpiryPlace        string  `db:"expiry_place" json:"expiry_place"`
	LatestShipmentDate string  `db:"latest_shipment_date" json:"latest_shipment_date"`
	Incoterms          string  `db:"incoterms" json:"incoterms"`
	PortOfLoading      string  `db:"port_of_loading" json:"port_of_loading"`
	PortOfDischarge    string  `db:"port_of_discharge" json:"port_of_discharge"`
	GoodsDescription   string  `db:"goods_description" json:"goods_description"`
	Quantity           string  `db:"quantity" json:"quantity"`
	UnitPrice          string  `db:"unit_price" json:"unit_price"`
	HSCode             string  `db:"hs_code" json:"hs_code"`
	CountryOfOrigin    string  `db:"country_of_origin" json:"country_of_origin"`
	PartialShipment    bool    `db:"partial_shipment" json:"partial_shipment"`
	Transshipment      bool    `db:"transshipment" json:"transshipment"`

	LCType              string         `db:"lc_type" json:"lc_type"`
	PaymentTerms        string         `db:"payment_terms" json:"payment_terms"`
	RequiredDocuments   pq.StringArray `db:"required_documents" json:"required_documents"`
	AdditionalDocuments string         `db:"additional_documents" json:"additional_documents"`
	SpecialInstructions string         `db:"special_instructions" json:"special_instructions"`

	// Collateral
	CollateralType  string  `db:"collateral_type" json:"collateral_type"`
	CollateralValue float64 `db:"collateral_value" json:"collateral_value"`

	FDNumber   string  `db:"fd_number" json:"fd_number"`
	FDBank     string  `db:"fd_bank" json:"fd_bank"`
	FDAmount   float64 `db:"fd_amount" json:"fd_amount"`
	FDCurrency string  `db:"fd_currency" json:"fd_currency"`
	FDMaturity string  `db:"fd_maturity" json:"fd_maturity"`
	FDLien     bool    `db:"fd_lien" json:"fd_lien"`

	SecISIN        string  `db:"sec_isin" json:"sec_isin"`
	SecIssuer      string  `db:"sec_issuer" json:"sec_issuer"`
	SecMarketValue float64 `db:"sec_market_value" json:"sec_market_value"`
	SecQuantity    float64 `db:"sec_quantity" json:"sec_quantity"`
	SecCustodian   string  `db:"sec_custodian" json:"sec_custodian"`
	SecVolatility  string  `db:"sec_volatility" json:"sec_volatility"`
	SecPledged     bool    `db:"sec_pledged" json:"sec_pledged"`

	CashMarginAmount float64 `db:"cash_margin_amount" json:"cash_margin_amount"`

	// Credit profile
	AnnualTurnover    float64 `db:"annual_turnover" json:"annual_turnover"`
	YearsInBusiness   int     `db:"years_in_business" json:"years_in_business"`
	CreditScore       int     `db:"credit_score" json:"credit_score"`
	ExistingBankLimit float64 `db:"existing_bank_limit" json:"existing_bank_limit"`
	CompositeRating   int     `db:"composite_rating" json:"composite_rating"`

	// Compliance flags
	KYCStatus            string `db:"kyc_status" json:"kyc_status"`
	SanctionsApplicant   string `db:"sanctions_applicant" json:"sanctions_applicant"`
	SanctionsBeneficiary string `db:"sanctions_beneficiary" json:"sanctions_beneficiary"`
	CountryRiskStatus    string `db:"country_risk_status" json:"country_risk_status"`
	AMLStatus            string `db:"aml_status" json:"aml_status"`

	// STP state, overwritten wholesale on every run
	STPDecision   string          `db:"stp_decision" json:"stp_decision"`
	STPReason     sql.NullString  `db:"stp_reason" json:"stp_reason"`
	HaircutPct    sql.NullFloat64 `db:"haircut_pct" json:"haircut_pct"`
	EligibleValue sql.NullFloat64 `db:"eligible_value" json:"eligible_value"`
	STPRunAt      sql.NullTime    `db:"stp_run_at" json:"stp_run_at"`
	STPRunBy      sql.NullString  `db:"stp_run_by" json:"stp_run_by"`

	// Generated artifacts
	LCNumber         sql.NullString `db:"lc_number" json:"lc_number"`
	DraftText        sql.NullString `db:"draft_text" json:"draft_text"`
	DraftPDFPath     sql.NullString `db:"draft_pdf_path" json:"draft_pdf_path"`
	DraftGeneratedAt sql.NullTime   `db:"draft_generated_at" json:"draft_generated_at"`
	MT700Text        sql.NullString `db:"mt700_text" json:"mt700_text"`
	MT700GeneratedAt sql.NullTime   `db:"mt700_generated_at" json:"mt700_generated_at"`

	Status       string         `db:"status" json:"status"`
	OfficerNotes sql.NullString `db:"officer_notes" json:"officer_notes"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at" json:"updated_at"`
}

// Lifecycle statuses
const (
	ApplicationStatusPendingReview = "Pending Review"
	ApplicationStatusUnderReview   = "Under Review"
	ApplicationStatusApproved      = "Approved"
	ApplicationStatusRejected      = "Rejected"
	ApplicationStatusMoreInfo      = "More Info Required"
	ApplicationStatusSentToBank    = "Sent to Advising Bank"
	ApplicationStatusClosed        = "Closed"
)

// Compliance flag values
const (
	ComplianceStatusPending = "Pending"
	ComplianceStatusCleared = "Cleared"
	ComplianceStatusFailed  = "Failed"
)

// AllCleared reports whether every compliance flag has come back clean.
func (a *LCApplication) AllCleared() bool {
	return a.KYCStatus == ComplianceStatusCleared &&
		a.SanctionsApplicant == ComplianceStatusCleared &&
		a.SanctionsBeneficiary == ComplianceStatusCleared &&
		a.CountryRiskStatus == ComplianceStatusCleared &&
		a.AMLStatus == ComplianceStatusCleared
}
