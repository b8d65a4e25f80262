// Package compliance provides deterministic stand-ins for the KYC,
// sanctions, country-risk and AML checks the production system delegates
// to external providers. The verdicts are derived purely from the
// application record and small embedded lists — stable across runs, never
// random — so the workflow can be exercised end to end without live
// integrations.
package compliance

import (
	"regexp"
	"strings"

	"github.com/lucidbank/lcbridge/internal/models"
)

// Screening statuses mirror the application's compliance flag vocabulary.
const (
	StatusPending = models.ComplianceStatusPending
	StatusCleared = models.ComplianceStatusCleared
	StatusFailed  = models.ComplianceStatusFailed
)

type CheckResult struct {
	Check  string `json:"check"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

type ScreeningResult struct {
	KYC                  CheckResult `json:"kyc"`
	SanctionsApplicant   CheckResult `json:"sanctions_applicant"`
	SanctionsBeneficiary CheckResult `json:"sanctions_beneficiary"`
	CountryRisk          CheckResult `json:"country_risk"`
	AML                  CheckResult `json:"aml"`
	AllCleared           bool        `json:"all_cleared"`
}

// watchlist is the embedded sanctions stand-in. Real screening goes
// through the provider; these names exist so demos and tests can exercise
// the Failed path.
var watchlist = []string{
	"blocked trading",
	"sanctioned exports",
	"embargo holdings",
	"restricted maritime",
}

// highRiskCountries for the country-risk check, again a demo stand-in.
var highRiskCountries = map[string]bool{
	"NORTH KOREA": true,
	"IRAN":        true,
	"SYRIA":       true,
	"CUBA":        true,
	"MYANMAR":     true,
}

var taxIDPattern = regexp.MustCompile(`^[A-Z0-9]{10,15}$`)

// Screen runs every check and derives the aggregate flag.
func Screen(app *models.LCApplication) ScreeningResult {
	result := ScreeningResult{
		KYC:                  kycCheck(app),
		SanctionsApplicant:   sanctionsCheck("applicant", app.ApplicantName),
		SanctionsBeneficiary: sanctionsCheck("beneficiary", app.BeneficiaryName),
		CountryRisk:          countryRiskCheck(app),
		AML:                  amlCheck(app),
	}

	result.AllCleared = result.KYC.Status == StatusCleared &&
		result.SanctionsApplicant.Status == StatusCleared &&
		result.SanctionsBeneficiary.Status == StatusCleared &&
		result.CountryRisk.Status == StatusCleared &&
		result.AML.Status == StatusCleared

	return result
}

// kycCheck verifies the identity essentials exist on file: a named
// applicant with an account and a plausibly-formatted tax ID.
func kycCheck(app *models.LCApplication) CheckResult {
	check := CheckResult{Check: "kyc"}

	if strings.TrimSpace(app.ApplicantName) == "" || strings.TrimSpace(app.ApplicantAccount) == "" {
		check.Status = StatusPending
		check.Detail = "Applicant identity records incomplete; awaiting documentation"
		return check
	}

	taxID := strings.ToUpper(strings.TrimSpace(app.ApplicantTaxID))
	if taxID != "" && !taxIDPattern.MatchString(taxID) {
		check.Status = StatusFailed
		check.Detail = "Applicant tax ID failed format verification"
		return check
	}

	check.Status = StatusCleared
	check.Detail = "Identity records verified against customer file"
	return check
}

func sanctionsCheck(party, name string) CheckResult {
	check := CheckResult{Check: "sanctions_" + party}

	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		check.Status = StatusPending
		check.Detail = "No " + party + " name available for screening"
		return check
	}

	for _, listed := range watchlist {
		if strings.Contains(normalized, listed) {
			check.Status = StatusFailed
			check.Detail = "Name matched watchlist entry " + strings.ToUpper(listed)
			return check
		}
	}

	check.Status = StatusCleared
	check.Detail = "No watchlist match for " + party
	return check
}

func countryRiskCheck(app *models.LCApplication) CheckResult {
	check := CheckResult{Check: "country_risk"}

	for _, country := range []string{app.ApplicantCountry, app.BeneficiaryCountry, app.CountryOfOrigin} {
		if highRiskCountries[strings.ToUpper(strings.TrimSpace(country))] {
			check.Status = StatusFailed
			check.Detail = "Transaction touches high-risk jurisdiction " + strings.ToUpper(strings.TrimSpace(country))
			return check
		}
	}

	check.Status = StatusCleared
	check.Detail = "No high-risk jurisdiction involved"
	return check
}

// amlCheck is a crude proportionality test: a credit amount wildly out of
// line with the applicant's declared turnover warrants escalation.
func amlCheck(app *models.LCApplication) CheckResult {
	check := CheckResult{Check: "aml"}

	if app.AnnualTurnover <= 0 {
		check.Status = StatusPending
		check.Detail = "Annual turnover not declared; transaction profile incomplete"
		return check
	}

	if app.Amount > app.AnnualTurnover*2 {
		check.Status = StatusFailed
		check.Detail = "Credit amount exceeds twice the declared annual turnover"
		return check
	}

	check.Status = StatusCleared
	check.Detail = "Transaction profile consistent with declared turnover"
	return check
}

// Apply copies screening outcomes onto the application's flag fields.
func Apply(app *models.LCApplication, result ScreeningResult) {
	app.KYCStatus = result.KYC.Status
	app.SanctionsApplicant = result.SanctionsApplicant.Status
	app.SanctionsBeneficiary = result.SanctionsBeneficiary.Status
	app.CountryRiskStatus = result.CountryRisk.Status
	app.AMLStatus = result.AML.Status
}
