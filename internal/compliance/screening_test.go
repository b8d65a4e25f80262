package compliance

import (
	"testing"

	"github.com/lucidbank/lcbridge/internal/models"
	"github.com/stretchr/testify/require"
)

func screeningApplication() *models.LCApplication {
	return &models.LCApplication{
		ApplicantName:      "Sunrise Textiles Pvt Ltd",
		ApplicantAccount:   "00412000988",
		ApplicantTaxID:     "AABCS1234F1Z5",
		ApplicantCountry:   "India",
		BeneficiaryName:    "Hangzhou Weaving Co Ltd",
		BeneficiaryCountry: "China",
		CountryOfOrigin:    "China",
		Amount:             1250000,
		AnnualTurnover:     20000000,
	}
}

func TestScreen_AllCleared(t *testing.T) {
	result := Screen(screeningApplication())

	require.True(t, result.AllCleared)
	require.Equal(t, StatusCleared, result.KYC.Status)
	require.Equal(t, StatusCleared, result.AML.Status)
}

func TestScreen_Deterministic(t *testing.T) {
	app := screeningApplication()
	require.Equal(t, Screen(app), Screen(app))
}

func TestScreen_WatchlistMatchFails(t *testing.T) {
	app := screeningApplication()
	app.BeneficiaryName = "Embargo Holdings Ltd"

	result := Screen(app)

	require.False(t, result.AllCleared)
	require.Equal(t, StatusFailed, result.SanctionsBeneficiary.Status)
	require.Equal(t, StatusCleared, result.SanctionsApplicant.Status)
}

func TestScreen_HighRiskCountryFails(t *testing.T) {
	app := screeningApplication()
	app.CountryOfOrigin = "Iran"

	result := Screen(app)

	require.Equal(t, StatusFailed, result.CountryRisk.Status)
	require.False(t, result.AllCleared)
}

func TestScreen_MissingTurnoverLeavesAMLPending(t *testing.T) {
	app := screeningApplication()
	app.AnnualTurnover = 0

	result := Screen(app)

	require.Equal(t, StatusPending, result.AML.Status)
	require.False(t, result.AllCleared)
}

func TestScreen_DisproportionateAmountFailsAML(t *testing.T) {
	app := screeningApplication()
	app.Amount = 50000000

	require.Equal(t, StatusFailed, Screen(app).AML.Status)
}

func TestScreen_BadTaxIDFailsKYC(t *testing.T) {
	app := screeningApplication()
	app.ApplicantTaxID = "abc"

	require.Equal(t, StatusFailed, Screen(app).KYC.Status)
}

func TestApply_CopiesFlags(t *testing.T) {
	app := screeningApplication()
	Apply(app, Screen(app))

	require.True(t, app.AllCleared())
}
