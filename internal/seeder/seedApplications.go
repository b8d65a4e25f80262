package seeder

import (
	"github.com/cradoe/gopass"
	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/models"
)

func (seeder *Seeder) seedOfficers() error {
	_, found, err := seeder.DB.Officer().GetByEmail("officer@lucidbank.example")
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	hashed, err := gopass.Hash("ChangeMe#2026")
	if err != nil {
		return err
	}

	_, err = seeder.DB.Officer().Insert(&models.Officer{
		FirstName:      "Asha",
		LastName:       "Raghavan",
		Email:          "officer@lucidbank.example",
		Role:           "trade-finance-officer",
		HashedPassword: hashed,
	})
	return err
}

// Demo applications. The collateral figures deliberately include cases
// where the cover is nowhere near the credit amount, so the decision
// engine's NO and REVIEW paths show up in a demo walkthrough rather than
// just the happy path.
func (seeder *Seeder) seedApplications() error {
	apps := []models.LCApplication{
		{
			Reference:          "LC-2026-00001",
			ApplicantName:      "Sunrise Textiles Pvt Ltd",
			ApplicantAddress:   "Plot 14, MIDC Industrial Area",
			ApplicantCity:      "Mumbai",
			ApplicantCountry:   "India",
			ApplicantAccount:   "00412000988",
			ApplicantTaxID:     "AABCS1234F1Z5",
			BeneficiaryName:    "Hangzhou Weaving Co Ltd",
			BeneficiaryCity:    "Hangzhou",
			BeneficiaryCountry: "China",
			IssuingBank:        "Lucid Bank Ltd",
			IssuingBankBIC:     "LUCDINBBXXX",
			AdvisingBank:       "First Commercial Bank, Shanghai",
			Currency:           "USD",
			Amount:             1250000,
			TolerancePct:       5,
			IssueDate:          "2026-01-15",
			ExpiryDate:         "2026-06-30",
			ExpiryPlace:        "Mumbai",
			LatestShipmentDate: "2026-05-31",
			Incoterms:          "CIF",
			PortOfLoading:      "Shanghai",
			PortOfDischarge:    "Nhava Sheva",
			GoodsDescription:   "100% cotton woven fabric",
			LCType:             "Sight",
			PaymentTerms:       "Sight",
			RequiredDocuments:  []string{"Commercial Invoice", "Bill of Lading", "Packing List"},
			CollateralType:     engine.CollateralCash,
			CashMarginAmount:   1300000,
			AnnualTurnover:     20000000,
			YearsInBusiness:    12,
			CreditScore:        760,
			STPDecision:        engine.DecisionPending,
			Status:             models.ApplicationStatusPendingReview,
		},
		{
			// fixed deposit cover of 200 against a 1.25M credit: the
			// engine declines this outright, whatever the deposit's pedigree
			Reference:          "LC-2026-00002",
			ApplicantName:      "Meridian Agro Exports Ltd",
			ApplicantCity:      "Pune",
			ApplicantCountry:   "India",
			ApplicantAccount:   "00877120034",
			ApplicantTaxID:     "AAACM9921K1ZP",
			BeneficiaryName:    "Rotterdam Commodity Traders BV",
			BeneficiaryCity:    "Rotterdam",
			BeneficiaryCountry: "Netherlands",
			IssuingBank:        "Lucid Bank Ltd",
			IssuingBankBIC:     "LUCDINBBXXX",
			Currency:           "USD",
			Amount:             1250000,
			TolerancePct:       10,
			ExpiryDate:         "2026-09-30",
			PortOfLoading:      "Mundra",
			PortOfDischarge:    "Rotterdam",
			GoodsDescription:   "Basmati rice, grade A",
			LCType:             "Usance",
			PaymentTerms:       "Usance 60 days",
			RequiredDocuments:  []string{"Commercial Invoice", "Bill of Lading"},
			CollateralType:     engine.CollateralFD,
			FDNumber:           "FD-88121",
			FDBank:             "Lucid Bank Ltd",
			FDAmount:           200,
			FDCurrency:         "USD",
			FDLien:             true,
			AnnualTurnover:     8000000,
			YearsInBusiness:    7,
			CreditScore:        710,
			STPDecision:        engine.DecisionPending,
			Status:             models.ApplicationStatusPendingReview,
		},
		{
			// government bond worth 500 against 3.7M: eligible value 450
			// after the 10% haircut, nowhere near the review threshold
			Reference:          "LC-2026-00003",
			ApplicantName:      "Deccan Machine Tools Ltd",
			ApplicantCity:      "Hyderabad",
			ApplicantCountry:   "India",
			ApplicantAccount:   "00991230077",
			ApplicantTaxID:     "AADCD4412R1ZX",
			BeneficiaryName:    "Stuttgart Precision GmbH",
			BeneficiaryCity:    "Stuttgart",
			BeneficiaryCountry: "Germany",
			IssuingBank:        "Lucid Bank Ltd",
			IssuingBankBIC:     "LUCDINBBXXX",
			Currency:           "EUR",
			Amount:             3700000,
			TolerancePct:       5,
			ExpiryDate:         "2026-12-31",
			PortOfLoading:      "Hamburg",
			PortOfDischarge:    "Chennai",
			GoodsDescription:   "CNC milling machines",
			LCType:             "Usance",
			PaymentTerms:       "Usance 90 days",
			RequiredDocuments:  []string{"Commercial Invoice", "Bill of Lading", "Certificate of Origin"},
			CollateralType:     engine.CollateralGovtBond,
			SecISIN:            "IN0020240011",
			SecIssuer:          "Government of India",
			SecMarketValue:     500,
			SecPledged:         true,
			AnnualTurnover:     45000000,
			YearsInBusiness:    21,
			CreditScore:        800,
			STPDecision:        engine.DecisionPending,
			Status:             models.ApplicationStatusPendingReview,
		},
		{
			// property cover lands between the thresholds: manual review
			Reference:          "LC-2026-00004",
			ApplicantName:      "Coastal Polymers Pvt Ltd",
			ApplicantCity:      "Kochi",
			ApplicantCountry:   "India",
			ApplicantAccount:   "00456120091",
			ApplicantTaxID:     "AAECC7781M1ZQ",
			BeneficiaryName:    "Busan Petrochem Co",
			BeneficiaryCity:    "Busan",
			BeneficiaryCountry: "South Korea",
			IssuingBank:        "Lucid Bank Ltd",
			IssuingBankBIC:     "LUCDINBBXXX",
			Currency:           "USD",
			Amount:             600000,
			TolerancePct:       5,
			ExpiryDate:         "2026-08-31",
			PortOfLoading:      "Busan",
			PortOfDischarge:    "Cochin",
			GoodsDescription:   "Polypropylene granules",
			LCType:             "Sight",
			PaymentTerms:       "Sight",
			RequiredDocuments:  []string{"Commercial Invoice", "Bill of Lading", "Packing List"},
			CollateralType:     engine.CollateralProperty,
			CollateralValue:    900000,
			AnnualTurnover:     9500000,
			YearsInBusiness:    9,
			CreditScore:        730,
			STPDecision:        engine.DecisionPending,
			Status:             models.ApplicationStatusPendingReview,
		},
	}

	for i := range apps {
		app := &apps[i]

		_, found, err := seeder.DB.Application().GetByReference(app.Reference)
		if err != nil {
			return err
		}
		if found {
			continue
		}

		app.KYCStatus = models.ComplianceStatusPending
		app.SanctionsApplicant = models.ComplianceStatusPending
		app.SanctionsBeneficiary = models.ComplianceStatusPending
		app.CountryRiskStatus = models.ComplianceStatusPending
		app.AMLStatus = models.ComplianceStatusPending

		if _, err := seeder.DB.Application().Insert(app); err != nil {
			return err
		}
	}

	return nil
}
