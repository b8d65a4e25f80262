package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComposeClauses_ShipmentFlags(t *testing.T) {
	app := completeApplication()
	app.PartialShipment = true
	app.Transshipment = false

	set := ComposeClauses(app)

	require.Contains(t, set.PartialShipment, "permitted")
	require.Contains(t, set.Transshipment, "prohibited")
}

func TestComposeClauses_InsuranceByIncoterms(t *testing.T) {
	tests := []struct {
		incoterms string
		want      string
	}{
		{"CIF", "110%"},
		{"CIP", "110%"},
		{"FOB", "arranged by the buyer"},
		{"EXW", "arranged by the buyer"},
		{"FCA", "arranged by the buyer"},
		{"FAS", "arranged by the buyer"},
		{"DAP", "remains with the seller"},
		{"DDP", "remains with the seller"},
		{"DPU", "remains with the seller"},
		{"CFR", "as agreed between buyer and seller"},
		{"", "as agreed between buyer and seller"},
	}

	for _, tc := range tests {
		t.Run(tc.incoterms, func(t *testing.T) {
			app := completeApplication()
			app.Incoterms = tc.incoterms
			require.Contains(t, ComposeClauses(app).Insurance, tc.want)
		})
	}
}

func TestComposeClauses_PaymentPriorityOrder(t *testing.T) {
	app := completeApplication()

	// "sight" in the free text wins even when the type says usance
	app.PaymentTerms = "Payable at sight"
	app.LCType = "Usance"
	require.Contains(t, ComposeClauses(app).Payment, "at sight")

	// day count extracted from the terms
	app.PaymentTerms = "60 Days from BL date"
	require.Contains(t, ComposeClauses(app).Payment, "60 days")

	// usance with no number falls back to 90
	app.PaymentTerms = "Usance"
	require.Contains(t, ComposeClauses(app).Payment, "90 days")

	// type drives the branch when the text is silent
	app.PaymentTerms = "as agreed"
	app.LCType = "Standby"
	require.Contains(t, ComposeClauses(app).Payment, "first written demand")

	app.LCType = "Revolving"
	require.Contains(t, ComposeClauses(app).Payment, "revolves")

	app.LCType = ""
	require.Contains(t, ComposeClauses(app).Payment, "Available by payment")
}

func TestComposeClauses_ToleranceBothDirections(t *testing.T) {
	app := completeApplication()
	app.TolerancePct = 7.5

	clause := ComposeClauses(app).Tolerance
	require.Contains(t, clause, "7.5% more")
	require.Contains(t, clause, "7.5% less")

	app.TolerancePct = 0
	require.Contains(t, ComposeClauses(app).Tolerance, "No tolerance")
}

func TestComposeClauses_InspectionOmittedWithoutKeywords(t *testing.T) {
	app := completeApplication()
	app.SpecialInstructions = "Please advise beneficiary promptly."

	require.Nil(t, ComposeClauses(app).Inspection)
}

func TestComposeClauses_InspectionNamesRecognisedBodies(t *testing.T) {
	app := completeApplication()
	app.SpecialInstructions = "Pre-shipment inspection by SGS and Bureau Veritas required."

	clause := ComposeClauses(app).Inspection
	require.NotNil(t, clause)
	require.Contains(t, *clause, "SGS, Bureau Veritas")
}

func TestComposeClauses_InspectionGenericAgencyFallback(t *testing.T) {
	app := completeApplication()
	app.SpecialInstructions = "Quality check certificate required before shipment."

	clause := ComposeClauses(app).Inspection
	require.NotNil(t, clause)
	require.Contains(t, *clause, "internationally recognised independent inspection agency")
}

func TestComposeClauses_FixedTemplates(t *testing.T) {
	app := completeApplication()
	set := ComposeClauses(app)

	require.Contains(t, set.GoverningRules, "UCP 600")
	require.Contains(t, set.GoverningRules, "2007 Revision")
	require.Contains(t, set.Undertaking, "Lucid Bank Ltd")
	require.Contains(t, set.PresentationPeriod, "21 days")
	require.Contains(t, set.Charges, "outside India")
}

func TestParseLCType(t *testing.T) {
	require.Equal(t, TypeSight, ParseLCType(" Sight "))
	require.Equal(t, TypeUsance, ParseLCType("usance"))
	require.Equal(t, TypeStandby, ParseLCType("SBLC"))
	require.Equal(t, TypeRevolving, ParseLCType("Revolving"))
	require.Equal(t, TypeUnspecified, ParseLCType("back-to-back"))
}
